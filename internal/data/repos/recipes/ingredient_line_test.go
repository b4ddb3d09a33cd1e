package recipes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestIngredientLineRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	lines := NewIngredientLineRepo(db, log)
	tags := NewTagRepo(db, log)
	recipeTags := NewRecipeTagRepo(db, log)

	author := testutil.SeedUser(t, ctx, tx, "lines")
	sugar := testutil.SeedIngredient(t, ctx, tx, "sugar", "g")
	milk := testutil.SeedIngredient(t, ctx, tx, "milk", "ml")
	tag := testutil.SeedTag(t, ctx, tx, "dessert")
	now := time.Now().UTC()
	r := testutil.SeedRecipe(t, ctx, tx, author.ID, "cake", now, nil)

	if _, err := lines.Create(dbc, []*types.IngredientLine{
		{RecipeID: r.ID, IngredientID: milk.ID, Amount: 200, Position: 1},
		{RecipeID: r.ID, IngredientID: sugar.ID, Amount: 150, Position: 0},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := recipeTags.Create(dbc, []*types.RecipeTag{{RecipeID: r.ID, TagID: tag.ID}}); err != nil {
		t.Fatalf("RecipeTag Create: %v", err)
	}

	byRecipe, err := lines.ListByRecipeIDs(dbc, []uuid.UUID{r.ID})
	if err != nil {
		t.Fatalf("ListByRecipeIDs: %v", err)
	}
	got := byRecipe[r.ID]
	if len(got) != 2 || got[0].Ingredient == nil || got[0].Ingredient.Name != "sugar" || got[1].Amount != 200 {
		t.Fatalf("ListByRecipeIDs: unexpected %+v", got)
	}

	tagMap, err := tags.ListByRecipeIDs(dbc, []uuid.UUID{r.ID})
	if err != nil || len(tagMap[r.ID]) != 1 || tagMap[r.ID][0].Slug != "dessert" {
		t.Fatalf("Tag ListByRecipeIDs: %v %v", tagMap, err)
	}

	if err := lines.DeleteByRecipeIDs(dbc, []uuid.UUID{r.ID}); err != nil {
		t.Fatalf("DeleteByRecipeIDs: %v", err)
	}
	if err := recipeTags.DeleteByRecipeIDs(dbc, []uuid.UUID{r.ID}); err != nil {
		t.Fatalf("RecipeTag DeleteByRecipeIDs: %v", err)
	}
	byRecipe, err = lines.ListByRecipeIDs(dbc, []uuid.UUID{r.ID})
	if err != nil || len(byRecipe[r.ID]) != 0 {
		t.Fatalf("ListByRecipeIDs after delete: %v %v", byRecipe, err)
	}
}

func TestIngredientLineRepoListCartItems(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewIngredientLineRepo(db, testutil.Logger(t))

	author := testutil.SeedUser(t, ctx, tx, "cook")
	shopper := testutil.SeedUser(t, ctx, tx, "shopper")
	sugar := testutil.SeedIngredient(t, ctx, tx, "sugar", "g")
	flour := testutil.SeedIngredient(t, ctx, tx, "flour", "g")
	eggs := testutil.SeedIngredient(t, ctx, tx, "eggs", "pcs")

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	pie := testutil.SeedRecipe(t, ctx, tx, author.ID, "pie", base, []types.LineInput{
		{IngredientID: flour.ID, Amount: 300},
		{IngredientID: sugar.ID, Amount: 100},
	})
	omelette := testutil.SeedRecipe(t, ctx, tx, author.ID, "omelette", base, []types.LineInput{
		{IngredientID: eggs.ID, Amount: 3},
	})
	favOnly := testutil.SeedRecipe(t, ctx, tx, author.ID, "fav", base, []types.LineInput{
		{IngredientID: sugar.ID, Amount: 999},
	})

	// omelette went into the cart first
	testutil.SeedRelation(t, ctx, tx, shopper.ID, omelette.ID, types.RelationCart, base)
	testutil.SeedRelation(t, ctx, tx, shopper.ID, pie.ID, types.RelationCart, base.Add(time.Minute))
	testutil.SeedRelation(t, ctx, tx, shopper.ID, favOnly.ID, types.RelationFavorite, base)

	items, err := repo.ListCartItems(dbc, shopper.ID)
	if err != nil {
		t.Fatalf("ListCartItems: %v", err)
	}
	want := []string{"eggs", "flour", "sugar"}
	if len(items) != len(want) {
		t.Fatalf("ListCartItems: want %d items, got %+v", len(want), items)
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Fatalf("item %d: want %s got %s", i, name, items[i].Name)
		}
	}
	if items[2].Amount != 100 || items[2].MeasurementUnit != "g" {
		t.Fatalf("sugar line: %+v", items[2])
	}

	empty, err := repo.ListCartItems(dbc, author.ID)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty cart: %+v %v", empty, err)
	}
}
