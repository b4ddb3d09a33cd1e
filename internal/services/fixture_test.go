package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
)

type serviceFixture struct {
	db       *gorm.DB
	log      *logger.Logger
	store    objectstore.Store
	mediaDir string

	users     repos.UserRepo
	follows   repos.FollowRepo
	recipes   repos.RecipeRepo
	lines     repos.IngredientLineRepo
	tags      repos.TagRepo
	relations repos.UserRecipeRelationRepo

	recipeSvc   RecipeService
	relationSvc RelationService
	followSvc   FollowService
	shoppingSvc ShoppingListService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	dir := t.TempDir()
	store, err := objectstore.New(context.Background(), log, objectstore.Config{Mode: objectstore.ModeLocal, LocalDir: dir})
	if err != nil {
		t.Fatalf("objectstore: %v", err)
	}

	f := &serviceFixture{
		db:        db,
		log:       log,
		store:     store,
		mediaDir:  dir,
		users:     repos.NewUserRepo(db, log),
		follows:   repos.NewFollowRepo(db, log),
		recipes:   repos.NewRecipeRepo(db, log),
		lines:     repos.NewIngredientLineRepo(db, log),
		tags:      repos.NewTagRepo(db, log),
		relations: repos.NewUserRecipeRelationRepo(db, log),
	}
	ingredients := repos.NewIngredientRepo(db, log)
	catalog, err := NewIngredientCatalog(log, ingredients, nil, nil, CatalogConfig{})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	base := aggregates.BaseDeps{DB: db, Log: log}
	recipeAgg := aggregates.NewRecipeAggregate(aggregates.RecipeAggregateDeps{
		Base:        base,
		Recipes:     f.recipes,
		Lines:       f.lines,
		RecipeTags:  repos.NewRecipeTagRepo(db, log),
		Tags:        f.tags,
		Relations:   f.relations,
		Ingredients: ingredients,
		Catalog:     catalog,
	})
	relationAgg := aggregates.NewUserRecipeRelationAggregate(aggregates.UserRecipeRelationAggregateDeps{
		Base:      base,
		Recipes:   f.recipes,
		Relations: f.relations,
	})
	followAgg := aggregates.NewFollowAggregate(aggregates.FollowAggregateDeps{
		Base:    base,
		Users:   f.users,
		Follows: f.follows,
	})

	f.recipeSvc = NewRecipeService(log, RecipeServiceDeps{
		Aggregate: recipeAgg,
		Recipes:   f.recipes,
		Lines:     f.lines,
		Tags:      f.tags,
		Relations: f.relations,
		Users:     f.users,
		Follows:   f.follows,
		Images:    store,
	})
	f.relationSvc = NewRelationService(log, relationAgg)
	f.followSvc = NewFollowService(log, followAgg, f.users, f.follows, f.recipes)
	f.shoppingSvc = NewShoppingListService(log, f.lines, nil, nil)
	return f
}

func testImage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 5), B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func ptr[T any](v T) *T { return &v }
