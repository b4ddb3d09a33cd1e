package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	"github.com/yungbote/foodgram-backend/internal/docexport"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/observability"
)

func TestAggregateCartItems(t *testing.T) {
	items := []repos.CartItem{
		{Name: "Sugar", MeasurementUnit: "g", Amount: 100},
		{Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "Sugar", MeasurementUnit: "g", Amount: 50},
		{Name: "Sugar", MeasurementUnit: "tbsp", Amount: 1},
		{Name: "Sugar", MeasurementUnit: "tbsp", Amount: 1},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 0},
	}
	list := AggregateCartItems(items)
	if len(list.Items) != 3 {
		t.Fatalf("want 3 items, got %+v", list.Items)
	}
	sugar := list.Items[0]
	if sugar.Name != "Sugar" || sugar.MeasurementUnit != "g" || sugar.TotalAmount != 152 {
		t.Fatalf("sugar: %+v", sugar)
	}
	if len(sugar.ConflictingUnits) != 1 || sugar.ConflictingUnits[0] != "tbsp" {
		t.Fatalf("conflicts: %v", sugar.ConflictingUnits)
	}
	if list.Items[1].Name != "Egg" || list.Items[2].Name != "Milk" || list.Items[2].TotalAmount != 0 {
		t.Fatalf("order or zero amount: %+v", list.Items)
	}
	if !list.HasUnitConflicts() {
		t.Fatalf("expected unit conflict flag")
	}

	empty := AggregateCartItems(nil)
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("empty cart should give an empty, non-nil list")
	}
}

func TestShoppingListServiceAggregatesCart(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	sfx := uuid.NewString()[:8]
	author := testutil.SeedUser(t, ctx, f.db, "author-"+sfx)
	buyer := testutil.SeedUser(t, ctx, f.db, "buyer-"+sfx)
	sugar := testutil.SeedIngredient(t, ctx, f.db, "Sugar-"+sfx, "g")
	flour := testutil.SeedIngredient(t, ctx, f.db, "Flour-"+sfx, "g")

	cake := testutil.SeedRecipe(t, ctx, f.db, author.ID, "cake-"+sfx, time.Now(), []types.LineInput{
		{IngredientID: flour.ID, Amount: 300},
		{IngredientID: sugar.ID, Amount: 100},
	})
	tea := testutil.SeedRecipe(t, ctx, f.db, author.ID, "tea-"+sfx, time.Now(), []types.LineInput{
		{IngredientID: sugar.ID, Amount: 10},
	})
	now := time.Now()
	testutil.SeedRelation(t, ctx, f.db, buyer.ID, cake.ID, types.RelationCart, now.Add(-time.Minute))
	testutil.SeedRelation(t, ctx, f.db, buyer.ID, tea.ID, types.RelationCart, now)
	// favorites do not count
	testutil.SeedRelation(t, ctx, f.db, author.ID, tea.ID, types.RelationFavorite, now)

	list, err := f.shoppingSvc.Aggregate(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("items: %+v", list.Items)
	}
	if list.Items[0].Name != flour.Name || list.Items[0].TotalAmount != 300 {
		t.Fatalf("first item: %+v", list.Items[0])
	}
	if list.Items[1].Name != sugar.Name || list.Items[1].TotalAmount != 110 {
		t.Fatalf("second item: %+v", list.Items[1])
	}

	other, err := f.shoppingSvc.Aggregate(ctx, author.ID)
	if err != nil || len(other.Items) != 0 {
		t.Fatalf("author has an empty cart: %+v %v", other, err)
	}
}

func TestShoppingListServiceExport(t *testing.T) {
	f := newServiceFixture(t)
	exp, err := docexport.New("")
	if err != nil {
		t.Fatalf("docexport: %v", err)
	}
	svc := NewShoppingListService(f.log, f.lines, exp, observability.NewMetrics())
	ctx := context.Background()
	buyer := testutil.SeedUser(t, ctx, f.db, "buyer-"+uuid.NewString()[:8])

	doc, err := svc.Export(ctx, buyer.ID, docexport.FormatPDF)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.HasPrefix(doc.Body, []byte("%PDF")) || doc.Filename != "shopping_list.pdf" || doc.ContentType != "application/pdf" {
		t.Fatalf("unexpected document %q %q", doc.Filename, doc.ContentType)
	}
}
