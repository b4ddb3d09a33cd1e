package aggregates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestCheckVersion(t *testing.T) {
	three, two, zero := 3, 2, 0
	tests := []struct {
		name     string
		current  int
		expected *int
		conflict bool
		invalid  bool
	}{
		{name: "no expectation", current: 5},
		{name: "match", current: 3, expected: &three},
		{name: "stale", current: 3, expected: &two, conflict: true},
		{name: "non-positive", current: 1, expected: &zero, invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersion(tt.current, tt.expected)
			switch {
			case tt.conflict:
				if !errors.Is(err, recipes.ErrVersionConflict) {
					t.Fatalf("want version conflict, got %v", err)
				}
			case tt.invalid:
				if err == nil || errors.Is(err, recipes.ErrVersionConflict) {
					t.Fatalf("want validation error, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
			}
		})
	}
}

func TestVersionGuardBump(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	author := testutil.SeedUser(t, ctx, tx, "cas")
	r := testutil.SeedRecipe(t, ctx, tx, author.ID, "soup", time.Now(), nil)
	guard := NewVersionGuard(db)

	reload := func() types.Recipe {
		t.Helper()
		var got types.Recipe
		if err := tx.First(&got, "id = ?", r.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		return got
	}

	if err := guard.Bump(dbc, r.ID, nil, map[string]any{"name": "stew"}); err != nil {
		t.Fatalf("unconditional bump: %v", err)
	}
	if got := reload(); got.Name != "stew" || got.Version != 2 {
		t.Fatalf("after unconditional bump: %+v", got)
	}

	two := 2
	if err := guard.Bump(dbc, r.ID, &two, map[string]any{"name": "ragout"}); err != nil {
		t.Fatalf("matching bump: %v", err)
	}
	if err := guard.Bump(dbc, r.ID, &two, map[string]any{"name": "late"}); !errors.Is(err, recipes.ErrVersionConflict) {
		t.Fatalf("stale bump must conflict, got %v", err)
	}
	if got := reload(); got.Name != "ragout" || got.Version != 3 {
		t.Fatalf("stale bump must not apply: %+v", got)
	}

	if err := guard.Bump(dbc, uuid.New(), nil, nil); !errors.Is(err, recipes.ErrRecipeNotFound) {
		t.Fatalf("missing recipe: %v", err)
	}
	if err := guard.Bump(dbc, uuid.Nil, nil, nil); err == nil {
		t.Fatalf("expected validation error for nil id")
	}
}
