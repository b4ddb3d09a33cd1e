package aggregates

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

// VersionGuard owns recipe.version. Every write bumps it; a write that
// carries the version its caller last read only lands while that version is
// still current.
type VersionGuard struct {
	db *gorm.DB
}

func NewVersionGuard(db *gorm.DB) VersionGuard {
	return VersionGuard{db: db}
}

func (g VersionGuard) conn(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx), nil
	}
	if g.db != nil {
		return g.db.WithContext(dbc.Ctx), nil
	}
	return nil, ValidationError("missing db transaction context")
}

// CheckVersion fails fast when the caller's expected version is already
// stale. A nil expectation always passes.
func CheckVersion(current int, expected *int) error {
	if expected == nil {
		return nil
	}
	if *expected < 1 {
		return ValidationError("expected version must be >= 1")
	}
	if current != *expected {
		return fmt.Errorf("%w: have %d, caller expected %d", recipes.ErrVersionConflict, current, *expected)
	}
	return nil
}

// Bump applies updates to the recipe row and advances its version. With
// expected set the update is a compare-and-set on (id, version) and a lost
// race surfaces as ErrVersionConflict.
func (g VersionGuard) Bump(dbc dbctx.Context, recipeID uuid.UUID, expected *int, updates map[string]any) error {
	db, err := g.conn(dbc)
	if err != nil {
		return err
	}
	if recipeID == uuid.Nil {
		return ValidationError("recipe id is required")
	}
	set := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		set[k] = v
	}
	q := db.Model(&types.Recipe{}).Where("id = ?", recipeID)
	if expected == nil {
		set["version"] = gorm.Expr("version + 1")
	} else {
		if *expected < 1 {
			return ValidationError("expected version must be >= 1")
		}
		set["version"] = *expected + 1
		q = q.Where("version = ?", *expected)
	}
	res := q.Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if expected != nil {
			return fmt.Errorf("%w: recipe changed while updating", recipes.ErrVersionConflict)
		}
		return recipes.ErrRecipeNotFound
	}
	return nil
}
