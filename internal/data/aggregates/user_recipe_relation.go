package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

type UserRecipeRelationAggregateDeps struct {
	Base BaseDeps

	Recipes   repos.RecipeRepo
	Relations repos.UserRecipeRelationRepo
}

type userRecipeRelationAggregate struct {
	deps UserRecipeRelationAggregateDeps
}

// NewUserRecipeRelationAggregate serves every relation kind (favorite, cart)
// through one code path.
func NewUserRecipeRelationAggregate(deps UserRecipeRelationAggregateDeps) domainagg.UserRecipeRelationAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "UserRecipeRelationAggregate")
	return &userRecipeRelationAggregate{deps: deps}
}

func (a *userRecipeRelationAggregate) Contract() domainagg.Contract {
	return domainagg.UserRecipeRelationAggregateContract
}

func (a *userRecipeRelationAggregate) Add(ctx context.Context, userID, recipeID uuid.UUID, kind types.RelationKind) (types.RecipeSummary, error) {
	op := relationOp("Add", kind)
	var out types.RecipeSummary
	if err := a.precheck(op, userID, kind); err != nil {
		return out, err
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rec, err := a.deps.Recipes.GetByID(dbc, recipeID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domainError(domainagg.CodeNotFound, op, recipes.ErrRecipeNotFound)
		}
		exists, err := a.deps.Relations.Exists(dbc, userID, recipeID, kind)
		if err != nil {
			return err
		}
		if exists {
			return domainError(domainagg.CodeConflict, op, recipes.ErrAlreadyExists)
		}
		if _, err := a.deps.Relations.Create(dbc, &types.UserRecipeRelation{
			UserID:   userID,
			RecipeID: recipeID,
			Kind:     kind,
		}); err != nil {
			// a concurrent add won the unique index
			if isUniqueViolation(err) {
				return domainError(domainagg.CodeConflict, op, recipes.ErrAlreadyExists)
			}
			return err
		}
		out = rec.Summary()
		return nil
	})
	return out, err
}

func (a *userRecipeRelationAggregate) Remove(ctx context.Context, userID, recipeID uuid.UUID, kind types.RelationKind) error {
	op := relationOp("Remove", kind)
	if err := a.precheck(op, userID, kind); err != nil {
		return err
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		// an unknown recipe has no pair either
		n, err := a.deps.Relations.Delete(dbc, userID, recipeID, kind)
		if err != nil {
			return err
		}
		if n == 0 {
			return domainError(domainagg.CodeNotFound, op, recipes.ErrRelationNotFound)
		}
		return nil
	})
}

func (a *userRecipeRelationAggregate) precheck(op string, userID uuid.UUID, kind types.RelationKind) error {
	if userID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeValidation, op, "missing user_id", nil)
	}
	if !kind.Valid() {
		return domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown relation kind %q", kind), nil)
	}
	if a.deps.Recipes == nil || a.deps.Relations == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "relation aggregate repos not configured", nil)
	}
	return nil
}

func relationOp(verb string, kind types.RelationKind) string {
	switch kind {
	case types.RelationFavorite:
		return "Recipes.Favorite." + verb
	case types.RelationCart:
		return "Recipes.Cart." + verb
	default:
		return "Recipes.Relation." + verb
	}
}
