package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
)

type RecipeAttrs struct {
	Name        string
	Text        string
	CookingTime int
	ImageKey    string
}

// RecipeAttrsPatch carries the attributes an update may change; nil keeps
// the stored value.
type RecipeAttrsPatch struct {
	Name        *string
	Text        *string
	CookingTime *int
	ImageKey    *string
}

type CreateRecipeInput struct {
	AuthorID uuid.UUID
	Attrs    RecipeAttrs
	TagIDs   []uuid.UUID
	Lines    []recipes.LineInput
}

type UpdateRecipeInput struct {
	RecipeID uuid.UUID
	ActorID  uuid.UUID
	Attrs    RecipeAttrsPatch
	TagIDs   []uuid.UUID
	Lines    []recipes.LineInput
	// ExpectedVersion turns the update into a compare-and-set on the
	// recipe version. Nil keeps last-writer-wins.
	ExpectedVersion *int
}

type UpdateRecipeResult struct {
	Recipe      *recipes.Recipe
	PreviousKey string
}

type DeleteRecipeInput struct {
	RecipeID uuid.UUID
	ActorID  uuid.UUID
}

type DeleteRecipeResult struct {
	ImageKey string
}

type RecipeAggregate interface {
	Aggregate
	Create(ctx context.Context, in CreateRecipeInput) (*recipes.Recipe, error)
	Update(ctx context.Context, in UpdateRecipeInput) (UpdateRecipeResult, error)
	Delete(ctx context.Context, in DeleteRecipeInput) (DeleteRecipeResult, error)
}

type UserRecipeRelationAggregate interface {
	Aggregate
	Add(ctx context.Context, userID, recipeID uuid.UUID, kind recipes.RelationKind) (recipes.RecipeSummary, error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID, kind recipes.RelationKind) error
}
