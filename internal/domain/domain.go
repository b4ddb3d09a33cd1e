package domain

import (
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

type User = user.User
type Follow = user.Follow

type Recipe = recipes.Recipe
type RecipeSummary = recipes.RecipeSummary
type RecipeTag = recipes.RecipeTag
type Ingredient = recipes.Ingredient
type IngredientLine = recipes.IngredientLine
type LineInput = recipes.LineInput
type Tag = recipes.Tag
type ShoppingList = recipes.ShoppingList
type ShoppingListItem = recipes.ShoppingListItem
type UserRecipeRelation = recipes.UserRecipeRelation
type RelationKind = recipes.RelationKind

const (
	RelationFavorite = recipes.RelationFavorite
	RelationCart     = recipes.RelationCart
)

// Models lists every table this service owns, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Follow{},
		&Ingredient{},
		&Tag{},
		&Recipe{},
		&IngredientLine{},
		&RecipeTag{},
		&UserRecipeRelation{},
	}
}
