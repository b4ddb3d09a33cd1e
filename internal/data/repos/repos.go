package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos/recipes"
	"github.com/yungbote/foodgram-backend/internal/data/repos/user"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type FollowRepo = user.FollowRepo

type RecipeRepo = recipes.RecipeRepo
type RecipeListQuery = recipes.ListQuery
type IngredientRepo = recipes.IngredientRepo
type TagRepo = recipes.TagRepo
type IngredientLineRepo = recipes.IngredientLineRepo
type CartItem = recipes.CartItem
type RecipeTagRepo = recipes.RecipeTagRepo
type UserRecipeRelationRepo = recipes.UserRecipeRelationRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewFollowRepo(db *gorm.DB, baseLog *logger.Logger) FollowRepo {
	return user.NewFollowRepo(db, baseLog)
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return recipes.NewRecipeRepo(db, baseLog)
}
func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return recipes.NewIngredientRepo(db, baseLog)
}
func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return recipes.NewTagRepo(db, baseLog)
}
func NewIngredientLineRepo(db *gorm.DB, baseLog *logger.Logger) IngredientLineRepo {
	return recipes.NewIngredientLineRepo(db, baseLog)
}
func NewRecipeTagRepo(db *gorm.DB, baseLog *logger.Logger) RecipeTagRepo {
	return recipes.NewRecipeTagRepo(db, baseLog)
}
func NewUserRecipeRelationRepo(db *gorm.DB, baseLog *logger.Logger) UserRecipeRelationRepo {
	return recipes.NewUserRecipeRelationRepo(db, baseLog)
}
