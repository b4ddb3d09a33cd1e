package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Repos struct {
	User               repos.UserRepo
	Follow             repos.FollowRepo
	Recipe             repos.RecipeRepo
	Ingredient         repos.IngredientRepo
	Tag                repos.TagRepo
	IngredientLine     repos.IngredientLineRepo
	RecipeTag          repos.RecipeTagRepo
	UserRecipeRelation repos.UserRecipeRelationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:               repos.NewUserRepo(db, log),
		Follow:             repos.NewFollowRepo(db, log),
		Recipe:             repos.NewRecipeRepo(db, log),
		Ingredient:         repos.NewIngredientRepo(db, log),
		Tag:                repos.NewTagRepo(db, log),
		IngredientLine:     repos.NewIngredientLineRepo(db, log),
		RecipeTag:          repos.NewRecipeTagRepo(db, log),
		UserRecipeRelation: repos.NewUserRecipeRelationRepo(db, log),
	}
}
