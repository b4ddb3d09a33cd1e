package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type RecipeTagRepo interface {
	Create(dbc dbctx.Context, rows []*types.RecipeTag) ([]*types.RecipeTag, error)
	DeleteByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) error
}

type recipeTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeTagRepo(db *gorm.DB, baseLog *logger.Logger) RecipeTagRepo {
	return &recipeTagRepo{db: db, log: baseLog.With("repo", "RecipeTagRepo")}
}

func (r *recipeTagRepo) Create(dbc dbctx.Context, rows []*types.RecipeTag) ([]*types.RecipeTag, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.RecipeTag{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeTagRepo) DeleteByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(recipeIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&types.RecipeTag{}).Error
}
