package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type UserRecipeRelationRepo interface {
	// Create inserts one membership. A duplicate (user, recipe, kind) surfaces
	// as the driver's unique-violation error.
	Create(dbc dbctx.Context, row *types.UserRecipeRelation) (*types.UserRecipeRelation, error)
	Exists(dbc dbctx.Context, userID, recipeID uuid.UUID, kind types.RelationKind) (bool, error)
	Delete(dbc dbctx.Context, userID, recipeID uuid.UUID, kind types.RelationKind) (int64, error)
	DeleteByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) error
	// RecipeIDsAmong returns the subset of recipeIDs the user holds under kind.
	RecipeIDsAmong(dbc dbctx.Context, userID uuid.UUID, kind types.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type userRecipeRelationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRecipeRelationRepo(db *gorm.DB, baseLog *logger.Logger) UserRecipeRelationRepo {
	return &userRecipeRelationRepo{db: db, log: baseLog.With("repo", "UserRecipeRelationRepo")}
}

func (r *userRecipeRelationRepo) Create(dbc dbctx.Context, row *types.UserRecipeRelation) (*types.UserRecipeRelation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *userRecipeRelationRepo) Exists(dbc dbctx.Context, userID, recipeID uuid.UUID, kind types.RelationKind) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || recipeID == uuid.Nil {
		return false, nil
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.UserRecipeRelation{}).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRecipeRelationRepo) Delete(dbc dbctx.Context, userID, recipeID uuid.UUID, kind types.RelationKind) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || recipeID == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Delete(&types.UserRecipeRelation{})
	return res.RowsAffected, res.Error
}

func (r *userRecipeRelationRepo) DeleteByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(recipeIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&types.UserRecipeRelation{}).Error
}

func (r *userRecipeRelationRepo) RecipeIDsAmong(dbc dbctx.Context, userID uuid.UUID, kind types.RelationKind, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(recipeIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	if err := t.WithContext(dbc.Ctx).
		Model(&types.UserRecipeRelation{}).
		Where("user_id = ? AND kind = ? AND recipe_id IN ?", userID, kind, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
