package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type IngredientRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Ingredient) (int, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Ingredient, error)
	Count(dbc dbctx.Context) (int64, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

// CreateIgnoreDuplicates inserts catalog rows, skipping any (name, unit) pair
// that is already present. It reports how many rows were actually inserted.
func (r *ingredientRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Ingredient) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return 0, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "measurement_unit"}},
			DoNothing: true,
		}).
		CreateInBatches(&rows, 500)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *ingredientRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Ingredient, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Ingredient
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ingredientRepo) Count(dbc dbctx.Context) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).Model(&types.Ingredient{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
