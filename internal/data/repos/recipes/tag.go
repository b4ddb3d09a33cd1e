package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type TagRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Tag) (int, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Tag, error)
	// ListByRecipeIDs maps each recipe to its tags ordered by name.
	ListByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]*types.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Tag) (int, error) {
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
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *tagRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Tag, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Tag
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) ListByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]*types.Tag, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := make(map[uuid.UUID][]*types.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		RecipeID uuid.UUID
		ID       uuid.UUID
		Name     string
		Slug     string
		Color    string
	}
	if err := t.WithContext(dbc.Ctx).
		Table("recipe_tag").
		Select("recipe_tag.recipe_id, tag.id, tag.name, tag.slug, tag.color").
		Joins("JOIN tag ON tag.id = recipe_tag.tag_id").
		Where("recipe_tag.recipe_id IN ?", recipeIDs).
		Order("tag.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RecipeID] = append(out[row.RecipeID], &types.Tag{
			ID:    row.ID,
			Name:  row.Name,
			Slug:  row.Slug,
			Color: row.Color,
		})
	}
	return out, nil
}
