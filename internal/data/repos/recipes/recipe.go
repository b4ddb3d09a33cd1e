package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// ListQuery narrows a recipe listing. Zero values mean "no constraint".
type ListQuery struct {
	TagSlugs    []string
	AuthorID    uuid.UUID
	FavoritedBy uuid.UUID
	InCartOf    uuid.UUID
	Limit       int
	Offset      int
}

type RecipeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Recipe) ([]*types.Recipe, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Recipe, error)
	List(dbc dbctx.Context, q ListQuery) ([]*types.Recipe, int64, error)
	ListByAuthor(dbc dbctx.Context, authorID uuid.UUID, limit int) ([]*types.Recipe, error)
	CountByAuthors(dbc dbctx.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) Create(dbc dbctx.Context, rows []*types.Recipe) ([]*types.Recipe, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Recipe{}, nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
		if row.UpdatedAt.IsZero() {
			row.UpdatedAt = row.CreatedAt
		}
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *recipeRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Recipe, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Recipe
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// List returns one page of recipes, newest first, plus the total number of
// matches. Tag slugs combine with OR; every other constraint combines with AND.
func (r *recipeRepo) List(dbc dbctx.Context, q ListQuery) ([]*types.Recipe, int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	filter := listScope(q)

	var total int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Scopes(filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []*types.Recipe
	if total == 0 {
		return out, 0, nil
	}
	find := t.WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Scopes(filter).
		Order("created_at DESC, id DESC")
	if q.Limit > 0 {
		find = find.Limit(q.Limit)
	}
	if q.Offset > 0 {
		find = find.Offset(q.Offset)
	}
	if err := find.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func listScope(q ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.AuthorID != uuid.Nil {
			db = db.Where("recipe.author_id = ?", q.AuthorID)
		}
		if len(q.TagSlugs) > 0 {
			db = db.Where(`recipe.id IN (
				SELECT rt.recipe_id FROM recipe_tag rt
				JOIN tag tg ON tg.id = rt.tag_id
				WHERE tg.slug IN ?)`, q.TagSlugs)
		}
		if q.FavoritedBy != uuid.Nil {
			db = db.Where(`recipe.id IN (
				SELECT recipe_id FROM user_recipe_relation
				WHERE user_id = ? AND kind = ?)`, q.FavoritedBy, types.RelationFavorite)
		}
		if q.InCartOf != uuid.Nil {
			db = db.Where(`recipe.id IN (
				SELECT recipe_id FROM user_recipe_relation
				WHERE user_id = ? AND kind = ?)`, q.InCartOf, types.RelationCart)
		}
		return db
	}
}

func (r *recipeRepo) ListByAuthor(dbc dbctx.Context, authorID uuid.UUID, limit int) ([]*types.Recipe, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Recipe
	if authorID == uuid.Nil {
		return out, nil
	}
	q := t.WithContext(dbc.Ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) CountByAuthors(dbc dbctx.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := make(map[uuid.UUID]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AuthorID uuid.UUID
		N        int64
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Recipe{}).
		Select("author_id, COUNT(*) AS n").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, id := range authorIDs {
		out[id] = 0
	}
	for _, row := range rows {
		out[row.AuthorID] = row.N
	}
	return out, nil
}

func (r *recipeRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return 0, nil
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.Recipe{})
	return res.RowsAffected, res.Error
}
