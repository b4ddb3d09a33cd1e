package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// CartItem is one ingredient line of one recipe in a user's cart, flattened
// with the catalog entry it points at.
type CartItem struct {
	RecipeID        uuid.UUID
	IngredientID    uuid.UUID
	Name            string
	MeasurementUnit string
	Amount          int
}

type IngredientLineRepo interface {
	Create(dbc dbctx.Context, rows []*types.IngredientLine) ([]*types.IngredientLine, error)
	DeleteByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) error
	// ListByRecipeIDs maps each recipe to its lines in position order, with
	// the Ingredient field populated.
	ListByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]*types.IngredientLine, error)
	// ListCartItems returns every line of every recipe in the user's cart, in
	// the order the recipes were added.
	ListCartItems(dbc dbctx.Context, userID uuid.UUID) ([]CartItem, error)
}

type ingredientLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientLineRepo(db *gorm.DB, baseLog *logger.Logger) IngredientLineRepo {
	return &ingredientLineRepo{db: db, log: baseLog.With("repo", "IngredientLineRepo")}
}

func (r *ingredientLineRepo) Create(dbc dbctx.Context, rows []*types.IngredientLine) ([]*types.IngredientLine, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.IngredientLine{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ingredientLineRepo) DeleteByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(recipeIDs) == 0 {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&types.IngredientLine{}).Error
}

func (r *ingredientLineRepo) ListByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]*types.IngredientLine, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	out := make(map[uuid.UUID][]*types.IngredientLine, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ID              uuid.UUID
		RecipeID        uuid.UUID
		IngredientID    uuid.UUID
		Amount          int
		Position        int
		Name            string
		MeasurementUnit string
	}
	if err := t.WithContext(dbc.Ctx).
		Table("ingredient_line").
		Select(`ingredient_line.id, ingredient_line.recipe_id, ingredient_line.ingredient_id,
			ingredient_line.amount, ingredient_line.position,
			ingredient.name, ingredient.measurement_unit`).
		Joins("JOIN ingredient ON ingredient.id = ingredient_line.ingredient_id").
		Where("ingredient_line.recipe_id IN ?", recipeIDs).
		Order("ingredient_line.recipe_id ASC, ingredient_line.position ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RecipeID] = append(out[row.RecipeID], &types.IngredientLine{
			ID:           row.ID,
			RecipeID:     row.RecipeID,
			IngredientID: row.IngredientID,
			Amount:       row.Amount,
			Position:     row.Position,
			Ingredient: &types.Ingredient{
				ID:              row.IngredientID,
				Name:            row.Name,
				MeasurementUnit: row.MeasurementUnit,
			},
		})
	}
	return out, nil
}

func (r *ingredientLineRepo) ListCartItems(dbc dbctx.Context, userID uuid.UUID) ([]CartItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []CartItem
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Table("user_recipe_relation").
		Select(`ingredient_line.recipe_id, ingredient_line.ingredient_id,
			ingredient.name, ingredient.measurement_unit, ingredient_line.amount`).
		Joins("JOIN ingredient_line ON ingredient_line.recipe_id = user_recipe_relation.recipe_id").
		Joins("JOIN ingredient ON ingredient.id = ingredient_line.ingredient_id").
		Where("user_recipe_relation.user_id = ? AND user_recipe_relation.kind = ?", userID, types.RelationCart).
		Order("user_recipe_relation.created_at ASC, ingredient_line.recipe_id ASC, ingredient_line.position ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
