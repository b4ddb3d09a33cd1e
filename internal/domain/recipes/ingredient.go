package recipes

import "github.com/google/uuid"

// Ingredient is immutable reference data.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit;column:name" json:"name"`
	MeasurementUnit string    `gorm:"size:200;not null;uniqueIndex:idx_ingredient_name_unit;column:measurement_unit" json:"measurement_unit"`
}

func (Ingredient) TableName() string { return "ingredient" }

type IngredientLine struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ingredient_line_recipe_ingredient;column:recipe_id" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ingredient_line_recipe_ingredient;index;column:ingredient_id" json:"ingredient_id"`
	Amount       int       `gorm:"not null;column:amount" json:"amount"`
	Position     int       `gorm:"not null;column:position" json:"position"`

	Ingredient *Ingredient `gorm:"-" json:"ingredient,omitempty"`
}

func (IngredientLine) TableName() string { return "ingredient_line" }

// LineInput is one requested ingredient quantity on a recipe write.
type LineInput struct {
	IngredientID uuid.UUID
	Amount       int
}
