package recipes

import (
	"time"

	"github.com/google/uuid"
)

const (
	MaxNameLength  = 200
	MinCookingTime = 1
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`
	Name        string    `gorm:"size:200;not null;column:name" json:"name"`
	Text        string    `gorm:"type:text;not null;column:text" json:"text"`
	CookingTime int       `gorm:"not null;column:cooking_time" json:"cooking_time"`
	ImageKey    string    `gorm:"column:image_key" json:"image_key"`
	Version     int       `gorm:"not null;column:version" json:"version"`
	CreatedAt   time.Time `gorm:"not null;index;column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;column:updated_at" json:"updated_at"`

	Lines []*IngredientLine `gorm:"-" json:"-"`
	Tags  []*Tag            `gorm:"-" json:"-"`
}

func (Recipe) TableName() string { return "recipe" }

// RecipeSummary is the reduced projection used by relation toggles and
// subscription listings.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageKey    string    `json:"image_key"`
	CookingTime int       `json:"cooking_time"`
}

func (r *Recipe) Summary() RecipeSummary {
	if r == nil {
		return RecipeSummary{}
	}
	return RecipeSummary{ID: r.ID, Name: r.Name, ImageKey: r.ImageKey, CookingTime: r.CookingTime}
}

// RecipeTag joins a recipe to one of its tags.
type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey;column:recipe_id" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index;column:tag_id" json:"tag_id"`
}

func (RecipeTag) TableName() string { return "recipe_tag" }
