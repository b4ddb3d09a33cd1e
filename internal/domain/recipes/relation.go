package recipes

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RelationKind distinguishes the user→recipe memberships that share one table.
type RelationKind string

const (
	RelationFavorite RelationKind = "favorite"
	RelationCart     RelationKind = "cart"
)

func (k RelationKind) Valid() bool {
	return k == RelationFavorite || k == RelationCart
}

func ParseRelationKind(raw string) (RelationKind, error) {
	k := RelationKind(strings.ToLower(strings.TrimSpace(raw)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown relation kind %q", raw)
	}
	return k, nil
}

type UserRecipeRelation struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_recipe_relation_unique;column:user_id" json:"user_id"`
	RecipeID  uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_recipe_relation_unique;index;column:recipe_id" json:"recipe_id"`
	Kind      RelationKind `gorm:"size:16;not null;uniqueIndex:idx_user_recipe_relation_unique;column:kind" json:"kind"`
	CreatedAt time.Time    `gorm:"not null;column:created_at" json:"created_at"`
}

func (UserRecipeRelation) TableName() string { return "user_recipe_relation" }
