package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// EnsureRecipeIndexes adds the postgres-only indexes the list and
// shopping-cart queries lean on.
func EnsureRecipeIndexes(db *gorm.DB) error {
	// Newest-first listing per author.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_recipe_author_created
		ON recipe (author_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_recipe_author_created: %w", err)
	}
	// Cart scan for the shopping list.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_user_recipe_relation_user_kind
		ON user_recipe_relation (user_id, kind, created_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_user_recipe_relation_user_kind: %w", err)
	}
	return nil
}
