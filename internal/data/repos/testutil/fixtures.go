package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "A",
		LastName:  "B",
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, name, unit string) *types.Ingredient {
	tb.Helper()
	ing := &types.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Tag {
	tb.Helper()
	tag := &types.Tag{ID: uuid.New(), Name: slug, Slug: slug, Color: "#49B64E"}
	if err := tx.WithContext(ctx).Create(tag).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return tag
}

// SeedRecipe stores a recipe with the given lines and tags. createdAt lets
// tests pin listing order.
func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID uuid.UUID, name string, createdAt time.Time, lines []types.LineInput, tags ...*types.Tag) *types.Recipe {
	tb.Helper()
	r := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        name,
		Text:        "text",
		CookingTime: 10,
		Version:     1,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	for i, in := range lines {
		line := &types.IngredientLine{
			ID:           uuid.New(),
			RecipeID:     r.ID,
			IngredientID: in.IngredientID,
			Amount:       in.Amount,
			Position:     i,
		}
		if err := tx.WithContext(ctx).Create(line).Error; err != nil {
			tb.Fatalf("seed ingredient line: %v", err)
		}
	}
	for _, tag := range tags {
		if err := tx.WithContext(ctx).Create(&types.RecipeTag{RecipeID: r.ID, TagID: tag.ID}).Error; err != nil {
			tb.Fatalf("seed recipe tag: %v", err)
		}
	}
	return r
}

func SeedRelation(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID, kind types.RelationKind, createdAt time.Time) {
	tb.Helper()
	row := &types.UserRecipeRelation{ID: uuid.New(), UserID: userID, RecipeID: recipeID, Kind: kind, CreatedAt: createdAt.UTC()}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed relation: %v", err)
	}
}

func SeedFollow(tb testing.TB, ctx context.Context, tx *gorm.DB, followerID, followeeID uuid.UUID, createdAt time.Time) {
	tb.Helper()
	row := &types.Follow{ID: uuid.New(), FollowerID: followerID, FolloweeID: followeeID, CreatedAt: createdAt.UTC()}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed follow: %v", err)
	}
}
