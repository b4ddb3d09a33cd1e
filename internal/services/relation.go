package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// RelationService toggles favorites and cart membership. Both kinds share
// one aggregate and differ only by kind.
type RelationService interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID, kind types.RelationKind) (types.RecipeSummary, error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID, kind types.RelationKind) error
}

type relationService struct {
	log       *logger.Logger
	aggregate domainagg.UserRecipeRelationAggregate
}

func NewRelationService(log *logger.Logger, aggregate domainagg.UserRecipeRelationAggregate) RelationService {
	return &relationService{log: log.With("service", "RelationService"), aggregate: aggregate}
}

func (s *relationService) Add(ctx context.Context, userID, recipeID uuid.UUID, kind types.RelationKind) (types.RecipeSummary, error) {
	summary, err := s.aggregate.Add(ctx, userID, recipeID, kind)
	if err != nil {
		return types.RecipeSummary{}, err
	}
	s.log.Debug("recipe relation added", "user_id", userID, "recipe_id", recipeID, "kind", string(kind))
	return summary, nil
}

func (s *relationService) Remove(ctx context.Context, userID, recipeID uuid.UUID, kind types.RelationKind) error {
	if err := s.aggregate.Remove(ctx, userID, recipeID, kind); err != nil {
		return err
	}
	s.log.Debug("recipe relation removed", "user_id", userID, "recipe_id", recipeID, "kind", string(kind))
	return nil
}
