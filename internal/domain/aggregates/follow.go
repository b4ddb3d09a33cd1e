package aggregates

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

type FollowAggregate interface {
	Aggregate
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) (*user.Follow, error)
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error
}
