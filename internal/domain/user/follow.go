package user

import (
	"time"

	"github.com/google/uuid"
)

// Follow records that FollowerID subscribes to FolloweeID's recipes.
type Follow struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FollowerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;column:follower_id" json:"follower_id"`
	FolloweeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index;column:followee_id" json:"followee_id"`
	CreatedAt  time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (Follow) TableName() string { return "follow" }
