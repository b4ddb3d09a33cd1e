package user

import (
	"time"

	"github.com/google/uuid"
)

// User is owned by the identity provider; this service only reads it and
// references it from recipes, relations and follows.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:254;uniqueIndex;not null;column:email" json:"email"`
	Username  string    `gorm:"size:150;uniqueIndex;not null;column:username" json:"username"`
	FirstName string    `gorm:"size:150;not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"size:150;not null;column:last_name" json:"last_name"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (User) TableName() string { return "user" }
