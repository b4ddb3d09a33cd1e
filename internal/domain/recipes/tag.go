package recipes

import "github.com/google/uuid"

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:200;not null;uniqueIndex;column:name" json:"name"`
	Slug  string    `gorm:"size:200;not null;uniqueIndex;column:slug" json:"slug"`
	Color string    `gorm:"size:7;column:color" json:"color"`
}

func (Tag) TableName() string { return "tag" }
