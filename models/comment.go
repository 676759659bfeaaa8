package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to exactly one blog post and is deleted with it.
type Comment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	BlogPostID uuid.UUID `json:"blogPostId" gorm:"type:uuid;not null;index"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	User       *Author   `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Content    string    `json:"content" gorm:"type:varchar(500);not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Comment) OwnerID() uuid.UUID {
	return c.UserID
}
