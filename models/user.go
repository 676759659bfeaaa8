package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultProfilePicture = "default.jpg"

// User is an account. Password always holds a bcrypt hash and is never
// selected unless a query asks for it explicitly.
type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Username       string    `json:"username" gorm:"type:varchar(255);not null;uniqueIndex:idx_users_username"`
	Email          string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	Password       string    `json:"-" gorm:"type:text;not null"`
	ProfilePicture string    `json:"profilePicture" gorm:"type:text;not null;default:default.jpg"`
	Bio            *string   `json:"bio,omitempty" gorm:"type:varchar(500)"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.ProfilePicture == "" {
		u.ProfilePicture = DefaultProfilePicture
	}
	return nil
}

// PublicUser is what auth responses expose about an account.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Author is the read-only projection of a user used when populating posts and comments.
type Author struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username string    `json:"username"`
}

func (Author) TableName() string {
	return "users"
}
