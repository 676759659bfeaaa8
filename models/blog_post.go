package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"

	wordsPerMinute = 200
)

// BlogPost represents a blog post together with its likes and comments
type BlogPost struct {
	ID        uuid.UUID                      `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Title     string                         `json:"title" gorm:"type:varchar(100);not null"`
	Slug      string                         `json:"slug" gorm:"type:text;not null;index"`
	Content   string                         `json:"content" gorm:"type:text;not null"`
	AuthorID  uuid.UUID                      `json:"authorId" gorm:"type:uuid;not null;index"`
	Author    *Author                        `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Status    PostStatus                     `json:"status" gorm:"type:varchar(20);not null;default:published"`
	Views     int                            `json:"views" gorm:"not null;default:0"`
	Likes     datatypes.JSONSlice[uuid.UUID] `json:"likes"`
	Comments  []Comment                      `json:"comments" gorm:"foreignKey:BlogPostID;references:ID"`
	ReadTime  int                            `json:"readTime" gorm:"-"`
	CreatedAt time.Time                      `json:"createdAt"`
	UpdatedAt time.Time                      `json:"updatedAt"`
}

func (p *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusPublished
	}
	if p.Likes == nil {
		p.Likes = datatypes.JSONSlice[uuid.UUID]{}
	}
	p.Slug = Slugify(p.Title)
	return nil
}

func (p *BlogPost) AfterFind(tx *gorm.DB) error {
	p.normalize()
	return nil
}

func (p *BlogPost) normalize() {
	if p.Likes == nil {
		p.Likes = datatypes.JSONSlice[uuid.UUID]{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	p.ReadTime = ReadTime(p.Content)
}

// Rename sets the title and recomputes the slug from it.
func (p *BlogPost) Rename(title string) {
	p.Title = title
	p.Slug = Slugify(title)
}

// ToggleLike removes userID from the likes when present, otherwise puts it
// first. It reports whether the post is liked by userID afterwards.
func (p *BlogPost) ToggleLike(userID uuid.UUID) bool {
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return false
		}
	}
	p.Likes = append(datatypes.JSONSlice[uuid.UUID]{userID}, p.Likes...)
	return true
}

// LikedBy reports whether userID is in the likes.
func (p *BlogPost) LikedBy(userID uuid.UUID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (p *BlogPost) FindComment(id uuid.UUID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

func (p *BlogPost) OwnerID() uuid.UUID {
	return p.AuthorID
}

// Slugify lowercases title into a URL safe identifier.
func Slugify(title string) string {
	return slug.Make(title)
}

// ReadTime estimates minutes to read at 200 words per minute, rounded up.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// Valid reports whether s is a known post status.
func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}
