package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-auth-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

func authorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// FindAll returns all blog posts, newest first, with their authors
func (r *BlogPostRepo) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	blogPosts := []*models.BlogPost{}
	err := r.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Order("created_at DESC").
		Find(&blogPosts).Error
	return blogPosts, translate(err, "blog")
}

// FindByID returns a blog post with its author and comments, newest comment first
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author", authorColumns).
		Preload("Comments", newestFirst).
		Preload("Comments.User", authorColumns).
		First(&blogPost, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "blog")
	}
	return &blogPost, nil
}

// IncrementViews bumps the view counter in a single statement
func (r *BlogPostRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return translate(result.Error, "blog")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "blog")
	}
	return nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(ctx context.Context, blogPost *models.BlogPost) error {
	return translate(r.db.WithContext(ctx).Omit("Author", "Comments").Create(blogPost).Error, "blog")
}

// Update writes the editable columns; author, views, likes and comments are left alone
func (r *BlogPostRepo) Update(ctx context.Context, blogPost *models.BlogPost) error {
	result := r.db.WithContext(ctx).
		Model(blogPost).
		Select("title", "slug", "content", "status", "updated_at").
		Omit(clause.Associations).
		Updates(blogPost)
	if result.Error != nil {
		return translate(result.Error, "blog")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "blog")
	}
	return nil
}

// ToggleLike flips userID's like on the post inside a transaction and
// reports whether the post is liked afterwards. On postgres the row is locked
// so concurrent toggles by different users are not lost.
func (r *BlogPostRepo) ToggleLike(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var blogPost models.BlogPost
		if err := query.Select("id", "likes").First(&blogPost, "id = ?", id).Error; err != nil {
			return translate(err, "blog")
		}

		liked = blogPost.ToggleLike(userID)
		return translate(tx.Model(&blogPost).Update("likes", blogPost.Likes).Error, "blog")
	})
	return liked, err
}

// Delete removes a blog post and its comments by id
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return translate(err, "comment")
		}
		result := tx.Delete(&models.BlogPost{}, "id = ?", id)
		if result.Error != nil {
			return translate(result.Error, "blog")
		}
		if result.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound, "blog")
		}
		return nil
	})
}

// AddComment inserts a comment on a blog post
func (r *BlogPostRepo) AddComment(ctx context.Context, comment *models.Comment) error {
	return translate(r.db.WithContext(ctx).Omit("User").Create(comment).Error, "comment")
}

// DeleteComment removes a single comment from a blog post
func (r *BlogPostRepo) DeleteComment(ctx context.Context, blogPostID, commentID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND blog_post_id = ?", commentID, blogPostID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return translate(result.Error, "comment")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "comment")
	}
	return nil
}
