package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-auth-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user without the password hash
func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Omit("password").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// FindByIDWithPassword returns a user including the password hash
func (r *UserRepo) FindByIDWithPassword(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// FindByEmailWithPassword returns a user including the password hash, for login
func (r *UserRepo) FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// ExistsByEmail reports whether an account already uses email
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

// ExistsByUsername reports whether an account other than exclude already uses username
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	if exclude == uuid.Nil {
		return r.exists(ctx, "username = ?", username)
	}
	return r.exists(ctx, "username = ? AND id <> ?", username, exclude)
}

func (r *UserRepo) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, args...).Count(&count).Error
	return count > 0, translate(err, "user")
}

// Add inserts a new user; unique index violations surface as errs.ErrUniqueConstraintViolation
func (r *UserRepo) Add(ctx context.Context, user *models.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "user")
}

// UpdateProfile writes only the profile columns, the password column is never touched
func (r *UserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).
		Model(user).
		Select("username", "profile_picture", "bio", "updated_at").
		Updates(user)
	if result.Error != nil {
		return translate(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user")
	}
	return nil
}

// UpdatePasswordHash stores a freshly computed hash
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{ID: id}).Update("password", hash)
	if result.Error != nil {
		return translate(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "user")
	}
	return nil
}
