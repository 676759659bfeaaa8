package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rpupo63/blog-auth-backend/models"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for every stored password.
const PasswordCost = 10

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// UserStore is the persistence the credential store needs.
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string, exclude uuid.UUID) (bool, error)
	Add(ctx context.Context, user *models.User) error
	FindByEmailWithPassword(ctx context.Context, email string) (*models.User, error)
	FindByIDWithPassword(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// CredentialStore owns user records and password hashing.
type CredentialStore struct {
	users UserStore
}

func NewCredentialStore(users UserStore) *CredentialStore {
	return &CredentialStore{users: users}
}

type registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("Please add a username"),
			validation.RuneLength(3, 0).Error("Username must be at least 3 characters long")),
		validation.Field(&r.Email,
			validation.Required.Error("Please add an email"),
			validation.Match(emailPattern).Error("Please add a valid email")),
		validation.Field(&r.Password,
			validation.Required.Error("Please add a password"),
			validation.RuneLength(6, 0).Error("Password must be at least 6 characters long")),
	)
}

// ValidatePassword applies the password rules on their own, keyed by field.
func ValidatePassword(field, password string) error {
	err := validation.Validate(password,
		validation.Required.Error("Please add a password"),
		validation.RuneLength(6, 0).Error("Password must be at least 6 characters long"))
	if err != nil {
		return validation.Errors{field: err}
	}
	return nil
}

// ValidateUsername applies the username rule on its own.
func ValidateUsername(username string) error {
	err := validation.Validate(username,
		validation.Required.Error("Please add a username"),
		validation.RuneLength(3, 0).Error("Username must be at least 3 characters long"))
	if err != nil {
		return validation.Errors{"username": err}
	}
	return nil
}

// Register validates the input, checks email then username for collisions
// and stores the account with a bcrypt hash of rawPassword.
func (s *CredentialStore) Register(ctx context.Context, username, email, rawPassword string) (*models.User, error) {
	r := registration{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: rawPassword,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkAvailable(ctx, r.Email, r.Username); err != nil {
		return nil, err
	}

	hash, err := HashPassword(r.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: r.Username,
		Email:    r.Email,
		Password: hash,
	}
	if err := s.users.Add(ctx, user); err != nil {
		if errs.IsUniqueConstraintViolationError(err) {
			// Lost a race against a concurrent signup; the unique index decided.
			return nil, s.conflictAfterInsert(ctx, r.Email, r.Username, err)
		}
		return nil, err
	}
	return user, nil
}

func (s *CredentialStore) checkAvailable(ctx context.Context, email, username string) error {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{Field: "email"}
	}

	taken, err = s.users.ExistsByUsername(ctx, username, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return &ConflictError{Field: "username"}
	}
	return nil
}

func (s *CredentialStore) conflictAfterInsert(ctx context.Context, email, username string, cause error) error {
	var conflict *ConflictError
	if err := s.checkAvailable(ctx, email, username); errors.As(err, &conflict) {
		conflict.Cause = cause
		return conflict
	}
	return &ConflictError{Field: "email", Cause: cause}
}

// Authenticate looks up the account by email and checks rawPassword against it.
func (s *CredentialStore) Authenticate(ctx context.Context, email, rawPassword string) (*models.User, error) {
	user, err := s.users.FindByEmailWithPassword(ctx, strings.TrimSpace(email))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, &CredentialsError{Field: "email"}
		}
		return nil, err
	}
	if !VerifyPassword(user, rawPassword) {
		return nil, &CredentialsError{Field: "password"}
	}
	return user, nil
}

// ChangePassword is the only path besides Register that computes a new hash.
func (s *CredentialStore) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if err := ValidatePassword("newPassword", newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByIDWithPassword(ctx, userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(user, currentPassword) {
		return &CredentialsError{Field: "currentPassword"}
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, hash)
}

// HashPassword returns a salted bcrypt hash of password
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(h), err
}

// VerifyPassword reports whether rawPassword matches the stored hash. It
// never fails loudly: a missing or corrupt hash is simply a mismatch.
func VerifyPassword(user *models.User, rawPassword string) bool {
	if user == nil || user.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(rawPassword)) == nil
}
