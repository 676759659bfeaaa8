package auth

import (
	"fmt"

	"github.com/rpupo63/blog-auth-backend/errs"
)

// ConflictError reports that a unique account attribute is already taken.
type ConflictError struct {
	Field string // "email" or "username"
	Cause error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

func (e *ConflictError) Unwrap() error {
	return errs.ErrConflict
}

// CredentialsError reports a failed password check. Field hints at which
// input did not match.
type CredentialsError struct {
	Field string
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials (%s)", e.Field)
}

func (e *CredentialsError) Unwrap() error {
	return errs.ErrUnauthorized
}
