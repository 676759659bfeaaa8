package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

// Database & Storage Specific Errors
var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
)

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	message := fmt.Sprintf("Failed to %s %s", operation, entity)

	// Check for common database errors and provide more specific messages
	if cause != nil {
		switch {
		case errors.Is(cause, ErrNotFound):
			return &ApiErr{
				StatusCode: http.StatusNotFound,
				Code:       CodeNotFound,
				err:        fmt.Errorf("%s not found", entity),
				kind:       ErrNotFound,
				Cause:      cause,
			}
		case errors.Is(cause, ErrForeignKeyConstraint):
			return &ApiErr{
				StatusCode: http.StatusBadRequest,
				Code:       CodeValidation,
				err:        fmt.Errorf("invalid reference in %s", entity),
				kind:       ErrForeignKeyConstraint,
				Cause:      cause,
			}
		case strings.Contains(cause.Error(), "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				Code:       CodeServerError,
				err:        errors.New("Unable to connect to database"),
				kind:       ErrDatabaseConnection,
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeServerError,
		err:        errors.New(message),
		kind:       ErrDatabaseQuery,
		Cause:      cause,
	}
}

// IsDuplicateKey recognises unique index rejections from either dialect,
// whether or not the driver error was translated.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUniqueConstraintViolation) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicated key")
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsForeignKeyConstraintError(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}
