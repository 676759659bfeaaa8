package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine readable codes carried in every error envelope.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUserExists         = "USER_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotAuthorized      = "NOT_AUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeServerError        = "SERVER_ERROR"
	CodeCORSBlocked        = "CORS_BLOCKED"
)

// Common error sentinel values
var (
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
	ErrConflict     = errors.New("resource conflict")
	ErrCORSBlocked  = errors.New("request blocked by CORS policy")
)

// Request & Input-Validation Errors
var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrInvalidField     = errors.New("invalid field")
)

type ApiErr struct {
	StatusCode int
	Code       string
	err        error
	kind       error             // Sentinel the error unwraps to
	Field      string            // Field that caused the error
	Fields     map[string]string // Per-field messages for validation errors
	Cause      error             // The underlying cause of the error
}

func NewApiErr(statusCode int, code, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		Code:       code,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		var apiErr *ApiErr
		if errors.As(e.Cause, &apiErr) {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., kind: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	if e.kind != nil {
		return e.kind
	}
	return e.err
}

// WithField tags the error with the request field it relates to.
func (e *ApiErr) WithField(field string) *ApiErr {
	e.Field = field
	return e
}

// Common error constructors with appropriate HTTP status codes
func NewNotFoundError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, Code: CodeNotFound, err: errors.New(message), kind: ErrNotFound}
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, Code: CodeValidation, err: errors.New(message), kind: ErrBadRequest}
}

// NewUnauthorizedError is used both for missing credentials and for
// callers that do not own the resource they try to change.
func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusUnauthorized, Code: CodeNotAuthorized, err: errors.New(message), kind: ErrUnauthorized}
}

func NewInternalError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, Code: CodeServerError, err: errors.New(message), kind: ErrInternal}
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeServerError,
		err:        errors.New(message),
		Cause:      cause,
	}
}

// NewUserExistsError reports a username or email collision on signup or profile change.
func NewUserExistsError(field string) *ApiErr {
	message := "Username already exists"
	if field == "email" {
		message = "Email already exists"
	}
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Code:       CodeUserExists,
		err:        errors.New(message),
		kind:       ErrConflict,
		Field:      field,
	}
}

// NewInvalidCredentialsError keeps the same status and message for every
// failed login, only the field hint differs.
func NewInvalidCredentialsError(field string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidCredentials,
		err:        errors.New("Invalid email or password"),
		kind:       ErrUnauthorized,
		Field:      field,
	}
}

func NewCORSError(origin string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		Code:       CodeCORSBlocked,
		err:        fmt.Errorf("origin '%s' is not allowed", origin),
		kind:       ErrCORSBlocked,
	}
}

// Request & Input-Validation Error Constructors
func NewMalformedPayloadError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		err:        errors.New("Malformed request body"),
		kind:       ErrMalformedPayload,
		Cause:      cause,
		Field:      "payload",
	}
}

// NewValidationError carries one message per offending field.
func NewValidationError(fields map[string]string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Code:       CodeValidation,
		err:        errors.New("Validation failed"),
		kind:       ErrInvalidField,
		Fields:     fields,
	}
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}
