package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Authentication & Authorization Errors
var (
	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
	ErrUnknownUser  = errors.New("token subject not found")
	ErrNotOwner     = errors.New("not resource owner")
)

// Authentication & Authorization Error Constructors
func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeNotAuthorized,
		err:        errors.New("Not authorized, no token"),
		kind:       ErrMissingToken,
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeNotAuthorized,
		err:        errors.New("Not authorized, token failed"),
		kind:       ErrInvalidToken,
		Field:      "authorization",
	}
}

func NewUnknownUserError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeNotAuthorized,
		err:        errors.New("Not authorized, user not found"),
		kind:       ErrUnknownUser,
		Field:      "authorization",
	}
}

// NewNotOwnerError reports a change to a post or comment by someone other than its author. Status is 401.
func NewNotOwnerError(userID, action, resource string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeNotAuthorized,
		err:        fmt.Errorf("User %s is not authorized to %s this %s", userID, action, resource),
		kind:       ErrNotOwner,
	}
}

// Authentication & Authorization Error Type Checkers
func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsNotOwnerError(err error) bool {
	return errors.Is(err, ErrNotOwner)
}
