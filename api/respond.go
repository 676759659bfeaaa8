package api

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/rpupo63/blog-auth-backend/auth"
	"github.com/rpupo63/blog-auth-backend/errs"
	"github.com/rs/zerolog"
)

// maxResponseSize caps a single JSON response body
const maxResponseSize = 10 * 1024 * 1024

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		status = http.StatusInternalServerError
		jsonData, _ = json.Marshal(ErrorResponse{
			Status:  "error",
			Code:    errs.CodeServerError,
			Message: "Response too large",
			Error:   "Response too large",
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError converts err into the error envelope. Domain errors keep their
// status; anything unrecognised becomes a 500.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	apiErr := toApiErr(err)

	response := ErrorResponse{
		Success: false,
		Status:  "error",
		Code:    apiErr.Code,
		Message: apiErr.Error(),
		Error:   apiErr.Error(),
	}

	details := ErrorDetails{Field: apiErr.Field, Fields: apiErr.Fields}
	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Err(err).Str("cause", apiErr.GetFullError()).Msg("request failed")
		if apiErr.Cause != nil {
			details.Error = apiErr.Cause.Error()
		}
	}
	if details.Field != "" || len(details.Fields) > 0 || details.Error != "" {
		response.Details = &details
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// toApiErr maps domain errors onto the HTTP taxonomy.
func toApiErr(err error) *errs.ApiErr {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var conflict *auth.ConflictError
	if errors.As(err, &conflict) {
		apiErr := errs.NewUserExistsError(conflict.Field)
		apiErr.Cause = conflict.Cause
		return apiErr
	}

	var credErr *auth.CredentialsError
	if errors.As(err, &credErr) {
		return errs.NewInvalidCredentialsError(credErr.Field)
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		var field string
		for name, fieldErr := range verrs {
			if fieldErr == nil {
				continue
			}
			fields[name] = fieldErr.Error()
			field = name
		}
		apiErr := errs.NewValidationError(fields)
		if len(fields) == 1 {
			apiErr.Field = field
		}
		return apiErr
	}

	switch {
	case errs.IsInvalidTokenError(err):
		return errs.NewInvalidTokenError()
	case errs.IsNotOwnerError(err):
		return errs.NewUnauthorizedError("Not authorized")
	case errs.IsNotFound(err):
		return errs.NewNotFoundError("Resource not found")
	case errs.IsUniqueConstraintViolationError(err):
		return errs.NewApiErr(http.StatusBadRequest, errs.CodeValidation, "Duplicate field value entered")
	}

	return errs.NewInternalErrorWithCause("Server Error", err)
}

// orInternal keeps classified errors and turns anything else into a 500
// carrying message.
func orInternal(err error, message string) error {
	if apiErr := toApiErr(err); apiErr.Code != errs.CodeServerError {
		return apiErr
	}
	return errs.NewInternalErrorWithCause(message, err)
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
