package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/todolist-api/internal/api/shared"
	"github.com/phrazzld/todolist-api/internal/domain"
)

// MapErrorToStatusCode maps service errors to HTTP status codes by their
// domain category. Anything uncategorized is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err.
// Domain errors describe caller mistakes and are returned as is; anything
// else is replaced with a generic message.
func GetSafeErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError
	var invalid *domain.ValidationError

	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.As(err, &notFound):
		return notFound.Error()
	case errors.As(err, &conflict):
		return "Update conflict: " + conflict.Error()
	case errors.As(err, &invalid):
		return invalid.Error()
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns request validation failures into a short
// message naming the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "datetime":
		return "expected YYYY-MM-DD"
	case "gt":
		return "must be positive"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. defaultMsg replaces the
// generic message of a 500 when it is not empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusConflict {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// HandleValidationError writes a 400 for a request body that failed
// decoding or struct validation.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	message := SanitizeValidationError(err)
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		var invalid *domain.ValidationError
		if errors.As(err, &invalid) {
			message = invalid.Error()
		} else {
			message = "Invalid request body: " + err.Error()
		}
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err)
}
