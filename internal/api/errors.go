package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/bpcalc/internal/api/middleware"
	"github.com/phrazzld/bpcalc/internal/api/shared"
	"github.com/phrazzld/bpcalc/internal/domain"
	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/platform/logger"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, bloodpressure.ErrInvalidRelationship),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrOutOfRange):
		return http.StatusBadRequest

	case errors.Is(err, middleware.ErrRateLimited):
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, bloodpressure.ErrInvalidRelationship):
		return "Systolic pressure must be greater than diastolic pressure"

	case errors.As(err, &validationErr) && validationErr.Field != "":
		return fieldMessage(validationErr.Field, validationErr.Message)

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, middleware.ErrRateLimited):
		return "Too many requests, please try again later"

	default:
		return "An unexpected error occurred"
	}
}

// fieldMessage renders "systolic", "must be ..." as "Systolic must be ...".
func fieldMessage(field, message string) string {
	if field == "" {
		return message
	}
	return strings.ToUpper(field[:1]) + field[1:] + " " + message
}

// SanitizeValidationError turns validator errors into a user-friendly message
// naming the first offending field without exposing struct names.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag(), fe.Param()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "must be at least " + param
	case "max", "lte":
		return "must be at most " + param
	default:
		return "validation failed"
	}
}

// HandleAPIError writes a JSON error response for err. The status code and
// message come from MapErrorToStatusCode and GetSafeErrorMessage unless
// defaultMsg is set and the error is not a known client error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	log.Debug("handling API error", "status_code", status, "safe_message", message)

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
