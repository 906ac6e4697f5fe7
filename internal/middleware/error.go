package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"inventory-api/internal/domain"

	"go.uber.org/zap"
)

// StatusClientClosedRequest is reported when the caller went away before the
// request finished.
const StatusClientClosedRequest = 499

const internalErrorMessage = "An error occurred while processing your request."

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithSuccess wraps data in a successful envelope
func RespondWithSuccess(w http.ResponseWriter, statusCode int, data any, message string) {
	RespondWithJSON(w, statusCode, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// RespondWithError sends a failed envelope carrying message
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithErrors(w, statusCode, message, nil)
}

// RespondWithErrors sends a failed envelope with sub-errors
func RespondWithErrors(w http.ResponseWriter, statusCode int, message string, errs []string) {
	RespondWithJSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// RespondWithValidationErrors sends validation error response
func RespondWithValidationErrors(w http.ResponseWriter, validationErrors []ValidationError) {
	errs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, e.Field+": "+e.Message)
	}
	RespondWithErrors(w, http.StatusBadRequest, "Validation failed", errs)
}

// StatusForError maps an error returned by the service layer to an HTTP status.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrBusinessRule):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithServiceError classifies err and writes the matching envelope.
// Unclassified errors are logged and replaced by an opaque message.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	status := StatusForError(err)

	switch status {
	case http.StatusInternalServerError:
		logger.Error("Request failed",
			zap.String("correlation_id", GetCorrelationID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		RespondWithError(w, status, internalErrorMessage)
	case http.StatusGatewayTimeout:
		logger.Warn("Request timed out",
			zap.String("correlation_id", GetCorrelationID(r.Context())),
			zap.String("path", r.URL.Path),
		)
		RespondWithError(w, status, "The request timed out.")
	case StatusClientClosedRequest:
		RespondWithError(w, status, "The request was cancelled.")
	default:
		RespondWithError(w, status, err.Error())
	}
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("correlation_id", GetCorrelationID(r.Context())),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, internalErrorMessage)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
