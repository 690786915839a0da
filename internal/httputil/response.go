// Package httputil maps ZedID errors to HTTP responses and parses common query parameters.
package httputil

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sundacoder/ZedID/internal/errors"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HandleErrorGin maps err to a status code and writes it as an ErrorResponse.
// Errors wrapping apperrors.ErrInternal carry a message meant for callers and
// are surfaced; anything else unrecognized becomes a generic 500.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var response ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		response = ErrorResponse{Error: reason(err, apperrors.ErrNotFound), Code: "not_found"}
	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		response = ErrorResponse{Error: reason(err, apperrors.ErrConflict), Code: "conflict"}
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		response = ErrorResponse{Error: reason(err, apperrors.ErrInvalidInput), Code: "invalid_input"}
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		response = ErrorResponse{Error: reason(err, apperrors.ErrUnauthorized), Code: "unauthorized"}
	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		response = ErrorResponse{Error: reason(err, apperrors.ErrForbidden), Code: "forbidden"}
	case apperrors.Is(err, apperrors.ErrInternal):
		statusCode = http.StatusInternalServerError
		response = ErrorResponse{Error: reason(err, apperrors.ErrInternal), Code: "internal_error"}
	default:
		statusCode = http.StatusInternalServerError
		response = ErrorResponse{Error: "an internal error occurred", Code: "internal_error"}
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", response.Code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}

// reason drops the generic sentinel text from err's message, so clients see
// "identity not found" rather than "identity not found: not found".
func reason(err, sentinel error) string {
	return strings.Replace(err.Error(), ": "+sentinel.Error(), "", 1)
}

// HandleBadRequestGin writes a 400 for malformed JSON, ids or query parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "bad_request"})
}

// HandleValidationErrorGin writes a 400 for request bodies that fail validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "validation_error"})
}
