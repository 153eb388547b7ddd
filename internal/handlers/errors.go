package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrDisplacementUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrConfiguration):
		return http.StatusServiceUnavailable
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code != http.StatusInternalServerError {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON. Client errors carry the service message,
// everything else is logged and answered with fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	message := fallback

	var appErr *apperrors.AppError
	switch {
	case status == http.StatusInternalServerError:
		logger.Error(fallback, slog.String("error", err.Error()))
	case errors.As(err, &appErr):
		message = appErr.Message
		logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	default:
		message = err.Error()
		logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	}

	c.JSON(status, gin.H{"error": message})
}

// respondBindError answers a failed ShouldBind call with the offending fields.
func respondBindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, ve := range validationErrors {
			fields[ve.Field()] = ve.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what, "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + ": " + err.Error()})
}
