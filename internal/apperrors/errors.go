package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfiguration indicates that a required system parameter is missing or invalid.
var ErrConfiguration = errors.New("configuration error")

// ErrDisplacementUnavailable indicates that the road distance for a destination could not be obtained.
// It is never equivalent to a zero distance.
var ErrDisplacementUnavailable = errors.New("displacement unavailable")

// ErrRouteNotFound indicates the distance provider found no route to the destination.
var ErrRouteNotFound = errors.New("route not found")

// ErrProviderUnavailable indicates the distance provider could not be reached or failed.
var ErrProviderUnavailable = errors.New("distance provider unavailable")

// ErrInvalidTransition indicates the destination status is not reachable from the current one.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnauthorized indicates that the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the actor holds no role allowed to perform the action.
var ErrForbidden = errors.New("action not permitted for actor")

// ErrConflict indicates the resource was changed concurrently by someone else.
var ErrConflict = errors.New("resource modified concurrently")

// ErrStorage indicates a failure inside an atomic unit of work. The whole unit was rolled back.
var ErrStorage = errors.New("storage failure")

// AppError carries an HTTP-ish code and a user-facing message on top of a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity string) *AppError {
	return NewAppError(http.StatusNotFound, fmt.Sprintf("%s not found", entity), ErrNotFound)
}

// NewValidationFailedError reports invalid input with a reason the caller can act on.
func NewValidationFailedError(reason string) *AppError {
	return NewAppError(http.StatusBadRequest, reason, ErrValidation)
}

// NewConflictError reports a concurrent modification.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

// NewConfigurationError reports a missing or non-positive system parameter.
func NewConfigurationError(parameter string) *AppError {
	return NewAppError(http.StatusInternalServerError, fmt.Sprintf("system parameter %s is not configured", parameter), ErrConfiguration)
}

// NewStorageError wraps a database failure that aborted a unit of work.
func NewStorageError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, errors.Join(ErrStorage, err))
}

// NewDisplacementUnavailableError wraps the distance provider failure cause.
func NewDisplacementUnavailableError(cause error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, "road distance to destination is unavailable", errors.Join(ErrDisplacementUnavailable, cause))
}
