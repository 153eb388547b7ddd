package services

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Roles portssvc.RoleLookup
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LookupActor resolves actorID through the configured RoleLookup.
// An unknown actor is reported as unauthorized.
func (s *BaseService) LookupActor(ctx context.Context, actorID string) (*domain.Actor, error) {
	if s.Roles == nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "role lookup not configured", apperrors.ErrConfiguration)
	}
	actor, err := s.Roles.LookupActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return actor, nil
}

// RequireAdministrator fails with ErrForbidden unless actorID is staff or holds the admin role.
func (s *BaseService) RequireAdministrator(ctx context.Context, actorID string) (*domain.Actor, error) {
	actor, err := s.LookupActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdministrator(*actor) {
		s.LogDebug(ctx, "Administrator action refused", slog.String("actor_id", actorID))
		return nil, apperrors.NewAppError(http.StatusForbidden, "only administrators can perform this action", apperrors.ErrForbidden)
	}
	return actor, nil
}

func isAdministrator(actor domain.Actor) bool {
	return actor.IsStaff || hasRole(actor, domain.RoleAdmin)
}

func hasRole(actor domain.Actor, role domain.Role) bool {
	for _, r := range actor.Roles {
		if r == role {
			return true
		}
	}
	return false
}
