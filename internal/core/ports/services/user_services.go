package services

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// ListUsersByRole retrieves users holding role.
	ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a user with the default role.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error)

	// SetUserRoles replaces the roles of userID.
	SetUserRoles(ctx context.Context, userID string, req dto.UpdateUserRolesRequest, actorID string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	RoleLookup

	// RequireAdministrator fails with apperrors.ErrForbidden unless actorID is staff or holds the admin role.
	RequireAdministrator(ctx context.Context, actorID string) (*domain.Actor, error)
}
