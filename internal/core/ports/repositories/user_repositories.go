package repositories

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID, roles included.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// FindUsersByRole retrieves every user holding role.
	FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user together with its roles.
	SaveUser(ctx context.Context, user domain.User) error

	// SetUserRoles replaces the roles assigned to a user.
	SetUserRoles(ctx context.Context, userID string, roles []domain.Role, updatedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
