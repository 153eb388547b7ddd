package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/google/uuid"
)

// UserService manages users and their roles.
type UserService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates a UserService. It is its own role lookup.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	s := &UserService{userRepo: userRepo, now: time.Now}
	s.Roles = s
	return s
}

// LookupActor resolves actorID into an Actor. Unknown users are unauthorized.
func (s *UserService) LookupActor(ctx context.Context, actorID string) (*domain.Actor, error) {
	user, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusUnauthorized, "unknown user", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up actor", slog.String("actor_id", actorID))
		return nil, err
	}
	actor := domain.ActorFromUser(*user)
	return &actor, nil
}

// GetUserByID returns a user with its roles.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns a page of users ordered by name.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

// ListUsersByRole returns every user holding role.
func (s *UserService) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown role " + string(role))
	}
	users, err := s.userRepo.FindUsersByRole(ctx, role)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users by role", slog.String("role", string(role)))
		return nil, err
	}
	return users, nil
}

// CreateUser registers a user with the default role. Only administrators may do so.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error) {
	if _, err := s.RequireAdministrator(ctx, actorID); err != nil {
		return nil, err
	}
	user := s.newUser(req.UserID, req.Name, req.Email, req.IsStaff, actorID)
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create user", slog.String("email", user.Email))
		}
		return nil, err
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("actor_id", actorID))
	return &user, nil
}

// SetUserRoles replaces the roles of userID. Only administrators may do so.
func (s *UserService) SetUserRoles(ctx context.Context, userID string, req dto.UpdateUserRolesRequest, actorID string) (*domain.User, error) {
	if _, err := s.RequireAdministrator(ctx, actorID); err != nil {
		return nil, err
	}
	roles := req.ToDomainRoles()
	for _, r := range roles {
		if !r.IsValid() {
			return nil, apperrors.NewValidationFailedError("unknown role " + string(r))
		}
	}
	if err := s.userRepo.SetUserRoles(ctx, userID, roles, actorID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to set user roles", slog.String("user_id", userID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "User roles replaced", slog.String("user_id", userID), slog.Any("roles", roles))
	return s.userRepo.FindUserByID(ctx, userID)
}

// EnsureAdministrator creates a staff administrator with userID unless it already exists.
// It runs at startup so that a fresh installation has someone able to register users.
func (s *UserService) EnsureAdministrator(ctx context.Context, userID, name, email string) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := s.newUser(userID, name, email, true, userID)
	user.Roles = append(user.Roles, domain.RoleAdmin)
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Bootstrap administrator created", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *UserService) newUser(userID, name, email string, isStaff bool, createdBy string) domain.User {
	if userID == "" {
		userID = uuid.NewString()
	}
	now := s.now()
	return domain.User{
		UserID:  userID,
		Name:    strings.TrimSpace(name),
		Email:   strings.ToLower(strings.TrimSpace(email)),
		IsStaff: isStaff,
		Roles:   []domain.Role{domain.DefaultRole},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)
