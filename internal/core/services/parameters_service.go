package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
)

// ParametersService reads system parameters through an optional cache and
// lets administrators replace them.
type ParametersService struct {
	BaseService
	repo  portsrepo.ParametersRepositoryFacade
	cache portssvc.ParametersCache
	now   func() time.Time
}

// NewParametersService creates a ParametersService. cache may be nil.
func NewParametersService(repo portsrepo.ParametersRepositoryFacade, cache portssvc.ParametersCache, roles portssvc.RoleLookup) *ParametersService {
	return &ParametersService{
		BaseService: BaseService{Roles: roles},
		repo:        repo,
		cache:       cache,
		now:         time.Now,
	}
}

// GetCurrentParameters returns the cached snapshot or the stored one.
// Parameters that were never set are a configuration error.
func (s *ParametersService) GetCurrentParameters(ctx context.Context) (*domain.SystemParameters, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to read parameters cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	params, err := s.repo.FindCurrentParameters(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewConfigurationError("unitValue")
		}
		s.LogError(ctx, err, "Failed to load system parameters")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, *params); err != nil {
			s.LogError(ctx, err, "Failed to fill parameters cache")
		}
	}
	return params, nil
}

// UpdateParameters replaces both parameters. Both must be positive.
func (s *ParametersService) UpdateParameters(ctx context.Context, req dto.UpdateParametersRequest, actorID string) (*domain.SystemParameters, error) {
	if _, err := s.RequireAdministrator(ctx, actorID); err != nil {
		return nil, err
	}
	if !req.UnitValue.IsPositive() {
		return nil, apperrors.NewValidationFailedError("unitValue must be positive")
	}
	if !req.AverageFuelPrice.IsPositive() {
		return nil, apperrors.NewValidationFailedError("averageFuelPrice must be positive")
	}

	params := domain.SystemParameters{
		UnitValue:        req.UnitValue.Round(2),
		AverageFuelPrice: req.AverageFuelPrice.Round(2),
		UpdatedAt:        s.now(),
		UpdatedBy:        actorID,
	}
	if err := s.repo.SaveParameters(ctx, params); err != nil {
		s.LogError(ctx, err, "Failed to save system parameters", slog.String("actor_id", actorID))
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.LogError(ctx, err, "Failed to invalidate parameters cache")
		}
	}

	s.LogInfo(ctx, "System parameters updated",
		slog.String("actor_id", actorID),
		slog.String("unit_value", params.UnitValue.String()),
		slog.String("average_fuel_price", params.AverageFuelPrice.String()))
	return &params, nil
}

var _ portssvc.ParametersSvcFacade = (*ParametersService)(nil)
