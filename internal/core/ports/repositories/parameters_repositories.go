package repositories

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// ParametersReader reads the current system parameters.
type ParametersReader interface {
	// FindCurrentParameters returns apperrors.ErrNotFound when never configured.
	FindCurrentParameters(ctx context.Context) (*domain.SystemParameters, error)
}

// ParametersWriter replaces the current system parameters.
type ParametersWriter interface {
	SaveParameters(ctx context.Context, params domain.SystemParameters) error
}

// ParametersRepositoryFacade combines parameter read and write operations.
type ParametersRepositoryFacade interface {
	ParametersReader
	ParametersWriter
}
