package services

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
)

// ParametersSvcFacade reads and maintains the system parameters.
type ParametersSvcFacade interface {
	ParametersProvider

	// UpdateParameters replaces the parameters. Only administrators may do so.
	UpdateParameters(ctx context.Context, req dto.UpdateParametersRequest, actorID string) (*domain.SystemParameters, error)
}
