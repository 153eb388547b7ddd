package services

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
)

// CalculationSvc computes per-diem and displacement figures.
type CalculationSvc interface {
	// Preview validates the inputs and computes figures without persisting anything.
	// An unavailable distance is reported in the response instead of failing.
	Preview(ctx context.Context, req dto.PreviewCalculationRequest) (*dto.PreviewCalculationResponse, error)

	// CalculateForRequest runs the calculation pass whose totals are stored on a request.
	// When strict is set it fails with apperrors.ErrDisplacementUnavailable if an
	// own-vehicle trip has no distance, unless the zero fallback policy is enabled.
	// Non-strict passes, used for drafts, mark the displacement as missing instead.
	CalculateForRequest(ctx context.Context, req domain.Request, strict bool) (*domain.CalculationResult, error)

	// Config returns the reference data used by calculations.
	Config(ctx context.Context) (*dto.ConfigResponse, error)
}
