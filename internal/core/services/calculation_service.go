package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/SscSPs/travel_allowance_app/internal/utils/reimbursement"
	"github.com/shopspring/decimal"
)

// holidayLookback bounds the calendar read around a departure date. It covers
// the longest business-day deadline plus any run of holidays.
const holidayLookback = 60 * 24 * time.Hour

type calculationService struct {
	BaseService
	params       portssvc.ParametersProvider
	distance     portssvc.DistanceProvider
	holidays     portsrepo.HolidayRepositoryFacade
	origin       string
	location     *time.Location
	fallbackZero bool
	deadline     reimbursement.DeadlinePolicy
	now          func() time.Time
}

// CalculationOption is a functional option for configuring the calculation service
type CalculationOption func(*calculationService)

// WithDistanceOrigin sets the address road distances are measured from.
func WithDistanceOrigin(origin string) CalculationOption {
	return func(s *calculationService) {
		s.origin = origin
	}
}

// WithCalculationLocation sets the zone calendar days are counted in.
func WithCalculationLocation(loc *time.Location) CalculationOption {
	return func(s *calculationService) {
		if loc != nil {
			s.location = loc
			s.deadline.Location = loc
		}
	}
}

// WithDisplacementFallbackZero lets submissions go through with a zero
// displacement when the distance provider fails.
func WithDisplacementFallbackZero(enabled bool) CalculationOption {
	return func(s *calculationService) {
		s.fallbackZero = enabled
	}
}

// WithDeadlinePolicy overrides the submission deadline policy.
func WithDeadlinePolicy(policy reimbursement.DeadlinePolicy) CalculationOption {
	return func(s *calculationService) {
		s.deadline = policy
		if policy.Location != nil {
			s.location = policy.Location
		}
	}
}

// WithCalculationClock replaces time.Now.
func WithCalculationClock(now func() time.Time) CalculationOption {
	return func(s *calculationService) {
		s.now = now
	}
}

// NewCalculationService creates a calculation service over the given providers.
func NewCalculationService(
	params portssvc.ParametersProvider,
	distance portssvc.DistanceProvider,
	holidays portsrepo.HolidayRepositoryFacade,
	options ...CalculationOption,
) portssvc.CalculationSvc {
	s := &calculationService{
		params:   params,
		distance: distance,
		holidays: holidays,
		location: time.UTC,
		deadline: reimbursement.DefaultDeadlinePolicy(time.UTC),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Preview computes the figures of an unsaved trip.
func (s *calculationService) Preview(ctx context.Context, req dto.PreviewCalculationRequest) (*dto.PreviewCalculationResponse, error) {
	if !req.ReturnAt.After(req.DepartureAt) {
		return nil, apperrors.NewValidationFailedError("returnAt must be after departureAt")
	}
	var region *domain.Region
	if req.Region != nil {
		r := domain.Region(*req.Region)
		region = &r
	}
	transport := domain.TransportMode(req.TransportMode)

	params, err := s.unitValueParameters(ctx)
	if err != nil {
		return nil, err
	}

	allowance := reimbursement.ComputeAllowance(reimbursement.AllowanceInput{
		Destination:    req.Destination,
		DepartureAt:    &req.DepartureAt,
		ReturnAt:       &req.ReturnAt,
		ExplicitCounts: req.Counts.ToDomain(),
		ExplicitRegion: region,
		UnitValue:      params.UnitValue,
		Location:       s.location,
	})

	resp := &dto.PreviewCalculationResponse{
		Allowance:     allowance,
		TotalToCommit: allowance.Total,
	}

	displacement, err := s.displacement(ctx, req.Destination, params, transport == "" || transport == domain.TransportOwnVehicle)
	switch {
	case err == nil:
		resp.Displacement = displacement
		resp.DisplacementAvailable = true
		resp.TotalToCommit = allowance.Total.Add(displacement.Indemnity).Round(2)
	case errors.Is(err, apperrors.ErrDisplacementUnavailable):
		resp.DisplacementError = displacementMessage(err)
	default:
		return nil, err
	}

	holidays, err := s.holidaysBefore(ctx, req.DepartureAt)
	if err != nil {
		return nil, err
	}
	deadline := s.deadline.SubmissionDeadline(req.DepartureAt, req.InvolvesAirTickets, holidays)
	resp.SubmissionDeadline = deadline.Format(time.DateOnly)
	resp.Late = s.deadline.IsLate(s.now(), req.DepartureAt, req.InvolvesAirTickets, holidays)

	return resp, nil
}

// CalculateForRequest computes the figures stored on req.
func (s *calculationService) CalculateForRequest(ctx context.Context, req domain.Request, strict bool) (*domain.CalculationResult, error) {
	params, err := s.unitValueParameters(ctx)
	if err != nil {
		return nil, err
	}

	allowance := reimbursement.ComputeAllowance(reimbursement.AllowanceInput{
		Destination:    req.Destination,
		DepartureAt:    &req.DepartureAt,
		ReturnAt:       &req.ReturnAt,
		ExplicitCounts: req.ExplicitCounts,
		ExplicitRegion: req.ExplicitRegion,
		UnitValue:      params.UnitValue,
		Location:       s.location,
	})

	result := &domain.CalculationResult{
		Allowance:     allowance,
		TotalToCommit: allowance.Total,
	}

	displacement, err := s.displacement(ctx, req.Destination, params, req.UsesOwnVehicle())
	if err != nil {
		if !errors.Is(err, apperrors.ErrDisplacementUnavailable) {
			return nil, err
		}
		// Only an own-vehicle trip owes money for the distance.
		if strict && req.UsesOwnVehicle() && !s.fallbackZero {
			s.LogError(ctx, err, "Road distance unavailable for submission",
				slog.Int64("request_id", req.RequestID),
				slog.String("destination", req.Destination))
			return nil, err
		}
		result.DisplacementError = displacementMessage(err)
		return result, nil
	}

	result.Displacement = displacement
	result.DisplacementAvailable = true
	result.TotalToCommit = allowance.Total.Add(displacement.Indemnity).Round(2)
	return result, nil
}

// Config returns rate tables, city lists and the current unit value if set.
func (s *calculationService) Config(ctx context.Context) (*dto.ConfigResponse, error) {
	resp := &dto.ConfigResponse{
		CapitalCities:  reimbursement.CapitalCities,
		GroupOneCities: reimbursement.GroupOneCities,
		RateTables:     reimbursement.RateTables,
	}

	params, err := s.params.GetCurrentParameters(ctx)
	switch {
	case err == nil:
		if params.HasUnitValue() {
			unit := params.UnitValue
			resp.UnitValue = &unit
		}
	case errors.Is(err, apperrors.ErrConfiguration), errors.Is(err, apperrors.ErrNotFound):
	default:
		return nil, err
	}
	return resp, nil
}

func (s *calculationService) unitValueParameters(ctx context.Context) (*domain.SystemParameters, error) {
	params, err := s.params.GetCurrentParameters(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewConfigurationError("unitValue")
		}
		return nil, err
	}
	if !params.HasUnitValue() {
		return nil, apperrors.NewConfigurationError("unitValue")
	}
	return params, nil
}

// displacement prices the round trip to destination. A failed lookup is
// returned as ErrDisplacementUnavailable, never as a zero distance.
// Only own-vehicle trips need the fuel price.
func (s *calculationService) displacement(ctx context.Context, destination string, params *domain.SystemParameters, ownVehicle bool) (*domain.DisplacementResult, error) {
	if ownVehicle && !params.HasFuelPrice() {
		return nil, apperrors.NewConfigurationError("averageFuelPrice")
	}
	if s.distance == nil {
		return nil, apperrors.NewDisplacementUnavailableError(apperrors.ErrProviderUnavailable)
	}

	oneWay, err := s.distance.GetOneWayRoadDistanceKm(ctx, s.origin, destination)
	if err != nil {
		s.LogDebug(ctx, "Distance lookup failed",
			slog.String("destination", destination),
			slog.String("error", err.Error()))
		return nil, apperrors.NewDisplacementUnavailableError(err)
	}

	roundTrip := reimbursement.RoundTrip(oneWay)
	if !ownVehicle {
		result := reimbursement.ZeroIndemnity(domain.DisplacementResult{
			Destination: destination,
			RoundTripKm: roundTrip.Round(1),
			FuelPrice:   params.AverageFuelPrice,
		})
		return &result, nil
	}

	result, err := reimbursement.ComputeDisplacement(destination, params.AverageFuelPrice, roundTrip)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *calculationService) holidaysBefore(ctx context.Context, departure time.Time) ([]domain.Holiday, error) {
	if s.holidays == nil {
		return nil, nil
	}
	holidays, err := s.holidays.ListHolidays(ctx, departure.Add(-holidayLookback), departure)
	if err != nil {
		s.LogError(ctx, err, "Failed to load holidays", slog.Time("departure", departure))
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to load holidays", err)
	}
	return holidays, nil
}

func displacementMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrRouteNotFound):
		return "no road route found to the destination"
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		return "distance service is unavailable"
	}
	return "road distance is unavailable"
}

// totalsFrom converts a calculation into the figures persisted on a request.
func totalsFrom(calc *domain.CalculationResult, registrationFee decimal.Decimal) domain.RequestTotals {
	distance, indemnity, fuelPrice := decimal.Zero, decimal.Zero, decimal.Zero
	if calc.Displacement != nil {
		distance = calc.Displacement.RoundTripKm
		indemnity = calc.Displacement.Indemnity
		fuelPrice = calc.Displacement.FuelPrice
	}
	totals := domain.NewRequestTotals(distance, calc.Allowance.Total, indemnity, registrationFee)
	totals.DisplacementMissing = !calc.DisplacementAvailable
	totals.UnitValue = calc.Allowance.UnitValue
	totals.FuelPrice = fuelPrice
	return totals
}

var _ portssvc.CalculationSvc = (*calculationService)(nil)
