package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/core/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testOrigin = "Câmara Municipal de Itapoá, SC"

type CalculationServiceTestSuite struct {
	suite.Suite
	params   *MockParametersProvider
	distance *MockDistanceProvider
	holidays *MockHolidayRepository
	now      time.Time
	service  portssvc.CalculationSvc
}

func (suite *CalculationServiceTestSuite) SetupTest() {
	suite.params = new(MockParametersProvider)
	suite.distance = new(MockDistanceProvider)
	suite.holidays = new(MockHolidayRepository)
	suite.now = time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	suite.service = suite.newService()
}

func (suite *CalculationServiceTestSuite) newService(options ...services.CalculationOption) portssvc.CalculationSvc {
	base := []services.CalculationOption{
		services.WithDistanceOrigin(testOrigin),
		services.WithCalculationLocation(time.UTC),
		services.WithCalculationClock(func() time.Time { return suite.now }),
	}
	return services.NewCalculationService(suite.params, suite.distance, suite.holidays, append(base, options...)...)
}

func (suite *CalculationServiceTestSuite) previewRequest(transport string) dto.PreviewCalculationRequest {
	return dto.PreviewCalculationRequest{
		Destination:   "Curitiba",
		DepartureAt:   time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC),
		ReturnAt:      time.Date(2025, 3, 19, 18, 0, 0, 0, time.UTC),
		TransportMode: transport,
	}
}

func (suite *CalculationServiceTestSuite) ownVehicleRequest() domain.Request {
	plate := "ABC1D23"
	return domain.Request{
		RequestID:    7,
		Destination:  "Curitiba",
		DepartureAt:  time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC),
		ReturnAt:     time.Date(2025, 3, 19, 18, 0, 0, 0, time.UTC),
		Transport:    domain.TransportOwnVehicle,
		VehiclePlate: &plate,
		Status:       domain.StatusDraft,
	}
}

func (suite *CalculationServiceTestSuite) expectHolidays() {
	suite.holidays.On("ListHolidays", mock.Anything, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.Holiday{}, nil).Once()
}

func (suite *CalculationServiceTestSuite) assertDecimal(want string, got decimal.Decimal) {
	suite.True(dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// --- Preview Tests ---

func (suite *CalculationServiceTestSuite) TestPreview_OwnVehicle() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(dec("120"), nil).Once()
	suite.expectHolidays()

	resp, err := suite.service.Preview(ctx, suite.previewRequest("OWN_VEHICLE"))

	suite.Require().NoError(err)
	suite.Equal(domain.RegionLocal, resp.Allowance.Region)
	suite.assertDecimal("8640.00", resp.Allowance.Total)
	suite.Require().True(resp.DisplacementAvailable)
	suite.assertDecimal("240", resp.Displacement.RoundTripKm)
	suite.assertDecimal("144.00", resp.Displacement.Indemnity)
	suite.assertDecimal("8784.00", resp.TotalToCommit)
	suite.Equal("2025-03-10", resp.SubmissionDeadline)
	suite.False(resp.Late)
	suite.params.AssertExpectations(suite.T())
	suite.distance.AssertExpectations(suite.T())
}

func (suite *CalculationServiceTestSuite) TestPreview_OtherTransportZeroesIndemnity() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(dec("120"), nil).Once()
	suite.expectHolidays()

	resp, err := suite.service.Preview(ctx, suite.previewRequest("BUS"))

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.Displacement)
	suite.True(resp.Displacement.IndemnityZeroed)
	suite.True(resp.Displacement.Indemnity.IsZero())
	suite.assertDecimal("240", resp.Displacement.RoundTripKm)
	suite.assertDecimal("8640.00", resp.TotalToCommit)
}

func (suite *CalculationServiceTestSuite) TestPreview_DistanceUnavailableIsReported() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(decimal.Zero, apperrors.ErrProviderUnavailable).Once()
	suite.expectHolidays()

	resp, err := suite.service.Preview(ctx, suite.previewRequest("OWN_VEHICLE"))

	suite.Require().NoError(err)
	suite.False(resp.DisplacementAvailable)
	suite.Nil(resp.Displacement)
	suite.Equal("distance service is unavailable", resp.DisplacementError)
	suite.assertDecimal("8640.00", resp.TotalToCommit)
}

func (suite *CalculationServiceTestSuite) TestPreview_RouteNotFoundIsReported() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(decimal.Zero, apperrors.ErrRouteNotFound).Once()
	suite.expectHolidays()

	resp, err := suite.service.Preview(ctx, suite.previewRequest(""))

	suite.Require().NoError(err)
	suite.False(resp.DisplacementAvailable)
	suite.Equal("no road route found to the destination", resp.DisplacementError)
}

func (suite *CalculationServiceTestSuite) TestPreview_LateSubmission() {
	ctx := context.Background()
	suite.now = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	suite.service = suite.newService()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(dec("120"), nil).Once()
	suite.expectHolidays()

	resp, err := suite.service.Preview(ctx, suite.previewRequest("OWN_VEHICLE"))

	suite.Require().NoError(err)
	suite.True(resp.Late)
}

func (suite *CalculationServiceTestSuite) TestPreview_ReturnMustFollowDeparture() {
	req := suite.previewRequest("OWN_VEHICLE")
	req.ReturnAt = req.DepartureAt

	resp, err := suite.service.Preview(context.Background(), req)

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.params.AssertNotCalled(suite.T(), "GetCurrentParameters", mock.Anything)
}

func (suite *CalculationServiceTestSuite) TestPreview_MissingUnitValue() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(&domain.SystemParameters{AverageFuelPrice: dec("6")}, nil).Once()

	resp, err := suite.service.Preview(ctx, suite.previewRequest("OWN_VEHICLE"))

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.distance.AssertNotCalled(suite.T(), "GetOneWayRoadDistanceKm", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CalculationServiceTestSuite) TestPreview_ExplicitCountsAndRegion() {
	ctx := context.Background()
	one, zero := 1, 0
	other := "OTHER"
	req := suite.previewRequest("AIR")
	req.Counts = &dto.AllowanceCountsInput{WithOvernight: &one, WithoutOvernight: &zero}
	req.Region = &other
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(dec("120"), nil).Once()
	suite.expectHolidays()

	resp, err := suite.service.Preview(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RegionOther, resp.Allowance.Region)
	suite.Equal(1, resp.Allowance.Line(domain.AllowanceWithOvernight).Count)
	suite.assertDecimal("7200.00", resp.Allowance.Total)
}

// --- CalculateForRequest Tests ---

func (suite *CalculationServiceTestSuite) TestCalculateForRequest_Success() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(dec("120"), nil).Once()

	result, err := suite.service.CalculateForRequest(ctx, suite.ownVehicleRequest(), true)

	suite.Require().NoError(err)
	suite.True(result.DisplacementAvailable)
	suite.assertDecimal("8784.00", result.TotalToCommit)
}

func (suite *CalculationServiceTestSuite) TestCalculateForRequest_StrictFailsWithoutDistance() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(decimal.Zero, apperrors.ErrProviderUnavailable).Once()

	result, err := suite.service.CalculateForRequest(ctx, suite.ownVehicleRequest(), true)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrDisplacementUnavailable)
	suite.ErrorIs(err, apperrors.ErrProviderUnavailable)
}

func (suite *CalculationServiceTestSuite) TestCalculateForRequest_FallbackZero() {
	ctx := context.Background()
	suite.service = suite.newService(services.WithDisplacementFallbackZero(true))
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(decimal.Zero, apperrors.ErrRouteNotFound).Once()

	result, err := suite.service.CalculateForRequest(ctx, suite.ownVehicleRequest(), true)

	suite.Require().NoError(err)
	suite.False(result.DisplacementAvailable)
	suite.NotEmpty(result.DisplacementError)
	suite.assertDecimal("8640.00", result.TotalToCommit)
}

func (suite *CalculationServiceTestSuite) TestCalculateForRequest_NonStrictMarksMissing() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(decimal.Zero, apperrors.ErrProviderUnavailable).Once()

	result, err := suite.service.CalculateForRequest(ctx, suite.ownVehicleRequest(), false)

	suite.Require().NoError(err)
	suite.False(result.DisplacementAvailable)
	suite.Nil(result.Displacement)
}

func (suite *CalculationServiceTestSuite) TestCalculateForRequest_OtherTransportToleratesMissingDistance() {
	ctx := context.Background()
	req := suite.ownVehicleRequest()
	req.Transport = domain.TransportBus
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(decimal.Zero, apperrors.ErrProviderUnavailable).Once()

	result, err := suite.service.CalculateForRequest(ctx, req, true)

	suite.Require().NoError(err)
	suite.False(result.DisplacementAvailable)
	suite.assertDecimal("8640.00", result.TotalToCommit)
}

func (suite *CalculationServiceTestSuite) TestCalculateForRequest_MissingFuelPrice() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(&domain.SystemParameters{UnitValue: dec("36")}, nil).Once()

	result, err := suite.service.CalculateForRequest(ctx, suite.ownVehicleRequest(), false)

	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.distance.AssertNotCalled(suite.T(), "GetOneWayRoadDistanceKm", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CalculationServiceTestSuite) TestCalculateForRequest_OtherTransportWithoutFuelPrice() {
	ctx := context.Background()
	req := suite.ownVehicleRequest()
	req.Transport = domain.TransportAir
	req.VehiclePlate = nil
	suite.params.On("GetCurrentParameters", ctx).Return(&domain.SystemParameters{UnitValue: dec("36")}, nil).Once()
	suite.distance.On("GetOneWayRoadDistanceKm", ctx, testOrigin, "Curitiba").Return(dec("120"), nil).Once()

	result, err := suite.service.CalculateForRequest(ctx, req, true)

	suite.Require().NoError(err)
	suite.True(result.DisplacementAvailable)
	suite.True(result.Displacement.IndemnityZeroed)
	suite.assertDecimal("240", result.Displacement.RoundTripKm)
	suite.assertDecimal("0", result.Displacement.Indemnity)
	suite.assertDecimal("8640.00", result.TotalToCommit)
}

// --- Config Tests ---

func (suite *CalculationServiceTestSuite) TestConfig_WithUnitValue() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(configuredParameters(), nil).Once()

	resp, err := suite.service.Config(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.UnitValue)
	suite.assertDecimal("36", *resp.UnitValue)
	suite.Contains(resp.CapitalCities, "Brasília")
	suite.NotContains(resp.CapitalCities, "Curitiba")
	suite.Len(resp.RateTables, 2)
}

func (suite *CalculationServiceTestSuite) TestConfig_NotConfigured() {
	ctx := context.Background()
	suite.params.On("GetCurrentParameters", ctx).Return(nil, apperrors.NewConfigurationError("unitValue")).Once()

	resp, err := suite.service.Config(ctx)

	suite.Require().NoError(err)
	suite.Nil(resp.UnitValue)
}

func TestCalculationService(t *testing.T) {
	suite.Run(t, new(CalculationServiceTestSuite))
}
