package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/SscSPs/travel_allowance_app/internal/handlers"
	"github.com/SscSPs/travel_allowance_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// ReferenceDataHandlerTestSuite covers the parameters and holiday routes.
type ReferenceDataHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	parametersService *MockParametersService
	holidayService    *MockHolidayService
}

func (suite *ReferenceDataHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testJWTSecret))
	suite.parametersService = new(MockParametersService)
	suite.holidayService = new(MockHolidayService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterParametersRoutes(v1, suite.parametersService)
	handlers.RegisterHolidayRoutes(v1, suite.holidayService)
}

func (suite *ReferenceDataHandlerTestSuite) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReferenceDataHandlerTestSuite) TestGetParameters() {
	suite.parametersService.On("GetCurrentParameters", mock.Anything).Return(&domain.SystemParameters{
		UnitValue:        decimal.RequireFromString("36"),
		AverageFuelPrice: decimal.RequireFromString("6.00"),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/parameters", ownerID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.SystemParameters
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.UnitValue.Equal(decimal.NewFromInt(36)))
}

func (suite *ReferenceDataHandlerTestSuite) TestUpdateParameters_Forbidden() {
	suite.parametersService.On("UpdateParameters", mock.Anything, mock.AnythingOfType("dto.UpdateParametersRequest"), ownerID).
		Return(nil, apperrors.NewAppError(http.StatusForbidden, "administrator role required", apperrors.ErrForbidden)).Once()

	w := suite.do(http.MethodPut, "/api/v1/parameters", ownerID, map[string]any{"unitValue": "40", "averageFuelPrice": "6.29"})

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ReferenceDataHandlerTestSuite) TestUpdateParameters_NonPositive() {
	suite.parametersService.On("UpdateParameters", mock.Anything, mock.MatchedBy(func(r dto.UpdateParametersRequest) bool {
		return r.UnitValue.IsZero()
	}), adminID).Return(nil, apperrors.NewValidationFailedError("unit value must be positive")).Once()

	w := suite.do(http.MethodPut, "/api/v1/parameters", adminID, map[string]any{"unitValue": "0", "averageFuelPrice": "6.29"})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReferenceDataHandlerTestSuite) TestListHolidays_DefaultsToCurrentYear() {
	suite.holidayService.On("ListHolidays", mock.Anything, time.Now().Year()).Return([]domain.Holiday{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/holidays", ownerID, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.holidayService.AssertExpectations(suite.T())
}

func (suite *ReferenceDataHandlerTestSuite) TestListHolidays_Year() {
	suite.holidayService.On("ListHolidays", mock.Anything, 2025).Return([]domain.Holiday{
		{Date: time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC), Description: "Tiradentes"},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/holidays?year=2025", ownerID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.HolidayResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]dto.HolidayResponse{{Date: "2025-04-21", Description: "Tiradentes"}}, resp)
}

func (suite *ReferenceDataHandlerTestSuite) TestCreateHoliday_BadDate() {
	w := suite.do(http.MethodPost, "/api/v1/holidays", adminID, map[string]any{"date": "21/04/2025", "description": "Tiradentes"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.holidayService.AssertNotCalled(suite.T(), "CreateHoliday", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReferenceDataHandlerTestSuite) TestCreateHoliday_Success() {
	req := dto.CreateHolidayRequest{Date: "2025-04-21", Description: "Tiradentes"}
	suite.holidayService.On("CreateHoliday", mock.Anything, req, adminID).Return(&domain.Holiday{
		Date:        time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		Description: "Tiradentes",
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/holidays", adminID, req)

	suite.Equal(http.StatusCreated, w.Code)
}

func TestReferenceDataHandlers(t *testing.T) {
	suite.Run(t, new(ReferenceDataHandlerTestSuite))
}
