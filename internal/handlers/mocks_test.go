package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/SscSPs/travel_allowance_app/internal/utils"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed JWT whose subject is userID.
func generateTestToken(userID string) string {
	signed, err := utils.GenerateJWT(userID, testJWTSecret, time.Hour, "tra-test")
	if err != nil {
		panic(err)
	}
	return signed
}

// --- Mock RequestService ---
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) GetRequest(ctx context.Context, requestID int64, actorID string) (*domain.Request, error) {
	args := m.Called(ctx, requestID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) ListRequests(ctx context.Context, params dto.ListRequestsParams, actorID string) ([]domain.Request, *string, error) {
	args := m.Called(ctx, params, actorID)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Request), next, args.Error(2)
}

func (m *MockRequestService) CreateRequest(ctx context.Context, req dto.CreateRequestRequest, actorID string) (*domain.Request, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) UpdateDraft(ctx context.Context, requestID int64, req dto.CreateRequestRequest, actorID string) (*domain.Request, error) {
	args := m.Called(ctx, requestID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

var _ portssvc.RequestSvcFacade = (*MockRequestService)(nil)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Transition(ctx context.Context, requestID int64, req dto.TransitionRequest, actorID string) (*domain.TransitionResult, error) {
	args := m.Called(ctx, requestID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionResult), args.Error(1)
}

func (m *MockWorkflowService) AllowedActions(ctx context.Context, requestID int64, actorID string) (*dto.AllowedActionsResponse, error) {
	args := m.Called(ctx, requestID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AllowedActionsResponse), args.Error(1)
}

func (m *MockWorkflowService) History(ctx context.Context, requestID int64, actorID string) (*dto.HistoryResponse, error) {
	args := m.Called(ctx, requestID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HistoryResponse), args.Error(1)
}

var _ portssvc.WorkflowSvc = (*MockWorkflowService)(nil)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GenerateForRequest(ctx context.Context, requestID int64) (*domain.DocumentRefs, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRefs), args.Error(1)
}

func (m *MockDocumentService) RegenerateDocuments(ctx context.Context, requestID int64, actorID string) (*domain.DocumentRefs, error) {
	args := m.Called(ctx, requestID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRefs), args.Error(1)
}

func (m *MockDocumentService) ListDocuments(ctx context.Context, requestID int64, actorID string) ([]domain.Document, error) {
	args := m.Called(ctx, requestID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

var _ portssvc.DocumentSvc = (*MockDocumentService)(nil)

// --- Mock CalculationService ---
type MockCalculationService struct {
	mock.Mock
}

func (m *MockCalculationService) Preview(ctx context.Context, req dto.PreviewCalculationRequest) (*dto.PreviewCalculationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreviewCalculationResponse), args.Error(1)
}

func (m *MockCalculationService) CalculateForRequest(ctx context.Context, req domain.Request, strict bool) (*domain.CalculationResult, error) {
	args := m.Called(ctx, req, strict)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationResult), args.Error(1)
}

func (m *MockCalculationService) Config(ctx context.Context) (*dto.ConfigResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConfigResponse), args.Error(1)
}

var _ portssvc.CalculationSvc = (*MockCalculationService)(nil)

// --- Mock ParametersService ---
type MockParametersService struct {
	mock.Mock
}

func (m *MockParametersService) GetCurrentParameters(ctx context.Context) (*domain.SystemParameters, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemParameters), args.Error(1)
}

func (m *MockParametersService) UpdateParameters(ctx context.Context, req dto.UpdateParametersRequest, actorID string) (*domain.SystemParameters, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemParameters), args.Error(1)
}

var _ portssvc.ParametersSvcFacade = (*MockParametersService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) SetUserRoles(ctx context.Context, userID string, req dto.UpdateUserRolesRequest, actorID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) LookupActor(ctx context.Context, actorID string) (*domain.Actor, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *MockUserService) RequireAdministrator(ctx context.Context, actorID string) (*domain.Actor, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock HolidayService ---
type MockHolidayService struct {
	mock.Mock
}

func (m *MockHolidayService) ListHolidays(ctx context.Context, year int) ([]domain.Holiday, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holiday), args.Error(1)
}

func (m *MockHolidayService) CreateHoliday(ctx context.Context, req dto.CreateHolidayRequest, actorID string) (*domain.Holiday, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holiday), args.Error(1)
}

var _ portssvc.HolidaySvcFacade = (*MockHolidayService)(nil)
