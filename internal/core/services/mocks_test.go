package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock RequestRepository ---
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID int64) (*domain.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) ListRequests(ctx context.Context, filter portsrepo.RequestFilter) ([]domain.Request, *string, error) {
	args := m.Called(ctx, filter)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Request), next, args.Error(2)
}

func (m *MockRequestRepository) FindHistoryByRequestID(ctx context.Context, requestID int64) ([]domain.ProcessHistory, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProcessHistory), args.Error(1)
}

func (m *MockRequestRepository) CreateRequest(ctx context.Context, req domain.Request, initial domain.ProcessHistory) (*domain.Request, error) {
	args := m.Called(ctx, req, initial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) UpdateDraft(ctx context.Context, req domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) ApplyTransition(ctx context.Context, rec portsrepo.TransitionRecord) (*domain.TransitionResult, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionResult), args.Error(1)
}

func (m *MockRequestRepository) UpdateDocumentRefs(ctx context.Context, requestID int64, folderID, documentID string) error {
	args := m.Called(ctx, requestID, folderID, documentID)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetUserRoles(ctx context.Context, userID string, roles []domain.Role, updatedBy string) error {
	args := m.Called(ctx, userID, roles, updatedBy)
	return args.Error(0)
}

// --- Mock ParametersRepository ---
type MockParametersRepository struct {
	mock.Mock
}

func (m *MockParametersRepository) FindCurrentParameters(ctx context.Context) (*domain.SystemParameters, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemParameters), args.Error(1)
}

func (m *MockParametersRepository) SaveParameters(ctx context.Context, params domain.SystemParameters) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// --- Mock HolidayRepository ---
type MockHolidayRepository struct {
	mock.Mock
}

func (m *MockHolidayRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) SaveHoliday(ctx context.Context, holiday domain.Holiday) error {
	args := m.Called(ctx, holiday)
	return args.Error(0)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByRequestID(ctx context.Context, requestID int64) ([]domain.Document, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

// --- Mock gateways ---
type MockParametersProvider struct {
	mock.Mock
}

func (m *MockParametersProvider) GetCurrentParameters(ctx context.Context) (*domain.SystemParameters, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemParameters), args.Error(1)
}

type MockParametersCache struct {
	mock.Mock
}

func (m *MockParametersCache) Get(ctx context.Context) (*domain.SystemParameters, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemParameters), args.Error(1)
}

func (m *MockParametersCache) Set(ctx context.Context, params domain.SystemParameters) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockParametersCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockDistanceProvider struct {
	mock.Mock
}

func (m *MockDistanceProvider) GetOneWayRoadDistanceKm(ctx context.Context, origin, destination string) (decimal.Decimal, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockRoleLookup struct {
	mock.Mock
}

func (m *MockRoleLookup) LookupActor(ctx context.Context, actorID string) (*domain.Actor, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

type MockCalculationSvc struct {
	mock.Mock
}

func (m *MockCalculationSvc) Preview(ctx context.Context, req dto.PreviewCalculationRequest) (*dto.PreviewCalculationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreviewCalculationResponse), args.Error(1)
}

func (m *MockCalculationSvc) CalculateForRequest(ctx context.Context, req domain.Request, strict bool) (*domain.CalculationResult, error) {
	args := m.Called(ctx, req, strict)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationResult), args.Error(1)
}

func (m *MockCalculationSvc) Config(ctx context.Context) (*dto.ConfigResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConfigResponse), args.Error(1)
}

type MockDocumentSvc struct {
	mock.Mock
}

func (m *MockDocumentSvc) GenerateForRequest(ctx context.Context, requestID int64) (*domain.DocumentRefs, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRefs), args.Error(1)
}

func (m *MockDocumentSvc) RegenerateDocuments(ctx context.Context, requestID int64, actorID string) (*domain.DocumentRefs, error) {
	args := m.Called(ctx, requestID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRefs), args.Error(1)
}

func (m *MockDocumentSvc) ListDocuments(ctx context.Context, requestID int64, actorID string) ([]domain.Document, error) {
	args := m.Called(ctx, requestID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

type MockNotificationSvc struct {
	mock.Mock
}

func (m *MockNotificationSvc) NotifySubmitted(ctx context.Context, req domain.Request) {
	m.Called(ctx, req)
}

func (m *MockNotificationSvc) NotifyTransition(ctx context.Context, req domain.Request, history domain.ProcessHistory) {
	m.Called(ctx, req, history)
}

type MockOrchestrator struct {
	mock.Mock
}

func (m *MockOrchestrator) CreateRequestDocuments(ctx context.Context, job portssvc.DocumentJob) (*domain.DocumentRefs, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRefs), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Send(ctx context.Context, n portssvc.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// --- helpers ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func statusPtr(s domain.Status) *domain.Status {
	return &s
}

func actorWith(userID string, roles ...domain.Role) *domain.Actor {
	return &domain.Actor{UserID: userID, Roles: roles}
}

func configuredParameters() *domain.SystemParameters {
	return &domain.SystemParameters{UnitValue: dec("36"), AverageFuelPrice: dec("6.00")}
}
