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
	"github.com/SscSPs/travel_allowance_app/internal/core/workflow"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 20
	creationNote     = "Solicitação criada"
)

// RequestService creates, edits and reads trip requests.
type RequestService struct {
	BaseService
	repo portsrepo.RequestRepositoryFacade
	calc portssvc.CalculationSvc
	now  func() time.Time
}

// NewRequestService creates a RequestService.
func NewRequestService(repo portsrepo.RequestRepositoryFacade, calc portssvc.CalculationSvc, roles portssvc.RoleLookup) *RequestService {
	return &RequestService{
		BaseService: BaseService{Roles: roles},
		repo:        repo,
		calc:        calc,
		now:         time.Now,
	}
}

// CreateRequest stores a new DRAFT owned by actorID.
func (s *RequestService) CreateRequest(ctx context.Context, req dto.CreateRequestRequest, actorID string) (*domain.Request, error) {
	if _, err := s.LookupActor(ctx, actorID); err != nil {
		return nil, err
	}

	now := s.now()
	request, err := requestFromDTO(req)
	if err != nil {
		return nil, err
	}
	request.RequesterID = actorID
	request.Status = domain.InitialStatus
	request.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	if err := s.recalculate(ctx, &request); err != nil {
		return nil, err
	}

	initial := domain.ProcessHistory{
		NewStatus: domain.InitialStatus,
		ActorID:   actorID,
		Note:      creationNote,
		Timestamp: now,
	}
	created, err := s.repo.CreateRequest(ctx, request, initial)
	if err != nil {
		s.LogError(ctx, err, "Failed to create request", slog.String("actor_id", actorID))
		return nil, err
	}

	s.LogInfo(ctx, "Request created",
		slog.Int64("request_id", created.RequestID),
		slog.String("destination", created.Destination))
	return created, nil
}

// GetRequest returns a request the actor may see.
func (s *RequestService) GetRequest(ctx context.Context, requestID int64, actorID string) (*domain.Request, error) {
	request, _, err := s.loadVisible(ctx, requestID, actorID)
	return request, err
}

// ListRequests returns the actor's own requests. Reviewers may set All to see everyone's.
func (s *RequestService) ListRequests(ctx context.Context, params dto.ListRequestsParams, actorID string) ([]domain.Request, *string, error) {
	actor, err := s.LookupActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	filter := portsrepo.RequestFilter{
		RequesterID: actorID,
		Limit:       params.Limit,
		NextToken:   params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if params.All && isReviewer(*actor) {
		filter.RequesterID = ""
	}
	if params.Status != nil {
		status, err := domain.ParseStatus(*params.Status)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError(err.Error())
		}
		filter.Status = &status
	}

	requests, next, err := s.repo.ListRequests(ctx, filter)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list requests", slog.String("actor_id", actorID))
		}
		return nil, nil, err
	}
	return requests, next, nil
}

// UpdateDraft replaces the trip details of the owner's DRAFT and recalculates it.
func (s *RequestService) UpdateDraft(ctx context.Context, requestID int64, req dto.CreateRequestRequest, actorID string) (*domain.Request, error) {
	current, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load request", slog.Int64("request_id", requestID))
		}
		return nil, err
	}
	if !current.IsOwnedBy(actorID) {
		return nil, apperrors.NewAppError(http.StatusForbidden, "only the requester can edit a draft", apperrors.ErrForbidden)
	}
	if current.Status != domain.StatusDraft {
		return nil, apperrors.NewConflictError("only draft requests can be edited")
	}

	updated, err := requestFromDTO(req)
	if err != nil {
		return nil, err
	}
	updated.RequestID = current.RequestID
	updated.RequesterID = current.RequesterID
	updated.Status = current.Status
	updated.AuditFields = current.AuditFields
	updated.LastUpdatedAt = s.now()
	updated.LastUpdatedBy = actorID

	if err := s.recalculate(ctx, &updated); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateDraft(ctx, updated); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update draft", slog.Int64("request_id", requestID))
		}
		return nil, err
	}
	return &updated, nil
}

// recalculate refreshes the provisional totals of a draft.
func (s *RequestService) recalculate(ctx context.Context, request *domain.Request) error {
	calc, err := s.calc.CalculateForRequest(ctx, *request, false)
	if err != nil {
		return err
	}
	request.Totals = totalsFrom(calc, request.Totals.RegistrationFee)
	return nil
}

func (s *RequestService) loadVisible(ctx context.Context, requestID int64, actorID string) (*domain.Request, *domain.Actor, error) {
	actor, err := s.LookupActor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	request, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load request", slog.Int64("request_id", requestID))
		}
		return nil, nil, err
	}
	if !workflow.CanView(*request, *actor) {
		return nil, nil, apperrors.NewAppError(http.StatusForbidden, "request belongs to someone else", apperrors.ErrForbidden)
	}
	return request, actor, nil
}

// requestFromDTO validates the trip details shared by create and edit.
func requestFromDTO(req dto.CreateRequestRequest) (domain.Request, error) {
	transport := domain.TransportMode(req.TransportMode)
	if !transport.IsValid() {
		return domain.Request{}, apperrors.NewValidationFailedError("unknown transportMode " + req.TransportMode)
	}
	if req.ReturnAt.Before(req.DepartureAt) {
		return domain.Request{}, apperrors.NewValidationFailedError("returnAt cannot be before departureAt")
	}

	purpose := strings.TrimSpace(req.Purpose)
	destination := strings.TrimSpace(req.Destination)
	if purpose == "" || destination == "" {
		return domain.Request{}, apperrors.NewValidationFailedError("purpose and destination are required")
	}

	request := domain.Request{
		Purpose:                 purpose,
		Destination:             destination,
		DepartureAt:             req.DepartureAt,
		ReturnAt:                req.ReturnAt,
		Transport:               transport,
		InvolvesAirTickets:      req.InvolvesAirTickets,
		RequestsRegistrationFee: req.RequestsRegistrationFee,
		ExplicitCounts:          req.Counts.ToDomain(),
	}

	if transport == domain.TransportOwnVehicle {
		if req.VehiclePlate == nil || strings.TrimSpace(*req.VehiclePlate) == "" {
			return domain.Request{}, apperrors.NewValidationFailedError("vehiclePlate is required for own vehicle trips")
		}
		plate := strings.ToUpper(strings.TrimSpace(*req.VehiclePlate))
		request.VehiclePlate = &plate
	}

	if req.Region != nil {
		region := domain.Region(*req.Region)
		if !region.IsValid() {
			return domain.Request{}, apperrors.NewValidationFailedError("unknown region " + *req.Region)
		}
		request.ExplicitRegion = &region
	}

	fee := decimal.Zero
	if req.RequestsRegistrationFee && req.RegistrationFee != nil {
		if req.RegistrationFee.IsNegative() {
			return domain.Request{}, apperrors.NewValidationFailedError("registrationFee cannot be negative")
		}
		fee = req.RegistrationFee.Round(2)
	}
	request.Totals.RegistrationFee = fee

	return request, nil
}

// isReviewer reports whether actor works on requests other than their own.
func isReviewer(actor domain.Actor) bool {
	if actor.IsStaff {
		return true
	}
	for _, r := range actor.Roles {
		if r != domain.RoleRequester {
			return true
		}
	}
	return false
}

var _ portssvc.RequestSvcFacade = (*RequestService)(nil)
