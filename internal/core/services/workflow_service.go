package services

import (
	"context"
	"errors"
	"fmt"
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
	"github.com/SscSPs/travel_allowance_app/internal/utils/reimbursement"
)

// followUpTimeout bounds document generation and notifications after a commit.
const followUpTimeout = 2 * time.Minute

type workflowService struct {
	BaseService
	repo      portsrepo.RequestRepositoryFacade
	holidays  portsrepo.HolidayRepositoryFacade
	engine    *workflow.Engine
	calc      portssvc.CalculationSvc
	documents portssvc.DocumentSvc
	notifier  portssvc.NotificationSvc
	location  *time.Location
	deadline  reimbursement.DeadlinePolicy
	now       func() time.Time
	runFollow func(func())
}

// WorkflowOption is a functional option for configuring the workflow service
type WorkflowOption func(*workflowService)

// WithWorkflowDocuments sets the document service used after submission.
func WithWorkflowDocuments(documents portssvc.DocumentSvc) WorkflowOption {
	return func(s *workflowService) {
		s.documents = documents
	}
}

// WithWorkflowNotifier sets the notification service used after transitions.
func WithWorkflowNotifier(notifier portssvc.NotificationSvc) WorkflowOption {
	return func(s *workflowService) {
		s.notifier = notifier
	}
}

// WithWorkflowDeadlinePolicy sets the submission deadline policy and the zone case years are counted in.
func WithWorkflowDeadlinePolicy(policy reimbursement.DeadlinePolicy) WorkflowOption {
	return func(s *workflowService) {
		s.deadline = policy
		if policy.Location != nil {
			s.location = policy.Location
		}
	}
}

// WithWorkflowClock replaces time.Now.
func WithWorkflowClock(now func() time.Time) WorkflowOption {
	return func(s *workflowService) {
		s.now = now
	}
}

// WithFollowUpRunner sets how post-commit work is scheduled. The default runs it in a goroutine.
func WithFollowUpRunner(run func(func())) WorkflowOption {
	return func(s *workflowService) {
		s.runFollow = run
	}
}

// NewWorkflowService creates the workflow service.
func NewWorkflowService(
	repo portsrepo.RequestRepositoryFacade,
	holidays portsrepo.HolidayRepositoryFacade,
	engine *workflow.Engine,
	calc portssvc.CalculationSvc,
	roles portssvc.RoleLookup,
	options ...WorkflowOption,
) portssvc.WorkflowSvc {
	s := &workflowService{
		BaseService: BaseService{Roles: roles},
		repo:        repo,
		holidays:    holidays,
		engine:      engine,
		calc:        calc,
		location:    time.UTC,
		deadline:    reimbursement.DefaultDeadlinePolicy(time.UTC),
		now:         time.Now,
		runFollow:   func(f func()) { go f() },
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Transition moves a request to req.Status. Leaving DRAFT for the first time
// is the submission: it recalculates, assigns the case number and stores the
// totals in the same unit of work as the status change.
func (s *workflowService) Transition(ctx context.Context, requestID int64, req dto.TransitionRequest, actorID string) (*domain.TransitionResult, error) {
	logger := s.GetLogger(ctx).With(slog.Int64("request_id", requestID))

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}

	request, err := s.repo.FindRequestByID(ctx, requestID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load request", slog.Int64("request_id", requestID))
		}
		return nil, err
	}
	actor, err := s.LookupActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(*request, *actor) {
		return nil, apperrors.NewAppError(http.StatusForbidden, "request belongs to someone else", apperrors.ErrForbidden)
	}

	if err := s.engine.CheckTransition(*request, target, *actor); err != nil {
		logger.Debug("Transition refused",
			slog.String("from", string(request.Status)),
			slog.String("to", string(target)),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()
	note := strings.TrimSpace(req.Note)
	record := portsrepo.TransitionRecord{
		RequestID:      request.RequestID,
		ExpectedStatus: request.Status,
		History:        workflow.NewHistoryRecord(*request, target, actorID, note, now),
	}

	submission := isSubmission(*request, target)
	if submission {
		data, err := s.prepareSubmission(ctx, *request, note, now)
		if err != nil {
			return nil, err
		}
		record.Submission = data
		request.Totals = data.Totals
	}

	result, err := s.repo.ApplyTransition(ctx, record)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Transition lost a concurrent update",
				slog.String("expected", string(record.ExpectedStatus)),
				slog.String("to", string(target)))
		case !errors.Is(err, apperrors.ErrNotFound):
			s.LogError(ctx, err, "Failed to apply transition",
				slog.Int64("request_id", requestID),
				slog.String("from", string(record.ExpectedStatus)),
				slog.String("to", string(target)))
		}
		return nil, err
	}

	request.Status = target
	if result.CaseNumber != nil {
		request.CaseNumber = result.CaseNumber
	}

	attrs := []any{
		slog.String("from", string(record.ExpectedStatus)),
		slog.String("to", string(target)),
		slog.String("actor_id", actorID),
	}
	if request.CaseNumber != nil {
		attrs = append(attrs, slog.String("case_number", request.CaseNumber.String()))
	}
	logger.Info("Request transitioned", attrs...)

	s.scheduleFollowUps(ctx, *request, result.History, submission)
	return result, nil
}

// AllowedActions lists what the actor may do with the request.
func (s *workflowService) AllowedActions(ctx context.Context, requestID int64, actorID string) (*dto.AllowedActionsResponse, error) {
	request, actor, err := s.loadVisible(ctx, requestID, actorID)
	if err != nil {
		return nil, err
	}
	return &dto.AllowedActionsResponse{
		Current: request.Status,
		Actions: s.engine.AllowedActions(*request, *actor),
	}, nil
}

// History returns the audit trail and whether it matches the current status.
func (s *workflowService) History(ctx context.Context, requestID int64, actorID string) (*dto.HistoryResponse, error) {
	request, _, err := s.loadVisible(ctx, requestID, actorID)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.FindHistoryByRequestID(ctx, requestID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load history", slog.Int64("request_id", requestID))
		return nil, err
	}

	consistent := domain.HistoryConsistent(records, request.Status)
	if !consistent {
		s.GetLogger(ctx).Warn("History does not replay into current status",
			slog.Int64("request_id", requestID),
			slog.String("status", string(request.Status)))
	}
	return &dto.HistoryResponse{Records: records, Consistent: consistent}, nil
}

func (s *workflowService) prepareSubmission(ctx context.Context, request domain.Request, note string, now time.Time) (*portsrepo.SubmissionData, error) {
	calc, err := s.calc.CalculateForRequest(ctx, request, true)
	if err != nil {
		return nil, err
	}

	late, deadline, err := s.isLate(ctx, request, now)
	if err != nil {
		return nil, err
	}
	if late && note == "" {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf(
			"submission deadline was %s; a note justifying the late request is required",
			deadline.Format(time.DateOnly)))
	}

	return &portsrepo.SubmissionData{
		Year:           now.In(s.location).Year(),
		Totals:         totalsFrom(calc, request.Totals.RegistrationFee),
		DraftUpdatedAt: request.LastUpdatedAt,
	}, nil
}

func (s *workflowService) isLate(ctx context.Context, request domain.Request, now time.Time) (bool, time.Time, error) {
	var holidays []domain.Holiday
	if s.holidays != nil {
		var err error
		holidays, err = s.holidays.ListHolidays(ctx, request.DepartureAt.Add(-holidayLookback), request.DepartureAt)
		if err != nil {
			s.LogError(ctx, err, "Failed to load holidays", slog.Int64("request_id", request.RequestID))
			return false, time.Time{}, apperrors.NewAppError(http.StatusInternalServerError, "failed to load holidays", err)
		}
	}
	deadline := s.deadline.SubmissionDeadline(request.DepartureAt, request.InvolvesAirTickets, holidays)
	return s.deadline.IsLate(now, request.DepartureAt, request.InvolvesAirTickets, holidays), deadline, nil
}

// scheduleFollowUps runs documents and notifications after the commit.
// Their failures are logged and never touch the committed request.
func (s *workflowService) scheduleFollowUps(ctx context.Context, request domain.Request, history domain.ProcessHistory, submission bool) {
	logger := s.GetLogger(ctx)
	base := context.WithoutCancel(ctx)

	s.runFollow(func() {
		ctx, cancel := context.WithTimeout(base, followUpTimeout)
		defer cancel()

		if !submission {
			if s.notifier != nil {
				s.notifier.NotifyTransition(ctx, request, history)
			}
			return
		}

		if s.documents != nil {
			refs, err := s.documents.GenerateForRequest(ctx, request.RequestID)
			if err != nil {
				logger.Error("Document generation failed after submission",
					slog.String("error", err.Error()),
					slog.Int64("request_id", request.RequestID))
			} else {
				request.DocumentFolderID = refs.FolderID
				request.DocumentID = refs.DocumentID
			}
		}
		if s.notifier != nil {
			s.notifier.NotifySubmitted(ctx, request)
		}
	})
}

func (s *workflowService) loadVisible(ctx context.Context, requestID int64, actorID string) (*domain.Request, *domain.Actor, error) {
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

// isSubmission reports whether moving request to target assigns its case number.
func isSubmission(request domain.Request, target domain.Status) bool {
	return request.Status == domain.StatusDraft && target == domain.StatusAdminReview && request.CaseNumber == nil
}

var _ portssvc.WorkflowSvc = (*workflowService)(nil)
