package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// RequestFilter narrows a request listing. Empty fields do not filter.
type RequestFilter struct {
	RequesterID string
	Status      *domain.Status
	Limit       int
	NextToken   *string
}

// SubmissionData is persisted together with the first transition out of DRAFT.
// It only applies while the draft's last update time still equals DraftUpdatedAt,
// so totals computed from an edited draft are rejected.
type SubmissionData struct {
	Year           int
	Totals         domain.RequestTotals
	DraftUpdatedAt time.Time
}

// TransitionRecord is one atomic status change.
// The change only applies if the stored status still equals ExpectedStatus.
type TransitionRecord struct {
	RequestID      int64
	ExpectedStatus domain.Status
	History        domain.ProcessHistory
	// Submission, when set, also assigns the next case number of Submission.Year
	// and stores the totals in the same unit of work.
	Submission *SubmissionData
}

// RequestReader defines read operations for requests and their audit trail.
type RequestReader interface {
	// FindRequestByID retrieves a request by its id.
	FindRequestByID(ctx context.Context, requestID int64) (*domain.Request, error)

	// ListRequests retrieves requests newest first and a token for the next page.
	ListRequests(ctx context.Context, filter RequestFilter) ([]domain.Request, *string, error)

	// FindHistoryByRequestID retrieves the audit trail oldest first.
	FindHistoryByRequestID(ctx context.Context, requestID int64) ([]domain.ProcessHistory, error)
}

// RequestWriter defines write operations for requests.
type RequestWriter interface {
	// CreateRequest stores a new DRAFT request with its creation history record.
	CreateRequest(ctx context.Context, req domain.Request, initial domain.ProcessHistory) (*domain.Request, error)

	// UpdateDraft replaces the trip details and totals of a request still in DRAFT.
	UpdateDraft(ctx context.Context, req domain.Request) error

	// ApplyTransition changes status and appends history atomically.
	ApplyTransition(ctx context.Context, rec TransitionRecord) (*domain.TransitionResult, error)

	// UpdateDocumentRefs records where the generated documents live.
	UpdateDocumentRefs(ctx context.Context, requestID int64, folderID, documentID string) error
}

// RequestRepositoryFacade combines all request-related repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}
