package services

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// DocumentSvc produces and lists the documents of a request.
type DocumentSvc interface {
	// GenerateForRequest creates the request folder and document. Failures are
	// returned to the caller but never undo the request's committed state.
	GenerateForRequest(ctx context.Context, requestID int64) (*domain.DocumentRefs, error)

	// RegenerateDocuments runs GenerateForRequest on behalf of a reviewer.
	RegenerateDocuments(ctx context.Context, requestID int64, actorID string) (*domain.DocumentRefs, error)

	// ListDocuments lists the files recorded for a request.
	ListDocuments(ctx context.Context, requestID int64, actorID string) ([]domain.Document, error)
}

// NotificationSvc tells people about request lifecycle events.
type NotificationSvc interface {
	NotifySubmitted(ctx context.Context, req domain.Request)
	NotifyTransition(ctx context.Context, req domain.Request, history domain.ProcessHistory)
}
