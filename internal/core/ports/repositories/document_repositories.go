package repositories

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// DocumentRepositoryFacade stores references to generated and uploaded files.
type DocumentRepositoryFacade interface {
	SaveDocument(ctx context.Context, doc domain.Document) (*domain.Document, error)
	ListDocumentsByRequestID(ctx context.Context, requestID int64) ([]domain.Document, error)
}
