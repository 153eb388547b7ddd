package services

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
)

// RequestReaderSvc defines read operations on requests.
type RequestReaderSvc interface {
	// GetRequest retrieves a request the actor is allowed to see.
	GetRequest(ctx context.Context, requestID int64, actorID string) (*domain.Request, error)

	// ListRequests lists the actor's own requests, or all of them for reviewers when params.All is set.
	ListRequests(ctx context.Context, params dto.ListRequestsParams, actorID string) ([]domain.Request, *string, error)
}

// RequestWriterSvc defines write operations on requests.
type RequestWriterSvc interface {
	// CreateRequest stores a DRAFT request owned by actorID with its first calculation pass.
	CreateRequest(ctx context.Context, req dto.CreateRequestRequest, actorID string) (*domain.Request, error)

	// UpdateDraft replaces the trip details of a DRAFT request and recalculates it.
	UpdateDraft(ctx context.Context, requestID int64, req dto.CreateRequestRequest, actorID string) (*domain.Request, error)
}

// RequestSvcFacade combines all request service interfaces.
type RequestSvcFacade interface {
	RequestReaderSvc
	RequestWriterSvc
}
