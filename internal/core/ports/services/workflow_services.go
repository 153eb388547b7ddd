package services

import (
	"context"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/SscSPs/travel_allowance_app/internal/dto"
)

// WorkflowSvc drives requests through their lifecycle.
type WorkflowSvc interface {
	// Transition moves a request and appends its audit record atomically.
	Transition(ctx context.Context, requestID int64, req dto.TransitionRequest, actorID string) (*domain.TransitionResult, error)

	// AllowedActions lists the statuses actorID can move the request to.
	AllowedActions(ctx context.Context, requestID int64, actorID string) (*dto.AllowedActionsResponse, error)

	// History returns the audit trail and whether it replays into the current status.
	History(ctx context.Context, requestID int64, actorID string) (*dto.HistoryResponse, error)
}
