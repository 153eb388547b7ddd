package dto

import "github.com/SscSPs/travel_allowance_app/internal/core/domain"

// TransitionRequest asks to move a request to another status.
type TransitionRequest struct {
	Status string `json:"status" binding:"required,status"`
	Note   string `json:"note" binding:"max=2000"`
}

// AllowedActionsResponse lists the statuses the caller can move a request to.
type AllowedActionsResponse struct {
	Current domain.Status   `json:"current"`
	Actions []domain.Status `json:"actions"`
}

// HistoryResponse is the audit trail of a request.
type HistoryResponse struct {
	Records []domain.ProcessHistory `json:"records"`
	// Consistent is true when replaying Records yields the current status.
	Consistent bool `json:"consistent"`
}
