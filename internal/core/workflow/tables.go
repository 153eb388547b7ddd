// Package workflow holds the fixed request lifecycle: which status can follow
// which, and which roles may move a request out of each status.
package workflow

import (
	"fmt"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// Transitions maps a status to the statuses reachable from it in one step.
var Transitions = map[domain.Status][]domain.Status{
	domain.StatusDraft:                         {domain.StatusAdminReview, domain.StatusCancelled},
	domain.StatusAdminReview:                   {domain.StatusAwaitingRequestSignatures, domain.StatusRejected},
	domain.StatusAwaitingRequestSignatures:     {domain.StatusAwaitingRegistrationProof, domain.StatusAwaitingCommitment, domain.StatusRejected},
	domain.StatusAwaitingRegistrationProof:     {domain.StatusAwaitingCommitment, domain.StatusCancelled},
	domain.StatusAwaitingCommitment:            {domain.StatusAwaitingPayment},
	domain.StatusAwaitingPayment:               {domain.StatusAwaitingExpenseReport},
	domain.StatusAwaitingExpenseReport:         {domain.StatusExpenseReportReviewInternal},
	domain.StatusExpenseReportReviewInternal:   {domain.StatusAwaitingReportSignatures, domain.StatusCorrectionPending},
	domain.StatusAwaitingReportSignatures:      {domain.StatusExpenseReportReviewAccounting},
	domain.StatusExpenseReportReviewAccounting: {domain.StatusArchived},
	domain.StatusCorrectionPending:             {domain.StatusExpenseReportReviewInternal},
	domain.StatusArchived:                      {},
	domain.StatusRejected:                      {},
	domain.StatusCancelled:                     {},
}

// Permissions maps a status to the roles allowed to start any transition out of it.
var Permissions = map[domain.Status][]domain.Role{
	domain.StatusDraft:                         {domain.RoleRequester},
	domain.StatusAdminReview:                   {domain.RoleInternalControl, domain.RoleAdmin},
	domain.StatusAwaitingRequestSignatures:     {domain.RoleSignatory},
	domain.StatusAwaitingRegistrationProof:     {domain.RoleRequester},
	domain.StatusAwaitingCommitment:            {domain.RoleAccounting},
	domain.StatusAwaitingPayment:               {domain.RolePayment},
	domain.StatusAwaitingExpenseReport:         {domain.RoleRequester},
	domain.StatusExpenseReportReviewInternal:   {domain.RoleInternalControl, domain.RoleAdmin},
	domain.StatusAwaitingReportSignatures:      {domain.RoleSignatory},
	domain.StatusExpenseReportReviewAccounting: {domain.RoleAccounting},
	domain.StatusCorrectionPending:             {domain.RoleRequester},
	domain.StatusArchived:                      {},
	domain.StatusRejected:                      {},
	domain.StatusCancelled:                     {},
}

// TerminalStatuses have no outgoing transitions.
var TerminalStatuses = []domain.Status{domain.StatusArchived, domain.StatusRejected, domain.StatusCancelled}

// ValidateTables checks that both tables have an entry for every status and
// only reference known statuses and roles. It is run once at startup.
func ValidateTables(transitions map[domain.Status][]domain.Status, permissions map[domain.Status][]domain.Role) error {
	for _, s := range domain.AllStatuses {
		if _, ok := transitions[s]; !ok {
			return fmt.Errorf("transition table has no entry for status %s", s)
		}
		if _, ok := permissions[s]; !ok {
			return fmt.Errorf("permission table has no entry for status %s", s)
		}
	}
	for from, targets := range transitions {
		if !from.IsValid() {
			return fmt.Errorf("transition table references unknown status %s", from)
		}
		for _, to := range targets {
			if !to.IsValid() {
				return fmt.Errorf("transition %s -> %s targets unknown status", from, to)
			}
			if to == domain.InitialStatus {
				return fmt.Errorf("transition %s -> %s re-enters the initial status", from, to)
			}
		}
	}
	for status, roles := range permissions {
		if !status.IsValid() {
			return fmt.Errorf("permission table references unknown status %s", status)
		}
		for _, r := range roles {
			if !r.IsValid() {
				return fmt.Errorf("permission table grants unknown role %s on %s", r, status)
			}
		}
	}
	for _, t := range TerminalStatuses {
		if len(transitions[t]) != 0 {
			return fmt.Errorf("terminal status %s has outgoing transitions", t)
		}
	}
	return nil
}
