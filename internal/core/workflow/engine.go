package workflow

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
)

// Engine answers transition and permission questions from a pair of tables.
type Engine struct {
	transitions map[domain.Status][]domain.Status
	permissions map[domain.Status][]domain.Role
}

// NewEngine validates the tables and builds an Engine from them.
func NewEngine(transitions map[domain.Status][]domain.Status, permissions map[domain.Status][]domain.Role) (*Engine, error) {
	if err := ValidateTables(transitions, permissions); err != nil {
		return nil, err
	}
	return &Engine{transitions: transitions, permissions: permissions}, nil
}

// NewDefaultEngine builds an Engine over the standard lifecycle tables.
func NewDefaultEngine() (*Engine, error) {
	return NewEngine(Transitions, Permissions)
}

// EffectiveRoles returns the actor's roles for req. Requester is derived from
// ownership only; an assigned requester role counts on the actor's own requests.
// Staff privilege adds admin.
func EffectiveRoles(req domain.Request, actor domain.Actor) []domain.Role {
	roles := make([]domain.Role, 0, len(actor.Roles)+2)
	for _, r := range actor.Roles {
		if r != domain.RoleRequester && !slices.Contains(roles, r) {
			roles = append(roles, r)
		}
	}
	if req.IsOwnedBy(actor.UserID) {
		roles = append(roles, domain.RoleRequester)
	}
	if actor.IsStaff && !slices.Contains(roles, domain.RoleAdmin) {
		roles = append(roles, domain.RoleAdmin)
	}
	return roles
}

// CanOperate reports whether the actor may start any transition out of the request's status.
// Statuses without permitted roles allow no one.
func (e *Engine) CanOperate(req domain.Request, actor domain.Actor) bool {
	allowed := e.permissions[req.Status]
	if len(allowed) == 0 {
		return false
	}
	for _, r := range EffectiveRoles(req, actor) {
		if slices.Contains(allowed, r) {
			return true
		}
	}
	return false
}

// IsReachable reports whether to follows from in one step.
func (e *Engine) IsReachable(from, to domain.Status) bool {
	return slices.Contains(e.transitions[from], to)
}

// CheckTransition validates a move of req to target by actor.
// Reachability is checked before permission, so an unreachable target fails
// the same way for every actor.
func (e *Engine) CheckTransition(req domain.Request, target domain.Status, actor domain.Actor) error {
	if !e.IsReachable(req.Status, target) {
		return apperrors.NewAppError(http.StatusConflict, fmt.Sprintf("cannot move request from %s to %s", req.Status, target), apperrors.ErrInvalidTransition)
	}
	if !e.CanOperate(req, actor) {
		return apperrors.NewAppError(http.StatusForbidden, fmt.Sprintf("actor cannot act on requests in status %s", req.Status), apperrors.ErrForbidden)
	}
	return nil
}

// AllowedActions lists the statuses the actor may move req to, or nothing.
func (e *Engine) AllowedActions(req domain.Request, actor domain.Actor) []domain.Status {
	if !e.CanOperate(req, actor) {
		return []domain.Status{}
	}
	return slices.Clone(e.transitions[req.Status])
}

// IsTerminal reports whether status has no way out.
func (e *Engine) IsTerminal(status domain.Status) bool {
	return len(e.transitions[status]) == 0
}

// NewHistoryRecord builds the audit record for a checked transition.
func NewHistoryRecord(req domain.Request, target domain.Status, actorID, note string, at time.Time) domain.ProcessHistory {
	prev := req.Status
	return domain.ProcessHistory{
		RequestID:      req.RequestID,
		PreviousStatus: &prev,
		NewStatus:      target,
		ActorID:        actorID,
		Note:           note,
		Timestamp:      at,
	}
}

// CanView reports whether actor may read req. Owners, staff and every role
// other than plain requester can see a request.
func CanView(req domain.Request, actor domain.Actor) bool {
	if req.IsOwnedBy(actor.UserID) || actor.IsStaff {
		return true
	}
	for _, r := range actor.Roles {
		if r != domain.RoleRequester {
			return true
		}
	}
	return false
}
