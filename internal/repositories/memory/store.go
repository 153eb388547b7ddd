// Package memory keeps every repository port in process memory.
// It backs STORAGE_DRIVER=memory and the concurrency tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	"github.com/SscSPs/travel_allowance_app/internal/utils/pagination"
)

const defaultPageSize = 20

// Store holds all entities behind one lock. Every write is a single critical
// section, which makes each unit of work atomic.
type Store struct {
	mu sync.RWMutex

	requests    map[int64]domain.Request
	history     map[int64][]domain.ProcessHistory
	users       map[string]domain.User
	params      *domain.SystemParameters
	holidays    map[string]domain.Holiday
	documents   map[int64][]domain.Document
	lastRequest int64
	lastHistory int64
	lastDoc     int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		requests:  make(map[int64]domain.Request),
		history:   make(map[int64][]domain.ProcessHistory),
		users:     make(map[string]domain.User),
		holidays:  make(map[string]domain.Holiday),
		documents: make(map[int64][]domain.Document),
	}
}

// NewRepositoryProvider exposes one Store through every repository port.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		RequestRepo:    s,
		ParametersRepo: s,
		UserRepo:       s,
		HolidayRepo:    s,
		DocumentRepo:   s,
	}
}

var (
	_ portsrepo.RequestRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ParametersRepositoryFacade = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade       = (*Store)(nil)
	_ portsrepo.HolidayRepositoryFacade    = (*Store)(nil)
	_ portsrepo.DocumentRepositoryFacade   = (*Store)(nil)
)

// --- requests ---

func (s *Store) CreateRequest(_ context.Context, req domain.Request, initial domain.ProcessHistory) (*domain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.RequesterID]; !ok {
		return nil, apperrors.NewNotFoundError("requester " + req.RequesterID)
	}
	s.lastRequest++
	req.RequestID = s.lastRequest
	s.requests[req.RequestID] = req

	initial.RequestID = req.RequestID
	s.appendHistoryLocked(initial)
	return &req, nil
}

func (s *Store) FindRequestByID(_ context.Context, requestID int64) (*domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[requestID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &req, nil
}

func (s *Store) ListRequests(_ context.Context, filter portsrepo.RequestFilter) ([]domain.Request, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	var cursorAt time.Time
	var cursorID int64
	hasCursor := filter.NextToken != nil && *filter.NextToken != ""
	if hasCursor {
		var err error
		cursorAt, cursorID, err = pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
	}

	s.mu.RLock()
	matches := make([]domain.Request, 0)
	for _, req := range s.requests {
		if filter.RequesterID != "" && req.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		if hasCursor && !before(req, cursorAt, cursorID) {
			continue
		}
		matches = append(matches, req)
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return before(matches[j], matches[i].CreatedAt, matches[i].RequestID)
	})

	var nextToken *string
	if len(matches) > limit {
		last := matches[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		nextToken = &token
		matches = matches[:limit]
	}
	return matches, nextToken, nil
}

// before reports whether req sorts after the (at, id) cursor in newest-first order.
func before(req domain.Request, at time.Time, id int64) bool {
	createdAt := req.CreatedAt.UTC().Truncate(time.Microsecond)
	at = at.UTC().Truncate(time.Microsecond)
	if createdAt.Equal(at) {
		return req.RequestID < id
	}
	return createdAt.Before(at)
}

func (s *Store) FindHistoryByRequestID(_ context.Context, requestID int64) ([]domain.ProcessHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ProcessHistory, len(s.history[requestID]))
	copy(records, s.history[requestID])
	return records, nil
}

func (s *Store) UpdateDraft(_ context.Context, req domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.requests[req.RequestID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Status != domain.StatusDraft {
		return apperrors.NewConflictError("request is no longer a draft")
	}

	stored.Purpose = req.Purpose
	stored.Destination = req.Destination
	stored.DepartureAt = req.DepartureAt
	stored.ReturnAt = req.ReturnAt
	stored.Transport = req.Transport
	stored.VehiclePlate = req.VehiclePlate
	stored.InvolvesAirTickets = req.InvolvesAirTickets
	stored.RequestsRegistrationFee = req.RequestsRegistrationFee
	stored.ExplicitCounts = req.ExplicitCounts
	stored.ExplicitRegion = req.ExplicitRegion
	stored.Totals = req.Totals
	stored.LastUpdatedAt = req.LastUpdatedAt
	stored.LastUpdatedBy = req.LastUpdatedBy
	s.requests[req.RequestID] = stored
	return nil
}

func (s *Store) ApplyTransition(_ context.Context, rec portsrepo.TransitionRecord) (*domain.TransitionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[rec.RequestID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if req.Status != rec.ExpectedStatus {
		return nil, apperrors.NewConflictError("request status changed concurrently")
	}

	result := &domain.TransitionResult{}
	if rec.Submission != nil {
		if req.CaseNumber != nil {
			return nil, apperrors.NewConflictError(fmt.Sprintf("request already numbered %s", req.CaseNumber))
		}
		if !req.LastUpdatedAt.Equal(rec.Submission.DraftUpdatedAt) {
			return nil, apperrors.NewConflictError("draft changed since its totals were computed")
		}
		number := &domain.CaseNumber{SequenceNumber: s.nextSequenceLocked(rec.Submission.Year), Year: rec.Submission.Year}
		req.CaseNumber = number
		req.Totals = rec.Submission.Totals
		result.CaseNumber = number
	}

	req.Status = rec.History.NewStatus
	req.LastUpdatedAt = rec.History.Timestamp
	req.LastUpdatedBy = rec.History.ActorID
	s.requests[req.RequestID] = req

	rec.History.RequestID = rec.RequestID
	result.History = s.appendHistoryLocked(rec.History)
	return result, nil
}

func (s *Store) UpdateDocumentRefs(_ context.Context, requestID int64, folderID, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests[requestID]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.DocumentFolderID = folderID
	req.DocumentID = documentID
	s.requests[requestID] = req
	return nil
}

func (s *Store) nextSequenceLocked(year int) int {
	highest := 0
	for _, req := range s.requests {
		if req.CaseNumber != nil && req.CaseNumber.Year == year && req.CaseNumber.SequenceNumber > highest {
			highest = req.CaseNumber.SequenceNumber
		}
	}
	return highest + 1
}

func (s *Store) appendHistoryLocked(h domain.ProcessHistory) domain.ProcessHistory {
	s.lastHistory++
	h.HistoryID = s.lastHistory
	s.history[h.RequestID] = append(s.history[h.RequestID], h)
	return h
}

// --- parameters ---

func (s *Store) FindCurrentParameters(_ context.Context) (*domain.SystemParameters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.params == nil {
		return nil, apperrors.ErrNotFound
	}
	p := *s.params
	return &p, nil
}

func (s *Store) SaveParameters(_ context.Context, params domain.SystemParameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = &params
	return nil
}

// --- users ---

func (s *Store) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.UserID]; ok {
		return fmt.Errorf("%w: user %s already exists", apperrors.ErrDuplicate, user.UserID)
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: e-mail %s already registered", apperrors.ErrDuplicate, user.Email)
		}
	}
	user.Roles = append([]domain.Role(nil), user.Roles...)
	s.users[user.UserID] = user
	return nil
}

func (s *Store) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user.Roles = append([]domain.Role(nil), user.Roles...)
	return &user, nil
}

func (s *Store) FindUsers(_ context.Context, limit int, offset int) ([]domain.User, error) {
	users := s.sortedUsers(func(domain.User) bool { return true })
	if offset >= len(users) {
		return []domain.User{}, nil
	}
	users = users[offset:]
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (s *Store) FindUsersByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	return s.sortedUsers(func(u domain.User) bool { return u.HasRole(role) }), nil
}

func (s *Store) sortedUsers(keep func(domain.User) bool) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if keep(u) {
			u.Roles = append([]domain.Role(nil), u.Roles...)
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users
}

func (s *Store) SetUserRoles(_ context.Context, userID string, roles []domain.Role, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.Roles = append([]domain.Role(nil), roles...)
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updatedBy
	s.users[userID] = user
	return nil
}

// --- holidays ---

func (s *Store) ListHolidays(_ context.Context, from, to time.Time) ([]domain.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := from.Format(time.DateOnly), to.Format(time.DateOnly)
	holidays := make([]domain.Holiday, 0)
	for key, h := range s.holidays {
		if key >= lo && key <= hi {
			holidays = append(holidays, h)
		}
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date.Before(holidays[j].Date) })
	return holidays, nil
}

func (s *Store) SaveHoliday(_ context.Context, holiday domain.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holidays[holiday.Date.Format(time.DateOnly)] = holiday
	return nil
}

// --- documents ---

func (s *Store) SaveDocument(_ context.Context, doc domain.Document) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[doc.RequestID]; !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("request %d", doc.RequestID))
	}
	s.lastDoc++
	doc.DocumentID = s.lastDoc
	s.documents[doc.RequestID] = append(s.documents[doc.RequestID], doc)
	return &doc, nil
}

func (s *Store) ListDocumentsByRequestID(_ context.Context, requestID int64) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, len(s.documents[requestID]))
	copy(docs, s.documents[requestID])
	return docs, nil
}
