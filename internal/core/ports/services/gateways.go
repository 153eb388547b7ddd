package services

import (
	"context"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ParametersProvider returns the current system parameters snapshot.
// Implementations may cache, within a bounded staleness window.
type ParametersProvider interface {
	GetCurrentParameters(ctx context.Context) (*domain.SystemParameters, error)
}

// DistanceProvider looks up road distances.
// It fails with apperrors.ErrRouteNotFound or apperrors.ErrProviderUnavailable.
type DistanceProvider interface {
	GetOneWayRoadDistanceKm(ctx context.Context, origin, destination string) (decimal.Decimal, error)
}

// RoleLookup resolves who an actor is for permission checks.
type RoleLookup interface {
	LookupActor(ctx context.Context, actorID string) (*domain.Actor, error)
}

// DocumentJob describes the document set to produce for a submitted request.
type DocumentJob struct {
	CaseNumber     domain.CaseNumber
	RequesterName  string
	RequesterEmail string
	// Placeholders maps tag names, without the << >> delimiters, to formatted values.
	Placeholders map[string]string
	ReaderEmails []string
	WriterEmails []string
}

// DocumentOrchestrator produces the request folder and filled-in request document.
type DocumentOrchestrator interface {
	CreateRequestDocuments(ctx context.Context, job DocumentJob) (*domain.DocumentRefs, error)
}

// Notification is a rendered message.
type Notification struct {
	To      []string
	Subject string
	Body    string
}

// NotificationSender delivers notifications. Delivery is best-effort.
type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}

// Lock is a held mutual exclusion lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out named locks that expire after ttl.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// ParametersCache keeps a recent parameters snapshot. A miss is (nil, nil).
type ParametersCache interface {
	Get(ctx context.Context) (*domain.SystemParameters, error)
	Set(ctx context.Context, params domain.SystemParameters) error
	Invalidate(ctx context.Context) error
}
