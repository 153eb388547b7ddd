package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const lockPrefix = "travel:lock:"

// RedisLocker hands out locks shared by every instance of the service.
type RedisLocker struct {
	client *redislock.Client
}

// NewRedisLocker wraps a redislock client around rdb.
func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

var _ portssvc.Locker = (*RedisLocker)(nil)

// Obtain fails with apperrors.ErrConflict when the key is already held.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (portssvc.Lock, error) {
	lock, err := l.client.Obtain(ctx, lockPrefix+key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("%s is locked by another operation", key))
		}
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return lock, nil
}

// LocalLocker is a process-local Locker for single-instance deployments.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]localEntry
	now  func() time.Time
	seq  uint64
}

type localEntry struct {
	token   uint64
	expires time.Time
}

// NewLocalLocker creates an empty process-local locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localEntry), now: time.Now}
}

var _ portssvc.Locker = (*LocalLocker)(nil)

// Obtain fails with apperrors.ErrConflict while an unexpired lock holds key.
func (l *LocalLocker) Obtain(_ context.Context, key string, ttl time.Duration) (portssvc.Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if entry, ok := l.held[key]; ok && now.Before(entry.expires) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("%s is locked by another operation", key))
	}
	l.seq++
	l.held[key] = localEntry{token: l.seq, expires: now.Add(ttl)}
	return &localLock{locker: l, key: key, token: l.seq}, nil
}

type localLock struct {
	locker *LocalLocker
	key    string
	token  uint64
}

// Release frees the key unless the lock already expired and was taken over.
func (k *localLock) Release(_ context.Context) error {
	k.locker.mu.Lock()
	defer k.locker.mu.Unlock()

	if entry, ok := k.locker.held[k.key]; ok && entry.token == k.token {
		delete(k.locker.held, k.key)
	}
	return nil
}
