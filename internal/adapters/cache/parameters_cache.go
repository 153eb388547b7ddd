package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portssvc "github.com/SscSPs/travel_allowance_app/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

const parametersKey = "travel:system_parameters"

// RedisParametersCache stores the parameters snapshot in Redis with a TTL.
type RedisParametersCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisParametersCache returns a cache whose entries live for ttl.
func NewRedisParametersCache(rdb *redis.Client, ttl time.Duration) *RedisParametersCache {
	return &RedisParametersCache{rdb: rdb, ttl: ttl}
}

var _ portssvc.ParametersCache = (*RedisParametersCache)(nil)

func (c *RedisParametersCache) Get(ctx context.Context) (*domain.SystemParameters, error) {
	val, err := c.rdb.Get(ctx, parametersKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached parameters: %w", err)
	}
	var params domain.SystemParameters
	if err := json.Unmarshal(val, &params); err != nil {
		return nil, fmt.Errorf("failed to decode cached parameters: %w", err)
	}
	return &params, nil
}

func (c *RedisParametersCache) Set(ctx context.Context, params domain.SystemParameters) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	return c.rdb.Set(ctx, parametersKey, raw, c.ttl).Err()
}

func (c *RedisParametersCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, parametersKey).Err()
}

// LocalParametersCache keeps the snapshot in process memory. Used without Redis.
type LocalParametersCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	params  *domain.SystemParameters
	expires time.Time
	now     func() time.Time
}

// NewLocalParametersCache returns an in-process cache whose entry lives for ttl.
func NewLocalParametersCache(ttl time.Duration) *LocalParametersCache {
	return &LocalParametersCache{ttl: ttl, now: time.Now}
}

var _ portssvc.ParametersCache = (*LocalParametersCache)(nil)

func (c *LocalParametersCache) Get(_ context.Context) (*domain.SystemParameters, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.params == nil || !c.now().Before(c.expires) {
		return nil, nil
	}
	p := *c.params
	return &p, nil
}

func (c *LocalParametersCache) Set(_ context.Context, params domain.SystemParameters) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = &params
	c.expires = c.now().Add(c.ttl)
	return nil
}

func (c *LocalParametersCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = nil
	return nil
}
