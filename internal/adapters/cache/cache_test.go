package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalParametersCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c := NewLocalParametersCache(time.Minute)
	c.now = func() time.Time { return now }

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, domain.SystemParameters{UnitValue: decimal.NewFromInt(150)}))
	got, err = c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.NewFromInt(150).Equal(got.UnitValue))

	now = now.Add(time.Minute)
	got, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "entry must not outlive the staleness window")
}

func TestLocalParametersCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewLocalParametersCache(time.Hour)
	require.NoError(t, c.Set(ctx, domain.SystemParameters{UnitValue: decimal.NewFromInt(1)}))
	require.NoError(t, c.Invalidate(ctx))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	l := NewLocalLocker()
	l.now = func() time.Time { return now }

	first, err := l.Obtain(ctx, "request:1", 30*time.Second)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "request:1", 30*time.Second)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	other, err := l.Obtain(ctx, "request:2", 30*time.Second)
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, first.Release(ctx))
	second, err := l.Obtain(ctx, "request:1", 30*time.Second)
	require.NoError(t, err)

	// An expired lock can be taken over; the stale holder's release is ignored.
	now = now.Add(time.Minute)
	third, err := l.Obtain(ctx, "request:1", 30*time.Second)
	require.NoError(t, err)
	require.NoError(t, second.Release(ctx))
	_, err = l.Obtain(ctx, "request:1", 30*time.Second)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	require.NoError(t, third.Release(ctx))
}
