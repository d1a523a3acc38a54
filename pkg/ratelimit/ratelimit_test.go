package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_BurstThenReject(t *testing.T) {
	store, err := NewMemoryStore(1, time.Minute, 3)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := store.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}

	ok, err := store.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, ok)

	// другой ключ считается отдельно
	ok, err = store.Allow(ctx, "user:2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewMemoryStore_InvalidConfig(t *testing.T) {
	_, err := NewMemoryStore(0, time.Minute, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewMemoryStore(10, time.Minute, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewMemoryStore(10, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewRedisStore_InvalidConfig(t *testing.T) {
	_, err := NewRedisStore(nil, "rl:", 10, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func TestMemoryStore_EvictsIdleKeys(t *testing.T) {
	store, err := NewMemoryStore(60, time.Minute, 5)
	require.NoError(t, err)

	clock := &manualClock{now: time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)}
	store.now = clock.Now

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		_, err := store.Allow(ctx, fmt.Sprintf("ip:%d", i))
		require.NoError(t, err)
	}
	assert.Len(t, store.limiters, 100)

	// через окно простоя остаётся только ключ, который продолжает приходить
	clock.now = clock.now.Add(time.Minute)
	_, err = store.Allow(ctx, "ip:active")
	require.NoError(t, err)
	assert.Len(t, store.limiters, 1)
	assert.Contains(t, store.limiters, "ip:active")
}

func TestMemoryStore_EvictionKeepsLimit(t *testing.T) {
	store, err := NewMemoryStore(1, time.Hour, 2)
	require.NoError(t, err)

	clock := &manualClock{now: time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)}
	store.now = clock.Now
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := store.Allow(ctx, "user:1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	// активный ключ не удаляется, исчерпанный bucket не сбрасывается
	clock.now = clock.now.Add(30 * time.Minute)
	ok, err := store.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNeedsExpire(t *testing.T) {
	assert.True(t, needsExpire(-1))
	assert.True(t, needsExpire(-2))
	assert.False(t, needsExpire(30*time.Second))
}
