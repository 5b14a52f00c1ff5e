// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chronomap/internal/core/selection"
	"github.com/taibuivan/chronomap/internal/platform/apperr"
	"github.com/taibuivan/chronomap/pkg/pointer"
	"github.com/taibuivan/chronomap/pkg/uuid"
)

func sampleState() selection.State {
	return selection.State{
		Block:  pointer.To(8),
		Year:   pointer.To(1944),
		Search: selection.SearchMode{Kind: selection.SearchText, Text: "normandie", Input: "Normandie"},
	}
}

/*
TestMemoryStore covers round trips, misses and expiry.
*/
func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip", func(t *testing.T) {
		store := selection.NewMemoryStore(time.Hour)
		require.NoError(t, store.Save(ctx, "s1", sampleState()))

		got, err := store.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, sampleState(), got)
	})

	t.Run("Unknown session", func(t *testing.T) {
		store := selection.NewMemoryStore(time.Hour)

		_, err := store.Load(ctx, "missing")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("Expired session", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		store := selection.NewMemoryStore(time.Minute, selection.WithClock(clock.Now))
		require.NoError(t, store.Save(ctx, "s1", sampleState()))

		clock.Advance(2 * time.Minute)

		_, err := store.Load(ctx, "s1")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestMemoryStore_SweepsExpired drops sessions that are never loaded again.
*/
func TestMemoryStore_SweepsExpired(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := selection.NewMemoryStore(time.Minute, selection.WithClock(clock.Now))

	for i := range 1000 {
		require.NoError(t, store.Save(ctx, fmt.Sprintf("s%d", i), sampleState()))
	}
	require.Equal(t, 1000, store.Len())

	clock.Advance(time.Hour)
	require.NoError(t, store.Save(ctx, "fresh", sampleState()))

	assert.Equal(t, 1, store.Len())
	_, err := store.Load(ctx, "fresh")
	assert.NoError(t, err)
}

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time { return clock.now }

func (clock *fakeClock) Advance(d time.Duration) { clock.now = clock.now.Add(d) }

/*
TestRedisStore runs against a live server when REDIS_URL is set.
*/
func TestRedisStore(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set")
	}

	options, err := redis.ParseURL(redisURL)
	require.NoError(t, err)

	client := redis.NewClient(options)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := selection.NewRedisStore(client, time.Minute)
	sessionID := uuid.New()

	require.NoError(t, store.Save(ctx, sessionID, sampleState()))

	got, err := store.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)

	_, err = store.Load(ctx, uuid.New())
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
