// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/chronomap/internal/platform/apperr"
)

// MemoryStore keeps sessions in process memory. Used when no Redis URL is
// configured and in tests.
//
// Expired sessions are dropped when loaded, and swept from the whole map at
// most once per ttl on Save.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	nextSweep time.Time
	sessions  map[string]memoryEntry
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryOption configures a [MemoryStore].
type MemoryOption func(*MemoryStore)

// WithClock replaces the wall clock used for expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(store *MemoryStore) {
		store.now = now
	}
}

// NewMemoryStore returns an empty store. A zero ttl disables expiry.
func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	store := &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Len reports how many sessions are held, expired or not.
func (store *MemoryStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.sessions)
}

func (store *MemoryStore) Load(_ context.Context, sessionID string) (State, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.sessions[sessionID]
	if !ok {
		return State{}, apperr.NotFound("Session")
	}

	if store.ttl > 0 && store.now().After(entry.expiresAt) {
		delete(store.sessions, sessionID)
		return State{}, apperr.NotFound("Session")
	}

	return entry.state, nil
}

func (store *MemoryStore) Save(_ context.Context, sessionID string, state State) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	store.sweep(now)

	store.sessions[sessionID] = memoryEntry{
		state:     state,
		expiresAt: now.Add(store.ttl),
	}
	return nil
}

// sweep deletes expired entries. The caller holds mu.
func (store *MemoryStore) sweep(now time.Time) {
	if store.ttl <= 0 || now.Before(store.nextSweep) {
		return
	}

	for sessionID, entry := range store.sessions {
		if now.After(entry.expiresAt) {
			delete(store.sessions, sessionID)
		}
	}
	store.nextSweep = now.Add(store.ttl)
}
