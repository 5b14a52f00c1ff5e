// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/chronomap/internal/platform/apperr"
	"github.com/taibuivan/chronomap/internal/platform/constants"
)

// RedisStore keeps sessions in Redis as JSON values with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a store backed by client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (store *RedisStore) Load(context context.Context, sessionID string) (State, error) {
	payload, err := store.client.Get(context, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, apperr.NotFound("Session")
	}
	if err != nil {
		return State{}, apperr.Internal(fmt.Errorf("selection: load session: %w", err))
	}

	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return State{}, apperr.Internal(fmt.Errorf("selection: decode session: %w", err))
	}

	return state, nil
}

func (store *RedisStore) Save(context context.Context, sessionID string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return apperr.Internal(fmt.Errorf("selection: encode session: %w", err))
	}

	if err := store.client.Set(context, sessionKey(sessionID), payload, store.ttl).Err(); err != nil {
		return apperr.Internal(fmt.Errorf("selection: save session: %w", err))
	}

	return nil
}

func sessionKey(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}
