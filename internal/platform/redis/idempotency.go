// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/encore/internal/platform/constants"
)

// IdempotencyStore implements middleware.KeyStore on top of SET NX.
type IdempotencyStore struct {
	client redis.Cmdable
}

// NewIdempotencyStore creates a Redis-backed idempotency key store.
func NewIdempotencyStore(client redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Claim stores the key only if it is absent and reports whether it did.
func (store *IdempotencyStore) Claim(context stdctx.Context, key string, ttl time.Duration) (bool, error) {
	claimed, err := store.client.SetNX(context, constants.RedisPrefixIdempotency+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_idempotency_claim_failed: %w", err)
	}
	return claimed, nil
}

// Release deletes the key.
func (store *IdempotencyStore) Release(context stdctx.Context, key string) error {
	if err := store.client.Del(context, constants.RedisPrefixIdempotency+key).Err(); err != nil {
		return fmt.Errorf("redis_idempotency_release_failed: %w", err)
	}
	return nil
}
