// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/dexview/internal/platform/constants"
)

// RedisRepository implements Repository with one Redis hash per visitor.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed Repository. Each write refreshes
// the hash expiry to ttl, so settings of visitors who never return age out.
func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{client: client, ttl: ttl}
}

/*
Get retrieves one field of the visitor's settings hash.

Parameters:
  - context: context.Context
  - visitorID: string
  - key: string

Returns:
  - string: Stored value
  - error: ErrNotFound or connectivity errors
*/
func (repository *RedisRepository) Get(context context.Context, visitorID, key string) (string, error) {

	// Get the field from the visitor hash
	value, err := repository.client.HGet(context, hashKey(visitorID), key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis_setting_get_failed: %w", err)
	}

	return value, nil
}

/*
Set writes one field of the visitor's settings hash and refreshes its expiry.

Parameters:
  - context: context.Context
  - visitorID: string
  - key: string
  - value: string

Returns:
  - error: Execution errors
*/
func (repository *RedisRepository) Set(context context.Context, visitorID, key, value string) error {
	hash := hashKey(visitorID)

	// Write and expire atomically
	pipeline := repository.client.TxPipeline()
	pipeline.HSet(context, hash, key, value)
	if repository.ttl > 0 {
		pipeline.Expire(context, hash, repository.ttl)
	}

	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_setting_set_failed: %w", err)
	}

	return nil
}

// hashKey returns the Redis key holding a visitor's settings.
func hashKey(visitorID string) string {
	return constants.RedisPrefixSetting + visitorID
}
