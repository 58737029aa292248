package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside read path: return the cached value
// under key if present, otherwise run fetch to populate dest and store
// the result with the given TTL. When no Redis client is configured the
// fetch runs directly, so callers never need to special-case a missing
// cache.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	val, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(val, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the database.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis down mid-flight: serve from the database.
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	if data, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}
