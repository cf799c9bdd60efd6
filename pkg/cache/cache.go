// Package cache provides a Redis-backed read cache for the public catalog.
//
// The storefront is read-heavy (every visitor loads the product grid) and
// write-light (an admin touches stock a few times a day), so listings are
// cached briefly and invalidated on every admin mutation. When Redis is
// unreachable the cache degrades to a no-op and every read goes to the DB.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aldeanavidad/tienda/config"
	"github.com/aldeanavidad/tienda/pkg/metrics"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// Connect initialises the Redis client and verifies the connection with a
// ping. On error the cache stays disabled; the caller decides whether that
// is worth a warning or an abort.
func Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis ping: %w", err)
	}

	rdb = client
	return nil
}

// Enabled reports whether a live Redis connection is available.
func Enabled() bool { return rdb != nil }

// Disconnect closes the client. Intended for shutdown and tests.
func Disconnect() {
	if rdb != nil {
		_ = rdb.Close()
		rdb = nil
	}
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss, error, or disabled cache.
func Get(key string, dest interface{}) bool {
	if rdb == nil {
		return false
	}

	val, err := rdb.Get(ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.Inc()
		return false
	}

	metrics.CacheHits.Inc()
	return true
}

// Set stores value under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return rdb.Set(ctx, key, data, ttl).Err()
}

// Del removes one or more keys.
func Del(keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// DelPrefix removes every key matching prefix*. Used to invalidate the
// per-category product listings without tracking each category key.
func DelPrefix(prefix string) error {
	if rdb == nil {
		return nil
	}

	iter := rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return Del(keys...)
}

// Remember returns the cached value for key, or runs fn, caches its result
// for ttl, and unmarshals it into dest.
func Remember(key string, ttl time.Duration, dest interface{}, fn func() (interface{}, error)) error {
	if Get(key, dest) {
		return nil
	}

	fresh, err := fn()
	if err != nil {
		return err
	}

	data, err := json.Marshal(fresh)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return err
	}

	if rdb != nil {
		_ = rdb.Set(ctx, key, data, ttl).Err()
	}
	return nil
}
