package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetCache loads a cached listing (current round, an agent's tickets, the
// admin user list) into dest. The bool reports whether the key was present;
// a miss is not an error.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache stores a listing as JSON under key for ttl. Callers pick short
// TTLs; mutations are expected to invalidate rather than wait them out.
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// DeleteCache drops a cached listing after a write touches its source rows
// (ticket issued or paid, user created, round replaced).
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
