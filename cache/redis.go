package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const productTTL = time.Minute

// NewClientFromEnv returns a Redis client when REDIS_ADDR is set, nil
// otherwise. Callers must tolerate a nil client — caching is optional.
func NewClientFromEnv() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

// GetJSON loads a cached value into dest. Returns false on miss, nil client
// or decode failure.
func GetJSON(ctx context.Context, client *redis.Client, key string, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// SetJSON stores value under key with the product TTL. Errors are ignored;
// the store remains the source of truth.
func SetJSON(ctx context.Context, client *redis.Client, key string, value any) {
	if client == nil {
		return
	}
	if data, err := json.Marshal(value); err == nil {
		client.Set(ctx, key, data, productTTL)
	}
}
