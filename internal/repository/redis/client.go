package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to addr. An unreachable server is not fatal: the client
// is closed and (nil, false) returned so the history is served from the store only.
func InitRedis(ctx context.Context, addr, password string) (*redis.Client, bool) {
	if addr == "" {
		log.Println("[REDIS] REDIS_URL not set, history cache disabled")
		return nil, false
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis: %v. Falling back to the history store only.", err)
		_ = client.Close()
		return nil, false
	}

	log.Println("[REDIS] Connected successfully")
	return client, true
}

// RedisCache wraps redis.Client to implement history.CacheRepository
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get returns "" and no error for a missing key
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}
