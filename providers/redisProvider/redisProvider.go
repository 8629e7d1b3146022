package redisprovider

import (
	"context"
	"github.com/redis/go-redis/v9"
	"oamanager/providers"
	"time"
)

type RedisDbProvider struct {
	client *redis.Client
}

func NewRedisProvider(addr string) providers.RedisProvider {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	return &RedisDbProvider{
		client: rdb,
	}
}

func (r *RedisDbProvider) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get reports a missing key as providers.ErrCacheMiss.
func (r *RedisDbProvider) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", providers.ErrCacheMiss
	}
	return v, err
}

func (r *RedisDbProvider) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisDbProvider) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisDbProvider) Close() error {
	return r.client.Close()
}
