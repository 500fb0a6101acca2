package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "clarity:session:"

// RedisKV keeps each session namespace in one redis hash. Every write
// refreshes the hash TTL, so idle sessions expire without a janitor.
type RedisKV struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisKV connects to the redis instance at url (redis://host:port/db).
func NewRedisKV(ctx context.Context, url string, ttl time.Duration) (*RedisKV, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisKVWithClient(client, "", ttl), nil
}

// NewRedisKVWithClient creates a store with an existing client
func NewRedisKVWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisKV {
	if keyPrefix == "" {
		keyPrefix = defaultRedisPrefix
	}
	return &RedisKV{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *RedisKV) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.keyPrefix+namespace, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session entry %s/%s: %w", namespace, key, err)
	}
	return value, true, nil
}

func (s *RedisKV) Set(ctx context.Context, namespace, key, value string) error {
	hash := s.keyPrefix + namespace
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hash, key, value)
		if s.ttl > 0 {
			pipe.Expire(ctx, hash, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write session entry %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *RedisKV) Delete(ctx context.Context, namespace, key string) error {
	if err := s.client.HDel(ctx, s.keyPrefix+namespace, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session entry %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Close releases the underlying client
func (s *RedisKV) Close() error {
	return s.client.Close()
}
