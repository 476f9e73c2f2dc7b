package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const opTimeout = 5 * time.Second

// RedisStorage implements fiber.Storage on top of go-redis. It backs the
// session store so flash notices survive across instances.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

var _ fiber.Storage = (*RedisStorage)(nil)

// NewRedisStorage connects to redisURL and verifies the connection.
func NewRedisStorage(redisURL, prefix string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStorageFromClient(client, prefix), nil
}

// NewRedisStorageFromClient wraps an existing client.
func NewRedisStorageFromClient(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

// Get returns nil, nil for missing keys as fiber.Storage requires.
func (r *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get error: %w", err)
	}
	return val, nil
}

// Set stores val; exp of 0 means no expiration.
func (r *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.client.Set(ctx, r.prefix+key, val, exp).Err()
}

func (r *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.client.Del(ctx, r.prefix+key).Err()
}

// Reset removes every key under the prefix
func (r *RedisStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning keys: %w", err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("error deleting keys: %w", err)
		}
	}

	return nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}
