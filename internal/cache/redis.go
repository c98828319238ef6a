// Package cache memoises chat replies in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "axion:chat:"

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects using a redis:// URL and verifies the connection.
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, ttl: ttl}, nil
}

// Get returns the cached reply for message, if any.
func (r *Redis) Get(ctx context.Context, message string) (string, bool, error) {
	val, err := r.client.Get(ctx, Key(message)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, message, reply string) error {
	if err := r.client.Set(ctx, Key(message), reply, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Key normalises message so that case and surrounding or repeated
// whitespace do not split the cache.
func Key(message string) string {
	normalised := strings.ToLower(strings.Join(strings.Fields(message), " "))
	sum := sha256.Sum256([]byte(normalised))
	return keyPrefix + hex.EncodeToString(sum[:])
}
