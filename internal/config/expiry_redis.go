package config

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const redisExpiryKey = "jwtsession:settings:expiry_minutes"

// RedisExpirySource persists the expiry setting in Redis so every instance
// of the service sees admin updates.
type RedisExpirySource struct {
	client redis.UniversalClient
}

var _ ExpirySource = (*RedisExpirySource)(nil)

// NewRedisExpirySource creates a Redis-backed expiry source.
func NewRedisExpirySource(client redis.UniversalClient) *RedisExpirySource {
	return &RedisExpirySource{client: client}
}

// ExpiryMinutes returns the stored setting. A missing or malformed value is
// treated as unconfigured and falls back to DefaultExpiryMinutes.
func (s *RedisExpirySource) ExpiryMinutes(ctx context.Context) (int, error) {
	raw, err := s.client.Get(ctx, redisExpiryKey).Result()
	if err == redis.Nil {
		return DefaultExpiryMinutes, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "[ExpiryMinutes] redis read failed")
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return DefaultExpiryMinutes, nil
	}
	return minutes, nil
}

func (s *RedisExpirySource) SetExpiryMinutes(ctx context.Context, minutes int) error {
	if err := s.client.Set(ctx, redisExpiryKey, strconv.Itoa(minutes), 0).Err(); err != nil {
		return errors.Wrap(err, "[SetExpiryMinutes] redis write failed")
	}
	return nil
}
