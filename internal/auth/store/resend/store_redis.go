package resend

import (
	"context"
	"fmt"
	"strings"
	"time"

	platformredis "smarthire/internal/platform/redis"
)

// RedisStore counts resend attempts in Redis so the cap holds across
// instances. Keys expire with the window.
type RedisStore struct {
	client *platformredis.Client
}

func NewRedisStore(client *platformredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Increment(ctx context.Context, email string, ttl time.Duration) (int, error) {
	key := s.key(email)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing resend counter: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("setting resend counter expiry: %w", err)
		}
	}
	return int(count), nil
}

func (s *RedisStore) Reset(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("clearing resend counter: %w", err)
	}
	return nil
}

func (s *RedisStore) key(email string) string {
	return "resend:" + strings.ToLower(email)
}
