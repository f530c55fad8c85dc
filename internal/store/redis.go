package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chatmatch/backend/internal/domain"
)

const sessionKeyPrefix = "session:"

// RedisStore implements Repository on Redis. Sessions expire natively via
// key TTL, so the sweep worker has nothing to do for this driver.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed repository. ttl of zero means keys never
// expire.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Ping verifies Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// CreateSession stores a new session document.
func (s *RedisStore) CreateSession(ctx context.Context, sess *domain.Session) error {
	key := sessionKey(sess.ID())

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check session existence: %w", err)
	}
	if exists > 0 {
		return ErrAlreadyExists
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by id and refreshes its TTL. Returns nil if
// not found.
func (s *RedisStore) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	key := sessionKey(id)

	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("refresh session ttl: %w", err)
		}
	}
	return &sess, nil
}

// UpdateSession replaces the stored session document and resets its TTL.
func (s *RedisStore) UpdateSession(ctx context.Context, sess *domain.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID()), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// DeleteSession removes a session.
func (s *RedisStore) DeleteSession(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ExpiredSessionIDs returns nothing: Redis evicts expired sessions itself.
func (s *RedisStore) ExpiredSessionIDs(ctx context.Context, ttl time.Duration) ([]string, error) {
	return nil, nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Repository = (*RedisStore)(nil)
