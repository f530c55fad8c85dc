// Package store provides session persistence behind a driver-agnostic
// Repository interface with memory, sqlite and redis implementations.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chatmatch/backend/internal/config"
	"github.com/chatmatch/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ErrAlreadyExists is returned when creating a session whose id is taken.
var ErrAlreadyExists = errors.New("session already exists")

// Repository persists sessions as whole documents keyed by session id. The
// session engine is the only writer; reads return (nil, nil) when the id is
// unknown.
type Repository interface {
	// CreateSession stores a new session. Fails with ErrAlreadyExists if
	// the id is taken.
	CreateSession(ctx context.Context, s *domain.Session) error

	// GetSession retrieves a session by id. Returns nil if not found.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// UpdateSession replaces the stored session document.
	UpdateSession(ctx context.Context, s *domain.Session) error

	// DeleteSession removes a session.
	DeleteSession(ctx context.Context, id string) error

	// ExpiredSessionIDs returns ids of sessions idle longer than ttl.
	// Drivers with native expiry may always return an empty slice.
	ExpiredSessionIDs(ctx context.Context, ttl time.Duration) ([]string, error)

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error

	// Close closes the backing connection.
	Close() error
}

// New selects and constructs a Repository driver from configuration.
func New(cfg *config.Config) (Repository, error) {
	switch cfg.StoreDriver {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(cfg.DBPath)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		return NewRedis(client, cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
