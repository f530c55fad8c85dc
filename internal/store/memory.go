package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/chatmatch/backend/internal/domain"
)

// MemoryStore implements Repository with an in-process map. Sessions are
// stored as JSON round-trips so callers never share pointers with the
// store, matching the isolation of the durable drivers.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	touched  map[string]time.Time
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]byte),
		touched:  make(map[string]time.Time),
	}
}

// CreateSession implements Repository.
func (m *MemoryStore) CreateSession(ctx context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := s.ID()
	if _, exists := m.sessions[id]; exists {
		return ErrAlreadyExists
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.sessions[id] = raw
	m.touched[id] = time.Now()
	return nil
}

// GetSession implements Repository.
func (m *MemoryStore) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	raw, exists := m.sessions[id]
	m.mu.RUnlock()
	if !exists {
		return nil, nil
	}

	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSession implements Repository.
func (m *MemoryStore) UpdateSession(ctx context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.sessions[s.ID()] = raw
	m.touched[s.ID()] = time.Now()
	return nil
}

// DeleteSession implements Repository.
func (m *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	delete(m.touched, id)
	return nil
}

// ExpiredSessionIDs implements Repository.
func (m *MemoryStore) ExpiredSessionIDs(ctx context.Context, ttl time.Duration) ([]string, error) {
	threshold := time.Now().Add(-ttl)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, at := range m.touched {
		if at.Before(threshold) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Ping implements Repository.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close implements Repository.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = nil
	m.touched = nil
	return nil
}

var _ Repository = (*MemoryStore)(nil)
