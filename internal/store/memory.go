package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"trigrams/internal/domain"
)

// memory is an in-memory map-based Store implementation. Records are kept as
// JSON blobs so callers can never mutate stored state outside Update.
type memory struct {
	mu      sync.RWMutex
	matches map[string][]byte // keyed by Match.ID
}

// NewMemory constructs a new in-memory Store
func NewMemory() Store {
	return &memory{matches: make(map[string][]byte)}
}

func (s *memory) Create(ctx context.Context, m *domain.Match) error {
	blob, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = blob
	return nil
}

func (s *memory) Get(ctx context.Context, id string) (*domain.Match, error) {
	s.mu.RLock()
	blob, ok := s.matches[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return decode(blob)
}

func (s *memory) Update(ctx context.Context, id string, fn func(*domain.Match) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	m, err := decode(blob)
	if err != nil {
		return err
	}
	if err := fn(m); err != nil {
		return err
	}
	next, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	s.matches[id] = next
	return nil
}

func (s *memory) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[id]; !ok {
		return domain.ErrMatchNotFound
	}
	delete(s.matches, id)
	return nil
}

func (s *memory) List(ctx context.Context) ([]*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Match, 0, len(s.matches))
	for _, blob := range s.matches {
		m, err := decode(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func decode(blob []byte) (*domain.Match, error) {
	var m domain.Match
	if err := json.Unmarshal(blob, &m); err != nil {
		return nil, fmt.Errorf("decode match: %w", err)
	}
	return &m, nil
}
