package resend

import (
	"context"
	"strings"
	"sync"
	"time"
)

type window struct {
	count int
	start time.Time
}

// InMemoryStore keeps resend counters in process memory. Suitable for
// single-instance deployments and tests.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string]window
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		windows: make(map[string]window),
		now:     time.Now,
	}
}

func (s *InMemoryStore) Increment(_ context.Context, email string, ttl time.Duration) (int, error) {
	key := strings.ToLower(email)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= ttl {
		w = window{start: now}
	}
	w.count++
	s.windows[key] = w
	return w.count, nil
}

func (s *InMemoryStore) Reset(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, strings.ToLower(email))
	return nil
}
