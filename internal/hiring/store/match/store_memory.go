package match

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"smarthire/internal/hiring"
	"smarthire/pkg/sentinel"
)

// InMemoryStore keeps matches in memory for development and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	matches map[string]*hiring.Match
	now     func() time.Time
}

// NewMemory constructs an empty in-memory match store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		matches: make(map[string]*hiring.Match),
		now:     time.Now,
	}
}

func (s *InMemoryStore) Create(_ context.Context, m *hiring.Match) error {
	if m == nil {
		return fmt.Errorf("match is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.matches[m.ID]; exists {
		return fmt.Errorf("match already exists: %w", sentinel.ErrAlreadyUsed)
	}
	cp := *m
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = s.now()
	}
	s.matches[m.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*hiring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.matches[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, fmt.Errorf("match not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string, limit, offset int) ([]hiring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.collect(func(m *hiring.Match) bool { return m.UserID == userID })
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) ListByCandidate(_ context.Context, candidateID, userID string) ([]hiring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.collect(func(m *hiring.Match) bool {
		return m.CandidateID == candidateID && m.UserID == userID
	})
	sortByPercentage(out)
	return out, nil
}

func (s *InMemoryStore) ListByJobDescription(_ context.Context, jobDescriptionID, userID string) ([]hiring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.collect(func(m *hiring.Match) bool {
		return m.JobDescriptionID == jobDescriptionID && m.UserID == userID
	})
	sortByPercentage(out)
	return out, nil
}

func (s *InMemoryStore) ListByRecommendation(_ context.Context, userID string, rec hiring.Recommendation) ([]hiring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.collect(func(m *hiring.Match) bool {
		return m.UserID == userID && m.Recommendation == rec
	})
	sortByPercentage(out)
	return out, nil
}

func (s *InMemoryStore) SetFeedback(_ context.Context, id string, fb hiring.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return fmt.Errorf("match not found: %w", sentinel.ErrNotFound)
	}
	if fb.Rating != nil {
		r := *fb.Rating
		m.UserRating = &r
	}
	if fb.Feedback != nil {
		f := *fb.Feedback
		m.UserFeedback = &f
	}
	if fb.Decision != nil {
		d := *fb.Decision
		m.UserDecision = &d
	}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[id]; !ok {
		return fmt.Errorf("match not found: %w", sentinel.ErrNotFound)
	}
	delete(s.matches, id)
	return nil
}

func (s *InMemoryStore) TopByUser(_ context.Context, userID string, minPercentage float64, limit int) ([]hiring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.collect(func(m *hiring.Match) bool {
		return m.UserID == userID && m.MatchPercentage >= minPercentage
	})
	sortByPercentage(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) AllByUser(_ context.Context, userID string) ([]hiring.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(m *hiring.Match) bool { return m.UserID == userID }), nil
}

func (s *InMemoryStore) collect(keep func(*hiring.Match) bool) []hiring.Match {
	var out []hiring.Match
	for _, m := range s.matches {
		if keep(m) {
			out = append(out, *m)
		}
	}
	return out
}

func sortByPercentage(ms []hiring.Match) {
	sort.Slice(ms, func(i, j int) bool {
		return ms[i].MatchPercentage > ms[j].MatchPercentage
	})
}
