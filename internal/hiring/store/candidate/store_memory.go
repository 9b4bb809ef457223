package candidate

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"smarthire/internal/hiring"
	"smarthire/pkg/sentinel"
)

// InMemoryStore keeps candidates in memory for development and tests.
type InMemoryStore struct {
	mu         sync.RWMutex
	candidates map[string]*hiring.Candidate
	now        func() time.Time
}

// NewMemory constructs an empty in-memory candidate store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		candidates: make(map[string]*hiring.Candidate),
		now:        time.Now,
	}
}

func (s *InMemoryStore) Create(_ context.Context, c *hiring.Candidate) error {
	if c == nil {
		return fmt.Errorf("candidate is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.candidates[c.ID]; exists {
		return fmt.Errorf("candidate already exists: %w", sentinel.ErrAlreadyUsed)
	}
	cp := *c
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = s.now()
	}
	s.candidates[c.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*hiring.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.candidates[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string, limit, offset int) ([]hiring.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []hiring.Candidate
	for _, c := range s.candidates {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, limit, offset), nil
}

func (s *InMemoryStore) Update(_ context.Context, c *hiring.Candidate) error {
	if c == nil {
		return fmt.Errorf("candidate is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.candidates[c.ID]
	if !ok {
		return fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
	}
	cp := *c
	cp.CreatedAt = existing.CreatedAt
	s.candidates[c.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[id]; !ok {
		return fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
	}
	delete(s.candidates, id)
	return nil
}

func (s *InMemoryStore) SearchBySimilarity(_ context.Context, embedding []float32, userID string, threshold float64, limit int) ([]hiring.CandidateWithSimilarity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []hiring.CandidateWithSimilarity
	for _, c := range s.candidates {
		if c.UserID != userID || len(c.CVEmbedding) == 0 {
			continue
		}
		sim := hiring.CosineSimilarity(embedding, c.CVEmbedding)
		if sim <= threshold {
			continue
		}
		cp := *c
		cp.CVEmbedding = nil
		hits = append(hits, hiring.CandidateWithSimilarity{Candidate: cp, Similarity: sim})
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *InMemoryStore) NearExpiration(_ context.Context, userID string, daysAhead int) ([]hiring.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().AddDate(0, 0, daysAhead)
	var out []hiring.Candidate
	for _, c := range s.candidates {
		if c.UserID != userID || c.ExpiresAt == nil {
			continue
		}
		if c.ExpiresAt.Before(cutoff) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ExpiresAt.Before(*out[j].ExpiresAt)
	})
	return out, nil
}

func (s *InMemoryStore) SetExpiration(_ context.Context, id string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
	}
	t := expiresAt
	c.ExpiresAt = &t
	return nil
}

func (s *InMemoryStore) ListBySkill(_ context.Context, userID, skill string) ([]hiring.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []hiring.Candidate
	for _, c := range s.candidates {
		if c.UserID == userID && slices.Contains(c.ExtractedSkills, skill) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) Stats(_ context.Context, userID string, monthStart, expiresBefore time.Time) (hiring.CandidateStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats hiring.CandidateStats
	for _, c := range s.candidates {
		if c.UserID != userID {
			continue
		}
		stats.TotalCandidates++
		if !c.CreatedAt.Before(monthStart) {
			stats.CandidatesThisMonth++
		}
		if c.ExpiresAt != nil && !c.ExpiresAt.After(expiresBefore) {
			stats.ExpiringSoon++
		}
	}
	return stats, nil
}

func paginate(cs []hiring.Candidate, limit, offset int) []hiring.Candidate {
	if offset >= len(cs) {
		return nil
	}
	cs = cs[offset:]
	if limit > 0 && len(cs) > limit {
		cs = cs[:limit]
	}
	return cs
}
