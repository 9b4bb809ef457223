package jobdesc

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"smarthire/internal/hiring"
	"smarthire/pkg/sentinel"
)

// InMemoryStore keeps job descriptions in memory for development and tests.
type InMemoryStore struct {
	mu  sync.RWMutex
	jds map[string]*hiring.JobDescription
	now func() time.Time
}

// NewMemory constructs an empty in-memory job description store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		jds: make(map[string]*hiring.JobDescription),
		now: time.Now,
	}
}

func (s *InMemoryStore) Create(_ context.Context, jd *hiring.JobDescription) error {
	if jd == nil {
		return fmt.Errorf("job description is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jds[jd.ID]; exists {
		return fmt.Errorf("job description already exists: %w", sentinel.ErrAlreadyUsed)
	}
	cp := *jd
	now := s.now()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	s.jds[jd.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*hiring.JobDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if jd, ok := s.jds[id]; ok {
		cp := *jd
		return &cp, nil
	}
	return nil, fmt.Errorf("job description not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string, limit, offset int) ([]hiring.JobDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []hiring.JobDescription
	for _, jd := range s.jds {
		if jd.UserID == userID {
			out = append(out, *jd)
		}
	}
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

func (s *InMemoryStore) Update(_ context.Context, jd *hiring.JobDescription) error {
	if jd == nil {
		return fmt.Errorf("job description is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.jds[jd.ID]
	if !ok {
		return fmt.Errorf("job description not found: %w", sentinel.ErrNotFound)
	}
	cp := *jd
	cp.CreatedAt = existing.CreatedAt
	cp.TimesUsed = existing.TimesUsed
	cp.LastUsedAt = existing.LastUsedAt
	cp.UpdatedAt = s.now()
	s.jds[jd.ID] = &cp
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jds[id]; !ok {
		return fmt.Errorf("job description not found: %w", sentinel.ErrNotFound)
	}
	delete(s.jds, id)
	return nil
}

func (s *InMemoryStore) SearchBySimilarity(_ context.Context, embedding []float32, userID string, threshold float64, limit int) ([]hiring.JobDescriptionWithSimilarity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []hiring.JobDescriptionWithSimilarity
	for _, jd := range s.jds {
		if jd.UserID != userID || len(jd.DescriptionEmbedding) == 0 {
			continue
		}
		sim := hiring.CosineSimilarity(embedding, jd.DescriptionEmbedding)
		if sim <= threshold {
			continue
		}
		cp := *jd
		cp.DescriptionEmbedding = nil
		hits = append(hits, hiring.JobDescriptionWithSimilarity{JobDescription: cp, Similarity: sim})
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (s *InMemoryStore) MostUsed(_ context.Context, userID string, limit int) ([]hiring.JobDescription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []hiring.JobDescription
	for _, jd := range s.jds {
		if jd.UserID == userID {
			out = append(out, *jd)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TimesUsed != out[j].TimesUsed {
			return out[i].TimesUsed > out[j].TimesUsed
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) IncrementUsage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jd, ok := s.jds[id]
	if !ok {
		return fmt.Errorf("job description not found: %w", sentinel.ErrNotFound)
	}
	jd.TimesUsed++
	now := s.now()
	jd.LastUsedAt = &now
	jd.UpdatedAt = now
	return nil
}
