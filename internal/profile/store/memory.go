package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"smarthire/internal/profile"
	"smarthire/pkg/sentinel"
)

// InMemoryStore keeps profiles in memory for development and tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*profile.Profile
}

// NewMemory constructs an empty in-memory profile store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]*profile.Profile)}
}

func (s *InMemoryStore) Create(_ context.Context, p *profile.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[p.ID]; exists {
		return fmt.Errorf("profile already exists: %w", sentinel.ErrAlreadyUsed)
	}
	for _, existing := range s.profiles {
		if strings.EqualFold(existing.Email, p.Email) {
			return fmt.Errorf("email already registered: %w", sentinel.ErrAlreadyUsed)
		}
	}

	now := time.Now()
	cp := *p
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.profiles[p.ID] = &cp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id string) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryStore) Update(_ context.Context, p *profile.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[p.ID]
	if !ok {
		return fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
	}
	cp := *p
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	s.profiles[p.ID] = &cp
	return nil
}

func (s *InMemoryStore) IncrementUsage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
	}
	p.MonthlyUsageCount++
	p.UpdatedAt = time.Now()
	return nil
}

func (s *InMemoryStore) UsageWithinLimit(_ context.Context, id string, limit int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return false, fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
	}
	if limit <= 0 {
		// Non-positive limit means unlimited.
		return true, nil
	}
	return p.MonthlyUsageCount < limit, nil
}

func (s *InMemoryStore) UpdateOnboarding(_ context.Context, id string, progress profile.OnboardingProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
	}
	p.Onboarding = progress
	p.UpdatedAt = time.Now()
	return nil
}
