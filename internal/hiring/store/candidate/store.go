// Package candidate persists uploaded CVs.
//
// Error Contract:
// - Find methods return sentinel.ErrNotFound (wrapped) when the row doesn't exist
// - Create returns sentinel.ErrAlreadyUsed (wrapped) on duplicate IDs
// - Infrastructure failures come back wrapped with context
package candidate

import (
	"context"
	"time"

	"smarthire/internal/hiring"
)

// Store is the persistence interface for candidates.
type Store interface {
	Create(ctx context.Context, c *hiring.Candidate) error
	FindByID(ctx context.Context, id string) (*hiring.Candidate, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.Candidate, error)
	Update(ctx context.Context, c *hiring.Candidate) error
	Delete(ctx context.Context, id string) error
	// SearchBySimilarity returns the user's candidates whose CV embedding
	// scores above threshold against the query embedding, best first.
	SearchBySimilarity(ctx context.Context, embedding []float32, userID string, threshold float64, limit int) ([]hiring.CandidateWithSimilarity, error)
	// NearExpiration returns candidates whose retention window ends within
	// daysAhead days.
	NearExpiration(ctx context.Context, userID string, daysAhead int) ([]hiring.Candidate, error)
	// SetExpiration replaces the candidate's retention deadline.
	SetExpiration(ctx context.Context, id string, expiresAt time.Time) error
	// ListBySkill returns the user's candidates carrying the extracted skill.
	ListBySkill(ctx context.Context, userID, skill string) ([]hiring.Candidate, error)
	// Stats counts the user's pool against the given month start and
	// expiry horizon.
	Stats(ctx context.Context, userID string, monthStart, expiresBefore time.Time) (hiring.CandidateStats, error)
}
