// Package jobdesc persists reusable job descriptions.
//
// Error Contract:
// - Find methods return sentinel.ErrNotFound (wrapped) when the row doesn't exist
// - Create returns sentinel.ErrAlreadyUsed (wrapped) on duplicate IDs
// - Infrastructure failures come back wrapped with context
package jobdesc

import (
	"context"

	"smarthire/internal/hiring"
)

// Store is the persistence interface for job descriptions.
type Store interface {
	Create(ctx context.Context, jd *hiring.JobDescription) error
	FindByID(ctx context.Context, id string) (*hiring.JobDescription, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.JobDescription, error)
	Update(ctx context.Context, jd *hiring.JobDescription) error
	Delete(ctx context.Context, id string) error
	SearchBySimilarity(ctx context.Context, embedding []float32, userID string, threshold float64, limit int) ([]hiring.JobDescriptionWithSimilarity, error)
	// IncrementUsage bumps times_used and stamps last_used_at.
	IncrementUsage(ctx context.Context, id string) error
	// MostUsed returns the user's most reused postings, heaviest use first.
	MostUsed(ctx context.Context, userID string, limit int) ([]hiring.JobDescription, error)
}
