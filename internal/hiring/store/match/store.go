// Package match persists CV/JD comparison results.
//
// Error Contract:
// - Find methods return sentinel.ErrNotFound (wrapped) when the row doesn't exist
// - Create returns sentinel.ErrAlreadyUsed (wrapped) on duplicate IDs
// - Infrastructure failures come back wrapped with context
package match

import (
	"context"

	"smarthire/internal/hiring"
)

// Store is the persistence interface for matches.
type Store interface {
	Create(ctx context.Context, m *hiring.Match) error
	FindByID(ctx context.Context, id string) (*hiring.Match, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.Match, error)
	ListByCandidate(ctx context.Context, candidateID, userID string) ([]hiring.Match, error)
	ListByJobDescription(ctx context.Context, jobDescriptionID, userID string) ([]hiring.Match, error)
	ListByRecommendation(ctx context.Context, userID string, rec hiring.Recommendation) ([]hiring.Match, error)
	// SetFeedback applies the non-nil feedback fields to the match.
	SetFeedback(ctx context.Context, id string, fb hiring.Feedback) error
	Delete(ctx context.Context, id string) error
	// TopByUser returns the user's matches scoring at least minPercentage,
	// best first.
	TopByUser(ctx context.Context, userID string, minPercentage float64, limit int) ([]hiring.Match, error)
	// AllByUser returns every match for the user, for analytics aggregation.
	AllByUser(ctx context.Context, userID string) ([]hiring.Match, error)
}
