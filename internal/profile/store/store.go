// Package store persists user profiles.
//
// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested entity does not exist
// - Return sentinel.ErrAlreadyUsed (wrapped) on uniqueness conflicts
// - Return wrapped errors with context for infrastructure failures
package store

import (
	"context"

	"smarthire/internal/profile"
)

// Store is the persistence interface for profiles.
type Store interface {
	Create(ctx context.Context, p *profile.Profile) error
	FindByID(ctx context.Context, id string) (*profile.Profile, error)
	FindByEmail(ctx context.Context, email string) (*profile.Profile, error)
	Update(ctx context.Context, p *profile.Profile) error
	IncrementUsage(ctx context.Context, id string) error
	UsageWithinLimit(ctx context.Context, id string, limit int) (bool, error)
	UpdateOnboarding(ctx context.Context, id string, progress profile.OnboardingProgress) error
}
