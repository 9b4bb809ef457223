// Package service owns the recruitment workflows: candidate and job
// description management, similarity search, match records, and match
// analytics. Embeddings and match scores arrive from the caller; the
// service validates, persists, and aggregates them.
package service

import (
	"context"
	"log/slog"
	"time"

	"smarthire/internal/hiring"
	"smarthire/internal/hiring/tracer"
	"smarthire/internal/platform/metrics"
	"smarthire/internal/profile"
)

// CandidateStore defines the persistence interface for candidates.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when
// the row doesn't exist.
type CandidateStore interface {
	Create(ctx context.Context, c *hiring.Candidate) error
	FindByID(ctx context.Context, id string) (*hiring.Candidate, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.Candidate, error)
	Update(ctx context.Context, c *hiring.Candidate) error
	Delete(ctx context.Context, id string) error
	SearchBySimilarity(ctx context.Context, embedding []float32, userID string, threshold float64, limit int) ([]hiring.CandidateWithSimilarity, error)
	NearExpiration(ctx context.Context, userID string, daysAhead int) ([]hiring.Candidate, error)
	SetExpiration(ctx context.Context, id string, expiresAt time.Time) error
	ListBySkill(ctx context.Context, userID, skill string) ([]hiring.Candidate, error)
	Stats(ctx context.Context, userID string, monthStart, expiresBefore time.Time) (hiring.CandidateStats, error)
}

// JobDescriptionStore defines the persistence interface for job descriptions.
type JobDescriptionStore interface {
	Create(ctx context.Context, jd *hiring.JobDescription) error
	FindByID(ctx context.Context, id string) (*hiring.JobDescription, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.JobDescription, error)
	Update(ctx context.Context, jd *hiring.JobDescription) error
	Delete(ctx context.Context, id string) error
	SearchBySimilarity(ctx context.Context, embedding []float32, userID string, threshold float64, limit int) ([]hiring.JobDescriptionWithSimilarity, error)
	IncrementUsage(ctx context.Context, id string) error
	MostUsed(ctx context.Context, userID string, limit int) ([]hiring.JobDescription, error)
}

// MatchStore defines the persistence interface for match records.
type MatchStore interface {
	Create(ctx context.Context, m *hiring.Match) error
	FindByID(ctx context.Context, id string) (*hiring.Match, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.Match, error)
	ListByCandidate(ctx context.Context, candidateID, userID string) ([]hiring.Match, error)
	ListByJobDescription(ctx context.Context, jobDescriptionID, userID string) ([]hiring.Match, error)
	ListByRecommendation(ctx context.Context, userID string, rec hiring.Recommendation) ([]hiring.Match, error)
	SetFeedback(ctx context.Context, id string, fb hiring.Feedback) error
	Delete(ctx context.Context, id string) error
	TopByUser(ctx context.Context, userID string, minPercentage float64, limit int) ([]hiring.Match, error)
	AllByUser(ctx context.Context, userID string) ([]hiring.Match, error)
}

// UsageStore is the slice of the profile store the match workflow needs to
// enforce subscription limits. A nil store disables the gate.
type UsageStore interface {
	FindByID(ctx context.Context, id string) (*profile.Profile, error)
	UsageWithinLimit(ctx context.Context, id string, limit int) (bool, error)
	IncrementUsage(ctx context.Context, id string) error
}

const (
	defaultSearchThreshold = 0.8
	defaultSearchLimit     = 10
	defaultListLimit       = 20
	defaultExpiryDaysAhead = 7
	defaultExtensionDays   = 30
	defaultTopPercentage   = 70
	defaultTopLimit        = 10
	defaultMostUsedLimit   = 5
)

type Service struct {
	candidates CandidateStore
	jobDescs   JobDescriptionStore
	matches    MatchStore
	usage      UsageStore

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithUsageStore turns on subscription-limit enforcement for match
// creation. Without it matches are not metered.
func WithUsageStore(u UsageStore) Option {
	return func(s *Service) {
		s.usage = u
	}
}

func NewService(candidates CandidateStore, jobDescs JobDescriptionStore, matches MatchStore, opts ...Option) *Service {
	svc := &Service{
		candidates: candidates,
		jobDescs:   jobDescs,
		matches:    matches,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracer.NewNoop()
	}
	return svc
}
