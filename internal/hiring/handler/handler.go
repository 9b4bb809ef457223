// Package handler exposes the recruitment endpoints: candidates, job
// descriptions, matches, and match analytics. Every route requires an
// authenticated user; ownership is enforced in the service layer.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"smarthire/internal/hiring"
)

// Service defines the interface for recruitment operations.
type Service interface {
	CreateCandidate(ctx context.Context, c *hiring.Candidate) (*hiring.Candidate, error)
	GetCandidate(ctx context.Context, id, userID string) (*hiring.Candidate, error)
	ListCandidates(ctx context.Context, userID string, limit, offset int) ([]hiring.Candidate, error)
	UpdateCandidate(ctx context.Context, c *hiring.Candidate) error
	DeleteCandidate(ctx context.Context, id, userID string) error
	SearchCandidates(ctx context.Context, userID string, embedding []float32, threshold float64, limit int) ([]hiring.CandidateWithSimilarity, error)
	CandidatesNearExpiration(ctx context.Context, userID string, daysAhead int) ([]hiring.Candidate, error)
	ExtendCandidateExpiration(ctx context.Context, id, userID string, additionalDays int) (*hiring.Candidate, error)
	ListCandidatesBySkill(ctx context.Context, userID, skill string) ([]hiring.Candidate, error)
	CandidateStats(ctx context.Context, userID string) (*hiring.CandidateStats, error)

	CreateJobDescription(ctx context.Context, jd *hiring.JobDescription) (*hiring.JobDescription, error)
	GetJobDescription(ctx context.Context, id, userID string) (*hiring.JobDescription, error)
	ListJobDescriptions(ctx context.Context, userID string, limit, offset int) ([]hiring.JobDescription, error)
	UpdateJobDescription(ctx context.Context, jd *hiring.JobDescription) error
	DeleteJobDescription(ctx context.Context, id, userID string) error
	SearchJobDescriptions(ctx context.Context, userID string, embedding []float32, threshold float64, limit int) ([]hiring.JobDescriptionWithSimilarity, error)
	RecordJobDescriptionUse(ctx context.Context, id, userID string) error
	MostUsedJobDescriptions(ctx context.Context, userID string, limit int) ([]hiring.JobDescription, error)

	CreateMatch(ctx context.Context, m *hiring.Match) (*hiring.Match, error)
	GetMatch(ctx context.Context, id, userID string) (*hiring.Match, error)
	ListMatches(ctx context.Context, userID string, limit, offset int) ([]hiring.Match, error)
	ListMatchesForCandidate(ctx context.Context, candidateID, userID string) ([]hiring.Match, error)
	ListMatchesForJobDescription(ctx context.Context, jobDescriptionID, userID string) ([]hiring.Match, error)
	ListMatchesByRecommendation(ctx context.Context, userID string, rec hiring.Recommendation) ([]hiring.Match, error)
	SetMatchFeedback(ctx context.Context, id, userID string, fb hiring.Feedback) error
	DeleteMatch(ctx context.Context, id, userID string) error
	TopMatches(ctx context.Context, userID string, minPercentage float64, limit int) ([]hiring.Match, error)
	Analytics(ctx context.Context, userID string) (*hiring.Analytics, error)
}

// Handler handles the recruitment endpoints.
type Handler struct {
	hiring Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{hiring: svc, logger: logger}
}

// Register registers the recruitment routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/candidates", h.HandleListCandidates)
	r.Post("/candidates", h.HandleCreateCandidate)
	r.Get("/candidates/stats", h.HandleCandidateStats)
	r.Get("/candidates/{id}", h.HandleGetCandidate)
	r.Put("/candidates/{id}", h.HandleUpdateCandidate)
	r.Delete("/candidates/{id}", h.HandleDeleteCandidate)
	r.Post("/candidates/search", h.HandleSearchCandidates)
	r.Post("/candidates/{id}/extend", h.HandleExtendCandidate)

	r.Get("/job-descriptions", h.HandleListJobDescriptions)
	r.Post("/job-descriptions", h.HandleCreateJobDescription)
	r.Get("/job-descriptions/most-used", h.HandleMostUsedJobDescriptions)
	r.Get("/job-descriptions/{id}", h.HandleGetJobDescription)
	r.Put("/job-descriptions/{id}", h.HandleUpdateJobDescription)
	r.Delete("/job-descriptions/{id}", h.HandleDeleteJobDescription)
	r.Post("/job-descriptions/search", h.HandleSearchJobDescriptions)
	r.Post("/job-descriptions/{id}/use", h.HandleRecordJobDescriptionUse)

	r.Get("/matches", h.HandleListMatches)
	r.Post("/matches", h.HandleCreateMatch)
	r.Get("/matches/analytics", h.HandleAnalytics)
	r.Get("/matches/top", h.HandleTopMatches)
	r.Get("/matches/{id}", h.HandleGetMatch)
	r.Delete("/matches/{id}", h.HandleDeleteMatch)
	r.Post("/matches/{id}/feedback", h.HandleMatchFeedback)
}

// searchRequest is the shared similarity-search payload. Zero threshold and
// limit pick up the server defaults.
type searchRequest struct {
	Embedding []float32 `json:"embedding"`
	Threshold float64   `json:"threshold,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

// listResponse wraps collection payloads with their length so clients don't
// special-case null versus empty.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newListResponse[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}
