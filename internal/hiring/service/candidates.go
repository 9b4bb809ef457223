package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"smarthire/internal/hiring"
	"smarthire/internal/hiring/tracer"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
)

// CreateCandidate validates and stores a parsed CV. The ID and processing
// timestamp are assigned here when the caller leaves them empty.
func (s *Service) CreateCandidate(ctx context.Context, c *hiring.Candidate) (*hiring.Candidate, error) {
	if c == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "candidate is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "user id is required", "user_id")
	}
	if strings.TrimSpace(c.FullName) == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "full name is required", "full_name")
	}
	if strings.TrimSpace(c.CVText) == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "cv text is required", "cv_text")
	}
	if strings.TrimSpace(c.FileURL) == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "file url is required", "file_url")
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.ProcessedAt.IsZero() {
		c.ProcessedAt = s.now()
	}

	if err := s.candidates.Create(ctx, c); err != nil {
		s.logger.Error("failed to create candidate",
			slog.String("user_id", c.UserID),
			slog.String("error", err.Error()))
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to save candidate")
	}

	s.logger.Info("candidate created",
		slog.String("candidate_id", c.ID),
		slog.String("user_id", c.UserID))
	return c, nil
}

// GetCandidate fetches a candidate owned by userID. Rows owned by other
// users are reported as not found.
func (s *Service) GetCandidate(ctx context.Context, id, userID string) (*hiring.Candidate, error) {
	c, err := s.candidates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to load candidate")
	}
	if c.UserID != userID {
		return nil, dErrors.New(dErrors.CodeNotFound, "Candidate not found")
	}
	return c, nil
}

// ListCandidates returns userID's candidates, newest first.
func (s *Service) ListCandidates(ctx context.Context, userID string, limit, offset int) ([]hiring.Candidate, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := s.candidates.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list candidates")
	}
	return out, nil
}

// UpdateCandidate applies edits to a candidate after checking ownership.
func (s *Service) UpdateCandidate(ctx context.Context, c *hiring.Candidate) error {
	if c == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "candidate is required")
	}
	if strings.TrimSpace(c.FullName) == "" {
		return dErrors.NewField(dErrors.CodeInvalidInput, "full name is required", "full_name")
	}
	if strings.TrimSpace(c.CVText) == "" {
		return dErrors.NewField(dErrors.CodeInvalidInput, "cv text is required", "cv_text")
	}
	if _, err := s.GetCandidate(ctx, c.ID, c.UserID); err != nil {
		return err
	}
	if err := s.candidates.Update(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Candidate not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to update candidate")
	}
	return nil
}

// DeleteCandidate removes a candidate after checking ownership.
func (s *Service) DeleteCandidate(ctx context.Context, id, userID string) error {
	if _, err := s.GetCandidate(ctx, id, userID); err != nil {
		return err
	}
	if err := s.candidates.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Candidate not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to delete candidate")
	}
	s.logger.Info("candidate deleted",
		slog.String("candidate_id", id),
		slog.String("user_id", userID))
	return nil
}

// SearchCandidates runs a similarity search over userID's candidates.
// Zero threshold and limit fall back to the defaults (0.8, 10).
func (s *Service) SearchCandidates(ctx context.Context, userID string, embedding []float32, threshold float64, limit int) ([]hiring.CandidateWithSimilarity, error) {
	if len(embedding) == 0 {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "query embedding is required", "embedding")
	}
	if threshold <= 0 {
		threshold = defaultSearchThreshold
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanCandidateSearch,
		tracer.String(tracer.AttrUserID, userID),
		tracer.Float64(tracer.AttrThreshold, threshold),
		tracer.Int64(tracer.AttrLimit, int64(limit)))

	hits, err := s.candidates.SearchBySimilarity(ctx, embedding, userID, threshold, limit)
	span.SetAttributes(tracer.Int64(tracer.AttrResultCount, int64(len(hits))))
	span.End(err)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Candidate search failed")
	}

	s.metrics.IncrementSimilaritySearches("candidates")
	return hits, nil
}

// CandidatesNearExpiration lists candidates whose retention window closes
// within daysAhead days (default 7).
func (s *Service) CandidatesNearExpiration(ctx context.Context, userID string, daysAhead int) ([]hiring.Candidate, error) {
	if daysAhead <= 0 {
		daysAhead = defaultExpiryDaysAhead
	}
	out, err := s.candidates.NearExpiration(ctx, userID, daysAhead)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list expiring candidates")
	}
	return out, nil
}

// ExtendCandidateExpiration pushes a candidate's retention deadline to
// additionalDays from now (default 30). The new deadline is measured from
// the current time, not the old deadline, so a repeat extension is
// idempotent within the day.
func (s *Service) ExtendCandidateExpiration(ctx context.Context, id, userID string, additionalDays int) (*hiring.Candidate, error) {
	if additionalDays < 0 {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "additional days must not be negative", "additional_days")
	}
	if additionalDays == 0 {
		additionalDays = defaultExtensionDays
	}
	if _, err := s.GetCandidate(ctx, id, userID); err != nil {
		return nil, err
	}

	expiresAt := s.now().AddDate(0, 0, additionalDays)
	if err := s.candidates.SetExpiration(ctx, id, expiresAt); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Candidate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to extend candidate expiration")
	}

	s.logger.Info("candidate expiration extended",
		slog.String("candidate_id", id),
		slog.String("user_id", userID),
		slog.Int("additional_days", additionalDays))
	return s.GetCandidate(ctx, id, userID)
}

// ListCandidatesBySkill returns userID's candidates whose extracted skill
// list contains skill, newest first.
func (s *Service) ListCandidatesBySkill(ctx context.Context, userID, skill string) ([]hiring.Candidate, error) {
	if strings.TrimSpace(skill) == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "skill is required", "skill")
	}
	out, err := s.candidates.ListBySkill(ctx, userID, skill)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list candidates by skill")
	}
	return out, nil
}

// CandidateStats summarizes userID's candidate pool. "This month" starts at
// midnight on the first of the current month; "expiring soon" means within
// the next seven days.
func (s *Service) CandidateStats(ctx context.Context, userID string) (*hiring.CandidateStats, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	expiresBefore := now.AddDate(0, 0, defaultExpiryDaysAhead)

	stats, err := s.candidates.Stats(ctx, userID, monthStart, expiresBefore)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to load candidate stats")
	}
	return &stats, nil
}
