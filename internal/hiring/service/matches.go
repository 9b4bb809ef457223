package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"smarthire/internal/hiring"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
)

// CreateMatch stores a CV/JD comparison result and, best effort, records
// one use of the job description it was scored against.
func (s *Service) CreateMatch(ctx context.Context, m *hiring.Match) (*hiring.Match, error) {
	if m == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "match is required")
	}
	if m.UserID == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "user id is required", "user_id")
	}
	if !m.Recommendation.Valid() {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "unknown recommendation", "recommendation")
	}
	if m.MatchPercentage < 0 || m.MatchPercentage > 100 {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "match percentage must be between 0 and 100", "match_percentage")
	}

	if _, err := s.GetCandidate(ctx, m.CandidateID, m.UserID); err != nil {
		return nil, err
	}
	if _, err := s.GetJobDescription(ctx, m.JobDescriptionID, m.UserID); err != nil {
		return nil, err
	}
	if err := s.checkUsageLimit(ctx, m.UserID); err != nil {
		return nil, err
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	if err := s.matches.Create(ctx, m); err != nil {
		s.logger.Error("failed to create match",
			slog.String("user_id", m.UserID),
			slog.String("error", err.Error()))
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to save match")
	}

	// Usage bookkeeping must not fail the match itself.
	if err := s.jobDescs.IncrementUsage(ctx, m.JobDescriptionID); err != nil {
		s.logger.Warn("failed to record job description use",
			slog.String("job_description_id", m.JobDescriptionID),
			slog.String("error", err.Error()))
	}
	if s.usage != nil {
		if err := s.usage.IncrementUsage(ctx, m.UserID); err != nil {
			s.logger.Warn("failed to record monthly usage",
				slog.String("user_id", m.UserID),
				slog.String("error", err.Error()))
		}
	}

	s.metrics.IncrementMatchesCreated()
	s.logger.Info("match created",
		slog.String("match_id", m.ID),
		slog.String("user_id", m.UserID),
		slog.String("recommendation", string(m.Recommendation)))
	return m, nil
}

// GetMatch fetches a match owned by userID.
func (s *Service) GetMatch(ctx context.Context, id, userID string) (*hiring.Match, error) {
	m, err := s.matches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Match not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to load match")
	}
	if m.UserID != userID {
		return nil, dErrors.New(dErrors.CodeNotFound, "Match not found")
	}
	return m, nil
}

// ListMatches returns userID's matches, newest first.
func (s *Service) ListMatches(ctx context.Context, userID string, limit, offset int) ([]hiring.Match, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := s.matches.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list matches")
	}
	return out, nil
}

// ListMatchesForCandidate returns a candidate's matches, best score first.
func (s *Service) ListMatchesForCandidate(ctx context.Context, candidateID, userID string) ([]hiring.Match, error) {
	out, err := s.matches.ListByCandidate(ctx, candidateID, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list matches")
	}
	return out, nil
}

// ListMatchesForJobDescription returns a job description's matches, best
// score first.
func (s *Service) ListMatchesForJobDescription(ctx context.Context, jobDescriptionID, userID string) ([]hiring.Match, error) {
	out, err := s.matches.ListByJobDescription(ctx, jobDescriptionID, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list matches")
	}
	return out, nil
}

// ListMatchesByRecommendation filters userID's matches by verdict.
func (s *Service) ListMatchesByRecommendation(ctx context.Context, userID string, rec hiring.Recommendation) ([]hiring.Match, error) {
	if !rec.Valid() {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "unknown recommendation", "recommendation")
	}
	out, err := s.matches.ListByRecommendation(ctx, userID, rec)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list matches")
	}
	return out, nil
}

// SetMatchFeedback records the reviewer's verdict on a match. Only the
// fields present in fb are updated; a rating must be between 1 and 5.
func (s *Service) SetMatchFeedback(ctx context.Context, id, userID string, fb hiring.Feedback) error {
	if fb.Rating == nil && fb.Feedback == nil && fb.Decision == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "feedback is empty")
	}
	if fb.Rating != nil && (*fb.Rating < 1 || *fb.Rating > 5) {
		return dErrors.NewField(dErrors.CodeInvalidInput, "rating must be between 1 and 5", "user_rating")
	}

	if _, err := s.GetMatch(ctx, id, userID); err != nil {
		return err
	}
	if err := s.matches.SetFeedback(ctx, id, fb); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Match not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to save feedback")
	}

	s.logger.Info("match feedback recorded",
		slog.String("match_id", id),
		slog.String("user_id", userID))
	return nil
}

// DeleteMatch removes a match after checking ownership.
func (s *Service) DeleteMatch(ctx context.Context, id, userID string) error {
	if _, err := s.GetMatch(ctx, id, userID); err != nil {
		return err
	}
	if err := s.matches.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Match not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to delete match")
	}
	s.logger.Info("match deleted",
		slog.String("match_id", id),
		slog.String("user_id", userID))
	return nil
}

// TopMatches returns userID's highest-scoring matches at or above
// minPercentage, best first. Zero arguments fall back to the defaults
// (70, 10).
func (s *Service) TopMatches(ctx context.Context, userID string, minPercentage float64, limit int) ([]hiring.Match, error) {
	if minPercentage <= 0 {
		minPercentage = defaultTopPercentage
	}
	if minPercentage > 100 {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "minimum percentage must be between 0 and 100", "min_percentage")
	}
	if limit <= 0 {
		limit = defaultTopLimit
	}
	out, err := s.matches.TopByUser(ctx, userID, minPercentage, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list top matches")
	}
	return out, nil
}

// checkUsageLimit rejects the match when the user's tier allowance for the
// month is spent. Users without a profile row are not metered.
func (s *Service) checkUsageLimit(ctx context.Context, userID string) error {
	if s.usage == nil {
		return nil
	}
	p, err := s.usage.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to check usage limit")
	}
	ok, err := s.usage.UsageWithinLimit(ctx, userID, p.SubscriptionTier.UsageLimit())
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to check usage limit")
	}
	if !ok {
		return dErrors.New(dErrors.CodeRateLimited, "Monthly usage limit reached. Upgrade your plan to run more matches.")
	}
	return nil
}
