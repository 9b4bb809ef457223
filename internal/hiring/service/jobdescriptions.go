package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"smarthire/internal/hiring"
	"smarthire/internal/hiring/tracer"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
)

// CreateJobDescription validates and stores a reusable job posting.
func (s *Service) CreateJobDescription(ctx context.Context, jd *hiring.JobDescription) (*hiring.JobDescription, error) {
	if jd == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "job description is required")
	}
	if strings.TrimSpace(jd.UserID) == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "user id is required", "user_id")
	}
	if strings.TrimSpace(jd.Title) == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "title is required", "title")
	}
	if strings.TrimSpace(jd.Description) == "" {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "description is required", "description")
	}

	if jd.ID == "" {
		jd.ID = uuid.New().String()
	}

	if err := s.jobDescs.Create(ctx, jd); err != nil {
		s.logger.Error("failed to create job description",
			slog.String("user_id", jd.UserID),
			slog.String("error", err.Error()))
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to save job description")
	}

	s.logger.Info("job description created",
		slog.String("job_description_id", jd.ID),
		slog.String("user_id", jd.UserID))
	return jd, nil
}

// GetJobDescription fetches a job description owned by userID.
func (s *Service) GetJobDescription(ctx context.Context, id, userID string) (*hiring.JobDescription, error) {
	jd, err := s.jobDescs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Job description not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to load job description")
	}
	if jd.UserID != userID {
		return nil, dErrors.New(dErrors.CodeNotFound, "Job description not found")
	}
	return jd, nil
}

// ListJobDescriptions returns userID's job descriptions, newest first.
func (s *Service) ListJobDescriptions(ctx context.Context, userID string, limit, offset int) ([]hiring.JobDescription, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := s.jobDescs.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list job descriptions")
	}
	return out, nil
}

// UpdateJobDescription applies edits to a job description after checking
// ownership. Usage counters are preserved by the store.
func (s *Service) UpdateJobDescription(ctx context.Context, jd *hiring.JobDescription) error {
	if jd == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "job description is required")
	}
	if _, err := s.GetJobDescription(ctx, jd.ID, jd.UserID); err != nil {
		return err
	}
	if err := s.jobDescs.Update(ctx, jd); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Job description not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to update job description")
	}
	return nil
}

// DeleteJobDescription removes a job description after checking ownership.
func (s *Service) DeleteJobDescription(ctx context.Context, id, userID string) error {
	if _, err := s.GetJobDescription(ctx, id, userID); err != nil {
		return err
	}
	if err := s.jobDescs.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Job description not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to delete job description")
	}
	s.logger.Info("job description deleted",
		slog.String("job_description_id", id),
		slog.String("user_id", userID))
	return nil
}

// SearchJobDescriptions runs a similarity search over userID's job
// descriptions. Zero threshold and limit fall back to the defaults.
func (s *Service) SearchJobDescriptions(ctx context.Context, userID string, embedding []float32, threshold float64, limit int) ([]hiring.JobDescriptionWithSimilarity, error) {
	if len(embedding) == 0 {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "query embedding is required", "embedding")
	}
	if threshold <= 0 {
		threshold = defaultSearchThreshold
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanJobSearch,
		tracer.String(tracer.AttrUserID, userID),
		tracer.Float64(tracer.AttrThreshold, threshold),
		tracer.Int64(tracer.AttrLimit, int64(limit)))

	hits, err := s.jobDescs.SearchBySimilarity(ctx, embedding, userID, threshold, limit)
	span.SetAttributes(tracer.Int64(tracer.AttrResultCount, int64(len(hits))))
	span.End(err)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Job description search failed")
	}

	s.metrics.IncrementSimilaritySearches("job_descriptions")
	return hits, nil
}

// MostUsedJobDescriptions returns userID's most reused postings, heaviest
// use first. Zero limit falls back to the default (5).
func (s *Service) MostUsedJobDescriptions(ctx context.Context, userID string, limit int) ([]hiring.JobDescription, error) {
	if limit <= 0 {
		limit = defaultMostUsedLimit
	}
	out, err := s.jobDescs.MostUsed(ctx, userID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to list most used job descriptions")
	}
	return out, nil
}

// RecordJobDescriptionUse bumps the usage counter after a matching run.
func (s *Service) RecordJobDescriptionUse(ctx context.Context, id, userID string) error {
	if _, err := s.GetJobDescription(ctx, id, userID); err != nil {
		return err
	}
	if err := s.jobDescs.IncrementUsage(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to record job description use")
	}
	return nil
}
