package onboarding

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"smarthire/internal/profile"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
)

// ProfileStore is the slice of the profile store the wizard needs.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*profile.Profile, error)
	UpdateOnboarding(ctx context.Context, id string, progress profile.OnboardingProgress) error
}

// State is the wizard view for one user.
type State struct {
	CurrentStep    int        `json:"current_step"`
	TotalSteps     int        `json:"total_steps"`
	CompletedSteps []string   `json:"completed_steps"`
	Skipped        bool       `json:"skipped"`
	Steps          []StepView `json:"steps"`
}

type Service struct {
	profiles ProfileStore
	logger   *slog.Logger
}

func NewService(profiles ProfileStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{profiles: profiles, logger: logger}
}

// State assembles the wizard view from the stored progress.
func (s *Service) State(ctx context.Context, userID string) (*State, error) {
	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildState(p.Onboarding), nil
}

// Continue starts (or restarts) the wizard at step one with a clean slate.
func (s *Service) Continue(ctx context.Context, userID string) (*State, error) {
	progress := profile.OnboardingProgress{
		CurrentStep:    1,
		CompletedSteps: []string{},
	}
	if err := s.saveProgress(ctx, userID, progress); err != nil {
		return nil, err
	}
	return buildState(progress), nil
}

// Skip marks the wizard as skipped, parking the cursor past the last step.
func (s *Service) Skip(ctx context.Context, userID string) (*State, error) {
	progress := profile.OnboardingProgress{
		CurrentStep:    TotalSteps,
		CompletedSteps: []string{},
		Skipped:        true,
	}
	if err := s.saveProgress(ctx, userID, progress); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "onboarding skipped", slog.String("user_id", userID))
	return buildState(progress), nil
}

// CompleteStep records stepID as done and advances the cursor past it.
// Completing an already-completed step is a no-op.
func (s *Service) CompleteStep(ctx context.Context, userID, stepID string) (*State, error) {
	step, ok := stepByID(stepID)
	if !ok {
		return nil, dErrors.NewField(dErrors.CodeInvalidInput, "unknown onboarding step", "step_id")
	}

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := p.Onboarding
	if !slices.Contains(progress.CompletedSteps, stepID) {
		progress.CompletedSteps = append(progress.CompletedSteps, stepID)
	}
	if next := step.StepNumber + 1; next > progress.CurrentStep {
		progress.CurrentStep = min(next, TotalSteps)
	}

	if err := s.saveProgress(ctx, userID, progress); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "onboarding step completed",
		slog.String("user_id", userID),
		slog.String("step_id", stepID),
	)
	return buildState(progress), nil
}

func (s *Service) loadProfile(ctx context.Context, userID string) (*profile.Profile, error) {
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to load onboarding progress")
	}
	return p, nil
}

func (s *Service) saveProgress(ctx context.Context, userID string, progress profile.OnboardingProgress) error {
	if err := s.profiles.UpdateOnboarding(ctx, userID, progress); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Profile not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Unable to update onboarding progress")
	}
	return nil
}

func buildState(progress profile.OnboardingProgress) *State {
	views := make([]StepView, 0, len(steps))
	for _, step := range steps {
		views = append(views, StepView{
			Step:        step,
			IsCompleted: slices.Contains(progress.CompletedSteps, step.ID),
			IsActive:    !progress.Skipped && step.StepNumber == progress.CurrentStep,
		})
	}
	completed := progress.CompletedSteps
	if completed == nil {
		completed = []string{}
	}
	return &State{
		CurrentStep:    progress.CurrentStep,
		TotalSteps:     TotalSteps,
		CompletedSteps: completed,
		Skipped:        progress.Skipped,
		Steps:          views,
	}
}
