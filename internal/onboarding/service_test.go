package onboarding

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire/internal/profile"
	"smarthire/internal/profile/store"
	dErrors "smarthire/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *store.InMemoryStore) {
	t.Helper()
	profiles := store.NewMemory()
	require.NoError(t, profiles.Create(context.Background(), &profile.Profile{
		ID:    "u1",
		Email: "jane@example.com",
	}))
	return NewService(profiles, slog.Default()), profiles
}

func TestState_FreshProfile(t *testing.T) {
	svc, _ := newTestService(t)

	state, err := svc.State(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 0, state.CurrentStep)
	assert.Equal(t, TotalSteps, state.TotalSteps)
	assert.Empty(t, state.CompletedSteps)
	assert.False(t, state.Skipped)
	require.Len(t, state.Steps, 4)
	assert.Equal(t, "company-profile", state.Steps[0].ID)
	assert.False(t, state.Steps[0].IsCompleted)
}

func TestState_ProfileMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.State(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestContinue_StartsAtStepOne(t *testing.T) {
	svc, profiles := newTestService(t)

	state, err := svc.Continue(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, state.CurrentStep)
	assert.True(t, state.Steps[0].IsActive)
	assert.False(t, state.Steps[1].IsActive)

	p, err := profiles.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Onboarding.CurrentStep)
}

func TestSkip_ParksPastLastStep(t *testing.T) {
	svc, profiles := newTestService(t)

	state, err := svc.Skip(context.Background(), "u1")
	require.NoError(t, err)

	assert.True(t, state.Skipped)
	assert.Equal(t, TotalSteps, state.CurrentStep)
	for _, step := range state.Steps {
		assert.False(t, step.IsActive, "skipped wizard has no active step")
	}

	p, err := profiles.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, p.Onboarding.Skipped)
}

func TestCompleteStep_AdvancesCursor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Continue(ctx, "u1")
	require.NoError(t, err)

	state, err := svc.CompleteStep(ctx, "u1", "company-profile")
	require.NoError(t, err)

	assert.Equal(t, []string{"company-profile"}, state.CompletedSteps)
	assert.Equal(t, 2, state.CurrentStep)
	assert.True(t, state.Steps[0].IsCompleted)
	assert.True(t, state.Steps[1].IsActive)
}

func TestCompleteStep_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CompleteStep(ctx, "u1", "company-profile")
	require.NoError(t, err)
	state, err := svc.CompleteStep(ctx, "u1", "company-profile")
	require.NoError(t, err)

	assert.Equal(t, []string{"company-profile"}, state.CompletedSteps)
}

func TestCompleteStep_LastStepCapsCursor(t *testing.T) {
	svc, _ := newTestService(t)

	state, err := svc.CompleteStep(context.Background(), "u1", "first-ai-match")
	require.NoError(t, err)

	assert.Equal(t, TotalSteps, state.CurrentStep)
}

func TestCompleteStep_OutOfOrderKeepsFurthestCursor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CompleteStep(ctx, "u1", "upload-cv-demo")
	require.NoError(t, err)
	state, err := svc.CompleteStep(ctx, "u1", "company-profile")
	require.NoError(t, err)

	assert.Equal(t, 4, state.CurrentStep, "earlier step never moves the cursor back")
	assert.ElementsMatch(t, []string{"upload-cv-demo", "company-profile"}, state.CompletedSteps)
}

func TestCompleteStep_UnknownStep(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CompleteStep(context.Background(), "u1", "buy-coffee")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	assert.Equal(t, "step_id", dErrors.FieldOf(err))
}
