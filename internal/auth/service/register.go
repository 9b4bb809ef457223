package service

import (
	"context"
	"errors"
	"strings"

	"smarthire/internal/audit"
	"smarthire/internal/auth/models"
	"smarthire/internal/auth/provider"
	"smarthire/internal/profile"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
	"smarthire/pkg/validation"
)

// SignUpWithCompanyProfile registers a new recruiter account and creates the
// matching profile row. Account creation and profile creation are separate
// writes: the profile write is best-effort, and its outcome is reported on
// the returned data rather than failing the registration.
func (s *Service) SignUpWithCompanyProfile(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationData, error) {
	if err := validation.Validate(req); err != nil {
		field := dErrors.FieldOf(err)
		s.metrics.IncrementValidationFailure(field)
		s.metrics.IncrementRegistrationFailure(string(dErrors.CodeValidation))
		s.logFailure(ctx, audit.EventRegistrationFailed, "schema_validation", false, "field", field)
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Pre-flight duplicate check against our own profile table. The provider
	// enforces uniqueness too, so a lookup failure here is not fatal.
	if _, err := s.profiles.FindByEmail(ctx, email); err == nil {
		s.metrics.IncrementRegistrationFailure(string(dErrors.CodeUserExists))
		s.logFailure(ctx, audit.EventRegistrationFailed, "email_taken", false, "email", email)
		return nil, dErrors.NewField(dErrors.CodeUserExists, "An account with this email already exists", "email")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		s.logFailure(ctx, audit.EventRegistrationFailed, "profile_lookup_failed", true, "email", email, "error", err)
	}

	account, err := s.accounts.CreateAccount(ctx, provider.CreateAccountParams{
		Email:    email,
		Password: req.Password,
		Metadata: provider.Metadata{
			FullName:    req.FullName,
			Role:        "user",
			Company:     req.CompanyName,
			CompanySize: string(req.CompanySize),
		},
		EmailRedirectTo: s.verifyRedirectURL,
	})
	if err != nil {
		domainErr := s.mapProviderError(err)
		var de *dErrors.Error
		if errors.As(domainErr, &de) {
			s.metrics.IncrementRegistrationFailure(string(de.Code))
		}
		s.logFailure(ctx, audit.EventRegistrationFailed, string(provider.CodeOf(err)), true, "email", email, "error", err)
		return nil, domainErr
	}

	data := &models.RegistrationData{
		UserID:                    account.ID,
		Email:                     account.Email,
		RequiresEmailVerification: account.EmailConfirmedAt == nil,
		ProfileCreated:            true,
	}

	now := s.now()
	err = s.profiles.Create(ctx, &profile.Profile{
		ID:                     account.ID,
		Email:                  account.Email,
		FullName:               req.FullName,
		Company:                req.CompanyName,
		SubscriptionTier:       profile.TierFree,
		MonthlyUsageCount:      0,
		UsageResetDate:         profile.NextUsageResetDate(now),
		PreferredAnalysisDepth: profile.DepthStandard,
		CreatedAt:              now,
		UpdatedAt:              now,
	})
	if err != nil {
		// The auth account exists; registration still succeeds. A cleanup or
		// retry job reconciles orphaned accounts.
		data.ProfileCreated = false
		s.metrics.IncrementProfileCreateFailures()
		s.logAudit(ctx, audit.EventProfileCreateFail, account.ID, account.Email, "profile_create_failed")
		s.logFailure(ctx, audit.EventProfileCreateFail, "store_write_failed", true, "user_id", account.ID, "error", err)
	}

	s.metrics.IncrementRegistrations()
	s.logAudit(ctx, audit.EventUserRegistered, account.ID, account.Email, "")

	return data, nil
}

// mapProviderError converts provider failure codes into the stable
// registration error codes surfaced to clients.
func (s *Service) mapProviderError(err error) error {
	switch provider.CodeOf(err) {
	case provider.CodeEmailTaken:
		return dErrors.NewField(dErrors.CodeUserExists, "An account with this email already exists", "email")
	case provider.CodeWeakPassword:
		return &dErrors.Error{Code: dErrors.CodeWeakPassword, Message: err.Error(), Field: "password", Err: err}
	case provider.CodeNetwork:
		return dErrors.Wrap(err, dErrors.CodeNetwork, "Network error. Please check your connection and try again.")
	case provider.CodeRateLimited:
		return dErrors.Wrap(err, dErrors.CodeRateLimited, "Too many requests. Please wait a moment before trying again.")
	default:
		return &dErrors.Error{Code: dErrors.CodeUnknown, Message: err.Error(), Err: err}
	}
}
