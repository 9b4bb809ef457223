package service

import (
	"context"
	"errors"
	"strings"

	"smarthire/internal/audit"
	"smarthire/internal/auth/models"
	"smarthire/internal/auth/provider"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
	"smarthire/pkg/validation"
)

// SignIn verifies credentials with the account provider and issues an
// access token.
func (s *Service) SignIn(ctx context.Context, req *models.SignInRequest) (*models.SignInData, error) {
	if err := validation.Validate(req); err != nil {
		s.metrics.IncrementSignInFailures()
		return nil, err
	}
	if s.jwt == nil {
		s.logFailure(ctx, audit.EventSignInFailed, "token_generator_missing", true)
		return nil, dErrors.New(dErrors.CodeInternal, "token generator not configured")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.accounts.VerifyCredentials(ctx, email, req.Password)
	if err != nil {
		s.metrics.IncrementSignInFailures()
		if provider.CodeOf(err) == provider.CodeInvalidCredentials {
			s.logFailure(ctx, audit.EventSignInFailed, "invalid_credentials", false, "email", email)
			s.logAudit(ctx, audit.EventSignInFailed, "", email, "invalid_credentials")
			return nil, dErrors.New(dErrors.CodeUnauthorized, "Invalid email or password")
		}
		s.logFailure(ctx, audit.EventSignInFailed, "provider_error", true, "email", email, "error", err)
		return nil, s.mapProviderError(err)
	}

	fullName := ""
	if p, err := s.profiles.FindByID(ctx, account.ID); err == nil {
		fullName = p.FullName
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		s.logFailure(ctx, audit.EventSignInFailed, "profile_lookup_failed", true, "user_id", account.ID, "error", err)
	}

	accessToken, err := s.jwt.GenerateAccessToken(account.ID, account.Email, fullName)
	if err != nil {
		s.metrics.IncrementSignInFailures()
		s.logFailure(ctx, audit.EventSignInFailed, "token_generation_failed", true, "user_id", account.ID, "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate access token")
	}

	s.metrics.IncrementSignIns()
	s.logAudit(ctx, audit.EventSignIn, account.ID, account.Email, "")

	return &models.SignInData{
		UserID:                    account.ID,
		Email:                     account.Email,
		FullName:                  fullName,
		AccessToken:               accessToken,
		RequiresEmailVerification: account.EmailConfirmedAt == nil,
	}, nil
}
