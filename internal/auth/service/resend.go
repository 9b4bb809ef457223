package service

import (
	"context"
	"strings"

	"smarthire/internal/audit"
	"smarthire/internal/auth/models"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/validation"
)

// ResendVerification sends another signup verification email. Attempts are
// capped per address per window; the cap is enforced here, not by clients.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	req := &models.ResendVerificationRequest{Email: strings.TrimSpace(email)}
	if err := validation.Validate(req); err != nil {
		return err
	}
	normalized := strings.ToLower(req.Email)

	s.metrics.IncrementResendAttempts()

	count, err := s.attempts.Increment(ctx, normalized, s.resendWindow)
	if err != nil {
		s.logFailure(ctx, audit.EventResendRejected, "attempt_store_failed", true, "email", normalized, "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record resend attempt")
	}
	if count > s.resendCap {
		s.metrics.IncrementResendRejected()
		s.logAudit(ctx, audit.EventResendRejected, "", normalized, "cap_exceeded")
		return dErrors.New(dErrors.CodeRateLimited, "Too many requests. Please wait a moment before trying again.")
	}

	if err := s.accounts.ResendVerification(ctx, normalized, s.verifyRedirectURL); err != nil {
		s.logFailure(ctx, audit.EventResendRejected, "provider_error", true, "email", normalized, "error", err)
		return s.mapProviderError(err)
	}

	s.logAudit(ctx, audit.EventVerificationResent, "", normalized, "")
	return nil
}
