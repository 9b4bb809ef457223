package service

import (
	"context"
	"errors"
	"strings"

	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
)

// CheckEmailAvailability reports whether no profile uses the address yet.
func (s *Service) CheckEmailAvailability(ctx context.Context, email string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	_, err := s.profiles.FindByEmail(ctx, normalized)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return true, nil
	}
	return false, dErrors.Wrap(err, dErrors.CodeInternal, "Unable to verify email availability")
}
