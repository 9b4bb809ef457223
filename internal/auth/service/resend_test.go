package service

import (
	"context"
	"time"

	"smarthire/internal/auth/provider"
	"smarthire/internal/profile"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
)

func (s *ServiceSuite) TestResendVerification_Success() {
	s.expectAuditEmit()
	ctx := context.Background()

	s.mockAttempts.EXPECT().Increment(ctx, "jane@example.com", time.Hour).Return(1, nil)
	s.mockProvider.EXPECT().ResendVerification(ctx, "jane@example.com", "https://app.test/auth/callback").Return(nil)

	err := s.service.ResendVerification(ctx, "Jane@Example.com")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestResendVerification_CapExceeded_ProviderNeverCalled() {
	s.expectAuditEmit()
	ctx := context.Background()

	s.mockAttempts.EXPECT().Increment(ctx, "jane@example.com", time.Hour).Return(4, nil)

	err := s.service.ResendVerification(ctx, "jane@example.com")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))
}

func (s *ServiceSuite) TestResendVerification_AtCapStillSends() {
	s.expectAuditEmit()
	ctx := context.Background()

	s.mockAttempts.EXPECT().Increment(ctx, "jane@example.com", time.Hour).Return(3, nil)
	s.mockProvider.EXPECT().ResendVerification(ctx, "jane@example.com", "https://app.test/auth/callback").Return(nil)

	err := s.service.ResendVerification(ctx, "jane@example.com")
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestResendVerification_InvalidEmail() {
	ctx := context.Background()

	err := s.service.ResendVerification(ctx, "not-an-email")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestResendVerification_ProviderRateLimited() {
	ctx := context.Background()

	s.mockAttempts.EXPECT().Increment(ctx, "jane@example.com", time.Hour).Return(1, nil)
	s.mockProvider.EXPECT().ResendVerification(ctx, "jane@example.com", "https://app.test/auth/callback").Return(&provider.Error{
		Code: provider.CodeRateLimited,
	})

	err := s.service.ResendVerification(ctx, "jane@example.com")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeRateLimited))
}

func (s *ServiceSuite) TestCheckEmailAvailability() {
	ctx := context.Background()

	s.mockProfiles.EXPECT().FindByEmail(ctx, "taken@example.com").Return(&profile.Profile{ID: "acc-0"}, nil)
	available, err := s.service.CheckEmailAvailability(ctx, "Taken@Example.com")
	s.Require().NoError(err)
	s.False(available)

	s.mockProfiles.EXPECT().FindByEmail(ctx, "free@example.com").Return(nil, sentinel.ErrNotFound)
	available, err = s.service.CheckEmailAvailability(ctx, "free@example.com")
	s.Require().NoError(err)
	s.True(available)
}
