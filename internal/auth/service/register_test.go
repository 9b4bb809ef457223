package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"smarthire/internal/auth/provider"
	"smarthire/internal/profile"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
)

func (s *ServiceSuite) expectAuditEmit() {
	s.mockAuditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (s *ServiceSuite) TestSignUp_Success() {
	s.expectAuditEmit()
	ctx := context.Background()
	req := s.newRegistrationRequest()

	s.mockProfiles.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, sentinel.ErrNotFound)

	var gotParams provider.CreateAccountParams
	s.mockProvider.EXPECT().CreateAccount(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params provider.CreateAccountParams) (*provider.Account, error) {
			gotParams = params
			return s.newAccount(), nil
		})

	var created *profile.Profile
	s.mockProfiles.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p *profile.Profile) error {
			created = p
			return nil
		})

	data, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().NoError(err)
	s.Equal("acc-1", data.UserID)
	s.Equal("jane@example.com", data.Email)
	s.True(data.RequiresEmailVerification)
	s.True(data.ProfileCreated)

	s.Equal("jane@example.com", gotParams.Email)
	s.Equal("Jane Doe", gotParams.Metadata.FullName)
	s.Equal("Acme Talent", gotParams.Metadata.Company)
	s.Equal("11-50", gotParams.Metadata.CompanySize)
	s.Equal("https://app.test/auth/callback", gotParams.EmailRedirectTo)

	s.Require().NotNil(created)
	s.Equal("acc-1", created.ID)
	s.Equal(profile.TierFree, created.SubscriptionTier)
	s.Equal(profile.DepthStandard, created.PreferredAnalysisDepth)
	s.Equal(0, created.MonthlyUsageCount)
	s.Equal(1, created.UsageResetDate.Day())
}

func (s *ServiceSuite) TestSignUp_NormalizesEmail() {
	s.expectAuditEmit()
	ctx := context.Background()
	req := s.newRegistrationRequest()
	req.Email = "Jane@Example.COM"

	s.mockProfiles.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().CreateAccount(ctx, gomock.Any()).Return(s.newAccount(), nil)
	s.mockProfiles.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	_, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestSignUp_SchemaValidationFailure() {
	ctx := context.Background()
	req := s.newRegistrationRequest()
	req.AcceptTerms = false

	_, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("acceptTerms", dErrors.FieldOf(err))
	s.ErrorContains(err, "You must accept the terms of service")
}

func (s *ServiceSuite) TestSignUp_EmailExists_ProviderNeverCalled() {
	s.expectAuditEmit()
	ctx := context.Background()
	req := s.newRegistrationRequest()

	existing := &profile.Profile{ID: "acc-0", Email: "jane@example.com"}
	s.mockProfiles.EXPECT().FindByEmail(ctx, "jane@example.com").Return(existing, nil)

	_, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUserExists))
	s.Equal("email", dErrors.FieldOf(err))
	s.ErrorContains(err, "An account with this email already exists")
}

func (s *ServiceSuite) TestSignUp_ProviderEmailTaken() {
	ctx := context.Background()
	req := s.newRegistrationRequest()

	s.mockProfiles.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().CreateAccount(ctx, gomock.Any()).Return(nil, &provider.Error{
		Code:    provider.CodeEmailTaken,
		Message: "this email has already been registered",
	})

	_, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUserExists))
	s.Equal("email", dErrors.FieldOf(err))
}

func (s *ServiceSuite) TestSignUp_ProviderWeakPassword() {
	ctx := context.Background()
	req := s.newRegistrationRequest()

	s.mockProfiles.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().CreateAccount(ctx, gomock.Any()).Return(nil, &provider.Error{
		Code:    provider.CodeWeakPassword,
		Message: "Password should contain at least one symbol",
	})

	_, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeWeakPassword))
	s.Equal("password", dErrors.FieldOf(err))
	s.ErrorContains(err, "Password should contain at least one symbol")
}

func (s *ServiceSuite) TestSignUp_ProviderNetworkError() {
	ctx := context.Background()
	req := s.newRegistrationRequest()

	s.mockProfiles.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().CreateAccount(ctx, gomock.Any()).Return(nil, &provider.Error{
		Code: provider.CodeNetwork,
		Err:  errors.New("dial tcp: connection refused"),
	})

	_, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNetwork))
	s.ErrorContains(err, "Network error")
}

func (s *ServiceSuite) TestSignUp_ProfileCreateFailureStillSucceeds() {
	s.expectAuditEmit()
	ctx := context.Background()
	req := s.newRegistrationRequest()

	s.mockProfiles.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().CreateAccount(ctx, gomock.Any()).Return(s.newAccount(), nil)
	s.mockProfiles.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))

	data, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().NoError(err)
	s.False(data.ProfileCreated)
	s.Equal("acc-1", data.UserID)
}

func (s *ServiceSuite) TestSignUp_ConfirmedAccountNeedsNoVerification() {
	s.expectAuditEmit()
	ctx := context.Background()
	req := s.newRegistrationRequest()

	confirmed := time.Now()
	account := s.newAccount()
	account.EmailConfirmedAt = &confirmed

	s.mockProfiles.EXPECT().FindByEmail(ctx, "jane@example.com").Return(nil, sentinel.ErrNotFound)
	s.mockProvider.EXPECT().CreateAccount(ctx, gomock.Any()).Return(account, nil)
	s.mockProfiles.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	data, err := s.service.SignUpWithCompanyProfile(ctx, req)
	s.Require().NoError(err)
	s.False(data.RequiresEmailVerification)
}
