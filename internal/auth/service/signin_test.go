package service

import (
	"context"
	"time"

	"smarthire/internal/auth/models"
	"smarthire/internal/auth/provider"
	"smarthire/internal/profile"
	dErrors "smarthire/pkg/domain-errors"
	"smarthire/pkg/sentinel"
)

func (s *ServiceSuite) TestSignIn_Success() {
	s.expectAuditEmit()
	ctx := context.Background()

	confirmed := time.Now()
	account := s.newAccount()
	account.EmailConfirmedAt = &confirmed

	s.mockProvider.EXPECT().VerifyCredentials(ctx, "jane@example.com", "Xk9#mQ2v&Zp").Return(account, nil)
	s.mockProfiles.EXPECT().FindByID(ctx, "acc-1").Return(&profile.Profile{ID: "acc-1", FullName: "Jane Doe"}, nil)
	s.mockJWT.EXPECT().GenerateAccessToken("acc-1", "jane@example.com", "Jane Doe").Return("signed-token", nil)

	data, err := s.service.SignIn(ctx, &models.SignInRequest{Email: "Jane@Example.com", Password: "Xk9#mQ2v&Zp"})
	s.Require().NoError(err)
	s.Equal("acc-1", data.UserID)
	s.Equal("Jane Doe", data.FullName)
	s.Equal("signed-token", data.AccessToken)
	s.False(data.RequiresEmailVerification)
}

func (s *ServiceSuite) TestSignIn_InvalidCredentials() {
	s.expectAuditEmit()
	ctx := context.Background()

	s.mockProvider.EXPECT().VerifyCredentials(ctx, "jane@example.com", "wrong").Return(nil, &provider.Error{
		Code: provider.CodeInvalidCredentials,
	})

	_, err := s.service.SignIn(ctx, &models.SignInRequest{Email: "jane@example.com", Password: "wrong"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.ErrorContains(err, "Invalid email or password")
}

func (s *ServiceSuite) TestSignIn_MissingProfileStillSignsIn() {
	s.expectAuditEmit()
	ctx := context.Background()

	s.mockProvider.EXPECT().VerifyCredentials(ctx, "jane@example.com", "Xk9#mQ2v&Zp").Return(s.newAccount(), nil)
	s.mockProfiles.EXPECT().FindByID(ctx, "acc-1").Return(nil, sentinel.ErrNotFound)
	s.mockJWT.EXPECT().GenerateAccessToken("acc-1", "jane@example.com", "").Return("signed-token", nil)

	data, err := s.service.SignIn(ctx, &models.SignInRequest{Email: "jane@example.com", Password: "Xk9#mQ2v&Zp"})
	s.Require().NoError(err)
	s.Empty(data.FullName)
	s.True(data.RequiresEmailVerification)
}

func (s *ServiceSuite) TestSignIn_ValidationFailure() {
	ctx := context.Background()

	_, err := s.service.SignIn(ctx, &models.SignInRequest{Email: "not-an-email", Password: "x"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("email", dErrors.FieldOf(err))
}
