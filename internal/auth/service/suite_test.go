package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ProfileStore,ResendAttempts,TokenGenerator,AuditPublisher
//go:generate mockgen -source=../provider/provider.go -destination=mocks/provider_mock.go -package=mocks AccountProvider

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"smarthire/internal/auth/models"
	"smarthire/internal/auth/provider"
	"smarthire/internal/auth/service/mocks"
)

type ServiceSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockProvider       *mocks.MockAccountProvider
	mockProfiles       *mocks.MockProfileStore
	mockAttempts       *mocks.MockResendAttempts
	mockJWT            *mocks.MockTokenGenerator
	mockAuditPublisher *mocks.MockAuditPublisher
	service            *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockProvider = mocks.NewMockAccountProvider(s.ctrl)
	s.mockProfiles = mocks.NewMockProfileStore(s.ctrl)
	s.mockAttempts = mocks.NewMockResendAttempts(s.ctrl)
	s.mockJWT = mocks.NewMockTokenGenerator(s.ctrl)
	s.mockAuditPublisher = mocks.NewMockAuditPublisher(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(
		s.mockProvider,
		s.mockProfiles,
		s.mockAttempts,
		WithLogger(logger),
		WithJWTService(s.mockJWT),
		WithAuditPublisher(s.mockAuditPublisher),
		WithVerifyRedirectURL("https://app.test/auth/callback"),
		WithResendPolicy(3, time.Hour),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// Shared test fixture builders.

func (s *ServiceSuite) newRegistrationRequest() *models.RegistrationRequest {
	return &models.RegistrationRequest{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		CompanyName:     "Acme Talent",
		Password:        "Xk9#mQ2v&Zp",
		ConfirmPassword: "Xk9#mQ2v&Zp",
		CompanySize:     models.CompanySize11To50,
		AcceptTerms:     true,
	}
}

func (s *ServiceSuite) newAccount() *provider.Account {
	return &provider.Account{
		ID:    "acc-1",
		Email: "jane@example.com",
	}
}
