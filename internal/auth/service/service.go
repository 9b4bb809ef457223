// Package service orchestrates registration, sign-in, and verification
// resends against the account provider and the profile store.
package service

import (
	"context"
	"log/slog"
	"time"

	"smarthire/internal/audit"
	"smarthire/internal/auth/provider"
	"smarthire/internal/platform/metrics"
	"smarthire/internal/profile"
)

// ProfileStore defines the persistence interface for profile rows.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when
// the profile doesn't exist.
type ProfileStore interface {
	Create(ctx context.Context, p *profile.Profile) error
	FindByID(ctx context.Context, id string) (*profile.Profile, error)
	FindByEmail(ctx context.Context, email string) (*profile.Profile, error)
}

// ResendAttempts counts verification resend attempts per address within a
// rolling window.
type ResendAttempts interface {
	Increment(ctx context.Context, email string, window time.Duration) (int, error)
}

type TokenGenerator interface {
	GenerateAccessToken(userID, email, fullName string) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

const (
	defaultResendCap    = 3
	defaultResendWindow = time.Hour
)

type Service struct {
	accounts provider.AccountProvider
	profiles ProfileStore
	attempts ResendAttempts

	verifyRedirectURL string
	resendCap         int
	resendWindow      time.Duration

	logger         *slog.Logger
	auditPublisher AuditPublisher
	jwt            TokenGenerator
	metrics        *metrics.Metrics
	now            func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithJWTService(jwtService TokenGenerator) Option {
	return func(s *Service) {
		s.jwt = jwtService
	}
}

// WithVerifyRedirectURL sets the URL the verification email links back to.
func WithVerifyRedirectURL(url string) Option {
	return func(s *Service) {
		s.verifyRedirectURL = url
	}
}

// WithResendPolicy configures the resend cap per address and the window it
// applies to. Zero or negative values keep the defaults.
func WithResendPolicy(cap int, window time.Duration) Option {
	return func(s *Service) {
		if cap > 0 {
			s.resendCap = cap
		}
		if window > 0 {
			s.resendWindow = window
		}
	}
}

func NewService(accounts provider.AccountProvider, profiles ProfileStore, attempts ResendAttempts, opts ...Option) *Service {
	svc := &Service{
		accounts:     accounts,
		profiles:     profiles,
		attempts:     attempts,
		resendCap:    defaultResendCap,
		resendWindow: defaultResendWindow,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}
