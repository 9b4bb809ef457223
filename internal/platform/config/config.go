package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration plus the connection
// settings for every backing dependency. Built once in main and passed down
// explicitly; nothing in this package is read at import time.
type Server struct {
	Addr        string
	Environment string

	// AppURL is the public base URL used to build email redirect targets
	// (verification callback links).
	AppURL string

	DatabaseURL  string
	RedisAddr    string
	KafkaBrokers string

	JWTSigningKey string
	TokenTTL      time.Duration

	// ResendCap limits verification email resends per address within
	// ResendWindow.
	ResendCap    int
	ResendWindow time.Duration
}

const (
	defaultTokenTTL     = 15 * time.Minute
	defaultResendCap    = 3
	defaultResendWindow = time.Hour
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SMARTHIRE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("SMARTHIRE_ENV")
	if env == "" {
		env = "development"
	}

	appURL := os.Getenv("SMARTHIRE_APP_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	tokenTTL := defaultTokenTTL
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			tokenTTL = d
		}
	}

	resendCap := defaultResendCap
	if raw := os.Getenv("RESEND_CAP"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			resendCap = n
		}
	}

	resendWindow := defaultResendWindow
	if raw := os.Getenv("RESEND_WINDOW"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			resendWindow = d
		}
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		Environment:   env,
		AppURL:        appURL,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      tokenTTL,
		ResendCap:     resendCap,
		ResendWindow:  resendWindow,
	}
}

// VerifyCallbackURL returns the email redirect target for verification mails.
func (s Server) VerifyCallbackURL() string {
	return s.AppURL + "/auth/callback"
}

// IsProduction reports whether the server runs in a production environment.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}
