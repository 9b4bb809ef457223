// Package provider defines the contract with the hosted account system.
// Implementations live behind this interface so the registration service
// never parses provider error text; failures carry stable codes instead.
package provider

import (
	"context"
	"errors"
	"time"
)

// ErrorCode classifies provider failures for user messaging.
type ErrorCode string

const (
	CodeEmailTaken         ErrorCode = "email_taken"
	CodeWeakPassword       ErrorCode = "weak_password"
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	CodeNetwork            ErrorCode = "network"
	CodeRateLimited        ErrorCode = "rate_limited"
	CodeUnknown            ErrorCode = "unknown"
)

// Error is a provider failure with a stable code.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the error code from a provider error, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// Account is the provider's view of an auth account.
type Account struct {
	ID               string
	Email            string
	EmailConfirmedAt *time.Time
}

// Metadata is attached to the account at creation time.
type Metadata struct {
	FullName    string
	Role        string
	Company     string
	CompanySize string
}

// CreateAccountParams carries everything account creation needs.
type CreateAccountParams struct {
	Email           string
	Password        string
	Metadata        Metadata
	EmailRedirectTo string
}

// AccountProvider is the hosted account system.
type AccountProvider interface {
	// CreateAccount provisions an auth account and triggers the
	// verification email. Returns CodeEmailTaken or CodeWeakPassword on
	// domain failures.
	CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error)

	// VerifyCredentials checks an email/password pair.
	// Returns CodeInvalidCredentials when they do not match an account.
	VerifyCredentials(ctx context.Context, email, password string) (*Account, error)

	// ResendVerification sends another signup verification email.
	ResendVerification(ctx context.Context, email, emailRedirectTo string) error

	// Health reports whether the provider is reachable.
	Health(ctx context.Context) error
}
