// Package local is an in-process AccountProvider used for development and
// tests. It keeps accounts in memory with bcrypt-hashed passwords and tracks
// email confirmation state; production deployments swap in a client for the
// hosted identity system.
package local

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smarthire/internal/auth/provider"
)

type record struct {
	account      provider.Account
	passwordHash []byte
	metadata     provider.Metadata
	resends      int
}

// Provider is a memory-backed account provider.
type Provider struct {
	mu       sync.RWMutex
	byEmail  map[string]*record
	sendMail func(email, redirectTo string) // test hook; nil means no-op
}

func New() *Provider {
	return &Provider{byEmail: make(map[string]*record)}
}

func (p *Provider) CreateAccount(_ context.Context, params provider.CreateAccountParams) (*provider.Account, error) {
	key := strings.ToLower(params.Email)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[key]; exists {
		return nil, &provider.Error{
			Code:    provider.CodeEmailTaken,
			Message: "this email has already been registered",
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &provider.Error{Code: provider.CodeUnknown, Message: "hash password", Err: err}
	}

	rec := &record{
		account: provider.Account{
			ID:    uuid.New().String(),
			Email: params.Email,
		},
		passwordHash: hash,
		metadata:     params.Metadata,
	}
	p.byEmail[key] = rec

	if p.sendMail != nil {
		p.sendMail(params.Email, params.EmailRedirectTo)
	}

	account := rec.account
	return &account, nil
}

func (p *Provider) VerifyCredentials(_ context.Context, email, password string) (*provider.Account, error) {
	p.mu.RLock()
	rec, ok := p.byEmail[strings.ToLower(email)]
	p.mu.RUnlock()

	if !ok {
		return nil, &provider.Error{
			Code:    provider.CodeInvalidCredentials,
			Message: "invalid email or password",
		}
	}
	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return nil, &provider.Error{
			Code:    provider.CodeInvalidCredentials,
			Message: "invalid email or password",
		}
	}

	account := rec.account
	return &account, nil
}

func (p *Provider) ResendVerification(_ context.Context, email, redirectTo string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.byEmail[strings.ToLower(email)]
	if !ok {
		// Same as hosted providers: do not leak whether the address exists.
		return nil
	}
	if rec.account.EmailConfirmedAt != nil {
		return nil
	}
	rec.resends++
	if p.sendMail != nil {
		p.sendMail(email, redirectTo)
	}
	return nil
}

func (p *Provider) Health(context.Context) error {
	return nil
}

// MarkConfirmed marks an account's email as confirmed. Test helper.
func (p *Provider) MarkConfirmed(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if rec, ok := p.byEmail[strings.ToLower(email)]; ok {
		now := time.Now()
		rec.account.EmailConfirmedAt = &now
	}
}

// ResendCount returns how many verification resends were recorded. Test helper.
func (p *Provider) ResendCount(email string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if rec, ok := p.byEmail[strings.ToLower(email)]; ok {
		return rec.resends
	}
	return 0
}

// SetMailHook installs a callback invoked whenever a mail would be sent.
func (p *Provider) SetMailHook(fn func(email, redirectTo string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sendMail = fn
}
