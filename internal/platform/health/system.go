package health

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"smarthire/internal/platform/config"
)

// Pinger probes one backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to the Pinger interface.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// EnvironmentReport validates required settings and flags risky ones.
type EnvironmentReport struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ProbeReport is the outcome of one dependency probe.
type ProbeReport struct {
	IsConnected bool   `json:"is_connected"`
	Error       string `json:"error,omitempty"`
	LatencyMS   int64  `json:"latency_ms"`
}

// SecurityReport validates the security posture of the configuration.
type SecurityReport struct {
	IsSecure bool     `json:"is_secure"`
	Issues   []string `json:"issues"`
}

// SystemReport aggregates the full validation run.
type SystemReport struct {
	IsHealthy   bool              `json:"is_healthy"`
	Environment EnvironmentReport `json:"environment"`
	Database    *ProbeReport      `json:"database,omitempty"`
	Provider    *ProbeReport      `json:"provider,omitempty"`
	Redis       *ProbeReport      `json:"redis,omitempty"`
	Security    SecurityReport    `json:"security"`
}

// SystemValidator runs the deep validation: configuration checks plus live
// probes of every wired dependency. Probes left nil are skipped.
type SystemValidator struct {
	cfg      config.Server
	database Pinger
	provider Pinger
	redis    Pinger
	now      func() time.Time
}

func NewSystemValidator(cfg config.Server, database, provider, redis Pinger) *SystemValidator {
	return &SystemValidator{
		cfg:      cfg,
		database: database,
		provider: provider,
		redis:    redis,
		now:      time.Now,
	}
}

// Validate runs the configuration checks and all dependency probes, probes
// concurrently, and aggregates the verdict.
func (v *SystemValidator) Validate(ctx context.Context) *SystemReport {
	report := &SystemReport{
		Environment: v.validateEnvironment(),
		Security:    v.validateSecurity(),
	}

	var g errgroup.Group
	if v.database != nil {
		g.Go(func() error {
			report.Database = v.probe(ctx, v.database)
			return nil
		})
	}
	if v.provider != nil {
		g.Go(func() error {
			report.Provider = v.probe(ctx, v.provider)
			return nil
		})
	}
	if v.redis != nil {
		g.Go(func() error {
			report.Redis = v.probe(ctx, v.redis)
			return nil
		})
	}
	_ = g.Wait()

	report.IsHealthy = report.Environment.IsValid &&
		report.Security.IsSecure &&
		probeOK(report.Database) &&
		probeOK(report.Provider) &&
		probeOK(report.Redis)
	return report
}

func (v *SystemValidator) validateEnvironment() EnvironmentReport {
	errs := []string{}
	warnings := []string{}

	if v.cfg.AppURL == "" {
		warnings = append(warnings, "SMARTHIRE_APP_URL is not configured (may affect verification redirects)")
	}
	if v.cfg.JWTSigningKey == "" {
		errs = append(errs, "JWT_SIGNING_KEY is not configured")
	} else if v.cfg.JWTSigningKey == "dev-secret-key-change-in-production" && v.cfg.IsProduction() {
		errs = append(errs, "JWT_SIGNING_KEY is still the development default")
	}
	if v.cfg.DatabaseURL == "" {
		warnings = append(warnings, "DATABASE_URL is not configured (running on in-memory stores)")
	}
	if !v.cfg.IsProduction() {
		warnings = append(warnings, "Running in "+v.cfg.Environment+" mode")
	}

	return EnvironmentReport{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func (v *SystemValidator) validateSecurity() SecurityReport {
	issues := []string{}

	if v.cfg.IsProduction() && !strings.HasPrefix(v.cfg.AppURL, "https://") {
		issues = append(issues, "Production environment should use HTTPS")
	}

	return SecurityReport{
		IsSecure: len(issues) == 0,
		Issues:   issues,
	}
}

func (v *SystemValidator) probe(ctx context.Context, p Pinger) *ProbeReport {
	start := v.now()
	err := p.Ping(ctx)
	out := &ProbeReport{
		IsConnected: err == nil,
		LatencyMS:   time.Since(start).Milliseconds(),
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// probeOK treats a skipped probe as healthy.
func probeOK(p *ProbeReport) bool {
	return p == nil || p.IsConnected
}
