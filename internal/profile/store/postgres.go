package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"smarthire/internal/profile"
	"smarthire/pkg/sentinel"
)

// PostgresStore persists profiles in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed profile store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}

	onboarding, err := json.Marshal(p.Onboarding)
	if err != nil {
		return fmt.Errorf("marshal onboarding progress: %w", err)
	}

	query := `
		INSERT INTO users (id, email, full_name, company, subscription_tier,
			monthly_usage_count, usage_reset_date, preferred_analysis_depth,
			onboarding_progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	`
	_, err = s.db.ExecContext(ctx, query,
		p.ID,
		p.Email,
		p.FullName,
		p.Company,
		string(p.SubscriptionTier),
		p.MonthlyUsageCount,
		p.UsageResetDate,
		string(p.PreferredAnalysisDepth),
		onboarding,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("profile already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	query := selectProfile + ` WHERE id = $1`
	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find profile by id: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	query := selectProfile + ` WHERE lower(email) = lower($1)`
	p, err := scanProfile(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find profile by email: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *profile.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}

	onboarding, err := json.Marshal(p.Onboarding)
	if err != nil {
		return fmt.Errorf("marshal onboarding progress: %w", err)
	}

	query := `
		UPDATE users
		SET email = $2, full_name = $3, company = $4, subscription_tier = $5,
			monthly_usage_count = $6, usage_reset_date = $7,
			preferred_analysis_depth = $8, onboarding_progress = $9,
			updated_at = now()
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.Email,
		p.FullName,
		p.Company,
		string(p.SubscriptionTier),
		p.MonthlyUsageCount,
		p.UsageResetDate,
		string(p.PreferredAnalysisDepth),
		onboarding,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return requireRow(res, "update profile")
}

func (s *PostgresStore) IncrementUsage(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET monthly_usage_count = monthly_usage_count + 1, updated_at = now()
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	return requireRow(res, "increment usage")
}

func (s *PostgresStore) UsageWithinLimit(ctx context.Context, id string, limit int) (bool, error) {
	if limit <= 0 {
		// Non-positive limit means unlimited.
		if _, err := s.FindByID(ctx, id); err != nil {
			return false, err
		}
		return true, nil
	}

	query := `SELECT monthly_usage_count < $2 FROM users WHERE id = $1`
	var within bool
	if err := s.db.QueryRowContext(ctx, query, id, limit).Scan(&within); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
		}
		return false, fmt.Errorf("check usage limit: %w", err)
	}
	return within, nil
}

func (s *PostgresStore) UpdateOnboarding(ctx context.Context, id string, progress profile.OnboardingProgress) error {
	onboarding, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("marshal onboarding progress: %w", err)
	}

	query := `UPDATE users SET onboarding_progress = $2, updated_at = now() WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, id, onboarding)
	if err != nil {
		return fmt.Errorf("update onboarding progress: %w", err)
	}
	return requireRow(res, "update onboarding progress")
}

const selectProfile = `
	SELECT id, email, full_name, company, subscription_tier,
		monthly_usage_count, usage_reset_date, preferred_analysis_depth,
		onboarding_progress, created_at, updated_at
	FROM users
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*profile.Profile, error) {
	var (
		p          profile.Profile
		tier       string
		depth      string
		onboarding []byte
	)
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.Company,
		&tier,
		&p.MonthlyUsageCount,
		&p.UsageResetDate,
		&depth,
		&onboarding,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.SubscriptionTier = profile.SubscriptionTier(tier)
	p.PreferredAnalysisDepth = profile.AnalysisDepth(depth)
	if len(onboarding) > 0 {
		if err := json.Unmarshal(onboarding, &p.Onboarding); err != nil {
			return nil, fmt.Errorf("unmarshal onboarding progress: %w", err)
		}
	}
	return &p, nil
}

func requireRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("profile not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
