package match

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"smarthire/internal/hiring"
	"smarthire/pkg/sentinel"
)

// PostgresStore persists match results in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed match store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectMatch = `
	SELECT id, user_id, candidate_id, job_description_id, match_percentage,
		COALESCE(confidence_score, 0), COALESCE(processing_time_ms, 0),
		matching_skills, missing_skills, strengths, concerns,
		recommendation, COALESCE(ai_reasoning, ''), user_rating,
		user_feedback, user_decision, COALESCE(ai_provider, ''),
		COALESCE(processing_cost_usd, 0), created_at
	FROM cv_jd_matches
`

func (s *PostgresStore) Create(ctx context.Context, m *hiring.Match) error {
	if m == nil {
		return fmt.Errorf("match is required")
	}

	lists, err := marshalSkillLists(m)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO cv_jd_matches (id, user_id, candidate_id,
			job_description_id, match_percentage, confidence_score,
			processing_time_ms, matching_skills, missing_skills, strengths,
			concerns, recommendation, ai_reasoning, ai_provider,
			processing_cost_usd, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			NULLIF($13, ''), NULLIF($14, ''), $15, now())
	`
	_, err = s.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.CandidateID,
		m.JobDescriptionID,
		m.MatchPercentage,
		m.ConfidenceScore,
		m.ProcessingTimeMS,
		lists[0],
		lists[1],
		lists[2],
		lists[3],
		string(m.Recommendation),
		m.AIReasoning,
		m.AIProvider,
		m.ProcessingCostUSD,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("match already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*hiring.Match, error) {
	query := selectMatch + ` WHERE id = $1`
	m, err := scanMatchRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("match not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find match by id: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.Match, error) {
	if limit <= 0 {
		limit = 20
	}
	query := selectMatch + ` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

func (s *PostgresStore) ListByCandidate(ctx context.Context, candidateID, userID string) ([]hiring.Match, error) {
	query := selectMatch + ` WHERE candidate_id = $1 AND user_id = $2 ORDER BY match_percentage DESC`
	rows, err := s.db.QueryContext(ctx, query, candidateID, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches by candidate: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

func (s *PostgresStore) ListByJobDescription(ctx context.Context, jobDescriptionID, userID string) ([]hiring.Match, error) {
	query := selectMatch + ` WHERE job_description_id = $1 AND user_id = $2 ORDER BY match_percentage DESC`
	rows, err := s.db.QueryContext(ctx, query, jobDescriptionID, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches by job description: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

func (s *PostgresStore) ListByRecommendation(ctx context.Context, userID string, rec hiring.Recommendation) ([]hiring.Match, error) {
	query := selectMatch + ` WHERE user_id = $1 AND recommendation = $2 ORDER BY match_percentage DESC`
	rows, err := s.db.QueryContext(ctx, query, userID, string(rec))
	if err != nil {
		return nil, fmt.Errorf("list matches by recommendation: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

func (s *PostgresStore) SetFeedback(ctx context.Context, id string, fb hiring.Feedback) error {
	query := `
		UPDATE cv_jd_matches
		SET user_rating = COALESCE($2, user_rating),
			user_feedback = COALESCE($3, user_feedback),
			user_decision = COALESCE($4, user_decision)
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, id, fb.Rating, fb.Feedback, fb.Decision)
	if err != nil {
		return fmt.Errorf("set match feedback: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("match not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cv_jd_matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("match not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) TopByUser(ctx context.Context, userID string, minPercentage float64, limit int) ([]hiring.Match, error) {
	query := selectMatch + `
		WHERE user_id = $1 AND match_percentage >= $2
		ORDER BY match_percentage DESC
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, minPercentage, limit)
	if err != nil {
		return nil, fmt.Errorf("list top matches: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

func (s *PostgresStore) AllByUser(ctx context.Context, userID string) ([]hiring.Match, error) {
	query := selectMatch + ` WHERE user_id = $1`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list all matches: %w", err)
	}
	defer rows.Close()
	return collectMatches(rows)
}

func marshalSkillLists(m *hiring.Match) ([4][]byte, error) {
	var out [4][]byte
	for i, list := range [][]string{m.MatchingSkills, m.MissingSkills, m.Strengths, m.Concerns} {
		raw, err := json.Marshal(list)
		if err != nil {
			return out, fmt.Errorf("marshal match lists: %w", err)
		}
		out[i] = raw
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (*hiring.Match, error) {
	var (
		m        hiring.Match
		matching []byte
		missing  []byte
		strong   []byte
		concerns []byte
		rating   sql.NullInt64
		feedback sql.NullString
		decision sql.NullString
	)
	err := row.Scan(&m.ID, &m.UserID, &m.CandidateID, &m.JobDescriptionID,
		&m.MatchPercentage, &m.ConfidenceScore, &m.ProcessingTimeMS,
		&matching, &missing, &strong, &concerns, &m.Recommendation,
		&m.AIReasoning, &rating, &feedback, &decision, &m.AIProvider,
		&m.ProcessingCostUSD, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	for _, pair := range []struct {
		raw []byte
		dst *[]string
	}{
		{matching, &m.MatchingSkills},
		{missing, &m.MissingSkills},
		{strong, &m.Strengths},
		{concerns, &m.Concerns},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
			return nil, fmt.Errorf("unmarshal match lists: %w", err)
		}
	}
	if rating.Valid {
		r := int(rating.Int64)
		m.UserRating = &r
	}
	if feedback.Valid {
		m.UserFeedback = &feedback.String
	}
	if decision.Valid {
		m.UserDecision = &decision.String
	}
	return &m, nil
}

func scanMatchRow(row *sql.Row) (*hiring.Match, error) {
	return scanMatch(row)
}

func collectMatches(rows *sql.Rows) ([]hiring.Match, error) {
	var out []hiring.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
