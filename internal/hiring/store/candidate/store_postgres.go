package candidate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"smarthire/internal/hiring"
	"smarthire/internal/platform/database"
	"smarthire/pkg/sentinel"
)

// PostgresStore persists candidates in PostgreSQL. Embeddings live in a
// pgvector column; similarity search runs on the server with the cosine
// distance operator.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed candidate store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectCandidate = `
	SELECT id, user_id, full_name, COALESCE(email, ''), COALESCE(phone, ''),
		original_filename, cv_text, COALESCE(cv_summary, ''), extracted_skills,
		cv_embedding::text, COALESCE(experience_level, ''), file_url, file_type,
		COALESCE(file_size_bytes, 0), processed_at, expires_at, created_at
	FROM candidates
`

func (s *PostgresStore) Create(ctx context.Context, c *hiring.Candidate) error {
	if c == nil {
		return fmt.Errorf("candidate is required")
	}

	skills, err := json.Marshal(c.ExtractedSkills)
	if err != nil {
		return fmt.Errorf("marshal extracted skills: %w", err)
	}

	query := `
		INSERT INTO candidates (id, user_id, full_name, email, phone,
			original_filename, cv_text, cv_summary, extracted_skills,
			cv_embedding, experience_level, file_url, file_type,
			file_size_bytes, processed_at, expires_at, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7,
			NULLIF($8, ''), $9, NULLIF($10, '[]')::vector, NULLIF($11, ''),
			$12, $13, $14, $15, $16, now())
	`
	_, err = s.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.FullName,
		c.Email,
		c.Phone,
		c.OriginalFilename,
		c.CVText,
		c.CVSummary,
		skills,
		database.EncodeVector(c.CVEmbedding),
		c.ExperienceLevel,
		c.FileURL,
		c.FileType,
		c.FileSizeBytes,
		c.ProcessedAt,
		c.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("candidate already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*hiring.Candidate, error) {
	query := selectCandidate + ` WHERE id = $1`
	c, err := scanCandidate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find candidate by id: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.Candidate, error) {
	if limit <= 0 {
		limit = 20
	}
	query := selectCandidate + ` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

func (s *PostgresStore) Update(ctx context.Context, c *hiring.Candidate) error {
	if c == nil {
		return fmt.Errorf("candidate is required")
	}

	skills, err := json.Marshal(c.ExtractedSkills)
	if err != nil {
		return fmt.Errorf("marshal extracted skills: %w", err)
	}

	query := `
		UPDATE candidates
		SET full_name = $2, email = NULLIF($3, ''), phone = NULLIF($4, ''),
			cv_text = $5, cv_summary = NULLIF($6, ''), extracted_skills = $7,
			cv_embedding = NULLIF($8, '[]')::vector,
			experience_level = NULLIF($9, ''), expires_at = $10
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		c.ID,
		c.FullName,
		c.Email,
		c.Phone,
		c.CVText,
		c.CVSummary,
		skills,
		database.EncodeVector(c.CVEmbedding),
		c.ExperienceLevel,
		c.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) SearchBySimilarity(ctx context.Context, embedding []float32, userID string, threshold float64, limit int) ([]hiring.CandidateWithSimilarity, error) {
	query := `
		SELECT id, user_id, full_name, COALESCE(email, ''), COALESCE(phone, ''),
			original_filename, cv_text, COALESCE(cv_summary, ''), extracted_skills,
			COALESCE(experience_level, ''), file_url, file_type,
			COALESCE(file_size_bytes, 0), processed_at, expires_at, created_at,
			1 - (cv_embedding <=> $1::vector) AS similarity
		FROM candidates
		WHERE user_id = $2
			AND cv_embedding IS NOT NULL
			AND 1 - (cv_embedding <=> $1::vector) > $3
		ORDER BY similarity DESC
		LIMIT $4
	`
	rows, err := s.db.QueryContext(ctx, query, database.EncodeVector(embedding), userID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("search candidates by similarity: %w", err)
	}
	defer rows.Close()

	var hits []hiring.CandidateWithSimilarity
	for rows.Next() {
		var (
			c         hiring.Candidate
			skills    []byte
			expiresAt sql.NullTime
			sim       float64
		)
		err := rows.Scan(&c.ID, &c.UserID, &c.FullName, &c.Email, &c.Phone,
			&c.OriginalFilename, &c.CVText, &c.CVSummary, &skills,
			&c.ExperienceLevel, &c.FileURL, &c.FileType, &c.FileSizeBytes,
			&c.ProcessedAt, &expiresAt, &c.CreatedAt, &sim)
		if err != nil {
			return nil, fmt.Errorf("scan candidate search hit: %w", err)
		}
		if err := unmarshalSkills(skills, &c.ExtractedSkills); err != nil {
			return nil, err
		}
		if expiresAt.Valid {
			c.ExpiresAt = &expiresAt.Time
		}
		hits = append(hits, hiring.CandidateWithSimilarity{Candidate: c, Similarity: sim})
	}
	return hits, rows.Err()
}

func (s *PostgresStore) NearExpiration(ctx context.Context, userID string, daysAhead int) ([]hiring.Candidate, error) {
	query := selectCandidate + `
		WHERE user_id = $1
			AND expires_at IS NOT NULL
			AND expires_at < now() + make_interval(days => $2)
		ORDER BY expires_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID, daysAhead)
	if err != nil {
		return nil, fmt.Errorf("list candidates near expiration: %w", err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

func (s *PostgresStore) SetExpiration(ctx context.Context, id string, expiresAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE candidates SET expires_at = $2 WHERE id = $1`, id, expiresAt)
	if err != nil {
		return fmt.Errorf("set candidate expiration: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) ListBySkill(ctx context.Context, userID, skill string) ([]hiring.Candidate, error) {
	// JSONB containment; served by the GIN index on extracted_skills.
	query := selectCandidate + `
		WHERE user_id = $1
			AND extracted_skills @> to_jsonb($2::text)
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID, skill)
	if err != nil {
		return nil, fmt.Errorf("list candidates by skill: %w", err)
	}
	defer rows.Close()
	return collectCandidates(rows)
}

func (s *PostgresStore) Stats(ctx context.Context, userID string, monthStart, expiresBefore time.Time) (hiring.CandidateStats, error) {
	query := `
		SELECT count(*),
			count(*) FILTER (WHERE created_at >= $2),
			count(*) FILTER (WHERE expires_at IS NOT NULL AND expires_at <= $3)
		FROM candidates
		WHERE user_id = $1
	`
	var stats hiring.CandidateStats
	err := s.db.QueryRowContext(ctx, query, userID, monthStart, expiresBefore).
		Scan(&stats.TotalCandidates, &stats.CandidatesThisMonth, &stats.ExpiringSoon)
	if err != nil {
		return hiring.CandidateStats{}, fmt.Errorf("candidate stats: %w", err)
	}
	return stats, nil
}

func scanCandidate(row *sql.Row) (*hiring.Candidate, error) {
	var (
		c         hiring.Candidate
		skills    []byte
		embedding sql.NullString
		expiresAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.UserID, &c.FullName, &c.Email, &c.Phone,
		&c.OriginalFilename, &c.CVText, &c.CVSummary, &skills, &embedding,
		&c.ExperienceLevel, &c.FileURL, &c.FileType, &c.FileSizeBytes,
		&c.ProcessedAt, &expiresAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalSkills(skills, &c.ExtractedSkills); err != nil {
		return nil, err
	}
	if embedding.Valid {
		vec, err := database.DecodeVector(embedding.String)
		if err != nil {
			return nil, fmt.Errorf("decode cv embedding: %w", err)
		}
		c.CVEmbedding = vec
	}
	if expiresAt.Valid {
		c.ExpiresAt = &expiresAt.Time
	}
	return &c, nil
}

func collectCandidates(rows *sql.Rows) ([]hiring.Candidate, error) {
	var out []hiring.Candidate
	for rows.Next() {
		var (
			c         hiring.Candidate
			skills    []byte
			embedding sql.NullString
			expiresAt sql.NullTime
		)
		err := rows.Scan(&c.ID, &c.UserID, &c.FullName, &c.Email, &c.Phone,
			&c.OriginalFilename, &c.CVText, &c.CVSummary, &skills, &embedding,
			&c.ExperienceLevel, &c.FileURL, &c.FileType, &c.FileSizeBytes,
			&c.ProcessedAt, &expiresAt, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		if err := unmarshalSkills(skills, &c.ExtractedSkills); err != nil {
			return nil, err
		}
		if embedding.Valid {
			vec, err := database.DecodeVector(embedding.String)
			if err != nil {
				return nil, fmt.Errorf("decode cv embedding: %w", err)
			}
			c.CVEmbedding = vec
		}
		if expiresAt.Valid {
			c.ExpiresAt = &expiresAt.Time
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func unmarshalSkills(raw []byte, dst *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal skills: %w", err)
	}
	return nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("candidate not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
