package jobdesc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"smarthire/internal/hiring"
	"smarthire/internal/platform/database"
	"smarthire/pkg/sentinel"
)

// PostgresStore persists job descriptions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed job description store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectJobDescription = `
	SELECT id, user_id, title, COALESCE(company, ''), description, requirements,
		description_embedding::text, key_skills, COALESCE(experience_level, ''),
		COALESCE(times_used, 0), last_used_at, created_at, updated_at
	FROM job_descriptions
`

func (s *PostgresStore) Create(ctx context.Context, jd *hiring.JobDescription) error {
	if jd == nil {
		return fmt.Errorf("job description is required")
	}

	skills, err := json.Marshal(jd.KeySkills)
	if err != nil {
		return fmt.Errorf("marshal key skills: %w", err)
	}

	query := `
		INSERT INTO job_descriptions (id, user_id, title, company, description,
			requirements, description_embedding, key_skills, experience_level,
			times_used, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6,
			NULLIF($7, '[]')::vector, $8, NULLIF($9, ''), 0, now(), now())
	`
	_, err = s.db.ExecContext(ctx, query,
		jd.ID,
		jd.UserID,
		jd.Title,
		jd.Company,
		jd.Description,
		jd.Requirements,
		database.EncodeVector(jd.DescriptionEmbedding),
		skills,
		jd.ExperienceLevel,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("job description already exists: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create job description: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*hiring.JobDescription, error) {
	query := selectJobDescription + ` WHERE id = $1`
	row := s.db.QueryRowContext(ctx, query, id)
	jd, err := scanJobDescription(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job description not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find job description by id: %w", err)
	}
	return jd, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]hiring.JobDescription, error) {
	if limit <= 0 {
		limit = 20
	}
	query := selectJobDescription + ` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list job descriptions: %w", err)
	}
	defer rows.Close()

	var out []hiring.JobDescription
	for rows.Next() {
		jd, err := scanJobDescription(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan job description: %w", err)
		}
		out = append(out, *jd)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, jd *hiring.JobDescription) error {
	if jd == nil {
		return fmt.Errorf("job description is required")
	}

	skills, err := json.Marshal(jd.KeySkills)
	if err != nil {
		return fmt.Errorf("marshal key skills: %w", err)
	}

	query := `
		UPDATE job_descriptions
		SET title = $2, company = NULLIF($3, ''), description = $4,
			requirements = $5, description_embedding = NULLIF($6, '[]')::vector,
			key_skills = $7, experience_level = NULLIF($8, ''), updated_at = now()
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		jd.ID,
		jd.Title,
		jd.Company,
		jd.Description,
		jd.Requirements,
		database.EncodeVector(jd.DescriptionEmbedding),
		skills,
		jd.ExperienceLevel,
	)
	if err != nil {
		return fmt.Errorf("update job description: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM job_descriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job description: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) SearchBySimilarity(ctx context.Context, embedding []float32, userID string, threshold float64, limit int) ([]hiring.JobDescriptionWithSimilarity, error) {
	query := `
		SELECT id, user_id, title, COALESCE(company, ''), description, requirements,
			key_skills, COALESCE(experience_level, ''), COALESCE(times_used, 0),
			last_used_at, created_at, updated_at,
			1 - (description_embedding <=> $1::vector) AS similarity
		FROM job_descriptions
		WHERE user_id = $2
			AND description_embedding IS NOT NULL
			AND 1 - (description_embedding <=> $1::vector) > $3
		ORDER BY similarity DESC
		LIMIT $4
	`
	rows, err := s.db.QueryContext(ctx, query, database.EncodeVector(embedding), userID, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("search job descriptions by similarity: %w", err)
	}
	defer rows.Close()

	var hits []hiring.JobDescriptionWithSimilarity
	for rows.Next() {
		var (
			jd         hiring.JobDescription
			skills     []byte
			lastUsedAt sql.NullTime
			sim        float64
		)
		err := rows.Scan(&jd.ID, &jd.UserID, &jd.Title, &jd.Company,
			&jd.Description, &jd.Requirements, &skills, &jd.ExperienceLevel,
			&jd.TimesUsed, &lastUsedAt, &jd.CreatedAt, &jd.UpdatedAt, &sim)
		if err != nil {
			return nil, fmt.Errorf("scan job description search hit: %w", err)
		}
		if len(skills) > 0 {
			if err := json.Unmarshal(skills, &jd.KeySkills); err != nil {
				return nil, fmt.Errorf("unmarshal key skills: %w", err)
			}
		}
		if lastUsedAt.Valid {
			jd.LastUsedAt = &lastUsedAt.Time
		}
		hits = append(hits, hiring.JobDescriptionWithSimilarity{JobDescription: jd, Similarity: sim})
	}
	return hits, rows.Err()
}

func (s *PostgresStore) MostUsed(ctx context.Context, userID string, limit int) ([]hiring.JobDescription, error) {
	query := selectJobDescription + `
		WHERE user_id = $1
		ORDER BY times_used DESC NULLS LAST, created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list most used job descriptions: %w", err)
	}
	defer rows.Close()

	var out []hiring.JobDescription
	for rows.Next() {
		jd, err := scanJobDescription(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan job description: %w", err)
		}
		out = append(out, *jd)
	}
	return out, rows.Err()
}

func (s *PostgresStore) IncrementUsage(ctx context.Context, id string) error {
	query := `
		UPDATE job_descriptions
		SET times_used = COALESCE(times_used, 0) + 1, last_used_at = now(), updated_at = now()
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment job description usage: %w", err)
	}
	return requireRow(res)
}

func scanJobDescription(scan func(dest ...any) error) (*hiring.JobDescription, error) {
	var (
		jd         hiring.JobDescription
		skills     []byte
		embedding  sql.NullString
		lastUsedAt sql.NullTime
	)
	err := scan(&jd.ID, &jd.UserID, &jd.Title, &jd.Company, &jd.Description,
		&jd.Requirements, &embedding, &skills, &jd.ExperienceLevel,
		&jd.TimesUsed, &lastUsedAt, &jd.CreatedAt, &jd.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &jd.KeySkills); err != nil {
			return nil, fmt.Errorf("unmarshal key skills: %w", err)
		}
	}
	if embedding.Valid {
		vec, err := database.DecodeVector(embedding.String)
		if err != nil {
			return nil, fmt.Errorf("decode description embedding: %w", err)
		}
		jd.DescriptionEmbedding = vec
	}
	if lastUsedAt.Valid {
		jd.LastUsedAt = &lastUsedAt.Time
	}
	return &jd, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("job description not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
