package jobprofiles

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// RepositoryPort defines data access methods for job profiles.
type RepositoryPort interface {
	List(ctx context.Context) ([]JobProfile, error)
	Get(ctx context.Context, id int64) (*JobProfile, error)
	Create(ctx context.Context, p JobProfile) (*JobProfile, error)
	Update(ctx context.Context, p JobProfile) (*JobProfile, error)
	Delete(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const profileColumns = `id, title, department, required_skills, created_at, updated_at`

func scanProfile(row pgx.Row) (*JobProfile, error) {
	var (
		p         JobProfile
		skillsRaw []byte
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Department, &skillsRaw, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &p.RequiredSkills); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// List returns all job profiles ordered by title.
func (r *Repository) List(ctx context.Context) ([]JobProfile, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+profileColumns+` FROM job_profiles ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []JobProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one job profile.
func (r *Repository) Get(ctx context.Context, id int64) (*JobProfile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM job_profiles WHERE id = $1`, id))
}

// Create inserts a new job profile.
func (r *Repository) Create(ctx context.Context, p JobProfile) (*JobProfile, error) {
	skills, err := json.Marshal(p.RequiredSkills)
	if err != nil {
		return nil, err
	}
	return scanProfile(r.pool.QueryRow(ctx, `
		INSERT INTO job_profiles (title, department, required_skills, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING `+profileColumns,
		p.Title, p.Department, skills))
}

// Update replaces a job profile's fields.
func (r *Repository) Update(ctx context.Context, p JobProfile) (*JobProfile, error) {
	skills, err := json.Marshal(p.RequiredSkills)
	if err != nil {
		return nil, err
	}
	return scanProfile(r.pool.QueryRow(ctx, `
		UPDATE job_profiles
		SET title = $2, department = $3, required_skills = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+profileColumns,
		p.ID, p.Title, p.Department, skills))
}

// Delete removes a job profile. Returns httpx.ErrNotFound when nothing was
// deleted.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM job_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
