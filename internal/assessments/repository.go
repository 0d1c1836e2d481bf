package assessments

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines data access methods for assessments.
type RepositoryPort interface {
	Create(ctx context.Context, a Assessment) (*Assessment, error)
	ListForEmployee(ctx context.Context, email string) ([]Assessment, error)
	List(ctx context.Context) ([]Assessment, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const assessmentColumns = `id, employee_email, assessor_email, skill_name, score, notes, created_at`

// Create inserts a new assessment record.
func (r *Repository) Create(ctx context.Context, a Assessment) (*Assessment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO assessments (employee_email, assessor_email, skill_name, score, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING `+assessmentColumns,
		a.EmployeeEmail, a.AssessorEmail, a.SkillName, a.Score, a.Notes)
	return scanAssessment(row)
}

// ListForEmployee returns assessments for one employee, newest first.
func (r *Repository) ListForEmployee(ctx context.Context, email string) ([]Assessment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+assessmentColumns+` FROM assessments
		WHERE lower(employee_email) = lower($1)
		ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// List returns all assessments, newest first.
func (r *Repository) List(ctx context.Context) ([]Assessment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+assessmentColumns+` FROM assessments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	if err := row.Scan(&a.ID, &a.EmployeeEmail, &a.AssessorEmail, &a.SkillName, &a.Score, &a.Notes, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func collect(rows pgx.Rows) ([]Assessment, error) {
	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ RepositoryPort = (*Repository)(nil)
