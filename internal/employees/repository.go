package employees

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// RepositoryPort defines data access methods for employee profiles.
type RepositoryPort interface {
	List(ctx context.Context) ([]Employee, error)
	ListByDepartment(ctx context.Context, department string) ([]Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	Create(ctx context.Context, e Employee) (*Employee, error)
	UpdateProfile(ctx context.Context, email, name, department string, jobProfileID *int64) (*Employee, error)
	UpdateSkills(ctx context.Context, email string, skills []Skill) (*Employee, error)
}

// Repository provides PostgreSQL backed persistence. Skills are stored as a
// jsonb column on the employee row.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const employeeColumns = `id, email, name, department, job_profile_id, skills, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var (
		e            Employee
		jobProfileID pgtype.Int8
		skillsRaw    []byte
	)
	if err := row.Scan(&e.ID, &e.Email, &e.Name, &e.Department, &jobProfileID, &skillsRaw, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	if jobProfileID.Valid {
		id := jobProfileID.Int64
		e.JobProfileID = &id
	}
	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &e.Skills); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

// List returns all employee profiles ordered by name.
func (r *Repository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListByDepartment returns employee profiles within one department.
func (r *Repository) ListByDepartment(ctx context.Context, department string) ([]Employee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE department = $1 ORDER BY name`, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Employee, error) {
	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByEmail fetches one employee profile.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE lower(email) = lower($1)`, email)
	return scanEmployee(row)
}

// Create inserts a new employee profile.
func (r *Repository) Create(ctx context.Context, e Employee) (*Employee, error) {
	skills, err := json.Marshal(e.Skills)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO employees (email, name, department, job_profile_id, skills, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING `+employeeColumns,
		e.Email, e.Name, e.Department, e.JobProfileID, skills, e.IsActive)
	created, err := scanEmployee(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, httpx.ErrDuplicate
		}
		return nil, err
	}
	return created, nil
}

// UpdateProfile updates profile fields other than skills.
func (r *Repository) UpdateProfile(ctx context.Context, email, name, department string, jobProfileID *int64) (*Employee, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE employees
		SET name = $2, department = $3, job_profile_id = $4, updated_at = now()
		WHERE lower(email) = lower($1)
		RETURNING `+employeeColumns,
		email, name, department, jobProfileID)
	return scanEmployee(row)
}

// UpdateSkills replaces the skill list wholesale.
func (r *Repository) UpdateSkills(ctx context.Context, email string, skills []Skill) (*Employee, error) {
	payload, err := json.Marshal(skills)
	if err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE employees
		SET skills = $2, updated_at = now()
		WHERE lower(email) = lower($1)
		RETURNING `+employeeColumns,
		email, payload)
	return scanEmployee(row)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ RepositoryPort = (*Repository)(nil)
