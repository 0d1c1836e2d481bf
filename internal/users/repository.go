package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// RepositoryPort defines data access methods for account management.
type RepositoryPort interface {
	List(ctx context.Context) ([]Account, error)
	SetActive(ctx context.Context, id int64, active bool) (*Account, error)
	SetRole(ctx context.Context, id int64, role authz.Role) (*Account, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const accountColumns = `id, email, name, role, department, is_active, created_at, last_login`

func scanAccount(row pgx.Row) (*Account, error) {
	var (
		a         Account
		role      string
		lastLogin pgtype.Timestamptz
	)
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &role, &a.Department, &a.IsActive, &a.CreatedAt, &lastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	a.Role = authz.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	return &a, nil
}

// List returns all accounts ordered by id.
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		a, err := scanAccount(rows)
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

// SetActive toggles an account's active flag.
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) (*Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`UPDATE users SET is_active = $2 WHERE id = $1 RETURNING `+accountColumns, id, active))
}

// SetRole changes an account's role.
func (r *Repository) SetRole(ctx context.Context, id int64, role authz.Role) (*Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`UPDATE users SET role = $2 WHERE id = $1 RETURNING `+accountColumns, id, role.String()))
}

var _ RepositoryPort = (*Repository)(nil)
