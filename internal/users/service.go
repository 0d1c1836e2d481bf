package users

import (
	"context"
	"fmt"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/platform/httpx"
)

// Service handles account management business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// SetActive toggles an account's active flag. Deactivation does not revoke
// live sessions; it blocks the next login.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*Account, error) {
	return s.repo.SetActive(ctx, id, active)
}

// SetRole changes an account's role. Only defined roles are accepted.
func (s *Service) SetRole(ctx context.Context, id int64, role authz.Role) (*Account, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", httpx.ErrValidation, role)
	}
	return s.repo.SetRole(ctx, id, role)
}
