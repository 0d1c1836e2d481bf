package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Authenticate validates credentials and builds the principal for a new
// session. Every failure collapses to shared.ErrInvalidCredentials so
// callers cannot distinguish an unknown account from a wrong password or an
// inactive account; the distinction is only logged. The principal's
// permission set is copied from the registry at this instant and stays fixed
// for the lifetime of the session.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*authz.Principal, error) {
	email = strings.TrimSpace(email)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.log("login rejected: account lookup", slog.String("email", email), slog.Any("error", err))
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log("login rejected: inactive account", slog.String("email", email))
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log("login rejected: password mismatch", slog.String("email", email))
		return nil, shared.ErrInvalidCredentials
	}

	grant, ok := authz.Lookup(user.Role)
	if !ok {
		// A role with no registry entry is a configuration error; deny the
		// login rather than issue a principal with zero permissions.
		s.log("login rejected: role has no registry entry",
			slog.String("email", email), slog.String("role", user.Role.String()))
		return nil, shared.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.RecordLogin(ctx, user.ID, now); err != nil {
		s.log("record login", slog.Any("error", err))
	}

	return &authz.Principal{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Department:  user.Department,
		Permissions: grant.Permissions,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		LastLogin:   &now,
	}, nil
}

func (s *Service) log(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
