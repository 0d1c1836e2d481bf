package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-hr/meridian-hr/internal/authz"
	"github.com/meridian-hr/meridian-hr/internal/shared"
)

type stubRepo struct {
	user        *User
	findErr     error
	loginStamps []time.Time
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s *stubRepo) RecordLogin(ctx context.Context, userID int64, at time.Time) error {
	s.loginStamps = append(s.loginStamps, at)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func activeUser(t *testing.T, role authz.Role) *User {
	t.Helper()
	return &User{
		ID:           7,
		Email:        "user@example.com",
		Name:         "Uma Sorensen",
		Role:         role,
		Department:   "Engineering",
		PasswordHash: hashPassword(t, "correct-horse-battery"),
		IsActive:     true,
		CreatedAt:    time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := &stubRepo{user: activeUser(t, authz.RoleEmployee)}
	svc := NewService(repo, nil)

	principal, err := svc.Authenticate(context.Background(), "user@example.com", "correct-horse-battery")
	require.NoError(t, err)
	require.NotNil(t, principal)

	grant, _ := authz.Lookup(authz.RoleEmployee)
	assert.Equal(t, grant.Permissions, principal.Permissions, "permissions are the registry snapshot")
	assert.Equal(t, authz.RoleEmployee, principal.Role)
	require.NotNil(t, principal.LastLogin)
	require.Len(t, repo.loginStamps, 1)
	assert.True(t, principal.LastLogin.Equal(repo.loginStamps[0]))
}

func TestAuthenticateAdminScenario(t *testing.T) {
	user := activeUser(t, authz.RoleAdmin)
	user.Email = "admin@example.com"
	svc := NewService(&stubRepo{user: user}, nil)

	principal, err := svc.Authenticate(context.Background(), "admin@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.True(t, authz.HasPermission(principal, authz.PermSystemConfigure))
	assert.True(t, authz.CanAccessResource(principal, "employees", "view"))
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewService(&stubRepo{user: activeUser(t, authz.RoleEmployee)}, nil)

	principal, err := svc.Authenticate(context.Background(), "user@example.com", "wrong")
	assert.Nil(t, principal)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	svc := NewService(&stubRepo{}, nil)

	principal, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
	assert.Nil(t, principal)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	user := activeUser(t, authz.RoleEmployee)
	user.IsActive = false
	svc := NewService(&stubRepo{user: user}, nil)

	// Correct password, inactive account: same generic failure.
	principal, err := svc.Authenticate(context.Background(), "user@example.com", "correct-horse-battery")
	assert.Nil(t, principal)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnregisteredRole(t *testing.T) {
	user := activeUser(t, authz.Role("contractor"))
	svc := NewService(&stubRepo{user: user}, nil)

	principal, err := svc.Authenticate(context.Background(), "user@example.com", "correct-horse-battery")
	assert.Nil(t, principal)
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
