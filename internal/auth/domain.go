// Package auth implements credential verification and the login/logout
// endpoints that establish and tear down sessions.
package auth

import (
	"time"

	"github.com/meridian-hr/meridian-hr/internal/authz"
)

// User is an account record in the user store.
type User struct {
	ID           int64
	Email        string
	Name         string
	Role         authz.Role
	Department   string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}
