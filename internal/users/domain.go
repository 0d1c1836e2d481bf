// Package users implements administrator-facing account management.
package users

import (
	"time"

	"github.com/meridian-hr/meridian-hr/internal/authz"
)

// Account is a user record as seen by administrators. Role changes recorded
// here take effect on the account's next login; live sessions keep the
// permission snapshot they were issued with.
type Account struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       authz.Role `json:"role"`
	Department string     `json:"department"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}
