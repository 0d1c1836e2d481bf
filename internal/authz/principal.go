package authz

import (
	"strings"
	"time"
)

// Principal is the authenticated actor whose permissions are being checked.
//
// Permissions hold the registry grant resolved at login time. They are a
// snapshot: editing the registry does not change already-issued principals,
// re-login is the only way to pick up new grants.
type Principal struct {
	ID          int64        `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Role        Role         `json:"role"`
	Department  string       `json:"department"`
	Permissions []Permission `json:"permissions"`
	IsActive    bool         `json:"is_active"`
	CreatedAt   time.Time    `json:"created_at"`
	LastLogin   *time.Time   `json:"last_login,omitempty"`
}

// HasPermission reports whether the principal holds perm. A nil principal
// holds nothing.
func (p *Principal) HasPermission(perm Permission) bool {
	if p == nil {
		return false
	}
	for _, held := range p.Permissions {
		if held == perm {
			return true
		}
	}
	return false
}

// IsSelf reports whether the principal is the same actor as the record
// identified by email. Matching is case-insensitive; an empty email on
// either side never matches.
func (p *Principal) IsSelf(email string) bool {
	if p == nil {
		return false
	}
	email = strings.TrimSpace(email)
	if email == "" || p.Email == "" {
		return false
	}
	return strings.EqualFold(p.Email, email)
}
