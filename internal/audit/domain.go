// Package audit records security-relevant events: logins, logouts and
// authorization denials.
package audit

import "time"

// Entry is one audit trail record.
type Entry struct {
	ID        int64     `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Actions recorded in the trail.
const (
	ActionLogin        = "login"
	ActionLogout       = "logout"
	ActionAccessDenied = "access_denied"
)
