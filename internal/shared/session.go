package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/meridian-hr/meridian-hr/internal/authz"
)

// SessionManager establishes, restores and terminates authenticated sessions.
// A session is a serialized principal snapshot in the SessionStore keyed by
// an opaque session ID carried in a cookie.
type SessionManager struct {
	store  SessionStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(store SessionStore, ttl time.Duration, logger *slog.Logger) *SessionManager {
	return &SessionManager{store: store, ttl: ttl, logger: logger}
}

// TTL exposes the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// principalSnapshot is the persisted session layout: a flat mirror of the
// principal with timestamps as RFC 3339 strings.
type principalSnapshot struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Department  string   `json:"department"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
	CreatedAt   string   `json:"created_at"`
	LastLogin   string   `json:"last_login,omitempty"`
}

// Establish serializes the principal and stores it under a fresh session ID,
// replacing nothing: each login gets its own session.
func (m *SessionManager) Establish(ctx context.Context, p *authz.Principal) (string, error) {
	if p == nil {
		return "", fmt.Errorf("shared: establish session without principal")
	}
	payload, err := json.Marshal(snapshotFromPrincipal(p))
	if err != nil {
		return "", fmt.Errorf("shared: marshal session snapshot: %w", err)
	}
	sessionID := uuid.NewString()
	if err := m.store.Set(ctx, sessionID, payload, m.ttl); err != nil {
		return "", fmt.Errorf("shared: store session snapshot: %w", err)
	}
	return sessionID, nil
}

// Restore loads the principal for a session ID. A missing snapshot yields
// (nil, nil). A snapshot that cannot be parsed or fails field validation is
// cleared from the store and also yields (nil, nil): corruption self-heals
// and never surfaces to callers. Only store I/O failures return an error.
func (m *SessionManager) Restore(ctx context.Context, sessionID string) (*authz.Principal, error) {
	if sessionID == "" {
		return nil, nil
	}
	payload, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("shared: load session snapshot: %w", err)
	}
	if payload == nil {
		return nil, nil
	}
	principal, err := decodeSnapshot(payload)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("clearing corrupt session snapshot",
				slog.String("session_id", sessionID),
				slog.Any("error", err))
		}
		if clearErr := m.store.Clear(ctx, sessionID); clearErr != nil {
			return nil, fmt.Errorf("shared: clear corrupt session: %w", clearErr)
		}
		return nil, nil
	}
	return principal, nil
}

// Terminate clears the session. Safe to call when no session exists.
func (m *SessionManager) Terminate(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Clear(ctx, sessionID)
}

func snapshotFromPrincipal(p *authz.Principal) principalSnapshot {
	perms := make([]string, len(p.Permissions))
	for i, perm := range p.Permissions {
		perms[i] = perm.String()
	}
	snap := principalSnapshot{
		ID:          p.ID,
		Email:       p.Email,
		Name:        p.Name,
		Role:        p.Role.String(),
		Department:  p.Department,
		Permissions: perms,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339Nano),
	}
	if p.LastLogin != nil {
		snap.LastLogin = p.LastLogin.Format(time.RFC3339Nano)
	}
	return snap
}

// decodeSnapshot validates every required field before accepting a restored
// session. A partially-populated principal is never returned.
func decodeSnapshot(payload []byte) (*authz.Principal, error) {
	var snap principalSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if snap.ID <= 0 {
		return nil, fmt.Errorf("invalid principal id %d", snap.ID)
	}
	if snap.Email == "" {
		return nil, fmt.Errorf("missing email")
	}
	role := authz.Role(snap.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", snap.Role)
	}
	if len(snap.Permissions) == 0 {
		return nil, fmt.Errorf("missing permissions")
	}
	perms := make([]authz.Permission, len(snap.Permissions))
	for i, raw := range snap.Permissions {
		perm := authz.Permission(raw)
		if !perm.Valid() {
			return nil, fmt.Errorf("unknown permission %q", raw)
		}
		perms[i] = perm
	}
	createdAt, err := time.Parse(time.RFC3339Nano, snap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	principal := &authz.Principal{
		ID:          snap.ID,
		Email:       snap.Email,
		Name:        snap.Name,
		Role:        role,
		Department:  snap.Department,
		Permissions: perms,
		IsActive:    snap.IsActive,
		CreatedAt:   createdAt,
	}
	if snap.LastLogin != "" {
		lastLogin, err := time.Parse(time.RFC3339Nano, snap.LastLogin)
		if err != nil {
			return nil, fmt.Errorf("parse last_login: %w", err)
		}
		principal.LastLogin = &lastLogin
	}
	return principal, nil
}
