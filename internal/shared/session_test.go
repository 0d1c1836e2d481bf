package shared

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-hr/meridian-hr/internal/authz"
)

func newRedisManager(t *testing.T) (*SessionManager, *RedisSessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisSessionStore(client)
	return NewSessionManager(store, time.Hour, nil), store
}

func testPrincipal(t *testing.T) *authz.Principal {
	t.Helper()
	grant, ok := authz.Lookup(authz.RoleHRManager)
	require.True(t, ok)
	lastLogin := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	return &authz.Principal{
		ID:          42,
		Email:       "hr@example.com",
		Name:        "Harriet Reyes",
		Role:        authz.RoleHRManager,
		Department:  "People",
		Permissions: grant.Permissions,
		IsActive:    true,
		CreatedAt:   time.Date(2024, 11, 2, 17, 5, 1, 123456789, time.UTC),
		LastLogin:   &lastLogin,
	}
}

func TestSessionRoundTrip(t *testing.T) {
	manager, _ := newRedisManager(t)
	ctx := context.Background()
	original := testPrincipal(t)

	sessionID, err := manager.Establish(ctx, original)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	restored, err := manager.Restore(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, restored)

	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Email, restored.Email)
	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Role, restored.Role)
	assert.Equal(t, original.Department, restored.Department)
	assert.Equal(t, original.Permissions, restored.Permissions)
	assert.Equal(t, original.IsActive, restored.IsActive)
	assert.True(t, original.CreatedAt.Equal(restored.CreatedAt), "created_at must round-trip exactly")
	require.NotNil(t, restored.LastLogin)
	assert.True(t, original.LastLogin.Equal(*restored.LastLogin), "last_login must round-trip exactly")
}

func TestRestoreMissingSession(t *testing.T) {
	manager, _ := newRedisManager(t)
	restored, err := manager.Restore(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestRestoreCorruptSnapshotClearsStore(t *testing.T) {
	manager, store := newRedisManager(t)
	ctx := context.Background()

	cases := map[string]string{
		"truncated json":     `{"id":42,"email":"hr@ex`,
		"missing email":      `{"id":42,"role":"employee","permissions":["profile.view_own"],"created_at":"2024-11-02T17:05:01Z"}`,
		"unknown role":       `{"id":42,"email":"a@b.c","role":"root","permissions":["profile.view_own"],"created_at":"2024-11-02T17:05:01Z"}`,
		"unknown permission": `{"id":42,"email":"a@b.c","role":"employee","permissions":["nope"],"created_at":"2024-11-02T17:05:01Z"}`,
		"empty permissions":  `{"id":42,"email":"a@b.c","role":"employee","permissions":[],"created_at":"2024-11-02T17:05:01Z"}`,
		"bad created_at":     `{"id":42,"email":"a@b.c","role":"employee","permissions":["profile.view_own"],"created_at":"yesterday"}`,
		"zero id":            `{"id":0,"email":"a@b.c","role":"employee","permissions":["profile.view_own"],"created_at":"2024-11-02T17:05:01Z"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			sessionID := "corrupt-" + name
			require.NoError(t, store.Set(ctx, sessionID, []byte(payload), time.Hour))

			restored, err := manager.Restore(ctx, sessionID)
			require.NoError(t, err)
			assert.Nil(t, restored)

			residual, err := store.Get(ctx, sessionID)
			require.NoError(t, err)
			assert.Nil(t, residual, "corrupt snapshot must be cleared")
		})
	}
}

func TestTerminateIsIdempotent(t *testing.T) {
	manager, _ := newRedisManager(t)
	ctx := context.Background()

	require.NoError(t, manager.Terminate(ctx, "never-existed"))

	sessionID, err := manager.Establish(ctx, testPrincipal(t))
	require.NoError(t, err)
	require.NoError(t, manager.Terminate(ctx, sessionID))
	require.NoError(t, manager.Terminate(ctx, sessionID))

	restored, err := manager.Restore(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestEstablishReplacesNothingSharedBetweenLogins(t *testing.T) {
	manager, _ := newRedisManager(t)
	ctx := context.Background()

	first, err := manager.Establish(ctx, testPrincipal(t))
	require.NoError(t, err)
	second, err := manager.Establish(ctx, testPrincipal(t))
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "each login gets its own session id")
}

func TestMemorySessionStore(t *testing.T) {
	manager := NewSessionManager(NewMemorySessionStore(), time.Hour, nil)
	ctx := context.Background()

	sessionID, err := manager.Establish(ctx, testPrincipal(t))
	require.NoError(t, err)

	restored, err := manager.Restore(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "hr@example.com", restored.Email)

	require.NoError(t, manager.Terminate(ctx, sessionID))
	restored, err = manager.Restore(ctx, sessionID)
	require.NoError(t, err)
	assert.Nil(t, restored)
}
