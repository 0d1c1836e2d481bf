package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	inserted []Entry
}

func (m *mockRepo) Insert(ctx context.Context, e Entry) error {
	m.inserted = append(m.inserted, e)
	return nil
}

func (m *mockRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit > 0 && limit < len(m.inserted) {
		return m.inserted[:limit], nil
	}
	return m.inserted, nil
}

var _ RepositoryPort = (*mockRepo)(nil)

type stubEnqueuer struct {
	entries []Entry
	err     error
}

func (s *stubEnqueuer) EnqueueEntry(ctx context.Context, e Entry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, e)
	return nil
}

func TestRecordPrefersQueue(t *testing.T) {
	repo := &mockRepo{}
	queue := &stubEnqueuer{}
	svc := NewService(repo, queue, nil)

	svc.Record(context.Background(), Entry{Actor: "hr@example.com", Action: ActionLogin})

	require.Len(t, queue.entries, 1)
	assert.Empty(t, repo.inserted, "queued entries are written by the worker")
	assert.False(t, queue.entries[0].CreatedAt.IsZero(), "timestamp is stamped before enqueue")
}

func TestRecordFallsBackOnQueueFailure(t *testing.T) {
	repo := &mockRepo{}
	queue := &stubEnqueuer{err: errors.New("broker down")}
	svc := NewService(repo, queue, nil)

	svc.Record(context.Background(), Entry{Actor: "hr@example.com", Action: ActionAccessDenied, Resource: "resource:users"})

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, ActionAccessDenied, repo.inserted[0].Action)
}

func TestRecordWithoutQueueInsertsDirectly(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, nil, nil)

	svc.Record(context.Background(), Entry{Actor: "hr@example.com", Action: ActionLogout})

	require.Len(t, repo.inserted, 1)
	assert.False(t, repo.inserted[0].CreatedAt.IsZero())
}
