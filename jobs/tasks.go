// Package jobs defines background tasks and the Asynq worker that processes
// them.
package jobs

import (
	"context"
	"encoding/json"
	"time"

	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-hr/meridian-hr/internal/audit"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAuditWrite appends an entry to the audit trail.
	TaskAuditWrite = "audit:write"
)

// AuditWritePayload carries one audit entry through the queue.
type AuditWritePayload struct {
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAuditWriteTask constructs an Asynq task for one audit entry.
func NewAuditWriteTask(payload AuditWritePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAuditWrite, data), nil
}

// AuditEnqueuer submits audit entries to the queue. Implements
// audit.Enqueuer.
type AuditEnqueuer struct {
	client *asynq.Client
}

// NewAuditEnqueuer wraps an Asynq client.
func NewAuditEnqueuer(client *asynq.Client) *AuditEnqueuer {
	return &AuditEnqueuer{client: client}
}

// EnqueueEntry submits one entry for asynchronous insertion.
func (e *AuditEnqueuer) EnqueueEntry(ctx context.Context, entry audit.Entry) error {
	task, err := NewAuditWriteTask(AuditWritePayload{
		Actor:     entry.Actor,
		Action:    entry.Action,
		Resource:  entry.Resource,
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

var _ audit.Enqueuer = (*AuditEnqueuer)(nil)

// NewAuditWriteHandler returns the worker-side handler that inserts queued
// entries.
func NewAuditWriteHandler(repo audit.RepositoryPort, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AuditWritePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		err := repo.Insert(ctx, audit.Entry{
			Actor:     payload.Actor,
			Action:    payload.Action,
			Resource:  payload.Resource,
			Detail:    payload.Detail,
			CreatedAt: payload.CreatedAt,
		})
		if err != nil && logger != nil {
			logger.Error("audit write task", slog.Any("error", err))
		}
		return err
	}
}
