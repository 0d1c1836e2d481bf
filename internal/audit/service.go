package audit

import (
	"context"
	"time"

	"log/slog"
)

// Enqueuer hands an entry to the background queue. The asynq-backed
// implementation lives in the jobs package.
type Enqueuer interface {
	EnqueueEntry(ctx context.Context, e Entry) error
}

// Service records and reads audit entries. Recording is fire-and-forget:
// when a queue is configured entries are written asynchronously by the
// worker, and a queue failure falls back to a direct insert so the trail
// does not silently drop events.
type Service struct {
	repo     RepositoryPort
	enqueuer Enqueuer
	logger   *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, enqueuer Enqueuer, logger *slog.Logger) *Service {
	return &Service{repo: repo, enqueuer: enqueuer, logger: logger}
}

// Record appends an entry to the trail. Errors are logged, never returned:
// auditing must not fail the request being audited.
func (s *Service) Record(ctx context.Context, e Entry) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueEntry(ctx, e); err == nil {
			return
		} else if s.logger != nil {
			s.logger.Warn("audit enqueue failed, inserting directly", slog.Any("error", err))
		}
	}
	if err := s.repo.Insert(ctx, e); err != nil && s.logger != nil {
		s.logger.Error("audit insert", slog.Any("error", err))
	}
}

// List returns the newest entries.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	return s.repo.List(ctx, limit)
}
