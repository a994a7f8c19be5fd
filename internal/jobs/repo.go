package jobs

import (
	"context"
	"errors"
	"time"

	"jobtracker-backend/internal/analytics"
)

var (
	ErrNotFound = errors.New("job not found")
	ErrConflict = errors.New("job already exists")
)

// Repo stores jobs. IDs are unique per user, not globally.
type Repo interface {
	// CreateBatch stores every job or none of them. An ID the user already
	// owns yields ErrConflict.
	CreateBatch(ctx context.Context, jobs []Job) error
	ListByUser(ctx context.Context, userID string) ([]Job, error)
	// UpdateStatus sets the status and appends a history entry at changedAt.
	// The returned job carries its full history.
	UpdateStatus(ctx context.Context, userID, jobID string, status analytics.Status, changedAt time.Time) (Job, error)
}
