package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobtracker-backend/internal/analytics"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	jobs   map[string]Job
	byUser map[string][]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		jobs:   make(map[string]Job),
		byUser: make(map[string][]string),
	}
}

func memoryKey(userID, jobID string) string {
	return userID + "|" + jobID
}

func (r *MemoryRepo) CreateBatch(ctx context.Context, jobs []Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(jobs))
	for _, job := range jobs {
		key := memoryKey(job.UserID, job.ID)
		_, stored := r.jobs[key]
		_, repeated := seen[key]
		if stored || repeated {
			return fmt.Errorf("job %s: %w", job.ID, ErrConflict)
		}
		seen[key] = struct{}{}
	}

	now := time.Now().UTC()
	for _, job := range jobs {
		if job.UpdatedAt.IsZero() {
			job.UpdatedAt = now
		}
		job.History = cloneHistory(job.History)
		r.jobs[memoryKey(job.UserID, job.ID)] = job
		r.byUser[job.UserID] = append(r.byUser[job.UserID], job.ID)
	}
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byUser[userID]
	out := make([]Job, 0, len(ids))
	for _, id := range ids {
		job := r.jobs[memoryKey(userID, id)]
		job.History = cloneHistory(job.History)
		out = append(out, job)
	}
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, userID, jobID string, status analytics.Status, changedAt time.Time) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memoryKey(userID, jobID)
	job, ok := r.jobs[key]
	if !ok {
		return Job{}, ErrNotFound
	}
	job.Status = status
	job.History = append(cloneHistory(job.History), analytics.StatusChange{Status: status, Timestamp: changedAt})
	job.UpdatedAt = changedAt
	r.jobs[key] = job

	out := job
	out.History = cloneHistory(job.History)
	return out, nil
}

func cloneHistory(in []analytics.StatusChange) []analytics.StatusChange {
	if in == nil {
		return nil
	}
	return append(make([]analytics.StatusChange, 0, len(in)), in...)
}
