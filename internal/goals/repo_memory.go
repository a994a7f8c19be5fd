package goals

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	goals map[string]Goals
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{goals: make(map[string]Goals)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, userID string, goals Goals) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	goals.UpdatedAt = time.Now().UTC()
	r.goals[userID] = goals
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, userID string) (Goals, error) {
	if err := ctx.Err(); err != nil {
		return Goals{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	goals, ok := r.goals[userID]
	if !ok {
		return Goals{}, ErrNotFound
	}
	return goals, nil
}
