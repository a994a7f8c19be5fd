package goals

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("goals not found")

type Repo interface {
	Upsert(ctx context.Context, userID string, goals Goals) error
	Get(ctx context.Context, userID string) (Goals, error)
}
