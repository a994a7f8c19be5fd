package performance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"jobtracker-backend/internal/analytics"
	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/shared/cache"
	"jobtracker-backend/internal/shared/metrics"
	"jobtracker-backend/internal/shared/telemetry"
	"jobtracker-backend/internal/shared/util"
)

// JobLister loads a user's jobs.
type JobLister interface {
	ListByUser(ctx context.Context, userID string) ([]jobs.Job, error)
}

// GoalGetter loads a user's goals.
type GoalGetter interface {
	Get(ctx context.Context, userID string) (goals.Goals, error)
}

// SnapshotCache memoizes snapshots by input hash.
type SnapshotCache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Service struct {
	Jobs     JobLister
	Goals    GoalGetter
	Cache    SnapshotCache
	CacheTTL time.Duration
	Engine   analytics.Engine
}

// Result is a snapshot plus how it was produced. Rates are recomputed from
// the funnel on a cache hit, so they carry full precision either way.
type Result struct {
	Snapshot analytics.Snapshot `json:"snapshot"`
	Filter   Filter             `json:"filter"`
	Records  int                `json:"records"`
	Cached   bool               `json:"cached"`
}

// Snapshot loads the user's jobs and goals, applies the filter and runs the
// engine, reusing a cached snapshot when the inputs are unchanged.
func (s *Service) Snapshot(ctx context.Context, userID string, f Filter) (Result, error) {
	if s == nil || s.Jobs == nil || s.Goals == nil {
		return Result{}, errors.New("performance service not configured")
	}
	start := time.Now()

	var (
		allJobs   []jobs.Job
		userGoals goals.Goals
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allJobs, err = s.Jobs.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("load jobs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		userGoals, err = s.Goals.Get(gctx, userID)
		if err != nil {
			return fmt.Errorf("load goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.SnapshotFailures.WithLabelValues("load").Inc()
		return Result{}, err
	}

	records := Normalize(allJobs, f)
	cfg := userGoals.Config()
	res := Result{Filter: f, Records: len(records)}

	key, keyErr := s.cacheKey(userID, records, cfg, f)
	if s.Cache != nil && keyErr == nil {
		var cached analytics.Snapshot
		err := s.Cache.GetJSON(ctx, key, &cached)
		switch {
		case err == nil:
			cached.Rates = analytics.ComputeRates(cached.Funnel)
			res.Snapshot = cached
			res.Cached = true
			metrics.SnapshotsComputed.WithLabelValues("hit").Inc()
			s.logComputed(userID, res, start)
			return res, nil
		case !errors.Is(err, cache.ErrMiss):
			telemetry.Warn("analytics.cache_get_failed", map[string]any{"user_id": userID, "error": err})
		}
	}

	res.Snapshot = s.Engine.Compute(records, cfg)
	metrics.SnapshotRecords.Observe(float64(len(records)))
	for _, rec := range res.Snapshot.Recommendations {
		metrics.RecommendationsEmitted.WithLabelValues(rec.Type, rec.Confidence).Inc()
	}

	outcome := "disabled"
	if s.Cache != nil && keyErr == nil {
		outcome = "miss"
		if err := s.Cache.SetJSON(ctx, key, res.Snapshot, s.CacheTTL); err != nil {
			telemetry.Warn("analytics.cache_set_failed", map[string]any{"user_id": userID, "error": err})
		}
	}
	metrics.SnapshotsComputed.WithLabelValues(outcome).Inc()
	s.logComputed(userID, res, start)
	return res, nil
}

// cacheKey changes whenever the records, goals, filter or engine clock date
// change.
func (s *Service) cacheKey(userID string, records []analytics.JobRecord, cfg analytics.GoalConfig, f Filter) (string, error) {
	recJSON, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	inputs, err := json.Marshal(struct {
		Goals  analytics.GoalConfig `json:"goals"`
		Filter Filter               `json:"filter"`
	}{cfg, f})
	if err != nil {
		return "", err
	}
	now := time.Now
	if s.Engine.Now != nil {
		now = s.Engine.Now
	}
	loc := s.Engine.Location
	if loc == nil {
		loc = time.UTC
	}
	day := now().In(loc).Format(time.DateOnly)
	return "snapshot:" + util.HashParts([]byte(userID), recJSON, inputs, []byte(day)), nil
}

func (s *Service) logComputed(userID string, res Result, start time.Time) {
	elapsed := time.Since(start)
	metrics.SnapshotDuration.Observe(elapsed.Seconds())
	telemetry.Info("analytics.snapshot", map[string]any{
		"user_key":        util.HashUserKey(userID),
		"records":         res.Records,
		"cached":          res.Cached,
		"recommendations": len(res.Snapshot.Recommendations),
		"duration_ms":     float64(elapsed.Microseconds()) / 1000.0,
	})
}
