package performance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker-backend/internal/analytics"
	"jobtracker-backend/internal/goals"
	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/shared/cache"
	"jobtracker-backend/internal/shared/metrics"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type stubJobs struct {
	jobs  []jobs.Job
	err   error
	calls int
}

func (s *stubJobs) ListByUser(ctx context.Context, userID string) ([]jobs.Job, error) {
	s.calls++
	return s.jobs, s.err
}

type stubGoals struct {
	goals goals.Goals
	err   error
}

func (s stubGoals) Get(ctx context.Context, userID string) (goals.Goals, error) {
	return s.goals, s.err
}

func sampleJobs() []jobs.Job {
	var out []jobs.Job
	for i := 0; i < 6; i++ {
		status := analytics.StatusApplied
		if i%2 == 0 {
			status = analytics.StatusInterview
		}
		out = append(out, jobs.Job{
			ID:        string(rune('a' + i)),
			Status:    status,
			Source:    "Referral",
			CreatedAt: now.AddDate(0, 0, -i),
		})
	}
	out = append(out, jobs.Job{ID: "z", Status: analytics.StatusOffer, Archived: true, CreatedAt: now})
	return out
}

func newService(t *testing.T, lister *stubJobs, withCache bool) *Service {
	t.Helper()
	svc := &Service{
		Jobs:     lister,
		Goals:    stubGoals{goals: goals.Goals{WeeklyApplications: 5}},
		CacheTTL: time.Minute,
		Engine:   analytics.Engine{Now: func() time.Time { return now }},
	}
	if withCache {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		t.Cleanup(mr.Close)
		c, err := cache.NewRedis(context.Background(), "redis://"+mr.Addr(), "perf:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		svc.Cache = c
	}
	return svc
}

func TestSnapshotComputesFromNormalizedJobs(t *testing.T) {
	svc := newService(t, &stubJobs{jobs: sampleJobs()}, false)

	res, err := svc.Snapshot(context.Background(), "user-1", Filter{})
	require.NoError(t, err)

	assert.False(t, res.Cached)
	assert.Equal(t, 6, res.Records)
	assert.Equal(t, 6, res.Snapshot.Funnel.TotalApplications)
	assert.Zero(t, res.Snapshot.Funnel.Offer)
	assert.Equal(t, 6, res.Snapshot.Goals.ApplicationsThisWeek)
	assert.True(t, res.Snapshot.Goals.WeeklyApplications.Achieved)
}

func TestSnapshotUsesCacheForSameInputs(t *testing.T) {
	lister := &stubJobs{jobs: sampleJobs()}
	svc := newService(t, lister, true)
	ctx := context.Background()
	hitsBefore := testutil.ToFloat64(metrics.SnapshotsComputed.WithLabelValues("hit"))

	first, err := svc.Snapshot(ctx, "user-1", Filter{})
	require.NoError(t, err)
	second, err := svc.Snapshot(ctx, "user-1", Filter{})
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Snapshot.Funnel, second.Snapshot.Funnel)
	assert.Equal(t, first.Snapshot.Recommendations, second.Snapshot.Recommendations)
	assert.Equal(t, first.Snapshot.Rates, second.Snapshot.Rates)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(metrics.SnapshotsComputed.WithLabelValues("hit")))
	assert.Equal(t, 2, lister.calls)

	lister.jobs = append(lister.jobs, jobs.Job{ID: "new", Status: analytics.StatusApplied, CreatedAt: now})
	third, err := svc.Snapshot(ctx, "user-1", Filter{})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, 7, third.Snapshot.Funnel.TotalApplications)
}

func TestCachedSnapshotKeepsFullPrecisionRates(t *testing.T) {
	lister := &stubJobs{jobs: []jobs.Job{
		{ID: "a", Status: analytics.StatusInterview, CreatedAt: now},
		{ID: "b", Status: analytics.StatusApplied, CreatedAt: now},
		{ID: "c", Status: analytics.StatusApplied, CreatedAt: now},
	}}
	svc := newService(t, lister, true)
	ctx := context.Background()

	first, err := svc.Snapshot(ctx, "user-1", Filter{})
	require.NoError(t, err)
	second, err := svc.Snapshot(ctx, "user-1", Filter{})
	require.NoError(t, err)

	require.True(t, second.Cached)
	assert.InDelta(t, 100.0/3, second.Snapshot.Rates.InterviewRate, 1e-9)
	assert.Equal(t, first.Snapshot.Rates, second.Snapshot.Rates)
}

func TestSnapshotPropagatesLoadErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := newService(t, &stubJobs{err: boom}, false)

	_, err := svc.Snapshot(context.Background(), "user-1", Filter{})
	assert.ErrorIs(t, err, boom)

	svc = newService(t, &stubJobs{}, false)
	svc.Goals = stubGoals{err: boom}
	_, err = svc.Snapshot(context.Background(), "user-1", Filter{})
	assert.ErrorIs(t, err, boom)
}

func TestSnapshotEmptyHistory(t *testing.T) {
	svc := newService(t, &stubJobs{}, false)

	res, err := svc.Snapshot(context.Background(), "user-1", Filter{})
	require.NoError(t, err)
	assert.NotNil(t, res.Snapshot.Recommendations)
	assert.Empty(t, res.Snapshot.Recommendations)
	assert.Zero(t, res.Snapshot.Rates.ResponseRate)
}
