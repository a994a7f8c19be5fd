package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobtracker-backend/internal/analytics"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01T09:30:00Z", time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-03-01T09:30:00.123+02:00", time.Date(2024, 3, 1, 7, 30, 0, 123000000, time.UTC)},
		{"2024-03-01T09:30:00", time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"03/01/2024", time.Time{}},
		{"yesterday", time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.True(t, tc.want.Equal(ParseTimestamp(tc.in)), "got %v", ParseTimestamp(tc.in))
		})
	}
}

func TestToRecordCopiesHistory(t *testing.T) {
	job := Job{
		ID:      "job-1",
		Status:  analytics.StatusApplied,
		Role:    "Tech Lead",
		History: []analytics.StatusChange{{Status: analytics.StatusApplied}},
	}

	rec := job.ToRecord()
	rec.StatusHistory[0].Status = analytics.StatusOffer

	assert.Equal(t, analytics.StatusApplied, job.History[0].Status)
	assert.Equal(t, "Tech Lead", rec.Role)
}
