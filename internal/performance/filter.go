package performance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jobtracker-backend/internal/analytics"
	"jobtracker-backend/internal/jobs"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filter narrows the jobs fed into the engine. Bounds are inclusive.
type Filter struct {
	From     *time.Time         `json:"from,omitempty"`
	To       *time.Time         `json:"to,omitempty"`
	Statuses []analytics.Status `json:"statuses,omitempty"`
}

// ParseFilter reads from/to (YYYY-MM-DD) and a comma separated status list.
// The to date covers the whole day.
func ParseFilter(from, to, statuses string) (Filter, error) {
	var f Filter
	if from = strings.TrimSpace(from); from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidFilter)
		}
		f.From = &t
	}
	if to = strings.TrimSpace(to); to != "" {
		t, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: to must be YYYY-MM-DD", ErrInvalidFilter)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return Filter{}, fmt.Errorf("%w: to is before from", ErrInvalidFilter)
	}
	for _, raw := range strings.Split(statuses, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		s, ok := analytics.ParseStatus(raw)
		if !ok {
			return Filter{}, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, strings.TrimSpace(raw))
		}
		f.Statuses = append(f.Statuses, s)
	}
	return f, nil
}

// Normalize drops archived jobs, applies the filter and converts the rest
// into engine records. Jobs without a creation date are excluded whenever a
// date bound is set.
func Normalize(all []jobs.Job, f Filter) []analytics.JobRecord {
	out := make([]analytics.JobRecord, 0, len(all))
	for _, j := range all {
		if j.Archived || !f.match(j) {
			continue
		}
		out = append(out, j.ToRecord())
	}
	return out
}

func (f Filter) match(j jobs.Job) bool {
	if f.From != nil || f.To != nil {
		if j.CreatedAt.IsZero() {
			return false
		}
		if f.From != nil && j.CreatedAt.Before(*f.From) {
			return false
		}
		if f.To != nil && j.CreatedAt.After(*f.To) {
			return false
		}
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if j.Status == s {
			return true
		}
	}
	return false
}
