package analytics

import (
	"sort"
	"time"
)

// volumeWindow is the number of trailing weeks kept in the series.
const volumeWindow = 8

// WeeklyBucket counts records created in the week starting on Week (a Sunday).
type WeeklyBucket struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// WeekKey returns the YYYY-MM-DD date of the Sunday starting t's week in loc.
func WeekKey(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	start = start.AddDate(0, 0, -int(local.Weekday()))
	return start.Format(time.DateOnly)
}

// AggregateWeekly buckets records by week and keeps the last eight weeks.
func AggregateWeekly(records []JobRecord, loc *time.Location) ([]WeeklyBucket, float64) {
	counts := make(map[string]int)
	for _, r := range records {
		if r.CreatedAt.IsZero() {
			continue
		}
		counts[WeekKey(r.CreatedAt, loc)]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > volumeWindow {
		keys = keys[len(keys)-volumeWindow:]
	}

	buckets := make([]WeeklyBucket, 0, len(keys))
	sum := 0
	for _, k := range keys {
		buckets = append(buckets, WeeklyBucket{Week: k, Count: counts[k]})
		sum += counts[k]
	}
	if len(buckets) == 0 {
		return buckets, 0
	}
	return buckets, float64(sum) / float64(len(buckets))
}
