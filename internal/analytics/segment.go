package analytics

import (
	"sort"
	"strings"
	"time"
)

// SegmentStat is one group of a segmentation table.
type SegmentStat struct {
	Key         string  `json:"key"`
	Total       int     `json:"total"`
	Successful  int     `json:"successful"`
	SuccessRate float64 `json:"successRate"`
}

// KeyFunc extracts a grouping key. An empty key skips the record.
type KeyFunc func(JobRecord) string

// Dimension parameterizes Segment for one categorical attribute.
type Dimension struct {
	Name      string
	Key       KeyFunc
	MinSample int
	// Seed keys are present before grouping even when no record maps to them.
	Seed []string
}

// Segment groups records by the dimension key, scores each group and drops
// groups below the minimum sample. Groups are ordered by success rate, then
// total, then key.
func Segment(records []JobRecord, dim Dimension) []SegmentStat {
	groups := make(map[string]*SegmentStat, len(dim.Seed))
	for _, k := range dim.Seed {
		groups[k] = &SegmentStat{Key: k}
	}
	for _, r := range records {
		key := dim.Key(r)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &SegmentStat{Key: key}
			groups[key] = g
		}
		g.Total++
		if r.Status.IsSuccess() {
			g.Successful++
		}
	}

	out := make([]SegmentStat, 0, len(groups))
	for _, g := range groups {
		if g.Total < dim.MinSample {
			continue
		}
		g.SuccessRate = percent(g.Successful, g.Total)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SuccessRate != b.SuccessRate {
			return a.SuccessRate > b.SuccessRate
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Key < b.Key
	})
	return out
}

// DirectSource labels records without a source.
const DirectSource = "Direct"

// SourceDimension groups by application source; every group is kept.
func SourceDimension() Dimension {
	return Dimension{
		Name: "source",
		Key: func(r JobRecord) string {
			if s := strings.TrimSpace(r.Source); s != "" {
				return s
			}
			return DirectSource
		},
	}
}

// CompanySizeDimension groups by company size bucket.
func CompanySizeDimension() Dimension {
	return Dimension{
		Name: "companySize",
		Key: func(r JobRecord) string {
			return strings.TrimSpace(r.CompanySize)
		},
		MinSample: 2,
	}
}

// WeekdayDimension groups by the weekday the record was created on.
func WeekdayDimension(loc *time.Location) Dimension {
	seed := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		seed = append(seed, d.String())
	}
	return Dimension{
		Name: "weekday",
		Key: func(r JobRecord) string {
			if r.CreatedAt.IsZero() {
				return ""
			}
			return r.CreatedAt.In(loc).Weekday().String()
		},
		MinSample: 3,
		Seed:      seed,
	}
}

// RoleDimension groups by role category.
func RoleDimension() Dimension {
	return Dimension{
		Name: "role",
		Key: func(r JobRecord) string {
			text := r.RoleText()
			if text == "" {
				return ""
			}
			return ClassifyRole(text)
		},
		MinSample: 2,
	}
}

const (
	RoleSenior     = "Senior"
	RoleJunior     = "Junior"
	RoleLead       = "Lead/Principal"
	RoleManagement = "Management"
	RoleMid        = "Mid-Level"
)

type roleRule struct {
	match func(string) bool
	label string
}

func containsAny(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
}

// roleRules are evaluated in order; the first match wins.
var roleRules = []roleRule{
	{match: containsAny("senior", "sr"), label: RoleSenior},
	{match: containsAny("junior", "jr", "entry"), label: RoleJunior},
	{match: containsAny("lead", "principal"), label: RoleLead},
	{match: containsAny("manager", "director"), label: RoleManagement},
}

// ClassifyRole maps free-text role or title to a role category.
func ClassifyRole(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range roleRules {
		if rule.match(lower) {
			return rule.label
		}
	}
	return RoleMid
}
