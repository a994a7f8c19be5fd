package analytics

import (
	"strings"
	"time"
)

// Status is a job application lifecycle stage.
type Status string

const (
	StatusInterested Status = "Interested"
	StatusApplied    Status = "Applied"
	StatusScreening  Status = "Screening"
	StatusInterview  Status = "Interview"
	StatusOffer      Status = "Offer"
	StatusRejected   Status = "Rejected"
)

// Statuses lists the known stages in funnel order.
var Statuses = []Status{
	StatusInterested,
	StatusApplied,
	StatusScreening,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

// ParseStatus matches a status name case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range Statuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s, true
		}
	}
	return "", false
}

// IsSuccess reports whether the stage counts as a successful application.
func (s Status) IsSuccess() bool {
	return s == StatusInterview || s == StatusOffer
}

// StatusChange is one entry of a record's status history.
type StatusChange struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// JobRecord is the engine's input shape. A zero time.Time marks a missing
// or unparseable timestamp.
type JobRecord struct {
	ID            string         `json:"id"`
	Status        Status         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	StatusHistory []StatusChange `json:"statusHistory,omitempty"`
	Source        string         `json:"source,omitempty"`
	CompanySize   string         `json:"companySize,omitempty"`
	Role          string         `json:"role,omitempty"`
	Title         string         `json:"title,omitempty"`
	Industry      string         `json:"industry,omitempty"`
	CoverLetter   string         `json:"coverLetter,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Archived      bool           `json:"archived,omitempty"`
}

// Customized reports whether the application carried a cover letter or notes.
func (r JobRecord) Customized() bool {
	return strings.TrimSpace(r.CoverLetter) != "" || strings.TrimSpace(r.Notes) != ""
}

// RoleText returns the role, falling back to the title.
func (r JobRecord) RoleText() string {
	if role := strings.TrimSpace(r.Role); role != "" {
		return role
	}
	return strings.TrimSpace(r.Title)
}

// GoalConfig holds the caller's targets.
type GoalConfig struct {
	WeeklyApplications  int     `json:"weeklyApplications" yaml:"weeklyApplications"`
	MonthlyInterviews   int     `json:"monthlyInterviews" yaml:"monthlyInterviews"`
	TargetResponseRate  float64 `json:"targetResponseRate" yaml:"targetResponseRate"`
	TargetInterviewRate float64 `json:"targetInterviewRate" yaml:"targetInterviewRate"`
}

// Snapshot is the full result of one engine run.
type Snapshot struct {
	Funnel                FunnelCounts        `json:"funnel"`
	Rates                 ConversionRates     `json:"rates"`
	Timing                TimeMetrics         `json:"timing"`
	WeeklyVolume          []WeeklyBucket      `json:"weeklyVolume"`
	AvgWeeklyApplications float64             `json:"avgWeeklyApplications"`
	SourceEffectiveness   []SegmentStat       `json:"sourceEffectiveness"`
	CompanySizeSuccess    []SegmentStat       `json:"companySizeSuccess"`
	BestApplicationDays   []SegmentStat       `json:"bestApplicationDays"`
	RoleSuccess           []SegmentStat       `json:"roleSuccess"`
	Customization         CustomizationImpact `json:"customization"`
	Recommendations       []Recommendation    `json:"recommendations"`
	Goals                 GoalProgress        `json:"goals"`
	Benchmarks            Benchmarks          `json:"benchmarks"`
}
