package jobs

import (
	"strings"
	"time"

	"jobtracker-backend/internal/analytics"
)

// ImportRecord is the wire shape accepted by the import endpoint and the CLI.
// Timestamps are strings so that bad values degrade instead of failing the
// whole payload.
type ImportRecord struct {
	ID            string         `json:"id" validate:"omitempty,max=64"`
	Status        string         `json:"status" validate:"required,jobstatus"`
	CreatedAt     string         `json:"createdAt"`
	StatusHistory []ImportChange `json:"statusHistory" validate:"omitempty,max=100,dive"`
	Title         string         `json:"title" validate:"max=300"`
	Role          string         `json:"role" validate:"max=300"`
	Company       string         `json:"company" validate:"max=300"`
	CompanySize   string         `json:"companySize" validate:"max=100"`
	Source        string         `json:"source" validate:"max=100"`
	Industry      string         `json:"industry" validate:"max=100"`
	CoverLetter   string         `json:"coverLetter" validate:"max=20000"`
	Notes         string         `json:"notes" validate:"max=20000"`
	Archived      bool           `json:"archived"`
}

// ImportChange is one status history entry on the wire.
type ImportChange struct {
	Status    string `json:"status" validate:"required,jobstatus"`
	Timestamp string `json:"timestamp"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTimestamp accepts the common ISO-8601 shapes. Anything else yields
// the zero time, which the engine treats as missing.
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// ToJob converts the wire record into a Job owned by userID.
func (r ImportRecord) ToJob(userID string) Job {
	status, _ := analytics.ParseStatus(r.Status)
	job := Job{
		ID:          strings.TrimSpace(r.ID),
		UserID:      userID,
		Status:      status,
		Title:       strings.TrimSpace(r.Title),
		Role:        strings.TrimSpace(r.Role),
		Company:     strings.TrimSpace(r.Company),
		CompanySize: strings.TrimSpace(r.CompanySize),
		Source:      strings.TrimSpace(r.Source),
		Industry:    strings.TrimSpace(r.Industry),
		CoverLetter: r.CoverLetter,
		Notes:       r.Notes,
		Archived:    r.Archived,
		CreatedAt:   ParseTimestamp(r.CreatedAt),
	}
	for _, h := range r.StatusHistory {
		s, _ := analytics.ParseStatus(h.Status)
		job.History = append(job.History, analytics.StatusChange{
			Status:    s,
			Timestamp: ParseTimestamp(h.Timestamp),
		})
	}
	return job
}
