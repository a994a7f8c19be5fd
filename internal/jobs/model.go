package jobs

import (
	"time"

	"jobtracker-backend/internal/analytics"
)

// Job is a tracked application owned by one user.
type Job struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"-"`
	Status      analytics.Status         `json:"status"`
	Title       string                   `json:"title"`
	Role        string                   `json:"role,omitempty"`
	Company     string                   `json:"company,omitempty"`
	CompanySize string                   `json:"companySize,omitempty"`
	Source      string                   `json:"source,omitempty"`
	Industry    string                   `json:"industry,omitempty"`
	CoverLetter string                   `json:"coverLetter,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
	Archived    bool                     `json:"archived"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	History     []analytics.StatusChange `json:"statusHistory"`
}

// ToRecord converts the job into the analytics input shape.
func (j Job) ToRecord() analytics.JobRecord {
	var history []analytics.StatusChange
	if len(j.History) > 0 {
		history = append(make([]analytics.StatusChange, 0, len(j.History)), j.History...)
	}
	return analytics.JobRecord{
		ID:            j.ID,
		Status:        j.Status,
		CreatedAt:     j.CreatedAt,
		StatusHistory: history,
		Source:        j.Source,
		CompanySize:   j.CompanySize,
		Role:          j.Role,
		Title:         j.Title,
		Industry:      j.Industry,
		CoverLetter:   j.CoverLetter,
		Notes:         j.Notes,
		Archived:      j.Archived,
	}
}
