package goals

import (
	"time"

	"jobtracker-backend/internal/analytics"
)

// Goals are a user's weekly and monthly targets.
type Goals struct {
	WeeklyApplications  int       `json:"weeklyApplications" yaml:"weeklyApplications" validate:"gte=0,lte=1000"`
	MonthlyInterviews   int       `json:"monthlyInterviews" yaml:"monthlyInterviews" validate:"gte=0,lte=1000"`
	TargetResponseRate  float64   `json:"targetResponseRate" yaml:"targetResponseRate" validate:"gte=0,lte=100"`
	TargetInterviewRate float64   `json:"targetInterviewRate" yaml:"targetInterviewRate" validate:"gte=0,lte=100"`
	UpdatedAt           time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

// DefaultGoals applies until a user saves their own.
func DefaultGoals() Goals {
	return Goals{
		WeeklyApplications:  10,
		MonthlyInterviews:   4,
		TargetResponseRate:  analytics.DefaultBenchmarks.ResponseRate,
		TargetInterviewRate: analytics.DefaultBenchmarks.InterviewRate,
	}
}

// Config converts the stored goals into the engine's input.
func (g Goals) Config() analytics.GoalConfig {
	return analytics.GoalConfig{
		WeeklyApplications:  g.WeeklyApplications,
		MonthlyInterviews:   g.MonthlyInterviews,
		TargetResponseRate:  g.TargetResponseRate,
		TargetInterviewRate: g.TargetInterviewRate,
	}
}
