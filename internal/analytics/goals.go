package analytics

import (
	"fmt"
	"math"
	"time"
)

// GoalAchievedMessage is shown once a metric reaches its target.
const GoalAchievedMessage = "Goal achieved."

const noGoalMessage = "No goal set."

// GoalMetric compares one current-period value with its target.
type GoalMetric struct {
	Actual   float64 `json:"actual"`
	Target   float64 `json:"target"`
	Progress float64 `json:"progress"`
	Achieved bool    `json:"achieved"`
	Message  string  `json:"message"`
}

// GoalProgress holds every tracked goal.
type GoalProgress struct {
	ApplicationsThisWeek int        `json:"applicationsThisWeek"`
	InterviewsThisMonth  int        `json:"interviewsThisMonth"`
	WeeklyApplications   GoalMetric `json:"weeklyApplications"`
	MonthlyInterviews    GoalMetric `json:"monthlyInterviews"`
	ResponseRate         GoalMetric `json:"responseRate"`
	InterviewRate        GoalMetric `json:"interviewRate"`
}

// Progress returns actual/goal as a percentage capped at 100. A zero goal
// counts as met once anything happened.
func Progress(actual, goal float64) float64 {
	if goal <= 0 {
		if actual > 0 {
			return 100
		}
		return 0
	}
	return math.Min(actual/goal*100, 100)
}

// CountApplicationsThisWeek counts records created in the trailing seven days.
func CountApplicationsThisWeek(records []JobRecord, now time.Time) int {
	from := now.Add(-7 * 24 * time.Hour)
	n := 0
	for _, r := range records {
		if r.CreatedAt.IsZero() {
			continue
		}
		if !r.CreatedAt.Before(from) && !r.CreatedAt.After(now) {
			n++
		}
	}
	return n
}

// CountInterviewsThisMonth counts Interview records created in now's month.
func CountInterviewsThisMonth(records []JobRecord, now time.Time, loc *time.Location) int {
	local := now.In(loc)
	n := 0
	for _, r := range records {
		if r.Status != StatusInterview || r.CreatedAt.IsZero() {
			continue
		}
		created := r.CreatedAt.In(loc)
		if created.Year() == local.Year() && created.Month() == local.Month() {
			n++
		}
	}
	return n
}

// TrackGoals builds goal progress from period counts and overall rates.
func TrackGoals(applications, interviews int, rates ConversionRates, goals GoalConfig) GoalProgress {
	return GoalProgress{
		ApplicationsThisWeek: applications,
		InterviewsThisMonth:  interviews,
		WeeklyApplications:   countMetric(applications, goals.WeeklyApplications, "applications"),
		MonthlyInterviews:    countMetric(interviews, goals.MonthlyInterviews, "interviews"),
		ResponseRate:         rateMetric(rates.ResponseRate, goals.TargetResponseRate),
		InterviewRate:        rateMetric(rates.InterviewRate, goals.TargetInterviewRate),
	}
}

func countMetric(actual, target int, noun string) GoalMetric {
	m := GoalMetric{
		Actual:   float64(actual),
		Target:   float64(target),
		Progress: Progress(float64(actual), float64(target)),
	}
	m.Achieved = m.Progress >= 100
	switch {
	case m.Achieved:
		m.Message = GoalAchievedMessage
	case target <= 0:
		m.Message = noGoalMessage
	default:
		m.Message = fmt.Sprintf("%d more %s to reach your goal.", target-actual, noun)
	}
	return m
}

func rateMetric(actual, target float64) GoalMetric {
	m := GoalMetric{
		Actual:   Round1(actual),
		Target:   target,
		Progress: Round1(Progress(actual, target)),
	}
	m.Achieved = Progress(actual, target) >= 100
	switch {
	case m.Achieved:
		m.Message = GoalAchievedMessage
	case target <= 0:
		m.Message = noGoalMessage
	default:
		m.Message = fmt.Sprintf("%.1f points below your target.", Round1(target-actual))
	}
	return m
}

// Benchmarks are fixed industry reference values.
type Benchmarks struct {
	ResponseRate     float64 `json:"responseRate"`
	InterviewRate    float64 `json:"interviewRate"`
	OfferRate        float64 `json:"offerRate"`
	AvgResponseTime  int     `json:"avgResponseTime"`
	AvgInterviewTime int     `json:"avgInterviewTime"`
}

// DefaultBenchmarks is included in every snapshot.
var DefaultBenchmarks = Benchmarks{
	ResponseRate:     25,
	InterviewRate:    15,
	OfferRate:        5,
	AvgResponseTime:  14,
	AvgInterviewTime: 21,
}
