package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	cases := []struct {
		name         string
		actual, goal float64
		want         float64
	}{
		{"half", 5, 10, 50},
		{"capped", 12, 10, 100},
		{"zero_goal_with_activity", 3, 0, 100},
		{"zero_goal_no_activity", 0, 0, 0},
		{"negative_goal", 0, -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Progress(tc.actual, tc.goal))
		})
	}
}

func TestCountApplicationsThisWeek(t *testing.T) {
	recs := []JobRecord{
		{CreatedAt: fixedNow},
		{CreatedAt: fixedNow.Add(-7 * 24 * time.Hour)},
		{CreatedAt: fixedNow.Add(-7*24*time.Hour - time.Second)},
		{CreatedAt: fixedNow.Add(time.Hour)},
		{CreatedAt: fixedNow.AddDate(0, 0, -3)},
		{},
	}
	assert.Equal(t, 3, CountApplicationsThisWeek(recs, fixedNow))
}

func TestCountInterviewsThisMonth(t *testing.T) {
	recs := []JobRecord{
		{Status: StatusInterview, CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Status: StatusInterview, CreatedAt: time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)},
		{Status: StatusInterview, CreatedAt: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Status: StatusOffer, CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{Status: StatusInterview},
	}
	assert.Equal(t, 1, CountInterviewsThisMonth(recs, fixedNow, time.UTC))
}

func TestTrackGoals(t *testing.T) {
	rates := ConversionRates{ResponseRate: 30, InterviewRate: 12.5}
	got := TrackGoals(3, 2, rates, GoalConfig{
		WeeklyApplications:  10,
		MonthlyInterviews:   2,
		TargetResponseRate:  25,
		TargetInterviewRate: 20,
	})

	assert.Equal(t, 30.0, got.WeeklyApplications.Progress)
	assert.False(t, got.WeeklyApplications.Achieved)
	assert.Equal(t, "7 more applications to reach your goal.", got.WeeklyApplications.Message)

	assert.True(t, got.MonthlyInterviews.Achieved)
	assert.Equal(t, GoalAchievedMessage, got.MonthlyInterviews.Message)

	assert.True(t, got.ResponseRate.Achieved)
	assert.Equal(t, 100.0, got.ResponseRate.Progress)

	assert.False(t, got.InterviewRate.Achieved)
	assert.Equal(t, 62.5, got.InterviewRate.Progress)
	assert.Equal(t, "7.5 points below your target.", got.InterviewRate.Message)
}

func TestTrackGoalsWithoutTargets(t *testing.T) {
	got := TrackGoals(0, 0, ConversionRates{}, GoalConfig{})
	assert.Equal(t, 0.0, got.WeeklyApplications.Progress)
	assert.Equal(t, noGoalMessage, got.WeeklyApplications.Message)
	assert.Equal(t, noGoalMessage, got.ResponseRate.Message)
}
