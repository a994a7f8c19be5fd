package analytics

import (
	"math"
	"time"
)

// TimeMetrics holds average whole-day intervals measured from the Applied
// entry. The sample counts distinguish "0 days" from "no data".
type TimeMetrics struct {
	AvgResponseTime          int `json:"avgResponseTime"`
	AvgInterviewScheduleTime int `json:"avgInterviewScheduleTime"`
	ResponseSamples          int `json:"responseSamples"`
	InterviewSamples         int `json:"interviewSamples"`
}

// ExtractTiming samples response and interview-scheduling intervals.
func ExtractTiming(records []JobRecord) TimeMetrics {
	var responseDays, interviewDays []int
	for _, r := range records {
		applied, idx, ok := appliedAnchor(r.StatusHistory)
		if !ok {
			continue
		}
		if d, ok := firstResponse(r.StatusHistory[idx+1:], applied); ok {
			responseDays = append(responseDays, d)
		}
		if d, ok := firstInterview(r.StatusHistory, applied); ok {
			interviewDays = append(interviewDays, d)
		}
	}
	return TimeMetrics{
		AvgResponseTime:          meanDays(responseDays),
		AvgInterviewScheduleTime: meanDays(interviewDays),
		ResponseSamples:          len(responseDays),
		InterviewSamples:         len(interviewDays),
	}
}

func appliedAnchor(history []StatusChange) (time.Time, int, bool) {
	for i, h := range history {
		if h.Status == StatusApplied && !h.Timestamp.IsZero() {
			return h.Timestamp, i, true
		}
	}
	return time.Time{}, 0, false
}

func firstResponse(after []StatusChange, applied time.Time) (int, bool) {
	for _, h := range after {
		if h.Status == StatusInterested || h.Status == StatusApplied {
			continue
		}
		return daysBetween(applied, h.Timestamp)
	}
	return 0, false
}

func firstInterview(history []StatusChange, applied time.Time) (int, bool) {
	for _, h := range history {
		if h.Status == StatusInterview {
			return daysBetween(applied, h.Timestamp)
		}
	}
	return 0, false
}

// daysBetween floors the elapsed time to whole days. Zero or out-of-order
// timestamps yield no sample.
func daysBetween(from, to time.Time) (int, bool) {
	if to.IsZero() || to.Before(from) {
		return 0, false
	}
	return int(to.Sub(from) / (24 * time.Hour)), true
}

func meanDays(samples []int) int {
	if len(samples) == 0 {
		return 0
	}
	sum := 0
	for _, s := range samples {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(samples))))
}
