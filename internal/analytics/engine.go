// Package analytics computes job-search performance metrics from a user's
// application history. Everything here is a pure function of its inputs.
package analytics

import "time"

// Engine computes snapshots. The zero value uses time.Now and UTC.
type Engine struct {
	Now      func() time.Time
	Location *time.Location
	Rules    []Rule
}

// Compute runs the default engine.
func Compute(records []JobRecord, goals GoalConfig) Snapshot {
	return Engine{}.Compute(records, goals)
}

// Compute builds a fresh snapshot from records and goals.
func (e Engine) Compute(records []JobRecord, goals GoalConfig) Snapshot {
	now, loc := e.clock()
	rules := e.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	funnel := CountFunnel(records)
	rates := ComputeRates(funnel)
	weekly, avgWeekly := AggregateWeekly(records, loc)

	sources := Segment(records, SourceDimension())
	sizes := Segment(records, CompanySizeDimension())
	days := Segment(records, WeekdayDimension(loc))
	roles := Segment(records, RoleDimension())
	custom := CompareCustomization(records)

	recs := Recommend(RuleInput{
		Sources:       sources,
		CompanySizes:  sizes,
		Days:          days,
		Roles:         roles,
		Customization: custom,
		Industries:    CountSuccessfulIndustries(records),
		ResponseRate:  rates.ResponseRate,
	}, rules...)

	return Snapshot{
		Funnel:                funnel,
		Rates:                 rates,
		Timing:                ExtractTiming(records),
		WeeklyVolume:          weekly,
		AvgWeeklyApplications: avgWeekly,
		SourceEffectiveness:   sources,
		CompanySizeSuccess:    sizes,
		BestApplicationDays:   days,
		RoleSuccess:           roles,
		Customization:         custom,
		Recommendations:       recs,
		Goals: TrackGoals(
			CountApplicationsThisWeek(records, now),
			CountInterviewsThisMonth(records, now, loc),
			rates,
			goals,
		),
		Benchmarks: DefaultBenchmarks,
	}
}

func (e Engine) clock() (time.Time, *time.Location) {
	loc := e.Location
	if loc == nil {
		loc = time.UTC
	}
	nowFn := e.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return nowFn().In(loc), loc
}
