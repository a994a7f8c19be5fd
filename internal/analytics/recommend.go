package analytics

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

const (
	RecommendSource        = "source"
	RecommendCustomization = "customization"
	RecommendTiming        = "timing"
	RecommendRole          = "role"
	RecommendCompanySize   = "company_size"
	RecommendIndustry      = "industry"
)

// Recommendation is one advisory message.
type Recommendation struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Confidence string `json:"confidence"`
	Segment    string `json:"segment,omitempty"`
}

// IndustryCount is the number of successful applications in an industry.
type IndustryCount struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

// RuleInput carries everything the rules may inspect.
type RuleInput struct {
	Sources       []SegmentStat
	CompanySizes  []SegmentStat
	Days          []SegmentStat
	Roles         []SegmentStat
	Customization CustomizationImpact
	Industries    []IndustryCount
	// ResponseRate is the full-precision baseline.
	ResponseRate float64
}

// Rule evaluates one recommendation. It returns false when its data gate
// does not pass or the signal is not strong enough.
type Rule func(RuleInput) (Recommendation, bool)

// DefaultRules returns the rules in output order.
func DefaultRules() []Rule {
	return []Rule{
		SourceRule,
		CustomizationRule,
		TimingRule,
		RoleRule,
		CompanySizeRule,
		IndustryRule,
	}
}

// Recommend runs rules in order and collects every one that fires.
func Recommend(in RuleInput, rules ...Rule) []Recommendation {
	out := make([]Recommendation, 0, len(rules))
	for _, rule := range rules {
		if rec, ok := rule(in); ok {
			out = append(out, rec)
		}
	}
	return out
}

func tiered(total, highAt int) string {
	if total >= highAt {
		return ConfidenceHigh
	}
	return ConfidenceMedium
}

// SourceRule fires when the best source clearly beats the baseline.
func SourceRule(in RuleInput) (Recommendation, bool) {
	if len(in.Sources) < 2 {
		return Recommendation{}, false
	}
	top := in.Sources[0]
	if top.Total < 5 || top.SuccessRate <= in.ResponseRate*1.5 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type: RecommendSource,
		Message: fmt.Sprintf("%s is your most effective source with a %.1f%% success rate. Focus more applications there.",
			top.Key, Round1(top.SuccessRate)),
		Confidence: tiered(top.Total, 10),
		Segment:    top.Key,
	}, true
}

// CustomizationRule fires when tailored applications outperform generic ones
// by more than ten points.
func CustomizationRule(in RuleInput) (Recommendation, bool) {
	c := in.Customization
	if c.CustomizedTotal < 5 || c.Difference() <= 10 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type: RecommendCustomization,
		Message: fmt.Sprintf("Customized applications succeed %.1f%% of the time versus %.1f%% without. Keep tailoring cover letters.",
			Round1(c.CustomizationSuccessRate), Round1(c.NonCustomizationSuccessRate)),
		Confidence: ConfidenceHigh,
	}, true
}

// TimingRule fires when one weekday stands out.
func TimingRule(in RuleInput) (Recommendation, bool) {
	if len(in.Days) == 0 {
		return Recommendation{}, false
	}
	top := in.Days[0]
	if top.Total < 5 || top.SuccessRate <= in.ResponseRate*1.3 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type: RecommendTiming,
		Message: fmt.Sprintf("Applications sent on %s perform best (%.1f%% success). Try to apply on %ss.",
			top.Key, Round1(top.SuccessRate), top.Key),
		Confidence: tiered(top.Total, 10),
		Segment:    top.Key,
	}, true
}

// RoleRule fires when one role category stands out.
func RoleRule(in RuleInput) (Recommendation, bool) {
	if len(in.Roles) == 0 {
		return Recommendation{}, false
	}
	top := in.Roles[0]
	if top.Total < 3 || top.SuccessRate <= in.ResponseRate*1.5 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type: RecommendRole,
		Message: fmt.Sprintf("%s roles convert best for you (%.1f%% success). Prioritize them.",
			top.Key, Round1(top.SuccessRate)),
		Confidence: tiered(top.Total, 5),
		Segment:    top.Key,
	}, true
}

// CompanySizeRule fires when one company size stands out.
func CompanySizeRule(in RuleInput) (Recommendation, bool) {
	if len(in.CompanySizes) == 0 {
		return Recommendation{}, false
	}
	top := in.CompanySizes[0]
	if top.Total < 3 || top.SuccessRate <= in.ResponseRate*1.3 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type: RecommendCompanySize,
		Message: fmt.Sprintf("%s companies respond best (%.1f%% success). Target more of them.",
			top.Key, Round1(top.SuccessRate)),
		Confidence: tiered(top.Total, 5),
		Segment:    top.Key,
	}, true
}

// IndustryRule fires when one industry has at least three successes.
func IndustryRule(in RuleInput) (Recommendation, bool) {
	if len(in.Industries) == 0 {
		return Recommendation{}, false
	}
	top := in.Industries[0]
	if top.Count < 3 {
		return Recommendation{}, false
	}
	return Recommendation{
		Type: RecommendIndustry,
		Message: fmt.Sprintf("You have %d interviews or offers in %s. Lean into that industry.",
			top.Count, top.Industry),
		Confidence: ConfidenceHigh,
		Segment:    top.Industry,
	}, true
}

// CountSuccessfulIndustries counts Interview and Offer records per industry,
// ordered by count then name.
func CountSuccessfulIndustries(records []JobRecord) []IndustryCount {
	counts := make(map[string]int)
	for _, r := range records {
		if !r.Status.IsSuccess() {
			continue
		}
		industry := strings.TrimSpace(r.Industry)
		if industry == "" {
			continue
		}
		counts[industry]++
	}
	out := make([]IndustryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, IndustryCount{Industry: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Industry < out[j].Industry
	})
	return out
}
