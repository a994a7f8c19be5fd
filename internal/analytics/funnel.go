package analytics

import (
	"encoding/json"
	"math"
)

// FunnelCounts tallies records per stage.
type FunnelCounts struct {
	Interested        int `json:"interested"`
	Applied           int `json:"applied"`
	Screening         int `json:"screening"`
	Interview         int `json:"interview"`
	Offer             int `json:"offer"`
	Rejected          int `json:"rejected"`
	TotalApplications int `json:"totalApplications"`
	TotalActive       int `json:"totalActive"`
}

// CountFunnel counts records per status. Interested records are not
// applications; unknown statuses only count toward TotalActive.
func CountFunnel(records []JobRecord) FunnelCounts {
	var f FunnelCounts
	for _, r := range records {
		switch r.Status {
		case StatusInterested:
			f.Interested++
		case StatusApplied:
			f.Applied++
		case StatusScreening:
			f.Screening++
		case StatusInterview:
			f.Interview++
		case StatusOffer:
			f.Offer++
		case StatusRejected:
			f.Rejected++
		}
	}
	f.TotalApplications = f.Applied + f.Screening + f.Interview + f.Offer + f.Rejected
	f.TotalActive = len(records)
	return f
}

// ConversionRates holds stage-to-stage percentages at full precision.
// JSON output is rounded to one decimal.
type ConversionRates struct {
	ResponseRate  float64
	ScreeningRate float64
	InterviewRate float64
	OfferRate     float64
	RejectionRate float64
}

// ComputeRates derives conversion percentages from funnel counts.
func ComputeRates(f FunnelCounts) ConversionRates {
	total := f.TotalApplications
	return ConversionRates{
		ResponseRate:  percent(f.Screening+f.Interview+f.Offer+f.Rejected, total),
		ScreeningRate: percent(f.Screening+f.Interview+f.Offer, total),
		InterviewRate: percent(f.Interview+f.Offer, total),
		OfferRate:     percent(f.Offer, total),
		RejectionRate: percent(f.Rejected, total),
	}
}

// Rounded returns a copy with every rate rounded to one decimal.
func (r ConversionRates) Rounded() ConversionRates {
	return ConversionRates{
		ResponseRate:  Round1(r.ResponseRate),
		ScreeningRate: Round1(r.ScreeningRate),
		InterviewRate: Round1(r.InterviewRate),
		OfferRate:     Round1(r.OfferRate),
		RejectionRate: Round1(r.RejectionRate),
	}
}

// MarshalJSON writes the rates rounded to one decimal.
func (r ConversionRates) MarshalJSON() ([]byte, error) {
	rounded := r.Rounded()
	return json.Marshal(struct {
		ResponseRate  float64 `json:"responseRate"`
		ScreeningRate float64 `json:"screeningRate"`
		InterviewRate float64 `json:"interviewRate"`
		OfferRate     float64 `json:"offerRate"`
		RejectionRate float64 `json:"rejectionRate"`
	}{
		ResponseRate:  rounded.ResponseRate,
		ScreeningRate: rounded.ScreeningRate,
		InterviewRate: rounded.InterviewRate,
		OfferRate:     rounded.OfferRate,
		RejectionRate: rounded.RejectionRate,
	})
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// percent returns n/d*100 clamped to [0,100], or 0 when d is not positive.
func percent(n, d int) float64 {
	if d <= 0 || n <= 0 {
		return 0
	}
	v := float64(n) / float64(d) * 100
	if v > 100 {
		return 100
	}
	return v
}
