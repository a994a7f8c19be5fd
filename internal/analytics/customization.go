package analytics

// CustomizationImpact compares applications with and without a cover letter
// or notes.
type CustomizationImpact struct {
	CustomizedTotal             int     `json:"customizedTotal"`
	CustomizedSuccessful        int     `json:"customizedSuccessful"`
	CustomizationSuccessRate    float64 `json:"customizationSuccessRate"`
	NonCustomizedTotal          int     `json:"nonCustomizedTotal"`
	NonCustomizedSuccessful     int     `json:"nonCustomizedSuccessful"`
	NonCustomizationSuccessRate float64 `json:"nonCustomizationSuccessRate"`
}

// Difference is the customized rate minus the non-customized rate in points.
func (c CustomizationImpact) Difference() float64 {
	return c.CustomizationSuccessRate - c.NonCustomizationSuccessRate
}

// CompareCustomization splits records by Customized and scores both halves.
func CompareCustomization(records []JobRecord) CustomizationImpact {
	var c CustomizationImpact
	for _, r := range records {
		success := r.Status.IsSuccess()
		if r.Customized() {
			c.CustomizedTotal++
			if success {
				c.CustomizedSuccessful++
			}
			continue
		}
		c.NonCustomizedTotal++
		if success {
			c.NonCustomizedSuccessful++
		}
	}
	c.CustomizationSuccessRate = percent(c.CustomizedSuccessful, c.CustomizedTotal)
	c.NonCustomizationSuccessRate = percent(c.NonCustomizedSuccessful, c.NonCustomizedTotal)
	return c
}
