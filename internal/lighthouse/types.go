package lighthouse

import "github.com/bundlecheck/bundle-health-checker/internal/report"

// RawReport mirrors the subset of a Lighthouse result this tool
// consumes. The real report may arrive nested under a "lighthouse" or
// "lhr" wrapper key, which Unwrap resolves.
type RawReport struct {
	Lighthouse *RawReport             `json:"lighthouse,omitempty"`
	LHR        *RawReport             `json:"lhr,omitempty"`
	Categories map[string]RawCategory `json:"categories"`
	Audits     map[string]RawAudit    `json:"audits"`
}

type RawCategory struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Score *float64 `json:"score"`
}

type RawAudit struct {
	Title            string      `json:"title"`
	Description      string      `json:"description,omitempty"`
	Score            *float64    `json:"score,omitempty"`
	ScoreDisplayMode string      `json:"scoreDisplayMode,omitempty"`
	NumericValue     *float64    `json:"numericValue,omitempty"`
	DisplayValue     string      `json:"displayValue,omitempty"`
	Details          *RawDetails `json:"details,omitempty"`
}

type RawDetails struct {
	Type                string  `json:"type,omitempty"`
	OverallSavingsMs    float64 `json:"overallSavingsMs,omitempty"`
	OverallSavingsBytes float64 `json:"overallSavingsBytes,omitempty"`
}

// Unwrap resolves wrapper nesting and returns the report that actually
// carries categories and audits.
func (r *RawReport) Unwrap() *RawReport {
	if r.Categories != nil || r.Audits != nil {
		return r
	}
	if r.Lighthouse != nil {
		return r.Lighthouse.Unwrap()
	}
	if r.LHR != nil {
		return r.LHR.Unwrap()
	}
	return r
}

// Result is a Lighthouse report normalized into the same shape the
// static analyzers produce.
type Result struct {
	Performance report.PerformanceReport `json:"performance"`
	Score       report.ScoreReport       `json:"score"`
	Categories  []report.CategoryScore   `json:"categories"`
	CoreVitals  []report.VitalMetric     `json:"core_vitals"`
}
