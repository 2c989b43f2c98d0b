package report

import (
	"sort"
	"time"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func severityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// SortFindings orders findings by severity (errors first), keeping the
// original detection order as a stable tie-break.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return severityRank(findings[i].Severity) < severityRank(findings[j].Severity)
	})
}

type Category string

const (
	CategoryJS   Category = "js"
	CategoryCSS  Category = "css"
	CategoryHTML Category = "html"
)

type Finding struct {
	Category    Category `json:"category,omitempty"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence,omitempty"`
	File        string   `json:"file,omitempty"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Recommendation struct {
	Priority    Priority `json:"priority"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
}

type LanguageBytes struct {
	HTML int `json:"html"`
	CSS  int `json:"css"`
	JS   int `json:"js"`
}

// LanguagePercent values are decimal strings with one fractional digit
// ("42.3"); when the bundle is empty every field is "0.0".
type LanguagePercent struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

type SizeReport struct {
	TotalBytes        int             `json:"total_bytes"`
	BytesByLanguage   LanguageBytes   `json:"bytes_by_language"`
	PercentByLanguage LanguagePercent `json:"percent_by_language"`
	PerFileBytes      map[string]int  `json:"per_file_bytes"`
	Issues            []Finding       `json:"issues"`
}

type DuplicationReport struct {
	Findings            []Finding `json:"findings"`
	DuplicateBlockCount int       `json:"duplicate_block_count"`
}

type PerformanceReport struct {
	Issues          []Finding        `json:"issues"`
	Recommendations []Recommendation `json:"recommendations"`
}

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

type ComponentScores struct {
	Size        int `json:"size"`
	Duplication int `json:"duplication"`
	Performance int `json:"performance"`
}

type Deduction struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

type Combination struct {
	StaticScore    *int    `json:"static_score,omitempty"`
	ExternalScore  *int    `json:"external_score,omitempty"`
	StaticWeight   float64 `json:"static_weight"`
	ExternalWeight float64 `json:"external_weight"`
}

type ScoreReport struct {
	Score           int             `json:"score"`
	Grade           Grade           `json:"grade"`
	Category        Status          `json:"category"`
	ComponentScores ComponentScores `json:"component_scores"`
	Deductions      []Deduction     `json:"deductions"`
	Summary         []string        `json:"summary"`
	Combination     *Combination    `json:"combination,omitempty"`
}

// GradeForScore maps a 0-100 score onto a letter grade and traffic
// status. Band lower bounds are inclusive: 90 is an A, 75 a B.
func GradeForScore(score int) (Grade, Status) {
	switch {
	case score >= 90:
		return GradeA, StatusGood
	case score >= 75:
		return GradeB, StatusGood
	case score >= 60:
		return GradeC, StatusWarning
	case score >= 40:
		return GradeD, StatusWarning
	default:
		return GradeF, StatusDanger
	}
}

// CategoryScore is one top-level category of an external audit report
// (performance, accessibility, ...) normalized onto a 0-100 scale.
type CategoryScore struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Score  int    `json:"score"`
	Status Status `json:"status"`
}

// VitalMetric is one core web vital extracted from an external audit.
type VitalMetric struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Rating  Status  `json:"rating"`
}

type Report struct {
	Path        string            `json:"path"`
	Branch      string            `json:"branch"`
	CommitHash  string            `json:"commit_hash"`
	Timestamp   time.Time         `json:"timestamp"`
	Duration    string            `json:"duration"`
	Version     string            `json:"version"`
	Size        SizeReport        `json:"size"`
	Duplication DuplicationReport `json:"duplication"`
	Performance PerformanceReport `json:"performance"`
	Score       ScoreReport       `json:"score"`
	Categories  []CategoryScore   `json:"categories,omitempty"`
	CoreVitals  []VitalMetric     `json:"core_vitals,omitempty"`
}

// AllFindings concatenates size issues, duplication findings and
// performance issues in that order.
func (r *Report) AllFindings() []Finding {
	findings := make([]Finding, 0, len(r.Size.Issues)+len(r.Duplication.Findings)+len(r.Performance.Issues))
	findings = append(findings, r.Size.Issues...)
	findings = append(findings, r.Duplication.Findings...)
	findings = append(findings, r.Performance.Issues...)
	return findings
}
