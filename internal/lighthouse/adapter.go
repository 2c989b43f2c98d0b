package lighthouse

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

// ErrInvalidData is returned when the raw report lacks the categories
// or audits maps. There is no partial recovery.
var ErrInvalidData = errors.New("invalid audit data")

const (
	maxIssues          = 8
	maxRecommendations = 8

	failingAuditScore = 0.9
	errorAuditScore   = 0.5

	highSavingsMs   = 1200
	mediumSavingsMs = 300
)

// vitalSpec pins one core web vital: its audit id, display label and
// the two-tier rating thresholds (good <= Good, warning <= Warn).
type vitalSpec struct {
	id          string
	fallbackID  string
	label       string
	goodUpTo    float64
	warningUpTo float64
}

var coreVitalSpecs = []vitalSpec{
	{id: "first-contentful-paint", label: "First Contentful Paint", goodUpTo: 1800, warningUpTo: 3000},
	{id: "largest-contentful-paint", label: "Largest Contentful Paint", goodUpTo: 2500, warningUpTo: 4000},
	{id: "total-blocking-time", label: "Total Blocking Time", goodUpTo: 200, warningUpTo: 600},
	{id: "cumulative-layout-shift", label: "Cumulative Layout Shift", goodUpTo: 0.1, warningUpTo: 0.25},
	{id: "speed-index", label: "Speed Index", goodUpTo: 3400, warningUpTo: 5800},
	{id: "interactive", label: "Time to Interactive", goodUpTo: 3800, warningUpTo: 7300},
	{id: "interaction-to-next-paint", fallbackID: "experimental-interaction-to-next-paint", label: "Interaction to Next Paint", goodUpTo: 200, warningUpTo: 500},
}

// Normalize converts a raw Lighthouse report into the internal issue,
// recommendation and score shape.
func Normalize(raw *RawReport) (*Result, error) {
	if raw == nil {
		return nil, ErrInvalidData
	}

	unwrapped := raw.Unwrap()
	if unwrapped.Categories == nil || unwrapped.Audits == nil {
		return nil, ErrInvalidData
	}

	categories := normalizeCategories(unwrapped.Categories)
	performanceScore := performanceScoreOf(categories)
	grade, status := report.GradeForScore(performanceScore)

	result := &Result{
		Performance: report.PerformanceReport{
			Issues:          normalizeIssues(unwrapped.Audits),
			Recommendations: normalizeRecommendations(unwrapped.Audits),
		},
		Score: report.ScoreReport{
			Score:           performanceScore,
			Grade:           grade,
			Category:        status,
			ComponentScores: report.ComponentScores{Performance: performanceScore},
			Deductions:      []report.Deduction{},
		},
		Categories: categories,
		CoreVitals: normalizeVitals(unwrapped.Audits),
	}

	return result, nil
}

func normalizeCategories(raw map[string]RawCategory) []report.CategoryScore {
	var ids []string
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	categories := make([]report.CategoryScore, 0, len(ids))
	for _, id := range ids {
		category := raw[id]

		score := 0
		if category.Score != nil {
			score = int(math.Round(*category.Score * 100))
		}

		categories = append(categories, report.CategoryScore{
			ID:     id,
			Title:  category.Title,
			Score:  score,
			Status: categoryStatus(score),
		})
	}

	return categories
}

func categoryStatus(score int) report.Status {
	switch {
	case score >= 90:
		return report.StatusGood
	case score >= 70:
		return report.StatusWarning
	default:
		return report.StatusDanger
	}
}

func performanceScoreOf(categories []report.CategoryScore) int {
	for _, category := range categories {
		if category.ID == "performance" {
			return category.Score
		}
	}
	return 0
}

func normalizeVitals(audits map[string]RawAudit) []report.VitalMetric {
	vitals := []report.VitalMetric{}

	for _, spec := range coreVitalSpecs {
		audit, ok := audits[spec.id]
		if !ok && spec.fallbackID != "" {
			audit, ok = audits[spec.fallbackID]
		}
		if !ok {
			continue
		}

		metric := report.VitalMetric{
			ID:      spec.id,
			Label:   spec.label,
			Display: audit.DisplayValue,
			Rating:  report.StatusWarning,
		}

		if audit.NumericValue != nil {
			metric.Value = *audit.NumericValue
			metric.Rating = rateVital(*audit.NumericValue, spec)
		}

		vitals = append(vitals, metric)
	}

	return vitals
}

func rateVital(value float64, spec vitalSpec) report.Status {
	switch {
	case value <= spec.goodUpTo:
		return report.StatusGood
	case value <= spec.warningUpTo:
		return report.StatusWarning
	default:
		return report.StatusDanger
	}
}

type scoredAudit struct {
	id    string
	audit RawAudit
}

func normalizeIssues(audits map[string]RawAudit) []report.Finding {
	var failing []scoredAudit
	for id, audit := range audits {
		if audit.Score == nil || !isScoreable(audit.ScoreDisplayMode) {
			continue
		}
		if *audit.Score < failingAuditScore {
			failing = append(failing, scoredAudit{id: id, audit: audit})
		}
	}

	// Worst audits first; id as tie-break keeps output deterministic.
	sort.Slice(failing, func(i, j int) bool {
		if *failing[i].audit.Score != *failing[j].audit.Score {
			return *failing[i].audit.Score < *failing[j].audit.Score
		}
		return failing[i].id < failing[j].id
	})

	if len(failing) > maxIssues {
		failing = failing[:maxIssues]
	}

	issues := []report.Finding{}
	for _, entry := range failing {
		severity := report.SeverityWarning
		if *entry.audit.Score < errorAuditScore {
			severity = report.SeverityError
		}

		description := stripMarkdown(entry.audit.Description)
		if entry.audit.DisplayValue != "" {
			description = fmt.Sprintf("%s (%s)", description, entry.audit.DisplayValue)
		}

		issues = append(issues, report.Finding{
			Severity:    severity,
			Title:       entry.audit.Title,
			Description: description,
		})
	}

	report.SortFindings(issues)
	return issues
}

func isScoreable(displayMode string) bool {
	switch displayMode {
	case "binary", "numeric", "metricSavings":
		return true
	default:
		return false
	}
}

func normalizeRecommendations(audits map[string]RawAudit) []report.Recommendation {
	var opportunities []scoredAudit
	for id, audit := range audits {
		if audit.Details == nil || audit.Details.Type != "opportunity" {
			continue
		}
		if audit.Details.OverallSavingsMs <= 0 {
			continue
		}
		opportunities = append(opportunities, scoredAudit{id: id, audit: audit})
	}

	sort.Slice(opportunities, func(i, j int) bool {
		si := opportunities[i].audit.Details.OverallSavingsMs
		sj := opportunities[j].audit.Details.OverallSavingsMs
		if si != sj {
			return si > sj
		}
		return opportunities[i].id < opportunities[j].id
	})

	if len(opportunities) > maxRecommendations {
		opportunities = opportunities[:maxRecommendations]
	}

	recommendations := []report.Recommendation{}
	for _, entry := range opportunities {
		savings := entry.audit.Details.OverallSavingsMs

		priority := report.PriorityLow
		switch {
		case savings > highSavingsMs:
			priority = report.PriorityHigh
		case savings > mediumSavingsMs:
			priority = report.PriorityMedium
		}

		recommendations = append(recommendations, report.Recommendation{
			Priority:    priority,
			Title:       entry.audit.Title,
			Description: stripMarkdown(entry.audit.Description),
			Impact:      impactNote(entry.audit.Details),
		})
	}

	return recommendations
}

func impactNote(details *RawDetails) string {
	note := fmt.Sprintf("Estimated savings: %s", formatMilliseconds(details.OverallSavingsMs))
	if details.OverallSavingsBytes > 0 {
		note = fmt.Sprintf("%s, %s", note, report.FormatBytes(int(details.OverallSavingsBytes)))
	}
	return note
}

func formatMilliseconds(ms float64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1f s", ms/1000)
	}
	return fmt.Sprintf("%d ms", int(math.Round(ms)))
}

var (
	markdownLinkRe   = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markdownBoldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	markdownItalicRe = regexp.MustCompile(`\*([^*]+)\*|_([^_]+)_`)
	markdownCodeRe   = regexp.MustCompile("`([^`]+)`")
)

// stripMarkdown removes basic markdown formatting (links, bold,
// italic, inline code) from Lighthouse audit descriptions.
func stripMarkdown(text string) string {
	text = markdownLinkRe.ReplaceAllString(text, "$1")
	text = markdownBoldRe.ReplaceAllString(text, "$1")
	text = markdownItalicRe.ReplaceAllString(text, "$1$2")
	text = markdownCodeRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
