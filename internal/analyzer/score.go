package analyzer

import (
	"fmt"
	"math"

	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

// Scoring constants. The three component scores each start at 100, so
// subtracting 200 from their sum yields a combined 0-100 scale that
// sits at 100 when every component is perfect.
const (
	sizeTierHuge   = 1000000
	sizeTierLarge  = 500000
	sizeTierMedium = 250000

	jsHeavyPercent    = 80
	jsElevatedPercent = 70

	errorPenalty   = 5
	warningPenalty = 2
	infoPenalty    = 1

	errorPenaltyCap   = 25
	warningPenaltyCap = 15
	infoPenaltyCap    = 5

	componentBaseline = 200
	advisoryThreshold = 80
)

// CalculateScore combines the three analyzer reports into one bounded
// score with a grade and advisory summary. It is deterministic: equal
// inputs always produce equal output.
func CalculateScore(size report.SizeReport, duplication report.DuplicationReport, performance report.PerformanceReport) report.ScoreReport {
	deductions := []report.Deduction{}

	sizeScore := 100 - sizeDeductions(size, &deductions)
	duplicationScore := 100 - duplicationDeductions(duplication, &deductions)
	performanceScore := 100 - performanceDeductions(performance, &deductions)

	total := sizeScore + duplicationScore + performanceScore - componentBaseline
	if total < 0 {
		total = 0
	}
	score := int(math.Round(float64(total)))

	grade, category := report.GradeForScore(score)

	return report.ScoreReport{
		Score:    score,
		Grade:    grade,
		Category: category,
		ComponentScores: report.ComponentScores{
			Size:        sizeScore,
			Duplication: duplicationScore,
			Performance: performanceScore,
		},
		Deductions: deductions,
		Summary:    summaryMessages(score, sizeScore, duplicationScore, performanceScore),
	}
}

func sizeDeductions(size report.SizeReport, deductions *[]report.Deduction) int {
	points := 0

	switch {
	case size.TotalBytes > sizeTierHuge:
		points += 30
		*deductions = append(*deductions, report.Deduction{Reason: "bundle exceeds 1 MB", Points: 30})
	case size.TotalBytes > sizeTierLarge:
		points += 20
		*deductions = append(*deductions, report.Deduction{Reason: "bundle exceeds 500 KB", Points: 20})
	case size.TotalBytes > sizeTierMedium:
		points += 10
		*deductions = append(*deductions, report.Deduction{Reason: "bundle exceeds 250 KB", Points: 10})
	}

	jsPercent := percentOf(size.BytesByLanguage.JS, size.TotalBytes)
	switch {
	case jsPercent > jsHeavyPercent:
		points += 10
		*deductions = append(*deductions, report.Deduction{Reason: "JavaScript above 80% of bundle", Points: 10})
	case jsPercent > jsElevatedPercent:
		points += 5
		*deductions = append(*deductions, report.Deduction{Reason: "JavaScript above 70% of bundle", Points: 5})
	}

	return points
}

func duplicationDeductions(duplication report.DuplicationReport, deductions *[]report.Deduction) int {
	count := len(duplication.Findings)

	points := 0
	switch {
	case count > 20:
		points = 25
	case count > 10:
		points = 15
	case count > 5:
		points = 10
	case count > 0:
		points = 5
	}

	if points > 0 {
		*deductions = append(*deductions, report.Deduction{
			Reason: fmt.Sprintf("%d duplication findings", count),
			Points: points,
		})
	}

	return points
}

func performanceDeductions(performance report.PerformanceReport, deductions *[]report.Deduction) int {
	errors := 0
	warnings := 0
	infos := 0

	for _, issue := range performance.Issues {
		switch issue.Severity {
		case report.SeverityError:
			errors++
		case report.SeverityWarning:
			warnings++
		case report.SeverityInfo:
			infos++
		}
	}

	points := 0
	points += cappedPenalty(errors, errorPenalty, errorPenaltyCap, "performance errors", deductions)
	points += cappedPenalty(warnings, warningPenalty, warningPenaltyCap, "performance warnings", deductions)
	points += cappedPenalty(infos, infoPenalty, infoPenaltyCap, "performance notices", deductions)

	return points
}

func cappedPenalty(count, perIssue, limit int, label string, deductions *[]report.Deduction) int {
	if count == 0 {
		return 0
	}

	points := count * perIssue
	if points > limit {
		points = limit
	}

	*deductions = append(*deductions, report.Deduction{
		Reason: fmt.Sprintf("%d %s", count, label),
		Points: points,
	})

	return points
}

func summaryMessages(score, sizeScore, duplicationScore, performanceScore int) []string {
	var messages []string

	switch {
	case score >= 90:
		messages = append(messages, "Excellent! Your bundle is in great shape.")
	case score >= 75:
		messages = append(messages, "Good job. A few improvements would make this bundle excellent.")
	case score >= 60:
		messages = append(messages, "Decent, but the flagged issues are worth addressing.")
	case score >= 40:
		messages = append(messages, "Several issues are dragging the bundle down; plan a cleanup pass.")
	default:
		messages = append(messages, "Significant problems detected; this bundle needs attention before shipping.")
	}

	if sizeScore < advisoryThreshold {
		messages = append(messages, "Trim bundle size: minify, split and lazy-load the heaviest assets.")
	}
	if duplicationScore < advisoryThreshold {
		messages = append(messages, "Reduce duplication: extract shared functions, selectors and markup.")
	}
	if performanceScore < advisoryThreshold {
		messages = append(messages, "Fix performance anti-patterns, starting with the error-severity findings.")
	}

	return messages
}
