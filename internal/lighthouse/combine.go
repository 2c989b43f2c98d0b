package lighthouse

import (
	"fmt"
	"math"

	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

const (
	blendWeight       = 0.5
	advisoryBelow     = 90
	advisoryPerPoint  = 0.1
	advisoryMinPoints = 1
)

// CombineScores blends a static analysis score with an external audit
// score. Both present: 50/50 weighting. One present: that score at full
// weight. Neither: zero.
func CombineScores(staticScore, externalScore *int) report.ScoreReport {
	switch {
	case staticScore != nil && externalScore != nil:
		return blendScores(*staticScore, *externalScore)
	case staticScore != nil:
		return singleSourceScore(*staticScore, staticScore, nil, 1, 0)
	case externalScore != nil:
		return singleSourceScore(*externalScore, nil, externalScore, 0, 1)
	default:
		return singleSourceScore(0, nil, nil, 0, 0)
	}
}

func blendScores(static, external int) report.ScoreReport {
	combined := int(math.Round(float64(static)*blendWeight + float64(external)*blendWeight))
	grade, status := report.GradeForScore(combined)

	// Nudge the performance component by the combined-vs-static delta
	// so the blend is visible at component level, clamped to [0,100].
	performanceComponent := clampScore(combined + (combined - static))

	scoreReport := report.ScoreReport{
		Score:           combined,
		Grade:           grade,
		Category:        status,
		ComponentScores: report.ComponentScores{Performance: performanceComponent},
		Deductions:      []report.Deduction{},
		Summary:         []string{},
		Combination: &report.Combination{
			StaticScore:    &static,
			ExternalScore:  &external,
			StaticWeight:   blendWeight,
			ExternalWeight: blendWeight,
		},
	}

	// Descriptive only: the combined score already reflects the
	// external result, so this entry is not subtracted again.
	if external < advisoryBelow {
		points := int(math.Round(float64(100-external) * advisoryPerPoint))
		if points < advisoryMinPoints {
			points = advisoryMinPoints
		}
		scoreReport.Deductions = append(scoreReport.Deductions, report.Deduction{
			Reason: fmt.Sprintf("external audit scored %d/100", external),
			Points: points,
		})
	}

	return scoreReport
}

func singleSourceScore(score int, static, external *int, staticWeight, externalWeight float64) report.ScoreReport {
	grade, status := report.GradeForScore(score)

	return report.ScoreReport{
		Score:           score,
		Grade:           grade,
		Category:        status,
		ComponentScores: report.ComponentScores{Performance: score},
		Deductions:      []report.Deduction{},
		Summary:         []string{},
		Combination: &report.Combination{
			StaticScore:    static,
			ExternalScore:  external,
			StaticWeight:   staticWeight,
			ExternalWeight: externalWeight,
		},
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
