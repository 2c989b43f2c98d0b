package analyzer

import (
	"fmt"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/config"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

// SizeAnalyzer aggregates per-file byte counts into totals, language
// percentages and size issues. Thresholds are strict: a bundle exactly
// at a limit does not trigger the corresponding issue.
type SizeAnalyzer struct {
	config *config.SizeConfig
}

func NewSizeAnalyzer(cfg *config.SizeConfig) *SizeAnalyzer {
	return &SizeAnalyzer{config: cfg}
}

func (a *SizeAnalyzer) Analyze(files []asset.SourceFile) report.SizeReport {
	sizeReport := report.SizeReport{
		PerFileBytes: make(map[string]int),
		Issues:       []report.Finding{},
	}

	for _, file := range files {
		bytes := len(file.Content)
		sizeReport.PerFileBytes[file.Name] = bytes

		switch file.Language {
		case asset.LanguageHTML:
			sizeReport.BytesByLanguage.HTML += bytes
			sizeReport.TotalBytes += bytes
		case asset.LanguageCSS:
			sizeReport.BytesByLanguage.CSS += bytes
			sizeReport.TotalBytes += bytes
		case asset.LanguageJS:
			sizeReport.BytesByLanguage.JS += bytes
			sizeReport.TotalBytes += bytes
		}
	}

	sizeReport.PercentByLanguage = report.LanguagePercent{
		HTML: formatPercent(sizeReport.BytesByLanguage.HTML, sizeReport.TotalBytes),
		CSS:  formatPercent(sizeReport.BytesByLanguage.CSS, sizeReport.TotalBytes),
		JS:   formatPercent(sizeReport.BytesByLanguage.JS, sizeReport.TotalBytes),
	}

	sizeReport.Issues = a.checkThresholds(&sizeReport)
	report.SortFindings(sizeReport.Issues)

	return sizeReport
}

func (a *SizeAnalyzer) checkThresholds(sizeReport *report.SizeReport) []report.Finding {
	issues := []report.Finding{}

	if sizeReport.TotalBytes > a.config.MaxTotalBytes {
		issues = append(issues, report.Finding{
			Severity: report.SeverityWarning,
			Title:    "Large Bundle Size",
			Description: fmt.Sprintf("Total bundle size is %s, exceeding the %s budget",
				report.FormatBytes(sizeReport.TotalBytes), report.FormatBytes(a.config.MaxTotalBytes)),
		})
	}

	if sizeReport.BytesByLanguage.JS > a.config.MaxJSBytes {
		issues = append(issues, report.Finding{
			Category: report.CategoryJS,
			Severity: report.SeverityError,
			Title:    "Large JavaScript Bundle",
			Description: fmt.Sprintf("JavaScript weighs %s, exceeding the %s budget",
				report.FormatBytes(sizeReport.BytesByLanguage.JS), report.FormatBytes(a.config.MaxJSBytes)),
		})
	}

	if sizeReport.BytesByLanguage.CSS > a.config.MaxCSSBytes {
		issues = append(issues, report.Finding{
			Category: report.CategoryCSS,
			Severity: report.SeverityWarning,
			Title:    "Large CSS Bundle",
			Description: fmt.Sprintf("CSS weighs %s, exceeding the %s budget",
				report.FormatBytes(sizeReport.BytesByLanguage.CSS), report.FormatBytes(a.config.MaxCSSBytes)),
		})
	}

	if percentOf(sizeReport.BytesByLanguage.JS, sizeReport.TotalBytes) > float64(a.config.MaxJSPercent) {
		issues = append(issues, report.Finding{
			Category: report.CategoryJS,
			Severity: report.SeverityWarning,
			Title:    "JavaScript-Heavy Bundle",
			Description: fmt.Sprintf("JavaScript makes up %s%% of the bundle, above the %d%% guideline",
				sizeReport.PercentByLanguage.JS, a.config.MaxJSPercent),
		})
	}

	return issues
}

func percentOf(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func formatPercent(part, total int) string {
	return fmt.Sprintf("%.1f", percentOf(part, total))
}
