package analyzer

import (
	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/config"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

// PerformanceAnalyzer flags rendering and runtime anti-patterns per
// file, so every issue can name the file it came from, and derives a
// set of optimization recommendations from the bundle composition.
type PerformanceAnalyzer struct {
	config *config.PerformanceConfig
}

func NewPerformanceAnalyzer(cfg *config.PerformanceConfig) *PerformanceAnalyzer {
	return &PerformanceAnalyzer{config: cfg}
}

func (a *PerformanceAnalyzer) Analyze(files []asset.SourceFile) report.PerformanceReport {
	performanceReport := report.PerformanceReport{
		Issues: []report.Finding{},
	}

	for _, file := range asset.FilterByLanguage(files, asset.LanguageHTML) {
		performanceReport.Issues = append(performanceReport.Issues, a.checkHTML(file)...)
	}
	for _, file := range asset.FilterByLanguage(files, asset.LanguageCSS) {
		performanceReport.Issues = append(performanceReport.Issues, a.checkCSS(file)...)
	}
	for _, file := range asset.FilterByLanguage(files, asset.LanguageJS) {
		performanceReport.Issues = append(performanceReport.Issues, a.checkJS(file)...)
	}

	report.SortFindings(performanceReport.Issues)
	performanceReport.Recommendations = a.buildRecommendations(files)

	return performanceReport
}

func (a *PerformanceAnalyzer) buildRecommendations(files []asset.SourceFile) []report.Recommendation {
	totalBytes := 0
	jsBytes := 0
	cssBytes := 0

	for _, file := range files {
		switch file.Language {
		case asset.LanguageHTML:
			totalBytes += len(file.Content)
		case asset.LanguageCSS:
			cssBytes += len(file.Content)
			totalBytes += len(file.Content)
		case asset.LanguageJS:
			jsBytes += len(file.Content)
			totalBytes += len(file.Content)
		}
	}

	recommendations := []report.Recommendation{}

	if percentOf(jsBytes, totalBytes) > float64(a.config.JSShareForRecommendation) {
		recommendations = append(recommendations, report.Recommendation{
			Priority:    report.PriorityHigh,
			Title:       "Reduce JavaScript Execution Time",
			Description: "JavaScript dominates the bundle; split code, defer non-critical scripts and remove unused modules",
			Impact:      "Directly improves Total Blocking Time and interactivity",
		})
	}

	if percentOf(cssBytes, totalBytes) > float64(a.config.CSSShareForRecommendation) {
		recommendations = append(recommendations, report.Recommendation{
			Priority:    report.PriorityMedium,
			Title:       "Optimize CSS Delivery",
			Description: "CSS takes a large share of the bundle; inline critical CSS and load the rest asynchronously",
			Impact:      "Reduces render-blocking time on first paint",
		})
	}

	recommendations = append(recommendations,
		report.Recommendation{
			Priority:    report.PriorityHigh,
			Title:       "Enable Text Compression",
			Description: "Serve text assets with gzip or brotli compression",
			Impact:      "Typically cuts transfer size by 60-80%",
		},
		report.Recommendation{
			Priority:    report.PriorityMedium,
			Title:       "Implement Resource Hints",
			Description: "Use preconnect, preload and prefetch for critical resources",
			Impact:      "Shaves connection setup time off the critical path",
		},
		report.Recommendation{
			Priority:    report.PriorityHigh,
			Title:       "Minimize Main-Thread Work",
			Description: "Break long tasks apart and move heavy computation to web workers",
			Impact:      "Keeps the page responsive during load",
		},
		report.Recommendation{
			Priority:    report.PriorityLow,
			Title:       "Optimize Images",
			Description: "Serve appropriately sized images in modern formats with lazy loading",
			Impact:      "Reduces bandwidth on image-heavy pages",
		},
	)

	return recommendations
}
