package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

type Formatter interface {
	Format(report *Report) (string, error)
}

type TableFormatter struct {
	colorize bool
}

func NewTableFormatter(colorize bool) *TableFormatter {
	return &TableFormatter{colorize: colorize}
}

func (f *TableFormatter) Format(report *Report) (string, error) {
	var output strings.Builder

	if f.colorize {
		color.Set(color.FgCyan, color.Bold)
	}
	output.WriteString(fmt.Sprintf("Bundle Health Report - %s\n", report.Path))
	if report.Branch != "" {
		output.WriteString(fmt.Sprintf("Branch: %s | Commit: %s\n", report.Branch, shortCommit(report.CommitHash)))
	}
	output.WriteString(fmt.Sprintf("Analysis completed at: %s (took %s)\n\n",
		report.Timestamp.Format("2006-01-02 15:04:05"), report.Duration))

	if f.colorize {
		color.Unset()
	}

	f.writeScore(&output, &report.Score)
	f.writeSizeBreakdown(&output, &report.Size)
	f.writeCategories(&output, report.Categories)
	f.writeCoreVitals(&output, report.CoreVitals)

	findings := report.AllFindings()
	if len(findings) > 0 {
		output.WriteString("\nFindings:\n")
		f.writeFindings(&output, findings)
	} else {
		output.WriteString("\n")
		if f.colorize {
			color.Set(color.FgGreen, color.Bold)
		}
		output.WriteString("✅ No issues found! Bundle is healthy.\n")
		if f.colorize {
			color.Unset()
		}
	}

	if len(report.Performance.Recommendations) > 0 {
		output.WriteString("\nRecommendations:\n")
		f.writeRecommendations(&output, report.Performance.Recommendations)
	}

	return output.String(), nil
}

func (f *TableFormatter) writeScore(output *strings.Builder, score *ScoreReport) {
	if f.colorize {
		color.Set(color.FgYellow, color.Bold)
	}
	output.WriteString("Score:\n")
	if f.colorize {
		color.Unset()
	}

	output.WriteString(fmt.Sprintf("  Overall: %d/100 (Grade: %s)\n", score.Score, score.Grade))
	output.WriteString(fmt.Sprintf("  Components: size %d | duplication %d | performance %d\n",
		score.ComponentScores.Size, score.ComponentScores.Duplication, score.ComponentScores.Performance))

	for _, deduction := range score.Deductions {
		output.WriteString(fmt.Sprintf("    -%d %s\n", deduction.Points, deduction.Reason))
	}

	for _, message := range score.Summary {
		output.WriteString(fmt.Sprintf("  %s\n", message))
	}
}

func (f *TableFormatter) writeSizeBreakdown(output *strings.Builder, size *SizeReport) {
	if size.TotalBytes == 0 && len(size.PerFileBytes) == 0 {
		return
	}

	output.WriteString("\n")
	if f.colorize {
		color.Set(color.FgCyan, color.Bold)
	}
	output.WriteString("Bundle Size:\n")
	if f.colorize {
		color.Unset()
	}

	output.WriteString(fmt.Sprintf("  Total: %s\n", FormatBytes(size.TotalBytes)))
	output.WriteString(fmt.Sprintf("  HTML: %s (%s%%)\n", FormatBytes(size.BytesByLanguage.HTML), size.PercentByLanguage.HTML))
	output.WriteString(fmt.Sprintf("  CSS:  %s (%s%%)\n", FormatBytes(size.BytesByLanguage.CSS), size.PercentByLanguage.CSS))
	output.WriteString(fmt.Sprintf("  JS:   %s (%s%%)\n", FormatBytes(size.BytesByLanguage.JS), size.PercentByLanguage.JS))
	output.WriteString(fmt.Sprintf("  Files: %s\n", formatNumber(len(size.PerFileBytes))))
}

func (f *TableFormatter) writeCategories(output *strings.Builder, categories []CategoryScore) {
	if len(categories) == 0 {
		return
	}

	output.WriteString("\nAudit Categories:\n")
	for _, category := range categories {
		output.WriteString(fmt.Sprintf("  %s: %d (%s)\n", category.Title, category.Score, category.Status))
	}
}

func (f *TableFormatter) writeCoreVitals(output *strings.Builder, vitals []VitalMetric) {
	if len(vitals) == 0 {
		return
	}

	output.WriteString("\nCore Web Vitals:\n")
	for _, vital := range vitals {
		output.WriteString(fmt.Sprintf("  %s: %s (%s)\n", vital.Label, vital.Display, vital.Rating))
	}
}

func (f *TableFormatter) writeFindings(output *strings.Builder, findings []Finding) {
	for i, finding := range findings {
		if i > 0 {
			output.WriteString("\n")
		}

		severity := strings.ToUpper(string(finding.Severity))
		if f.colorize {
			severityColor := f.getSeverityColor(finding.Severity)
			if severityColor != nil {
				severity = severityColor.Sprint(severity)
			}
		}

		location := string(finding.Category)
		if finding.File != "" {
			location = finding.File
		}

		output.WriteString(fmt.Sprintf("  [%s] %s (%s)\n", severity, finding.Title, location))
		output.WriteString(fmt.Sprintf("    %s\n", finding.Description))
		if finding.Evidence != "" {
			output.WriteString(fmt.Sprintf("    Evidence: %s\n", truncateString(finding.Evidence, 80)))
		}
	}
}

func (f *TableFormatter) writeRecommendations(output *strings.Builder, recommendations []Recommendation) {
	for _, recommendation := range recommendations {
		output.WriteString(fmt.Sprintf("  [%s] %s\n", strings.ToUpper(string(recommendation.Priority)), recommendation.Title))
		output.WriteString(fmt.Sprintf("    %s\n", recommendation.Description))
		if recommendation.Impact != "" {
			output.WriteString(fmt.Sprintf("    Impact: %s\n", recommendation.Impact))
		}
	}
}

func (f *TableFormatter) getSeverityColor(severity Severity) *color.Color {
	switch severity {
	case SeverityError:
		return color.New(color.FgRed, color.Bold)
	case SeverityWarning:
		return color.New(color.FgYellow)
	case SeverityInfo:
		return color.New(color.FgBlue)
	default:
		return nil
	}
}

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return string(data), nil
}

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (f *MarkdownFormatter) Format(report *Report) (string, error) {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Bundle Health Report - %s\n\n", report.Path))
	if report.Branch != "" {
		output.WriteString(fmt.Sprintf("**Branch:** %s | **Commit:** %s\n\n", report.Branch, shortCommit(report.CommitHash)))
	}
	output.WriteString(fmt.Sprintf("**Analysis completed:** %s (took %s)\n\n",
		report.Timestamp.Format("2006-01-02 15:04:05"), report.Duration))

	output.WriteString("## Score\n\n")
	output.WriteString(fmt.Sprintf("- **Overall:** %d/100 (Grade: %s)\n", report.Score.Score, report.Score.Grade))
	output.WriteString(fmt.Sprintf("- **Size:** %d | **Duplication:** %d | **Performance:** %d\n\n",
		report.Score.ComponentScores.Size, report.Score.ComponentScores.Duplication, report.Score.ComponentScores.Performance))

	for _, message := range report.Score.Summary {
		output.WriteString(fmt.Sprintf("> %s\n", message))
	}
	output.WriteString("\n")

	f.writeSizeMarkdown(&output, &report.Size)
	f.writeVitalsMarkdown(&output, report.CoreVitals)

	findings := report.AllFindings()
	if len(findings) > 0 {
		output.WriteString("## Findings\n\n")
		f.writeFindingsMarkdown(&output, findings)
	} else {
		output.WriteString("## ✅ No Issues Found\n\nBundle is healthy!\n\n")
	}

	if len(report.Performance.Recommendations) > 0 {
		output.WriteString("## Recommendations\n\n")
		for _, recommendation := range report.Performance.Recommendations {
			output.WriteString(fmt.Sprintf("- **[%s] %s** — %s\n",
				strings.ToUpper(string(recommendation.Priority)), recommendation.Title, recommendation.Description))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (f *MarkdownFormatter) writeSizeMarkdown(output *strings.Builder, size *SizeReport) {
	if size.TotalBytes == 0 && len(size.PerFileBytes) == 0 {
		return
	}

	output.WriteString("## Bundle Size\n\n")
	output.WriteString(fmt.Sprintf("- **Total:** %s\n", FormatBytes(size.TotalBytes)))
	output.WriteString(fmt.Sprintf("- **HTML:** %s (%s%%)\n", FormatBytes(size.BytesByLanguage.HTML), size.PercentByLanguage.HTML))
	output.WriteString(fmt.Sprintf("- **CSS:** %s (%s%%)\n", FormatBytes(size.BytesByLanguage.CSS), size.PercentByLanguage.CSS))
	output.WriteString(fmt.Sprintf("- **JS:** %s (%s%%)\n\n", FormatBytes(size.BytesByLanguage.JS), size.PercentByLanguage.JS))
}

func (f *MarkdownFormatter) writeVitalsMarkdown(output *strings.Builder, vitals []VitalMetric) {
	if len(vitals) == 0 {
		return
	}

	output.WriteString("## Core Web Vitals\n\n")
	for _, vital := range vitals {
		output.WriteString(fmt.Sprintf("- **%s:** %s (%s)\n", vital.Label, vital.Display, vital.Rating))
	}
	output.WriteString("\n")
}

func (f *MarkdownFormatter) writeFindingsMarkdown(output *strings.Builder, findings []Finding) {
	categorized := make(map[Category][]Finding)
	var order []Category
	for _, finding := range findings {
		if _, seen := categorized[finding.Category]; !seen {
			order = append(order, finding.Category)
		}
		categorized[finding.Category] = append(categorized[finding.Category], finding)
	}

	for _, category := range order {
		title := strings.ToUpper(string(category))
		if title == "" {
			title = "GENERAL"
		}
		output.WriteString(fmt.Sprintf("### %s\n\n", title))

		for _, finding := range categorized[category] {
			output.WriteString(fmt.Sprintf("#### %s %s\n\n", f.getSeverityBadge(finding.Severity), finding.Title))
			output.WriteString(fmt.Sprintf("%s\n\n", finding.Description))

			if finding.File != "" {
				output.WriteString(fmt.Sprintf("**File:** `%s`\n\n", finding.File))
			}
			if finding.Evidence != "" {
				output.WriteString(fmt.Sprintf("```\n%s\n```\n\n", truncateString(finding.Evidence, 200)))
			}
		}
	}
}

func (f *MarkdownFormatter) getSeverityBadge(severity Severity) string {
	switch severity {
	case SeverityError:
		return "🔴 **ERROR**"
	case SeverityWarning:
		return "🟡 **WARNING**"
	case SeverityInfo:
		return "🔵 **INFO**"
	default:
		return "⚪ **UNKNOWN**"
	}
}

func GetFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONFormatter()
	case "markdown", "md":
		return NewMarkdownFormatter()
	case "table":
		fallthrough
	default:
		return NewTableFormatter(isTerminal())
	}
}

func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return fileInfo.Mode()&os.ModeCharDevice != 0
}

func shortCommit(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
