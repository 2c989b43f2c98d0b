package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	report := createTestReport()

	output, err := formatter.Format(report)
	if err != nil {
		t.Fatalf("Failed to format report: %v", err)
	}

	if !strings.Contains(output, "Bundle Health Report") {
		t.Error("Output should contain report header")
	}

	if !strings.Contains(output, "Score:") {
		t.Error("Output should contain score section")
	}

	if !strings.Contains(output, "72/100 (Grade: C)") {
		t.Error("Output should contain score and grade")
	}

	if !strings.Contains(output, "Findings:") {
		t.Error("Output should contain findings section")
	}

	if !strings.Contains(output, "[ERROR]") {
		t.Error("Output should contain severity in brackets format")
	}

	if !strings.Contains(output, "Large JavaScript Bundle") {
		t.Error("Output should contain test finding")
	}

	if !strings.Contains(output, "Recommendations:") {
		t.Error("Output should contain recommendations section")
	}
}

func TestTableFormatter_FormatHealthy(t *testing.T) {
	formatter := &TableFormatter{}

	report := &Report{
		Path:      "/tmp/bundle",
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:  "1ms",
		Score: ScoreReport{
			Score:    100,
			Grade:    GradeA,
			Category: StatusGood,
			ComponentScores: ComponentScores{
				Size:        100,
				Duplication: 100,
				Performance: 100,
			},
		},
	}

	output, err := formatter.Format(report)
	if err != nil {
		t.Fatalf("Failed to format report: %v", err)
	}

	if !strings.Contains(output, "No issues found") {
		t.Error("Healthy report should celebrate the absence of issues")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	formatter := &JSONFormatter{}

	report := createTestReport()

	output, err := formatter.Format(report)
	if err != nil {
		t.Fatalf("Failed to format report: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	score, ok := result["score"].(map[string]interface{})
	if !ok {
		t.Fatal("JSON output should contain a score object")
	}

	if score["grade"] != "C" {
		t.Errorf("JSON score.grade = %v, expected C", score["grade"])
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	formatter := &MarkdownFormatter{}

	report := createTestReport()

	output, err := formatter.Format(report)
	if err != nil {
		t.Fatalf("Failed to format report: %v", err)
	}

	if !strings.Contains(output, "# Bundle Health Report") {
		t.Error("Markdown output should contain the top-level header")
	}

	if !strings.Contains(output, "## Score") {
		t.Error("Markdown output should contain a score section")
	}

	if !strings.Contains(output, "## Findings") {
		t.Error("Markdown output should contain a findings section")
	}

	if !strings.Contains(output, "🔴 **ERROR**") {
		t.Error("Markdown output should contain a severity badge")
	}
}

func TestGetFormatter(t *testing.T) {
	if _, ok := GetFormatter("json").(*JSONFormatter); !ok {
		t.Error("GetFormatter(json) should return a JSONFormatter")
	}
	if _, ok := GetFormatter("markdown").(*MarkdownFormatter); !ok {
		t.Error("GetFormatter(markdown) should return a MarkdownFormatter")
	}
	if _, ok := GetFormatter("table").(*TableFormatter); !ok {
		t.Error("GetFormatter(table) should return a TableFormatter")
	}
	if _, ok := GetFormatter("unknown").(*TableFormatter); !ok {
		t.Error("GetFormatter should fall back to the table formatter")
	}
}

func createTestReport() *Report {
	return &Report{
		Path:       "/tmp/bundle",
		Branch:     "main",
		CommitHash: "abcdef1234567890",
		Timestamp:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Duration:   "3ms",
		Version:    "test",
		Size: SizeReport{
			TotalBytes:      400000,
			BytesByLanguage: LanguageBytes{HTML: 50000, CSS: 50000, JS: 300000},
			PercentByLanguage: LanguagePercent{
				HTML: "12.5",
				CSS:  "12.5",
				JS:   "75.0",
			},
			PerFileBytes: map[string]int{"app.js": 300000, "style.css": 50000, "index.html": 50000},
			Issues: []Finding{
				{
					Category:    CategoryJS,
					Severity:    SeverityError,
					Title:       "Large JavaScript Bundle",
					Description: "JavaScript weighs 292.97 KB, exceeding the 244.14 KB budget",
				},
			},
		},
		Duplication: DuplicationReport{
			Findings: []Finding{
				{
					Category:    CategoryCSS,
					Severity:    SeverityWarning,
					Title:       "Duplicate Selector",
					Description: "Selector \".btn\" is declared 3 times; merge the rule blocks",
					File:        "style.css",
				},
			},
			DuplicateBlockCount: 0,
		},
		Performance: PerformanceReport{
			Issues: []Finding{
				{
					Category:    CategoryHTML,
					Severity:    SeverityInfo,
					Title:       "Missing Viewport Meta Tag",
					Description: "No viewport meta tag found; mobile browsers will fall back to desktop layout",
					File:        "index.html",
				},
			},
			Recommendations: []Recommendation{
				{
					Priority:    PriorityHigh,
					Title:       "Enable Text Compression",
					Description: "Serve text assets with gzip or brotli compression",
					Impact:      "Typically cuts transfer size by 60-80%",
				},
			},
		},
		Score: ScoreReport{
			Score:    72,
			Grade:    GradeC,
			Category: StatusWarning,
			ComponentScores: ComponentScores{
				Size:        85,
				Duplication: 95,
				Performance: 92,
			},
			Deductions: []Deduction{
				{Reason: "bundle exceeds 250 KB", Points: 10},
				{Reason: "JavaScript above 70% of bundle", Points: 5},
			},
			Summary: []string{"Decent, but the flagged issues are worth addressing."},
		},
	}
}
