package analyzer

import (
	"strings"
	"testing"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/config"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

func TestSizeAnalyzer_Empty(t *testing.T) {
	analyzer := NewSizeAnalyzer(&config.DefaultConfig().Size)

	result := analyzer.Analyze(nil)

	if result.TotalBytes != 0 {
		t.Errorf("TotalBytes = %d, expected 0", result.TotalBytes)
	}
	if result.PercentByLanguage.HTML != "0.0" || result.PercentByLanguage.CSS != "0.0" || result.PercentByLanguage.JS != "0.0" {
		t.Errorf("Empty bundle percentages = %+v, expected all 0.0", result.PercentByLanguage)
	}
	if len(result.Issues) != 0 {
		t.Errorf("Empty bundle produced %d issues, expected none", len(result.Issues))
	}
}

func TestSizeAnalyzer_Buckets(t *testing.T) {
	analyzer := NewSizeAnalyzer(&config.DefaultConfig().Size)

	files := []asset.SourceFile{
		{Name: "index.html", Language: asset.LanguageHTML, Content: strings.Repeat("a", 100)},
		{Name: "style.css", Language: asset.LanguageCSS, Content: strings.Repeat("b", 300)},
		{Name: "app.js", Language: asset.LanguageJS, Content: strings.Repeat("c", 600)},
		{Name: "notes.txt", Language: asset.LanguageUnknown, Content: strings.Repeat("d", 999)},
	}

	result := analyzer.Analyze(files)

	if result.TotalBytes != 1000 {
		t.Errorf("TotalBytes = %d, expected 1000 (unknown files excluded)", result.TotalBytes)
	}
	if result.BytesByLanguage.JS != 600 {
		t.Errorf("JS bytes = %d, expected 600", result.BytesByLanguage.JS)
	}
	if result.PercentByLanguage.JS != "60.0" {
		t.Errorf("JS percent = %s, expected 60.0", result.PercentByLanguage.JS)
	}
	if result.PercentByLanguage.HTML != "10.0" {
		t.Errorf("HTML percent = %s, expected 10.0", result.PercentByLanguage.HTML)
	}
	if result.PerFileBytes["notes.txt"] != 999 {
		t.Error("Unknown files should still appear in the per-file map")
	}
}

func TestSizeAnalyzer_TotalThresholdIsStrict(t *testing.T) {
	analyzer := NewSizeAnalyzer(&config.SizeConfig{
		MaxTotalBytes: 500000,
		MaxJSBytes:    600000,
		MaxCSSBytes:   600000,
		MaxJSPercent:  100,
	})

	exactly := []asset.SourceFile{
		{Name: "index.html", Language: asset.LanguageHTML, Content: strings.Repeat("x", 500000)},
	}
	result := analyzer.Analyze(exactly)
	if hasFindingTitled(result.Issues, "Large Bundle Size") {
		t.Error("Bundle exactly at the budget should not be flagged")
	}

	over := []asset.SourceFile{
		{Name: "index.html", Language: asset.LanguageHTML, Content: strings.Repeat("x", 500001)},
	}
	result = analyzer.Analyze(over)
	if !hasFindingTitled(result.Issues, "Large Bundle Size") {
		t.Error("Bundle one byte over the budget should be flagged")
	}
}

func TestSizeAnalyzer_LargeJSBundle(t *testing.T) {
	analyzer := NewSizeAnalyzer(&config.DefaultConfig().Size)

	files := []asset.SourceFile{
		{Name: "vendor.js", Language: asset.LanguageJS, Content: strings.Repeat("x", 300*1024)},
	}

	result := analyzer.Analyze(files)

	var jsIssue *report.Finding
	for i := range result.Issues {
		if result.Issues[i].Title == "Large JavaScript Bundle" {
			jsIssue = &result.Issues[i]
		}
	}
	if jsIssue == nil {
		t.Fatal("300 KB of JavaScript should exceed the 250000 byte budget")
	}
	if jsIssue.Severity != report.SeverityError {
		t.Errorf("Severity = %s, expected error", jsIssue.Severity)
	}
	if !strings.Contains(jsIssue.Description, "300 KB") {
		t.Errorf("Description should quote the formatted size, got: %s", jsIssue.Description)
	}
}

func TestSizeAnalyzer_JSHeavyBundle(t *testing.T) {
	analyzer := NewSizeAnalyzer(&config.DefaultConfig().Size)

	files := []asset.SourceFile{
		{Name: "app.js", Language: asset.LanguageJS, Content: strings.Repeat("j", 8000)},
		{Name: "index.html", Language: asset.LanguageHTML, Content: strings.Repeat("h", 2000)},
	}

	result := analyzer.Analyze(files)

	if !hasFindingTitled(result.Issues, "JavaScript-Heavy Bundle") {
		t.Error("80% JavaScript share should be flagged against the 70% guideline")
	}
}

func TestSizeAnalyzer_SortsErrorsFirst(t *testing.T) {
	analyzer := NewSizeAnalyzer(&config.SizeConfig{
		MaxTotalBytes: 100,
		MaxJSBytes:    100,
		MaxCSSBytes:   100000,
		MaxJSPercent:  100,
	})

	files := []asset.SourceFile{
		{Name: "app.js", Language: asset.LanguageJS, Content: strings.Repeat("x", 200)},
	}

	result := analyzer.Analyze(files)

	if len(result.Issues) < 2 {
		t.Fatalf("Expected both total and JS issues, got %d", len(result.Issues))
	}
	if result.Issues[0].Severity != report.SeverityError {
		t.Errorf("First issue severity = %s, expected the JS error sorted first", result.Issues[0].Severity)
	}
}

func hasFindingTitled(findings []report.Finding, title string) bool {
	for _, finding := range findings {
		if finding.Title == title {
			return true
		}
	}
	return false
}
