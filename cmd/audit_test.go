package cmd

import (
	"testing"

	"github.com/bundlecheck/bundle-health-checker/internal/lighthouse"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

func TestBuildAuditReport_MergedIssuesSortedBySeverity(t *testing.T) {
	staticReport := &report.Report{
		Performance: report.PerformanceReport{
			Issues: []report.Finding{
				{Severity: report.SeverityWarning, Title: "Synchronous External Scripts"},
				{Severity: report.SeverityInfo, Title: "Missing Viewport Meta Tag"},
			},
		},
		Score: report.ScoreReport{Score: 80},
	}

	result := &lighthouse.Result{
		Performance: report.PerformanceReport{
			Issues: []report.Finding{
				{Severity: report.SeverityError, Title: "Eliminate render-blocking resources"},
			},
		},
		Score: report.ScoreReport{Score: 60},
	}

	merged := buildAuditReport(result, staticReport)

	issues := merged.Performance.Issues
	if len(issues) != 3 {
		t.Fatalf("Expected 3 merged issues, got %d", len(issues))
	}

	expected := []report.Severity{report.SeverityError, report.SeverityWarning, report.SeverityInfo}
	for i, severity := range expected {
		if issues[i].Severity != severity {
			t.Errorf("issues[%d].Severity = %s, expected %s", i, issues[i].Severity, severity)
		}
	}
	if issues[0].Title != "Eliminate render-blocking resources" {
		t.Errorf("The audit error should sort first, got %q", issues[0].Title)
	}
}

func TestBuildAuditReport_AuditOnly(t *testing.T) {
	result := &lighthouse.Result{
		Score: report.ScoreReport{Score: 72},
		Categories: []report.CategoryScore{
			{ID: "performance", Title: "Performance", Score: 72, Status: report.StatusWarning},
		},
	}

	merged := buildAuditReport(result, nil)

	if merged.Score.Score != 72 {
		t.Errorf("Score = %d, expected the external score", merged.Score.Score)
	}
	if merged.Score.Combination == nil || merged.Score.Combination.ExternalWeight != 1 {
		t.Error("Audit-only reports should carry external weight 1")
	}
	if len(merged.Categories) != 1 {
		t.Errorf("Categories should pass through, got %d", len(merged.Categories))
	}
}
