package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

var (
	syncXHRRe    = regexp.MustCompile(`\.open\(\s*[^,)]+,\s*[^,)]+,\s*false\s*\)`)
	layoutReadRe = regexp.MustCompile(`\b(?:offsetHeight|offsetWidth|clientHeight|clientWidth|scrollHeight|scrollWidth|getComputedStyle|getBoundingClientRect)\b`)
	consoleRe    = regexp.MustCompile(`console\.(?:log|warn|error|debug)\(`)
)

func (a *PerformanceAnalyzer) checkJS(file asset.SourceFile) []report.Finding {
	issues := []report.Finding{}

	if syncXHRRe.MatchString(file.Content) {
		issues = append(issues, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityError,
			Title:       "Synchronous XMLHttpRequest",
			Description: "Found a synchronous XMLHttpRequest; it freezes the page until the response arrives",
			File:        file.Name,
		})
	}

	if reads := len(layoutReadRe.FindAllString(file.Content, -1)); reads > a.config.LayoutReadLimit {
		issues = append(issues, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityWarning,
			Title:       "Potential Forced Reflows",
			Description: fmt.Sprintf("Found %d layout-reading property accesses; interleaving reads and writes forces synchronous reflows", reads),
			File:        file.Name,
		})
	}

	if calls := len(consoleRe.FindAllString(file.Content, -1)); calls > a.config.ConsoleCallLimit {
		issues = append(issues, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityInfo,
			Title:       "Console Statements",
			Description: fmt.Sprintf("Found %d console statements; strip them from production builds", calls),
			File:        file.Name,
		})
	}

	if libraries := detectLibraries(file.Content); len(libraries) > 0 {
		issues = append(issues, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityInfo,
			Title:       "Large Utility Libraries Detected",
			Description: fmt.Sprintf("Detected %s; modern DOM and language APIs cover most of their surface", strings.Join(libraries, ", ")),
			File:        file.Name,
		})
	}

	if listeners := strings.Count(file.Content, "addEventListener("); listeners > a.config.EventListenerLimit {
		issues = append(issues, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityInfo,
			Title:       "Many Event Listeners",
			Description: fmt.Sprintf("Found %d addEventListener calls; event delegation would reduce the listener count", listeners),
			File:        file.Name,
		})
	}

	intervals := strings.Count(file.Content, "setInterval(")
	cleared := strings.Count(file.Content, "clearInterval(")
	if intervals > cleared {
		issues = append(issues, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityWarning,
			Title:       "Potential Memory Leak",
			Description: fmt.Sprintf("Found %d setInterval calls but only %d clearInterval calls; uncancelled timers keep their closures alive", intervals, cleared),
			File:        file.Name,
		})
	}

	return issues
}

func detectLibraries(content string) []string {
	var libraries []string

	if strings.Contains(content, "jQuery") || strings.Contains(content, "$(") {
		libraries = append(libraries, "jQuery")
	}
	if strings.Contains(content, "lodash") || strings.Contains(content, "underscore") {
		libraries = append(libraries, "Lodash/Underscore")
	}
	if strings.Contains(content, "moment") {
		libraries = append(libraries, "Moment.js")
	}

	return libraries
}
