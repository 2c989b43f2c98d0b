package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

var (
	attrPrefixSelectorRe = regexp.MustCompile(`\[[\w-]+\^=`)
	nthChildRe           = regexp.MustCompile(`:nth-child\(`)
	cssImportRe          = regexp.MustCompile(`@import\b`)
	keyframesRe          = regexp.MustCompile(`@keyframes[^{]*\{`)
	layoutPropertyRe     = regexp.MustCompile(`\b(?:width|height|top|left)\s*:`)
)

func (a *PerformanceAnalyzer) checkCSS(file asset.SourceFile) []report.Finding {
	issues := []report.Finding{}

	expensive := len(universalRe.FindAllString(file.Content, -1)) +
		len(attrPrefixSelectorRe.FindAllString(file.Content, -1)) +
		len(nthChildRe.FindAllString(file.Content, -1))
	if expensive > a.config.ExpensiveSelectorLimit {
		issues = append(issues, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityWarning,
			Title:       "Expensive CSS Selectors",
			Description: fmt.Sprintf("Found %d selectors that are costly to match (universal, attribute-prefix, :nth-child)", expensive),
			File:        file.Name,
		})
	}

	if imports := len(cssImportRe.FindAllString(file.Content, -1)); imports > 0 {
		issues = append(issues, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityError,
			Title:       "CSS @import Usage",
			Description: fmt.Sprintf("Found %d @import statements; they serialize stylesheet downloads", imports),
			File:        file.Name,
		})
	}

	if rules := strings.Count(file.Content, "{"); rules > a.config.MaxCSSRules {
		issues = append(issues, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityWarning,
			Title:       "Large CSS File",
			Description: fmt.Sprintf("Stylesheet contains %d rule blocks, above the %d guideline", rules, a.config.MaxCSSRules),
			File:        file.Name,
		})
	}

	if animations := a.countLayoutAnimations(file.Content); animations > 0 {
		issues = append(issues, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityInfo,
			Title:       "Layout-Triggering Animations",
			Description: fmt.Sprintf("Found %d @keyframes animating width, height, top or left; animate transform and opacity instead", animations),
			File:        file.Name,
		})
	}

	return issues
}

// countLayoutAnimations counts @keyframes blocks whose body touches a
// layout-affecting property. Transform/opacity-only keyframes pass.
func (a *PerformanceAnalyzer) countLayoutAnimations(content string) int {
	count := 0

	for _, loc := range keyframesRe.FindAllStringIndex(content, -1) {
		body := matchBraceBlock(content, loc[1]-1)
		if layoutPropertyRe.MatchString(body) {
			count++
		}
	}

	return count
}

// matchBraceBlock returns the text between the brace at openIdx and
// its matching close brace, using simple depth tracking.
func matchBraceBlock(content string, openIdx int) string {
	depth := 0
	for i := openIdx; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[openIdx+1 : i]
			}
		}
	}
	return content[openIdx+1:]
}
