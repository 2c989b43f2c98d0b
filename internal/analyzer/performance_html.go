package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

var (
	scriptElementRe = regexp.MustCompile(`(?s)<script([^>]*)>(.*?)</script>`)
	linkTagRe       = regexp.MustCompile(`<link[^>]*>`)
	tagOpenRe       = regexp.MustCompile(`<[a-zA-Z][\w-]*`)
	styleAttrRe     = regexp.MustCompile(`style\s*=\s*"([^"]*)"`)
)

func (a *PerformanceAnalyzer) checkHTML(file asset.SourceFile) []report.Finding {
	issues := []report.Finding{}

	renderBlocking := 0
	syncExternal := 0
	longInline := 0

	for _, match := range scriptElementRe.FindAllStringSubmatch(file.Content, -1) {
		attrs := match[1]
		body := match[2]

		deferred := strings.Contains(attrs, "async") || strings.Contains(attrs, "defer")

		if strings.Contains(attrs, "src") {
			if !deferred {
				syncExternal++
			}
			continue
		}

		if !deferred {
			renderBlocking++
		}
		if len(body) > a.config.LongInlineScriptLength {
			longInline++
		}
	}

	if renderBlocking > 0 {
		issues = append(issues, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityError,
			Title:       "Render-Blocking Scripts",
			Description: fmt.Sprintf("Found %d inline script blocks without async or defer; they stall HTML parsing", renderBlocking),
			File:        file.Name,
		})
	}

	if syncExternal > 0 {
		issues = append(issues, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityWarning,
			Title:       "Synchronous External Scripts",
			Description: fmt.Sprintf("Found %d external scripts loaded synchronously; add async or defer", syncExternal),
			File:        file.Name,
		})
	}

	longStyleAttrs := 0
	for _, match := range styleAttrRe.FindAllStringSubmatch(file.Content, -1) {
		if len(match[1]) >= a.config.LongInlineStyleLength {
			longStyleAttrs++
		}
	}
	if longStyleAttrs > a.config.InlineStyleCountLimit {
		issues = append(issues, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityWarning,
			Title:       "Excessive Inline Styles",
			Description: fmt.Sprintf("Found %d long inline style attributes; extract them into a stylesheet", longStyleAttrs),
			File:        file.Name,
		})
	}

	if tagCount := len(tagOpenRe.FindAllString(file.Content, -1)); tagCount > a.config.MaxDOMNodes {
		issues = append(issues, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityWarning,
			Title:       "Large DOM Size",
			Description: fmt.Sprintf("Document opens %d tags, above the %d guideline; large DOMs slow style and layout work", tagCount, a.config.MaxDOMNodes),
			File:        file.Name,
		})
	}

	// Substring check only, no tag-context awareness.
	if !strings.Contains(file.Content, "viewport") {
		issues = append(issues, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityInfo,
			Title:       "Missing Viewport Meta Tag",
			Description: "No viewport meta tag found; mobile browsers will fall back to desktop layout",
			File:        file.Name,
		})
	}

	if longInline > 0 {
		issues = append(issues, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityWarning,
			Title:       "Long Inline Scripts",
			Description: fmt.Sprintf("Found %d inline scripts over %d characters; move them into external files so they can be cached", longInline, a.config.LongInlineScriptLength),
			File:        file.Name,
		})
	}

	blockingCSS := 0
	for _, tag := range linkTagRe.FindAllString(file.Content, -1) {
		if strings.Contains(tag, "stylesheet") && !strings.Contains(tag, "media=") {
			blockingCSS++
		}
	}
	if blockingCSS > a.config.RenderBlockingCSSLimit {
		issues = append(issues, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityWarning,
			Title:       "Multiple Render-Blocking CSS Files",
			Description: fmt.Sprintf("Found %d stylesheet links without a media attribute; each blocks first paint", blockingCSS),
			File:        file.Name,
		})
	}

	return issues
}
