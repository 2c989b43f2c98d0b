package analyzer

import (
	"fmt"
	"regexp"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

var (
	htmlElementRe = regexp.MustCompile(`(?s)<(\w+)([^>]*)>(.*?)</(\w+)>`)
	inlineStyleRe = regexp.MustCompile(`style\s*=\s*"[^"]*"`)
)

func (a *DuplicationAnalyzer) scanHTML(files []asset.SourceFile) []report.Finding {
	findings := []report.Finding{}

	skeletons := newOccurrenceSet()
	inlineStyleCount := 0

	for _, file := range files {
		for _, match := range htmlElementRe.FindAllStringSubmatch(file.Content, -1) {
			if match[1] != match[4] {
				continue
			}

			// Keep the tag skeleton, drop the inner text.
			attrs := normalizeWhitespace(match[2])
			if attrs != "" {
				attrs = " " + attrs
			}
			skeleton := "<" + match[1] + attrs + "></" + match[1] + ">"
			if len(skeleton) >= a.config.MinSkeletonLength {
				skeletons.add(skeleton)
			}
		}

		inlineStyleCount += len(inlineStyleRe.FindAllString(file.Content, -1))
	}

	for _, skeleton := range skeletons.repeated(a.config.SkeletonRepeatLimit + 1) {
		findings = append(findings, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityInfo,
			Title:       "Repeated HTML Structure",
			Description: fmt.Sprintf("The same element structure appears %d times; consider a template or component", skeleton.count),
			Evidence:    skeleton.key,
		})
	}

	if inlineStyleCount > a.config.InlineStyleLimit {
		findings = append(findings, report.Finding{
			Category:    report.CategoryHTML,
			Severity:    report.SeverityWarning,
			Title:       "Excessive Inline Styles",
			Description: fmt.Sprintf("Found %d inline style attributes; move the rules into a stylesheet", inlineStyleCount),
		})
	}

	return findings
}
