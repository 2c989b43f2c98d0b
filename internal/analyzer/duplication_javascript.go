package analyzer

import (
	"fmt"
	"regexp"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

var (
	functionBodyRe  = regexp.MustCompile(`function\s+[\w$]+\s*\([^)]*\)\s*\{([^{}]*)\}`)
	stringLiteralRe = regexp.MustCompile(`"([^"\\]+)"|'([^'\\]+)'`)
	loopCallbackRe  = regexp.MustCompile(`(?:for|while)\s*\([^)]*\)\s*\{[^{}]*(?:function\s*\(|=>)|\.(?:forEach|map|filter|reduce)\s*\(\s*(?:function\s*\(|\([^)]*\)\s*=>|[\w$]+\s*=>)`)
	domQueryRe      = regexp.MustCompile(`document\.(?:getElementById|getElementsByClassName|getElementsByTagName|querySelector|querySelectorAll)\([^)]*\)`)
)

func (a *DuplicationAnalyzer) scanJS(files []asset.SourceFile) ([]report.Finding, int) {
	findings := []report.Finding{}
	duplicateBlocks := 0

	bodies := newOccurrenceSet()
	literals := newOccurrenceSet()
	queries := newOccurrenceSet()
	loopCallbacks := 0

	for _, file := range files {
		for _, match := range functionBodyRe.FindAllStringSubmatch(file.Content, -1) {
			body := normalizeWhitespace(match[1])
			if len(body) >= a.config.MinFunctionBodyLength {
				bodies.add(body)
			}
		}

		for _, match := range stringLiteralRe.FindAllStringSubmatch(file.Content, -1) {
			literal := match[1]
			if literal == "" {
				literal = match[2]
			}
			if len(literal) >= a.config.MinStringLiteralLength {
				literals.add(literal)
			}
		}

		loopCallbacks += len(loopCallbackRe.FindAllString(file.Content, -1))

		for _, match := range domQueryRe.FindAllString(file.Content, -1) {
			queries.add(match)
		}
	}

	for _, body := range bodies.repeated(2) {
		duplicateBlocks++
		findings = append(findings, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityWarning,
			Title:       "Duplicate Function Body",
			Description: fmt.Sprintf("The same function body appears %d times; extract it into a shared helper", body.count),
			Evidence:    body.key,
		})
	}

	for _, literal := range literals.repeated(a.config.StringRepeatLimit + 1) {
		findings = append(findings, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityInfo,
			Title:       "Repeated String Literal",
			Description: fmt.Sprintf("String literal repeated %d times; consider a named constant", literal.count),
			Evidence:    literal.key,
		})
	}

	if loopCallbacks > 0 {
		findings = append(findings, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityWarning,
			Title:       "Anonymous Functions in Loops",
			Description: fmt.Sprintf("Found %d anonymous functions created inside loops; hoist them to avoid repeated allocations", loopCallbacks),
		})
	}

	for _, query := range queries.repeated(a.config.DOMQueryRepeatLimit + 1) {
		findings = append(findings, report.Finding{
			Category:    report.CategoryJS,
			Severity:    report.SeverityWarning,
			Title:       "Repeated DOM Query",
			Description: fmt.Sprintf("The same DOM query runs %d times; cache the result in a variable", query.count),
			Evidence:    query.key,
		})
	}

	return findings, duplicateBlocks
}
