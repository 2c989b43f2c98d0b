package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

var (
	declarationRe  = regexp.MustCompile(`([a-zA-Z-]+)\s*:\s*([^;{}]+);`)
	universalRe    = regexp.MustCompile(`\*\s*\{`)
	selectorRe     = regexp.MustCompile(`([^{}@;]+)\{`)
	vendorPrefixRe = regexp.MustCompile(`-(?:webkit|moz|ms|o)-[a-zA-Z-]+\s*:`)
)

// cssContext is one selector scope inside a stylesheet: the global
// scope or the inside of one top-level @media block.
type cssContext struct {
	label string
	body  string
}

func (a *DuplicationAnalyzer) scanCSS(files []asset.SourceFile) []report.Finding {
	findings := []report.Finding{}

	universalCount := 0
	deepSelectorCount := 0
	vendorPrefixCount := 0

	for _, file := range files {
		for _, context := range splitCSSContexts(file.Content) {
			findings = append(findings, a.checkDuplicateSelectors(file.Name, context)...)
		}

		findings = append(findings, a.checkRepeatedDeclarations(file)...)

		universalCount += len(universalRe.FindAllString(file.Content, -1))
		deepSelectorCount += a.countDeepSelectors(file.Content)
		vendorPrefixCount += len(vendorPrefixRe.FindAllString(file.Content, -1))
	}

	if universalCount > 1 {
		findings = append(findings, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityWarning,
			Title:       "Multiple Universal Selectors",
			Description: fmt.Sprintf("Found %d universal selector blocks; each forces the browser to match every element", universalCount),
		})
	}

	if deepSelectorCount > 0 {
		findings = append(findings, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityWarning,
			Title:       "Deep Selector Nesting",
			Description: fmt.Sprintf("Found %d selectors with %d or more compound parts; flatten them to reduce specificity wars", deepSelectorCount, a.config.DeepSelectorParts),
		})
	}

	if vendorPrefixCount > a.config.VendorPrefixLimit {
		findings = append(findings, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityInfo,
			Title:       "Vendor Prefixes Detected",
			Description: fmt.Sprintf("Found %d vendor-prefixed properties; an autoprefixer build step keeps these out of source", vendorPrefixCount),
		})
	}

	return findings
}

// splitCSSContexts separates the global scope from top-level @media
// blocks using brace-depth tracking. Nested @media is not handled
// beyond keeping the depth counter honest.
func splitCSSContexts(content string) []cssContext {
	var contexts []cssContext
	var global strings.Builder

	i := 0
	for i < len(content) {
		if strings.HasPrefix(content[i:], "@media") {
			braceStart := strings.IndexByte(content[i:], '{')
			if braceStart < 0 {
				global.WriteString(content[i:])
				break
			}

			label := normalizeWhitespace(content[i+len("@media") : i+braceStart])
			bodyStart := i + braceStart + 1

			depth := 1
			j := bodyStart
			for j < len(content) && depth > 0 {
				switch content[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}

			bodyEnd := j
			if depth == 0 {
				bodyEnd = j - 1
			}
			contexts = append(contexts, cssContext{label: label, body: content[bodyStart:bodyEnd]})
			i = j
			continue
		}

		global.WriteByte(content[i])
		i++
	}

	return append([]cssContext{{label: "", body: global.String()}}, contexts...)
}

func (a *DuplicationAnalyzer) checkDuplicateSelectors(fileName string, context cssContext) []report.Finding {
	findings := []report.Finding{}

	selectors := newOccurrenceSet()
	for _, match := range selectorRe.FindAllStringSubmatch(context.body, -1) {
		for _, selector := range strings.Split(match[1], ",") {
			normalized := normalizeWhitespace(selector)
			if normalized != "" {
				selectors.add(normalized)
			}
		}
	}

	for _, selector := range selectors.repeated(2) {
		description := fmt.Sprintf("Selector %q is declared %d times; merge the rule blocks", selector.key, selector.count)
		if context.label != "" {
			description = fmt.Sprintf("Selector %q is declared %d times inside @media %s; merge the rule blocks", selector.key, selector.count, context.label)
		}
		findings = append(findings, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityWarning,
			Title:       "Duplicate Selector",
			Description: description,
			File:        fileName,
		})
	}

	return findings
}

func (a *DuplicationAnalyzer) checkRepeatedDeclarations(file asset.SourceFile) []report.Finding {
	findings := []report.Finding{}

	declarations := newOccurrenceSet()
	for _, match := range declarationRe.FindAllStringSubmatch(file.Content, -1) {
		property := strings.TrimSpace(match[1])
		if strings.HasPrefix(property, "--") {
			continue
		}
		declarations.add(property + ": " + normalizeWhitespace(match[2]))
	}

	for _, declaration := range declarations.repeated(a.config.DeclarationRepeatLimit + 1) {
		findings = append(findings, report.Finding{
			Category:    report.CategoryCSS,
			Severity:    report.SeverityInfo,
			Title:       "Repeated CSS Declaration",
			Description: fmt.Sprintf("Declaration %q appears %d times; a utility class or custom property would remove the repetition", declaration.key, declaration.count),
			File:        file.Name,
		})
	}

	return findings
}

func (a *DuplicationAnalyzer) countDeepSelectors(content string) int {
	count := 0
	for _, match := range selectorRe.FindAllStringSubmatch(content, -1) {
		for _, selector := range strings.Split(match[1], ",") {
			parts := strings.Fields(selector)
			if len(parts) >= a.config.DeepSelectorParts {
				count++
			}
		}
	}
	return count
}
