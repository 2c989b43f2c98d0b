package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
	"github.com/bundlecheck/bundle-health-checker/internal/config"
	"github.com/bundlecheck/bundle-health-checker/internal/report"
)

// DuplicationAnalyzer scans for repeated code patterns per language.
// Detection is deliberately regex-based, not a real parser: malformed
// input degrades match quality silently instead of failing.
type DuplicationAnalyzer struct {
	config *config.DuplicationConfig
}

func NewDuplicationAnalyzer(cfg *config.DuplicationConfig) *DuplicationAnalyzer {
	return &DuplicationAnalyzer{config: cfg}
}

func (a *DuplicationAnalyzer) Analyze(files []asset.SourceFile) report.DuplicationReport {
	duplicationReport := report.DuplicationReport{
		Findings: []report.Finding{},
	}

	groups := asset.GroupByLanguage(files)

	if jsFiles := groups[asset.LanguageJS]; len(jsFiles) > 0 {
		findings, blocks := a.scanJS(jsFiles)
		duplicationReport.Findings = append(duplicationReport.Findings, findings...)
		duplicationReport.DuplicateBlockCount += blocks
	}

	if cssFiles := groups[asset.LanguageCSS]; len(cssFiles) > 0 {
		duplicationReport.Findings = append(duplicationReport.Findings, a.scanCSS(cssFiles)...)
	}

	if htmlFiles := groups[asset.LanguageHTML]; len(htmlFiles) > 0 {
		duplicationReport.Findings = append(duplicationReport.Findings, a.scanHTML(htmlFiles)...)
	}

	report.SortFindings(duplicationReport.Findings)

	return duplicationReport
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// occurrence tracks how often a normalized pattern was seen and the
// order in which it first appeared, so repeated runs report findings
// in a stable order.
type occurrence struct {
	count int
	first int
}

type occurrenceSet struct {
	seen map[string]*occurrence
	next int
}

func newOccurrenceSet() *occurrenceSet {
	return &occurrenceSet{seen: make(map[string]*occurrence)}
}

func (o *occurrenceSet) add(key string) {
	if entry, ok := o.seen[key]; ok {
		entry.count++
		return
	}
	o.seen[key] = &occurrence{count: 1, first: o.next}
	o.next++
}

// repeated returns the distinct keys seen at least min times, in first
// occurrence order.
func (o *occurrenceSet) repeated(min int) []repeatedKey {
	var keys []repeatedKey
	for key, entry := range o.seen {
		if entry.count >= min {
			keys = append(keys, repeatedKey{key: key, count: entry.count, first: entry.first})
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].first < keys[j].first
	})
	return keys
}

type repeatedKey struct {
	key   string
	count int
	first int
}
