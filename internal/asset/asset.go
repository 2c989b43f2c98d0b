package asset

import (
	"path/filepath"
	"strings"
)

type Language string

const (
	LanguageHTML    Language = "html"
	LanguageCSS     Language = "css"
	LanguageJS      Language = "js"
	LanguageUnknown Language = "unknown"
)

// SourceFile is the common input unit for every analyzer: an in-memory
// file with a language tag. Analyzers treat it as read-only.
type SourceFile struct {
	Name     string   `json:"name"`
	Language Language `json:"language"`
	Content  string   `json:"content"`
}

func DetectLanguage(fileName string) Language {
	ext := strings.ToLower(filepath.Ext(fileName))

	switch ext {
	case ".html", ".htm":
		return LanguageHTML
	case ".css":
		return LanguageCSS
	case ".js", ".mjs", ".cjs":
		return LanguageJS
	default:
		return LanguageUnknown
	}
}

// GroupByLanguage preserves the original file order within each group.
func GroupByLanguage(files []SourceFile) map[Language][]SourceFile {
	groups := make(map[Language][]SourceFile)
	for _, file := range files {
		groups[file.Language] = append(groups[file.Language], file)
	}
	return groups
}

func FilterByLanguage(files []SourceFile, language Language) []SourceFile {
	var filtered []SourceFile
	for _, file := range files {
		if file.Language == language {
			filtered = append(filtered, file)
		}
	}
	return filtered
}
