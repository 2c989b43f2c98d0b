package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
)

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func TestFileScanner_ScanSources(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "index.html", "<html></html>")
	writeTestFile(t, dir, "css/style.css", "body { margin: 0; }")
	writeTestFile(t, dir, "js/app.js", "console.log('hi');")

	scanner, err := NewFileScanner(dir)
	if err != nil {
		t.Fatalf("Failed to create scanner: %v", err)
	}

	sources, err := scanner.ScanSources()
	if err != nil {
		t.Fatalf("Failed to scan sources: %v", err)
	}

	if len(sources) != 3 {
		t.Fatalf("Expected 3 sources, got %d", len(sources))
	}

	// Sorted by relative path with forward slashes.
	expected := []struct {
		name     string
		language asset.Language
	}{
		{"css/style.css", asset.LanguageCSS},
		{"index.html", asset.LanguageHTML},
		{"js/app.js", asset.LanguageJS},
	}
	for i, want := range expected {
		if sources[i].Name != want.name {
			t.Errorf("sources[%d].Name = %s, expected %s", i, sources[i].Name, want.name)
		}
		if sources[i].Language != want.language {
			t.Errorf("sources[%d].Language = %s, expected %s", i, sources[i].Language, want.language)
		}
	}

	if sources[1].Content != "<html></html>" {
		t.Errorf("Content = %q, expected the file contents", sources[1].Content)
	}
}

func TestFileScanner_SkipsBuildDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "app.js", "ok")
	writeTestFile(t, dir, "node_modules/lib/index.js", "skip")
	writeTestFile(t, dir, "dist/bundle.js", "skip")
	writeTestFile(t, dir, "build/out.js", "skip")

	scanner, err := NewFileScanner(dir)
	if err != nil {
		t.Fatalf("Failed to create scanner: %v", err)
	}

	sources, err := scanner.ScanSources()
	if err != nil {
		t.Fatalf("Failed to scan sources: %v", err)
	}

	if len(sources) != 1 || sources[0].Name != "app.js" {
		t.Errorf("Expected only app.js, got %+v", sources)
	}
}

func TestFileScanner_HonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, ".gitignore", "# generated\n*.min.js\n")
	writeTestFile(t, dir, "app.js", "ok")
	writeTestFile(t, dir, "app.min.js", "skip")

	scanner, err := NewFileScanner(dir)
	if err != nil {
		t.Fatalf("Failed to create scanner: %v", err)
	}

	sources, err := scanner.ScanSources()
	if err != nil {
		t.Fatalf("Failed to scan sources: %v", err)
	}

	for _, source := range sources {
		if source.Name == "app.min.js" {
			t.Error("Gitignored file should be skipped")
		}
	}
}

func TestFileScanner_SkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "app.js", "ok")
	writeTestFile(t, dir, "logo.png", "\x89PNG\x00\x00binary")

	scanner, err := NewFileScanner(dir)
	if err != nil {
		t.Fatalf("Failed to create scanner: %v", err)
	}

	sources, err := scanner.ScanSources()
	if err != nil {
		t.Fatalf("Failed to scan sources: %v", err)
	}

	if len(sources) != 1 || sources[0].Name != "app.js" {
		t.Errorf("Expected only the text file, got %+v", sources)
	}
}

func TestFileScanner_IncludesEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "empty.css", "")

	scanner, err := NewFileScanner(dir)
	if err != nil {
		t.Fatalf("Failed to create scanner: %v", err)
	}

	sources, err := scanner.ScanSources()
	if err != nil {
		t.Fatalf("Failed to scan sources: %v", err)
	}

	if len(sources) != 1 {
		t.Fatalf("Empty files should still be scanned, got %d sources", len(sources))
	}
	if sources[0].Content != "" {
		t.Errorf("Content = %q, expected empty", sources[0].Content)
	}
}
