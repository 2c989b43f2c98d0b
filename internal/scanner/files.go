package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bundlecheck/bundle-health-checker/internal/asset"
)

const fileCloseErrorMsg = "Error closing file %s: %v\n"

// FileScanner collects the HTML/CSS/JS assets of a directory into
// in-memory SourceFile records for the analyzers.
type FileScanner struct {
	rootPath   string
	gitIgnores []string
}

func NewFileScanner(rootPath string) (*FileScanner, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	scanner := &FileScanner{rootPath: absPath}

	if err := scanner.loadGitIgnores(); err != nil {
		return nil, fmt.Errorf("failed to load .gitignore: %w", err)
	}

	return scanner, nil
}

func (fs *FileScanner) loadGitIgnores() error {
	gitIgnorePath := filepath.Join(fs.rootPath, ".gitignore")
	file, err := os.Open(gitIgnorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			fmt.Printf("Error closing .gitignore file: %v\n", err)
		}
	}(file)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			fs.gitIgnores = append(fs.gitIgnores, line)
		}
	}

	return scanner.Err()
}

// ScanSources walks the root directory and returns every readable text
// file as a SourceFile, ordered by relative path so analysis runs are
// deterministic.
func (fs *FileScanner) ScanSources() ([]asset.SourceFile, error) {
	var sources []asset.SourceFile

	err := filepath.Walk(fs.rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if fs.shouldSkipPath(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		source, err := fs.createSourceFile(path)
		if err != nil {
			return err
		}

		if source != nil {
			sources = append(sources, *source)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})

	return sources, nil
}

func (fs *FileScanner) shouldSkipPath(path string) bool {
	base := filepath.Base(path)
	switch base {
	case ".git", "node_modules", "vendor", "dist", "build", "target":
		return true
	}
	return false
}

func (fs *FileScanner) createSourceFile(path string) (*asset.SourceFile, error) {
	relPath, err := filepath.Rel(fs.rootPath, path)
	if err != nil {
		return nil, err
	}

	if fs.shouldIgnore(relPath) {
		return nil, nil
	}

	if !fs.isTextFile(path) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	return &asset.SourceFile{
		Name:     filepath.ToSlash(relPath),
		Language: asset.DetectLanguage(relPath),
		Content:  string(content),
	}, nil
}

func (fs *FileScanner) shouldIgnore(path string) bool {
	for _, pattern := range fs.gitIgnores {
		// Handle directory patterns ending with /
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			if matched, _ := filepath.Match(dirPattern, path); matched {
				return true
			}
			if matched, _ := filepath.Match(dirPattern, filepath.Base(path)); matched {
				return true
			}
		}

		// Standard pattern matching
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}

func (fs *FileScanner) isTextFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			fmt.Printf(fileCloseErrorMsg, path, err)
		}
	}(file)

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil {
		// Empty files read as io.EOF and still count as text
		return errors.Is(err, io.EOF)
	}

	for i := 0; i < n; i++ {
		if buffer[i] == 0 {
			return false
		}
	}

	return true
}
