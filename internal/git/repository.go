package git

import (
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// Metadata carries the branch and commit of the analyzed directory,
// used only to annotate report headers. Directories that are not git
// repositories simply get empty metadata.
type Metadata struct {
	Branch string
	Commit string
}

type Repository struct {
	repo *gogit.Repository
	path string
}

func OpenRepository(path string) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	repo, err := gogit.PlainOpen(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", absPath, err)
	}

	return &Repository{
		repo: repo,
		path: absPath,
	}, nil
}

func IsGitRepository(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	gitDir := filepath.Join(absPath, ".git")
	if info, err := os.Stat(gitDir); err == nil {
		return info.IsDir()
	}

	_, err = gogit.PlainOpen(absPath)
	return err == nil
}

func (r *Repository) GetPath() string {
	return r.path
}

func (r *Repository) GetCurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}

	return "HEAD", nil
}

func (r *Repository) GetCurrentCommit() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// CollectMetadata resolves branch and commit for a directory, falling
// back to empty values when the directory is not a repository or the
// lookups fail.
func CollectMetadata(path string) Metadata {
	if !IsGitRepository(path) {
		return Metadata{}
	}

	repo, err := OpenRepository(path)
	if err != nil {
		return Metadata{}
	}

	metadata := Metadata{}
	if branch, err := repo.GetCurrentBranch(); err == nil {
		metadata.Branch = branch
	}
	if commit, err := repo.GetCurrentCommit(); err == nil {
		metadata.Commit = commit
	}

	return metadata
}
