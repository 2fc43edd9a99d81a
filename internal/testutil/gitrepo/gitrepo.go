// Package gitrepo builds throwaway go-git repositories for tests, so history
// tests do not depend on a git binary.
package gitrepo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a temporary repository with a work tree.
type Repo struct {
	Root string
	Repo *git.Repository
	t    *testing.T
}

// New initializes a repository in a fresh temporary directory.
func New(t *testing.T) *Repo {
	t.Helper()
	root := t.TempDir()
	r, err := git.PlainInit(root, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}
	return &Repo{Root: root, Repo: r, t: t}
}

// Commit writes content to the slash-separated path rel and commits it as
// author at when. It returns the commit hash.
func (r *Repo) Commit(rel, content, author string, when time.Time) string {
	r.t.Helper()
	path := filepath.Join(r.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		r.t.Fatalf("failed to write %s: %v", path, err)
	}

	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := wt.Add(rel); err != nil {
		r.t.Fatalf("failed to stage %s: %v", rel, err)
	}
	h, err := wt.Commit("update "+rel, &git.CommitOptions{
		Author: &object.Signature{Name: author, Email: author + "@example.com", When: when},
	})
	if err != nil {
		r.t.Fatalf("failed to commit %s: %v", rel, err)
	}
	return h.String()
}

// Day returns noon UTC of the given date, which formats to the same
// YYYY-MM-DD in every time zone within twelve hours of UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
