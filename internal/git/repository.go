package git

import (
	stderrors "errors"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no git work tree encloses the directory.
var ErrNotRepository = stderrors.New("not a git repository")

// Repository is an opened work tree.
type Repository struct {
	Root string // work tree root, symlinks resolved
	Head string // HEAD commit hash; empty for a repository without commits

	repo *gogit.Repository
}

// OpenRepository finds the work tree enclosing dir, walking up to parent
// directories like the git binary does.
func OpenRepository(dir string) (*Repository, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, GitError("not a git repository").
				WithCause(ErrNotRepository).
				WithContext("path", dir).
				Build()
		}
		return nil, ClassifyGitError(err, "open", dir)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, ClassifyGitError(err, "worktree", dir)
	}
	root := wt.Filesystem.Root()
	if resolved, rerr := filepath.EvalSymlinks(root); rerr == nil {
		root = resolved
	}

	repo := &Repository{Root: root, repo: r}
	if ref, herr := r.Head(); herr == nil {
		repo.Head = ref.Hash().String()
	}
	return repo, nil
}
