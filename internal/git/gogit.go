package git

import (
	"context"
	stderrors "errors"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GoGitHistory reads history in-process. Renames are not followed: a file
// only reports commits made under its current path.
type GoGitHistory struct {
	repo *Repository
}

// NewGoGitHistory returns a History backed by repo.
func NewGoGitHistory(repo *Repository) *GoGitHistory {
	return &GoGitHistory{repo: repo}
}

// FileHistory implements History.
func (h *GoGitHistory) FileHistory(ctx context.Context, path string) ([]Entry, error) {
	rel, err := h.repo.RelPath(path)
	if err != nil {
		return nil, ClassifyGitError(err, "log", path)
	}

	iter, err := h.repo.repo.Log(&gogit.LogOptions{FileName: &rel, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			// no commits yet
			return []Entry{}, nil
		}
		return nil, ClassifyGitError(err, "log", path)
	}
	defer iter.Close()

	entries := make([]Entry, 0)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries = append(entries, Entry{
			Hash:   c.Hash.String(),
			Author: c.Author.Name,
			Date:   c.Author.When.Format(DateLayout),
		})
		return nil
	})
	if err != nil && !stderrors.Is(err, storer.ErrStop) {
		return nil, ClassifyGitError(err, "log", path)
	}
	return entries, nil
}

// RelPath converts path into the slash-separated form go-git expects,
// relative to the work tree root.
func (r *Repository) RelPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, rerr := filepath.EvalSymlinks(abs); rerr == nil {
		abs = resolved
	}
	rel, err := filepath.Rel(r.Root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
