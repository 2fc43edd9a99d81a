package git

import (
	"context"
	stderrors "errors"
	"strings"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
)

// GitError simplifies creating a git-scoped ClassifiedError.
func GitError(message string) *errors.ErrorBuilder {
	return errors.GitError(message)
}

// ClassifyGitError translates go-git or command-line git errors into ClassifiedErrors.
func ClassifyGitError(err error, op string, path string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	l := strings.ToLower(err.Error())
	builder := GitError("git operation failed").
		WithCause(err).
		WithContext("op", op).
		WithContext("path", path)

	switch {
	case stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded):
		builder.WithCategory(errors.CategoryRuntime)
	case strings.Contains(l, "not a git repository"):
		builder.WithCause(stderrors.Join(ErrNotRepository, err))
	case strings.Contains(l, "executable file not found") || strings.Contains(l, "no such file or directory"):
		builder.WithCategory(errors.CategoryNotFound)
	case strings.Contains(l, "outside repository") || strings.Contains(l, "does not exist"):
		builder.WithCategory(errors.CategoryNotFound)
	}
	return builder.Build()
}
