package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docstats/internal/docs/errors"
	"git.home.luguber.info/inful/docstats/internal/logfields"
)

// DocFile represents a discovered Markdown file below the content root.
type DocFile struct {
	Path         string // path as walked (content root joined with RelativePath)
	RelativePath string // slash-separated path relative to the content root
	Name         string // file name without extension
	Extension    string // file extension including the dot
}

// Discover walks root in lexical order and returns its Markdown files,
// skipping hidden files and hidden directories.
func Discover(root string) ([]DocFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrContentRootNotFound, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", derrors.ErrContentRootNotFound, root)
	}

	files := make([]DocFile, 0)
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root && IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsMarkdown(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}
		ext := filepath.Ext(d.Name())
		files = append(files, DocFile{
			Path:         p,
			RelativePath: filepath.ToSlash(rel),
			Name:         strings.TrimSuffix(d.Name(), ext),
			Extension:    ext,
		})
		slog.Debug("Discovered file", logfields.File(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrWalkFailed, root, err)
	}
	return files, nil
}

// SitePath returns the site-relative identifier: a leading slash plus the
// relative path with the Markdown extension removed.
func (df DocFile) SitePath() string {
	return "/" + strings.TrimSuffix(df.RelativePath, path.Ext(df.RelativePath))
}

// Read returns the file content.
func (df DocFile) Read() ([]byte, error) {
	content, err := os.ReadFile(df.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrFileReadFailed, df.Path, err)
	}
	return content, nil
}

// IsMarkdown reports whether filename has a Markdown extension.
func IsMarkdown(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown" || ext == ".mdown" || ext == ".mkd"
}

// IsHidden reports whether a file or directory name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
