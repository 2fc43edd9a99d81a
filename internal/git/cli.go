package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	fieldSep  = "\x1f"
	logFormat = "--format=%H%x1f%an%x1f%ad"
)

// CLIHistory reads history with `git log --follow`, one subprocess per file.
type CLIHistory struct {
	dir    string
	binary string
}

// NewCLIHistory returns a CLIHistory running git inside dir.
func NewCLIHistory(dir string) *CLIHistory {
	return &CLIHistory{dir: dir, binary: "git"}
}

// CLIAvailable reports whether a git binary is on PATH.
func CLIAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// FileHistory implements History.
func (h *CLIHistory) FileHistory(ctx context.Context, path string) ([]Entry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ClassifyGitError(err, "log", path)
	}
	args := []string{"-C", h.dir, "log", "--follow", logFormat, "--date=short", "--", abs}

	// #nosec G204 -- invoking git with fixed binary name and controlled args
	cmd := exec.CommandContext(ctx, h.binary, args...)
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if stderrors.As(err, &ee) {
			err = fmt.Errorf("git log failed: %w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, ClassifyGitError(err, "log", path)
	}
	return parseLog(out)
}

// parseLog parses `%H<US>%an<US>%ad` records, one per line.
func parseLog(out []byte) ([]Entry, error) {
	entries := make([]Entry, 0)
	for _, line := range bytes.Split(out, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		parts := strings.Split(string(line), fieldSep)
		if len(parts) != 3 {
			return nil, GitError("unexpected git log record").
				WithContext("record", string(line)).
				Build()
		}
		entries = append(entries, Entry{
			Hash:   strings.TrimSpace(parts[0]),
			Author: parts[1],
			Date:   strings.TrimSpace(parts[2]),
		})
	}
	return entries, nil
}
