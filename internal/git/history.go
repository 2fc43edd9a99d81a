package git

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docstats/internal/config"
	"git.home.luguber.info/inful/docstats/internal/logfields"
)

// DateLayout is the layout of Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one commit touching a file.
type Entry struct {
	Hash   string
	Author string
	Date   string // author date, YYYY-MM-DD
}

// History returns the commits touching a file, newest first.
type History interface {
	FileHistory(ctx context.Context, path string) ([]Entry, error)
}

// NewHistory builds the engine selected by cfg for the repository containing dir.
// The cli engine degrades to go-git when no git binary is on PATH.
func NewHistory(engine config.HistoryEngine, dir string) (History, error) {
	if engine != config.HistoryEngineGoGit {
		if CLIAvailable() {
			return NewCLIHistory(dir), nil
		}
		slog.Warn("git binary not found, falling back to go-git history (renames are not followed)",
			logfields.Engine(string(config.HistoryEngineGoGit)))
	}
	repo, err := OpenRepository(dir)
	if err != nil {
		return nil, err
	}
	return NewGoGitHistory(repo), nil
}
