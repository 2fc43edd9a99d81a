package config

import "git.home.luguber.info/inful/docstats/internal/foundation/normalization"

// HistoryEngine selects the implementation used to read per-file git history.
type HistoryEngine string

const (
	// HistoryEngineCLI shells out to the git binary and follows renames.
	HistoryEngineCLI HistoryEngine = "cli"
	// HistoryEngineGoGit reads history in-process and does not follow renames.
	HistoryEngineGoGit HistoryEngine = "gogit"
)

var historyEngineNormalizer = normalization.NewNormalizer(map[string]HistoryEngine{
	"cli":    HistoryEngineCLI,
	"git":    HistoryEngineCLI,
	"gogit":  HistoryEngineGoGit,
	"go-git": HistoryEngineGoGit,
}, HistoryEngineCLI)

// NormalizeHistoryEngine returns the engine for raw, or an error listing the valid options.
func NormalizeHistoryEngine(raw string) (HistoryEngine, error) {
	return historyEngineNormalizer.NormalizeWithError(raw)
}
