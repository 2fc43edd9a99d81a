package stats

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
	"git.home.luguber.info/inful/docstats/internal/logfields"
)

// ErrNoTargetDirectory is returned by Publish when none of the targets' directories exist.
var ErrNoTargetDirectory = stderrors.New("no build output directory found")

// Publish copies source into every target whose parent directory already exists.
// Missing directories are skipped, not created: they mean that build output
// was not produced. A failed copy is logged and does not stop the others.
func Publish(source string, targets []string) (int, error) {
	content, err := os.ReadFile(source) // #nosec G304 -- operator configured path
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryPublish, "stats source file not found").
			WithContext("path", source).
			Build()
	}

	copied := 0
	for _, target := range targets {
		dir := filepath.Dir(target)
		info, statErr := os.Stat(dir)
		if statErr != nil || !info.IsDir() {
			slog.Debug("Skipping publish target without directory", logfields.Target(target))
			continue
		}
		if werr := os.WriteFile(target, content, 0o644); werr != nil { // #nosec G306 -- public site asset
			slog.Error("Failed to copy stats file", logfields.Target(target), logfields.Error(werr))
			continue
		}
		slog.Info("Copied stats file", logfields.Target(target))
		copied++
	}

	if copied == 0 {
		return 0, errors.WrapError(ErrNoTargetDirectory, errors.CategoryPublish, "no build output directory found, run after the site build").
			WithContext("targets", targets).
			Build()
	}
	return copied, nil
}
