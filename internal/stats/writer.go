package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
)

// Writer persists the artifact at Path.
type Writer struct {
	Path string
}

// NewWriter returns a Writer for path.
func NewWriter(path string) *Writer {
	return &Writer{Path: path}
}

// Write creates missing parent directories and replaces the artifact atomically.
func (w *Writer) Write(doc StatsDocument) error {
	if doc.Documents == nil {
		doc.Documents = []DocumentRecord{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode stats document").Build()
	}

	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).
			Build()
	}

	// hidden and unique per write
	f, err := os.CreateTemp(dir, ".stats-*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temporary stats file").
			WithContext("path", dir).
			Build()
	}
	tmp := f.Name()
	_, werr := f.Write(data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(tmp, 0o644) // #nosec G302 -- served as a public site asset
	}
	if werr != nil {
		_ = os.Remove(tmp)
		return errors.WrapError(werr, errors.CategoryFileSystem, "failed to write temporary stats file").
			WithContext("path", tmp).
			Build()
	}
	if err := os.Rename(tmp, w.Path); err != nil {
		_ = os.Remove(tmp)
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace stats file").
			WithContext("path", w.Path).
			Build()
	}
	return nil
}

// WriteMinimal writes the fallback artifact and returns it.
func (w *Writer) WriteMinimal(now time.Time) (StatsDocument, error) {
	doc := MinimalDocument(now)
	return doc, w.Write(doc)
}

// Read loads a previously written artifact.
func Read(path string) (StatsDocument, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator configured path
	if err != nil {
		return StatsDocument{}, errors.WrapError(err, errors.CategoryNotFound, "failed to read stats file").
			WithContext("path", path).
			Build()
	}
	var doc StatsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return StatsDocument{}, errors.WrapError(err, errors.CategoryValidation, "invalid stats file").
			WithContext("path", path).
			Build()
	}
	if doc.Documents == nil {
		doc.Documents = []DocumentRecord{}
	}
	return doc, nil
}
