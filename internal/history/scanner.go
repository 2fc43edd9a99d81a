package history

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docstats/internal/docs"
	"git.home.luguber.info/inful/docstats/internal/git"
	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/metrics"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

// Scanner turns the Markdown files below a content root into DocumentRecords.
type Scanner struct {
	history  git.History
	recorder metrics.Recorder
	title    func(docs.DocFile) string
}

// NewScanner returns a Scanner reading history from h.
func NewScanner(h git.History) *Scanner {
	return &Scanner{history: h, recorder: metrics.NoopRecorder{}, title: docs.ResolveTitle}
}

// WithRecorder sets the metrics recorder.
func (s *Scanner) WithRecorder(r metrics.Recorder) *Scanner {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Scan returns one record per Markdown file with history, in discovery order.
// An unreadable root yields an empty slice; a file whose history cannot be
// read, or that has none, is skipped.
func (s *Scanner) Scan(ctx context.Context, root string) []stats.DocumentRecord {
	start := time.Now()
	defer func() { s.recorder.ObserveStageDuration("scan", time.Since(start)) }()

	files, err := docs.Discover(root)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to enumerate content files", logfields.Path(root), logfields.Error(err))
		return []stats.DocumentRecord{}
	}

	records := make([]stats.DocumentRecord, 0, len(files))
	for _, f := range files {
		if ctx.Err() != nil {
			slog.WarnContext(ctx, "Scan interrupted", logfields.Count(len(records)), logfields.Error(ctx.Err()))
			break
		}

		entries, herr := s.history.FileHistory(ctx, f.Path)
		if herr != nil {
			slog.WarnContext(ctx, "Skipping file: history unavailable", logfields.File(f.RelativePath), logfields.Error(herr))
			s.recorder.IncDocumentResult(metrics.ResultFailed)
			continue
		}
		rec, ok := Fold(entries)
		if !ok {
			slog.DebugContext(ctx, "Skipping file without history", logfields.File(f.RelativePath))
			s.recorder.IncDocumentResult(metrics.ResultSkipped)
			continue
		}
		rec.Path = f.SitePath()
		rec.Title = s.title(f)

		records = append(records, rec)
		s.recorder.IncDocumentResult(metrics.ResultSuccess)
	}

	slog.InfoContext(ctx, "Scanned content files", logfields.Path(root), logfields.Count(len(records)),
		slog.Int("discovered", len(files)))
	return records
}

// Fold reduces a file's history to the date and count fields of a record.
// createdAt and lastModified are the minimum and maximum entry dates, so
// out-of-order author dates never produce createdAt > lastModified. Author
// and firstCommit come from the entry carrying the minimum date; among equal
// dates the one listed last (oldest in log order) wins.
func Fold(entries []git.Entry) (stats.DocumentRecord, bool) {
	if len(entries) == 0 {
		return stats.DocumentRecord{}, false
	}

	first, last := entries[0], entries[0]
	for _, e := range entries[1:] {
		if e.Date <= first.Date {
			first = e
		}
		if e.Date > last.Date {
			last = e
		}
	}
	return stats.DocumentRecord{
		CreatedAt:         first.Date,
		LastModified:      last.Date,
		ModificationCount: len(entries),
		Author:            first.Author,
		FirstCommit:       first.Hash,
		LastCommit:        last.Hash,
	}, true
}
