package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// LogContext is the per-run logging context carried on a context.Context.
type LogContext struct {
	RunID string
	Stage string
}

type logContextKey struct{}

// NewRunID returns a fresh identifier for one pipeline run.
func NewRunID() string {
	return uuid.NewString()
}

func WithRunID(ctx context.Context, runID string) context.Context {
	lc := GetContext(ctx)
	lc.RunID = runID
	return context.WithValue(ctx, logContextKey{}, lc)
}

// WithStage tags log records with the pipeline stage (scan, fetch, write).
func WithStage(ctx context.Context, stage string) context.Context {
	lc := GetContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey{}, lc)
}

func GetContext(ctx context.Context) LogContext {
	if ctx == nil {
		return LogContext{}
	}
	lc, _ := ctx.Value(logContextKey{}).(LogContext)
	return lc
}

// ContextHandler adds run.id and stage from the record's context.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	lc := GetContext(ctx)
	if lc.RunID != "" {
		r.AddAttrs(slog.String("run.id", lc.RunID))
	}
	if lc.Stage != "" {
		r.AddAttrs(slog.String("stage", lc.Stage))
	}
	return h.Handler.Handle(ctx, r)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{h.Handler.WithGroup(name)}
}

// NewLogger builds the process logger. format is "json" or "text".
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(ContextHandler{h})
}
