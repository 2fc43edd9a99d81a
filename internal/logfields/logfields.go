package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTitle      = "title"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeySiteURL    = "site_url"
	KeyQuery      = "query"
	KeyStatus     = "status"
	KeyAttempt    = "attempt"
	KeyEngine     = "engine"
	KeyTarget     = "target"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func Title(t string) slog.Attr { return slog.String(KeyTitle, t) }
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func SiteURL(u string) slog.Attr { return slog.String(KeySiteURL, u) }
func Query(q string) slog.Attr { return slog.String(KeyQuery, q) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func Attempt(n int) slog.Attr { return slog.Int(KeyAttempt, n) }
func Engine(e string) slog.Attr { return slog.String(KeyEngine, e) }
func Target(t string) slog.Attr { return slog.String(KeyTarget, t) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
