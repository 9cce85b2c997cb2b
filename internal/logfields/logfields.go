package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeySource     = "source"
	KeySlug       = "slug"
	KeyLayout     = "layout"
	KeyOutputPath = "output_path"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Source(s string) slog.Attr        { return slog.String(KeySource, s) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Layout(l string) slog.Attr        { return slog.String(KeyLayout, l) }
func OutputPath(p string) slog.Attr    { return slog.String(KeyOutputPath, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
