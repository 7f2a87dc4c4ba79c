// Package logging provides leveled logging and the run log for mlwalk.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (progress and timing)
//   - A RunLog of typed run records (.mlwalk/runs.jsonl)
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is a custom slog level below Debug for per-worker detail.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Progress returns a callback suitable for ensemble progress reporting that
// logs the approximate percentage of particles dispatched. It may be called
// from several goroutines.
func Progress(logger *slog.Logger) func(dispatched, total int) {
	return func(dispatched, total int) {
		pct := 100 * float64(dispatched) / float64(total)
		logger.Info("progress", "percent", pct, "dispatched", dispatched, "total", total)
	}
}
