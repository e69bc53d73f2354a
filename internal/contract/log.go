package contract

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

// Logger provides structured debug logging on stderr.
type Logger struct {
	*slog.Logger
}

var (
	logOnce  sync.Once
	logLevel = new(slog.LevelVar)
	logger   *Logger
)

// Log returns the process-wide logger. Debug records are dropped unless
// SetVerbose(true) was called.
func Log() *Logger {
	logOnce.Do(func() {
		logLevel.Set(slog.LevelWarn)
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String("time", a.Value.Time().Format(time.RFC3339))
				}
				return a
			},
		})
		logger = &Logger{Logger: slog.New(handler)}
	})
	return logger
}

// SetVerbose switches debug logging on or off.
func SetVerbose(verbose bool) {
	Log()
	if verbose {
		logLevel.Set(slog.LevelDebug)
		return
	}
	logLevel.Set(slog.LevelWarn)
}

// CacheLogger logs the outcome of a table cache lookup.
func (l *Logger) CacheLogger(path string, hit bool, rows int, duration time.Duration) {
	l.Debug("Table Loaded",
		"path", path,
		"cache_hit", hit,
		"rows", rows,
		"duration_ms", duration.Milliseconds(),
	)
}

// EngineLogger logs a completed weight table build.
func (l *Logger) EngineLogger(rows, series, intervals, window int, duration time.Duration) {
	l.Debug("Weights Built",
		"rows", rows,
		"series", series,
		"intervals", intervals,
		"window", window,
		"duration_ms", duration.Milliseconds(),
	)
}

// FrameLogger logs a completed per-frame command.
func (l *Logger) FrameLogger(command string, frames int, duration time.Duration) {
	l.Debug("Frames Processed",
		"command", command,
		"frames", frames,
		"duration_ms", duration.Milliseconds(),
	)
}
