// Package diag provides the structured event logger and the error
// classification shared by the shell and the CLI.
package diag

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Logger writes one event per line. Every event carries the run id, the
// component and a stage of start, finish or error.
type Logger struct {
	log   *slog.Logger
	runID string
}

// NewLogger builds a logger writing to w. format is "json" or "text";
// level is debug, info, warn or error.
func NewLogger(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	runID := uuid.NewString()
	return &Logger{log: slog.New(h).With("run_id", runID), runID: runID}
}

// Nop returns a logger that drops everything.
func Nop() *Logger {
	return NewLogger(io.Discard, "error", "json")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) RunID() string { return l.runID }

// Start records a start event and returns a timer for the matching finish.
func (l *Logger) Start(comp, msg string, attrs ...any) *Timer {
	l.log.Info(msg, append([]any{"comp", comp, "stage", "start"}, attrs...)...)
	return &Timer{l: l, comp: comp, t0: time.Now()}
}

// Error records err with its classification code.
func (l *Logger) Error(comp string, err error, attrs ...any) {
	if err == nil {
		return
	}
	l.log.Error(err.Error(), append([]any{"comp", comp, "stage", "error", "code", string(Classify(err))}, attrs...)...)
}

func (l *Logger) Warn(comp, msg string, attrs ...any) {
	l.log.Warn(msg, append([]any{"comp", comp}, attrs...)...)
}

func (l *Logger) Debug(comp, msg string, attrs ...any) {
	l.log.Debug(msg, append([]any{"comp", comp}, attrs...)...)
}

// Timer measures a start to finish span.
type Timer struct {
	l    *Logger
	comp string
	t0   time.Time
}

// Finish records a finish event with the elapsed time and an item count.
func (t *Timer) Finish(msg string, count int, attrs ...any) {
	if t == nil || t.l == nil {
		return
	}
	base := []any{"comp", t.comp, "stage", "finish", "dur_ms", time.Since(t.t0).Milliseconds(), "count", count}
	t.l.log.Info(msg, append(base, attrs...)...)
}

// Fail records an error event carrying the elapsed time.
func (t *Timer) Fail(err error) {
	if t == nil || t.l == nil {
		return
	}
	t.l.Error(t.comp, err, "dur_ms", time.Since(t.t0).Milliseconds())
}
