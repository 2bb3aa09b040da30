package logs

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger writes JSON lines with a timestamp and event fields. A disabled
// Logger discards everything, so callers never need a nil check.
type Logger struct {
	zl zerolog.Logger
	f  *os.File
}

// Disabled returns a Logger that drops every event.
func Disabled() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// New returns a Logger writing to w at the given level ("debug", "info",
// ...). An empty or unknown level means info.
func New(w io.Writer, level string) *Logger {
	return &Logger{zl: newZerolog(w, level)}
}

// Open appends to the log file at path. An empty path returns a disabled
// logger. The log never goes to the terminal, which belongs to the editor.
func Open(path, level string) (*Logger, error) {
	if path == "" {
		return Disabled(), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return Disabled(), err
	}
	return &Logger{zl: newZerolog(f, level), f: f}, nil
}

func newZerolog(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Close closes the underlying file, if any.
func (l *Logger) Close() {
	if l.f != nil {
		_ = l.f.Close()
		l.f = nil
	}
}

// Event writes an info record with the event name and fields.
// Common fields: action, cursor_row, cursor_col, lines, file.
func (l *Logger) Event(event string, fields map[string]any) {
	l.zl.Info().Str("event", event).Fields(fields).Send()
}

// Debug writes a debug record; used for high-volume events such as keys.
func (l *Logger) Debug(event string, fields map[string]any) {
	l.zl.Debug().Str("event", event).Fields(fields).Send()
}

// Error writes an error record.
func (l *Logger) Error(event string, err error, fields map[string]any) {
	l.zl.Error().Err(err).Str("event", event).Fields(fields).Send()
}
