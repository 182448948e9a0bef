package algophase

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with phase-cache specific fields.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithGeometry tags records with the rank's geometry.
func (l *Logger) WithGeometry(g Geometry) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("local", g.Local.String()),
			slog.String("grid", g.Grid.String()),
			slog.String("coord", g.Coord.String()),
		),
	}
}

// WithMomentum tags records with a momentum.
func (l *Logger) WithMomentum(p Momentum) *Logger {
	return &Logger{
		Logger: l.Logger.With("momentum", p.String()),
	}
}
