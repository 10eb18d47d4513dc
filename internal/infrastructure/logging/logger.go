package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nerrad567/gray-logic-textinput/internal/infrastructure/config"
)

// serviceName is attached to every entry as the "service" field.
const serviceName = "textinputd"

// Logger is the slog logger shared by the daemon's components. Every
// entry carries the service name and build version; Component adds the
// emitting package. Safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New builds the daemon logger from the logging section of the
// configuration.
//
// Parameters:
//   - cfg: Level, format ("json" or "text") and output ("stdout" or "stderr")
//   - version: Build version stamped on every entry
//
// Returns:
//   - *Logger: Logger writing to the configured stream
func New(cfg config.LoggingConfig, version string) *Logger {
	return &Logger{Logger: slog.New(newHandler(outputFor(cfg.Output), cfg, version))}
}

// Default is the logger used until the configuration has been read:
// JSON on stdout at info level.
func Default() *Logger {
	return New(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}, "dev")
}

// Component returns a child logger tagged with the emitting package,
// e.g. logger.Component("mqtt").
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

// With returns a child logger carrying args on every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func newHandler(w io.Writer, cfg config.LoggingConfig, version string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return h.WithAttrs([]slog.Attr{
		slog.String("service", serviceName),
		slog.String("version", version),
	})
}

// outputFor maps the configured output name to a stream. Anything but
// "stderr" writes to stdout.
func outputFor(name string) io.Writer {
	if strings.EqualFold(name, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}

// parseLevel maps debug, warn (or warning) and error to their slog
// levels. Everything else is info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
