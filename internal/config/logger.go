package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// SetupLogger configures the global logger. "json" writes slog JSON records,
// anything else uses the charmbracelet text handler.
func SetupLogger(level, format string, w io.Writer) *slog.Logger {
	logLevel := parseLevel(level)

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: logLevel == slog.LevelDebug, // Add source file/line in debug mode
		})
	} else {
		handler = log.NewWithOptions(w, log.Options{
			Level:           log.Level(logLevel),
			ReportTimestamp: true,
			ReportCaller:    logLevel == slog.LevelDebug,
			TimeFormat:      "15:04:05",
			Prefix:          "pickflick",
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
