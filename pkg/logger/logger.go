package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

func init() {
	// Usable before Init so package tests and tools never hit a nil logger.
	Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// Init installs the process-wide JSON logger. Production runs at Info,
// everything else at Debug.
func Init(env string) {
	level := slog.LevelDebug
	if strings.EqualFold(env, "production") {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler).With("service", "job-portal-backend")
	slog.SetDefault(Log)
}
