package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default text handler. debug toggles the
// level between info and debug.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
