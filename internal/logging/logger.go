package logging

import (
	"log/slog"
	"os"
)

// Setup installs the bootstrap JSON logger on stdout. Once the database is
// connected, main swaps in a MultiHandler that also feeds system_logs.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
