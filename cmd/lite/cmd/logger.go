package cmd

import (
	"io"
	"log/slog"

	"github.com/go-drift/lite/pkg/errors"
)

// newLogger returns a text logger at level and routes reported framework
// errors through it. The returned func restores the previous handler.
func newLogger(w io.Writer, level slog.Level) (*slog.Logger, func()) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	prev := errors.SetHandler(&errors.LogHandler{
		Logger:  logger,
		Verbose: level <= slog.LevelDebug,
	})
	return logger, func() { errors.SetHandler(prev) }
}
