package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// NewFileLogger returns an slog logger backed by charmbracelet/log writing
// to path, so log output never lands on the terminal the UI draws on.
func NewFileLogger(path string, verbose bool) (*slog.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "movieDeck",
	})
	handler.SetLevel(log.InfoLevel)
	if verbose {
		handler.SetLevel(log.DebugLevel)
	}
	return slog.New(handler), f, nil
}
