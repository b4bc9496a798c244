// Package logging sets up the process-wide zerolog logger. The TUI
// owns the terminal, so logs go to a file in the data directory
// instead of stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup opens qlock.log in dir and routes the global logger to it.
// The returned closer flushes and closes the file.
func Setup(dir, level string) (func() error, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "qlock.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f.Close, nil
}
