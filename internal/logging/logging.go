// Package logging configures the global zerolog logger. The TUI owns
// stdout, so debug logs go to a file under the config directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/osmiq/osmiq/internal/config"
)

// Setup initializes the global logger. With debug disabled all logging
// is turned off; with it enabled, events are written to osmiq.log in
// the config directory. Returns a cleanup function.
func Setup(debug bool) (func(), error) {
	if !debug {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return func() {}, nil
	}

	dir, err := config.EnsureConfigDir()
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "osmiq.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()

	log.Debug().Msg("logging started")
	return func() { _ = f.Close() }, nil
}
