package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging points the global logger at the log file, or at stderr when there is none. The
// returned closer closes the file.
func (c *Config) SetupLogging() (io.Closer, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if c.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if c.Log == "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open the log file %q", c.Log)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}
