// Package logging builds the application logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/cadence/internal/config"
)

const logFile = "cadence/cadence.log"

// New returns a logger configured by cfg and a function that closes its
// output. An unknown level falls back to info.
func New(cfg config.LogConfig) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetLevel(ParseLevel(cfg.Level))

	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	closer := func() error { return nil }
	var out io.Writer = os.Stderr
	if cfg.File {
		path, err := xdg.StateFile(logFile)
		if err != nil {
			return nil, nil, fmt.Errorf("log path: %w", err)
		}
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f.Close
	}
	logger.SetOutput(out)

	return logger, closer, nil
}

// ParseLevel parses a logrus level name, defaulting to info.
func ParseLevel(name string) logrus.Level {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
