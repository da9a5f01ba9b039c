// Package app provides the application context and dependency
// management for the checkstate CLI: configuration loading, logger
// setup, and top-level error handling.
package app

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/checkstate/pkg/errors"
)

// App represents the checkstate application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Exit codes per error family, so scripts can tell a bad configuration
// from an unreachable settings repository.
const (
	exitFailure   = 1
	exitConfig    = 2
	exitTransport = 3
	exitAmbiguous = 10
)

// ExitOnError prints an error and exits with a code reflecting the
// error family. Meant for top-level error handling in main.go.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	//nolint:errcheck // Ignoring write error since we're exiting anyway
	_, _ = os.Stderr.WriteString(err.Error() + "\n")

	var configErr *errors.ConfigError
	var storeErr *errors.StoreError
	var transportErr *errors.TransportError
	var ambiguousErr *AmbiguousChoiceError
	switch {
	case errors.As(err, &ambiguousErr):
		os.Exit(exitAmbiguous)
	case errors.As(err, &configErr), errors.As(err, &storeErr):
		os.Exit(exitConfig)
	case errors.As(err, &transportErr):
		os.Exit(exitTransport)
	default:
		os.Exit(exitFailure)
	}
}
