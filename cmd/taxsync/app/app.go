// Package app provides the application context and dependency management
// for the taxsync CLI. It centralizes configuration, logging, and the
// construction of the sync pipeline so commands stay thin.
package app

import (
	"github.com/rs/zerolog"

	"github.com/adtaxonomy/taxsync/internal/sources/iab"
	"github.com/adtaxonomy/taxsync/internal/transport"
	"github.com/adtaxonomy/taxsync/pkg/constants"
)

// App represents the taxsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
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

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Source constructs the upstream taxonomy source from the app configuration.
// Authentication comes from the environment; a missing token degrades to
// unauthenticated access.
func (a *App) Source() *iab.Source {
	client := transport.New(transport.FromEnv(), constants.DefaultHTTPTimeout)
	return iab.New(client,
		iab.WithAPIURL(a.config.APIURL),
		iab.WithRepo(a.config.Repo),
		iab.WithDir(a.config.DirPath),
	)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
