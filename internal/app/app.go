// Package app wires the frontend, the pipeline and the adapters together.
// It provides the Highlighter service used by every command and lifecycle
// management for the semhl daemon: create, start, stop.
package app

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/adapters/filesystem"
	"github.com/corey/semhl/internal/adapters/socket"
	"github.com/corey/semhl/internal/ports"
)

// App is the daemon: one Highlighter served over a Unix socket.
type App struct {
	ProjectRoot string
	Paths       *Paths
	Config      *Config

	Highlighter *Highlighter
	Server      *socket.Server

	fs afero.Fs
}

// Options holds initialization parameters for the App.
type Options struct {
	ProjectRoot string
	Config      *Config        // default: DefaultConfig()
	Frontend    ports.Frontend // required
	Fs          afero.Fs       // default: the host filesystem
}

// New creates an App with all dependencies wired. Does not start services.
func New(opts Options) (*App, error) {
	if opts.ProjectRoot == "" {
		return nil, errors.New("project root required")
	}
	if opts.Frontend == nil {
		return nil, errors.New("frontend required")
	}
	if opts.Config == nil {
		opts.Config = DefaultConfig()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	h := NewHighlighter(opts.Frontend, filesystem.NewSizer(opts.Fs), opts.Config.Flags)
	return &App{
		ProjectRoot: opts.ProjectRoot,
		Paths:       NewPaths(opts.ProjectRoot),
		Config:      opts.Config,
		Highlighter: h,
		Server:      socket.NewServer(h, opts.Config.SocketPath(opts.ProjectRoot)),
		fs:          opts.Fs,
	}, nil
}

// Start creates the runtime directories, records the pid and starts serving.
func (a *App) Start(ctx context.Context) error {
	if err := a.Paths.EnsureDirs(a.fs); err != nil {
		return errors.Errorf("create %s: %w", a.Paths.Root, err)
	}
	if err := a.Server.Start(ctx); err != nil {
		return errors.Errorf("start server: %w", err)
	}
	if err := a.Paths.WritePID(a.fs, os.Getpid()); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("pid file unavailable")
	}
	return nil
}

// Stop shuts the server down and removes runtime files.
func (a *App) Stop() error {
	err := a.Server.Stop()
	a.Paths.CleanEphemeral(a.fs)
	return err
}
