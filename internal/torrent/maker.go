// Package torrent creates .torrent files by running the first available
// torrent creation tool from an ordered list of command templates.
package torrent

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"better/internal/command"
	"better/internal/logging"
	"better/internal/progress"
	"better/internal/report"
)

// ErrNoClient reports that none of the candidate binaries is on PATH.
var ErrNoClient = errors.New("no torrent client found")

// Option configures a Maker.
type Option func(*Maker)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec command.Executor) Option {
	return func(m *Maker) {
		if exec != nil {
			m.exec = exec
		}
	}
}

// WithLogger sets the maker logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Maker) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithProgress shows a spinner while a torrent is being created.
func WithProgress(factory *progress.Factory) Option {
	return func(m *Maker) {
		if factory != nil {
			m.progress = factory
		}
	}
}

// Maker runs torrent creation commands.
type Maker struct {
	candidates []command.Template
	exec       command.Executor
	logger     *slog.Logger
	progress   *progress.Factory

	mu       sync.Mutex
	selected *command.Template
}

// New constructs a Maker probing candidates in order.
func New(candidates []command.Template, opts ...Option) *Maker {
	m := &Maker{
		candidates: append([]command.Template(nil), candidates...),
		exec:       command.ExecExecutor{},
		logger:     logging.NewNop(),
		progress:   progress.Disabled(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Client returns the template that will be used, probing PATH if no client
// has been found yet.
func (m *Maker) Client() (command.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected != nil {
		return *m.selected, nil
	}
	for _, candidate := range m.candidates {
		if candidate.Available() == nil {
			selected := candidate
			m.selected = &selected
			return selected, nil
		}
	}
	return command.Template{}, ErrNoClient
}

// Make writes a torrent for dir to output. Failures are returned as
// report.Failure values flagged NoTorrentClient or TorrentError.
func (m *Maker) Make(ctx context.Context, dir, output, announce string) error {
	logger := logging.WithContext(ctx, m.logger)
	client, err := m.Client()
	if err != nil {
		logger.Error("no torrent client available", logging.Error(err))
		return report.Wrap(report.NoTorrentClient, err).WithPath(dir)
	}
	argv, err := client.Expand(map[string]string{
		"source":   dir,
		"torrent":  output,
		"announce": announce,
	})
	if err != nil {
		return report.Wrap(report.TorrentError, err).WithPath(dir)
	}

	logger.Info("creating torrent",
		logging.String("client", client.Binary()),
		logging.String("torrent", output),
	)
	spin := m.progress.Spinner("creating " + output)
	spin.Start()
	stderr, err := m.exec.Run(ctx, argv)
	spin.Stop()
	if err != nil {
		code := command.ExitCode(err)
		text := command.DecodeOutput(stderr)
		logger.Error("torrent creation failed",
			logging.String("client", client.Binary()),
			logging.Int("exit_code", code),
			logging.String("stderr", text),
		)
		return report.New(report.TorrentError, "%s exited with status %d: %s", client.Binary(), code, text).WithPath(dir)
	}
	return nil
}
