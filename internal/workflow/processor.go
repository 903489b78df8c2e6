package workflow

import (
	"errors"
	"fmt"
	"log/slog"

	"better/internal/command"
	"better/internal/config"
	"better/internal/logging"
	"better/internal/naming"
	"better/internal/progress"
	"better/internal/torrent"
	"better/internal/transcode"
)

// Target is a parsed format definition.
type Target struct {
	Codec     string
	Command   command.Template
	Extension string
}

// Processor processes albums with one set of Settings.
type Processor struct {
	settings Settings
	targets  map[string]Target
	naming   *naming.Policy
	pool     *transcode.Pool
	torrents *torrent.Maker
	logger   *slog.Logger
}

// Option configures a Processor.
type Option func(*processorOptions)

type processorOptions struct {
	exec     command.Executor
	logger   *slog.Logger
	progress *progress.Factory
}

// WithExecutor runs transcoders and torrent clients through exec.
func WithExecutor(exec command.Executor) Option {
	return func(o *processorOptions) {
		o.exec = exec
	}
}

// WithLogger sets the processor logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *processorOptions) {
		o.logger = logger
	}
}

// WithProgress draws progress bars and spinners through factory.
func WithProgress(factory *progress.Factory) Option {
	return func(o *processorOptions) {
		o.progress = factory
	}
}

// NewProcessor builds a Processor from settings and the format, naming and
// torrent definitions in cfg.
func NewProcessor(settings Settings, cfg *config.Config, opts ...Option) (*Processor, error) {
	if cfg == nil {
		return nil, errors.New("processor requires config")
	}
	options := processorOptions{logger: logging.NewNop(), progress: progress.Disabled()}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	targets := make(map[string]Target, len(cfg.Formats))
	for codec, format := range cfg.Formats {
		tmpl, err := command.Parse(format.Command)
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", codec, err)
		}
		targets[codec] = Target{Codec: codec, Command: tmpl, Extension: format.Extension}
	}

	candidates := make([]command.Template, 0, len(cfg.Torrent.Commands))
	for _, raw := range cfg.Torrent.Commands {
		tmpl, err := command.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("torrent command: %w", err)
		}
		candidates = append(candidates, tmpl)
	}

	policy, err := naming.New(cfg.Transcode.CodecTags, cfg.Transcode.IgnoredPrefixes)
	if err != nil {
		return nil, fmt.Errorf("naming policy: %w", err)
	}

	poolOpts := []transcode.Option{
		transcode.WithLogger(logging.NewComponentLogger(logger, "transcode")),
		transcode.WithProgress(options.progress),
	}
	makerOpts := []torrent.Option{
		torrent.WithLogger(logging.NewComponentLogger(logger, "torrent")),
		torrent.WithProgress(options.progress),
	}
	if options.exec != nil {
		poolOpts = append(poolOpts, transcode.WithExecutor(options.exec))
		makerOpts = append(makerOpts, torrent.WithExecutor(options.exec))
	}

	return &Processor{
		settings: settings,
		targets:  targets,
		naming:   policy,
		pool:     transcode.New(poolOpts...),
		torrents: torrent.New(candidates, makerOpts...),
		logger:   logging.NewComponentLogger(logger, "workflow"),
	}, nil
}

// Settings returns the settings the processor was built with.
func (p *Processor) Settings() Settings {
	return p.settings
}
