package transcode

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"better/internal/command"
	"better/internal/logging"
	"better/internal/progress"
	"better/internal/report"
)

// Job describes one album/format transcode.
type Job struct {
	SourceDir   string
	DestDir     string
	Files       []string
	Command     command.Template
	Extension   string
	Concurrency int
	// Label names the job on progress indicators.
	Label string
}

// Result lists the outputs a job was expected to produce and every failure
// observed while producing them.
type Result struct {
	Outputs  []string
	Failures []report.Failure
	Bytes    int64
}

// OK reports whether every output was produced.
func (r Result) OK() bool { return len(r.Failures) == 0 }

// Option configures a Pool.
type Option func(*Pool)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec command.Executor) Option {
	return func(p *Pool) {
		if exec != nil {
			p.exec = exec
		}
	}
}

// WithLogger sets the pool logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithProgress draws a progress bar per job.
func WithProgress(factory *progress.Factory) Option {
	return func(p *Pool) {
		if factory != nil {
			p.progress = factory
		}
	}
}

// Pool runs transcode jobs.
type Pool struct {
	exec     command.Executor
	logger   *slog.Logger
	progress *progress.Factory
}

// New constructs a Pool backed by real child processes.
func New(opts ...Option) *Pool {
	p := &Pool{
		exec:     command.ExecExecutor{},
		logger:   logging.NewNop(),
		progress: progress.Disabled(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OutputPath maps a source file relative to the album root onto its
// destination path.
func OutputPath(destDir, file, extension string) string {
	stem := strings.TrimSuffix(file, path.Ext(file))
	return filepath.Join(destDir, filepath.FromSlash(stem)+"."+extension)
}

// Run transcodes every file in job and blocks until all processes have
// exited. It never returns early on a process failure.
func (p *Pool) Run(ctx context.Context, job Job) Result {
	logger := logging.WithContext(ctx, p.logger)
	limit := job.Concurrency
	if limit < 1 {
		limit = 1
	}

	result := Result{Outputs: make([]string, len(job.Files))}
	failed := make(map[string]struct{})
	var mu sync.Mutex
	record := func(f report.Failure) {
		mu.Lock()
		defer mu.Unlock()
		result.Failures = append(result.Failures, f)
		failed[f.Path] = struct{}{}
	}

	bar := p.progress.Bar(len(job.Files), job.Label)
	defer bar.Close()

	var group errgroup.Group
	group.SetLimit(limit)
	for i, file := range job.Files {
		input := filepath.Join(job.SourceDir, filepath.FromSlash(file))
		output := OutputPath(job.DestDir, file, job.Extension)
		result.Outputs[i] = output
		if ctx.Err() != nil {
			continue
		}
		argv, err := job.Command.Expand(map[string]string{"input": input, "output": output})
		if err != nil {
			record(report.Wrap(report.TranscodeError, err).WithPath(output))
			bar.Add(1)
			continue
		}
		logger.Info("transcoding file",
			logging.String("file", file),
			logging.Int("remaining", len(job.Files)-i-1),
		)
		group.Go(func() error {
			defer bar.Add(1)
			stderr, err := p.exec.Run(ctx, argv)
			if err != nil {
				code := command.ExitCode(err)
				logger.Error("transcoder failed",
					logging.String("file", file),
					logging.Int("exit_code", code),
					logging.String("stderr", command.DecodeOutput(stderr)),
					logging.Error(err),
				)
				record(report.New(report.TranscodeError, "transcode %s: exit status %d", file, code).WithPath(output))
			}
			return nil
		})
	}
	_ = group.Wait()

	for _, output := range result.Outputs {
		if _, ok := failed[output]; ok {
			continue
		}
		info, err := os.Stat(output)
		switch {
		case err != nil:
			logger.Error("transcode output missing", logging.String("path", output))
			result.Failures = append(result.Failures, report.New(report.TranscodeError, "output missing: %w", err).WithPath(output))
		case info.Size() == 0:
			logger.Error("transcode output empty", logging.String("path", output))
			result.Failures = append(result.Failures, report.New(report.TranscodeError, "output %s is empty", filepath.Base(output)).WithPath(output))
		default:
			result.Bytes += info.Size()
		}
	}
	return result
}
