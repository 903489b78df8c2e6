package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"better/internal/config"
	"better/internal/logging"
	"better/internal/preflight"
	"better/internal/progress"
	"better/internal/report"
	"better/internal/workflow"
)

func runBatch(cmd *cobra.Command, ctx *commandContext, overrides workflow.Overrides, albums []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}
	for _, p := range []*string{&overrides.TorrentOutput, &overrides.TranscodeOutput} {
		if *p, err = config.ExpandPath(*p); err != nil {
			return err
		}
	}
	settings := workflow.NewSettings(cfg, overrides)

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logging.WithRunID(runCtx, uuid.NewString())
	batchLogger := logging.WithContext(runCtx, logger)

	var batch report.Report
	for _, check := range []preflight.Result{
		preflight.CheckDirectoryAccess("Torrent output", settings.TorrentOutput),
		preflight.CheckDirectoryAccess("Transcode output", settings.TranscodeOutput),
	} {
		if check.Passed {
			continue
		}
		batchLogger.Error("output directory unusable", logging.String("check", check.Name), logging.String("detail", check.Detail))
		batch.Add(report.New(report.NotDirectory, "%s: %s", check.Name, check.Detail).WithPath(check.Path))
	}
	if !batch.Empty() {
		return &exitError{code: batch.ExitCode()}
	}

	processor, err := workflow.NewProcessor(settings, cfg,
		workflow.WithLogger(logger),
		workflow.WithProgress(progress.New(cmd.ErrOrStderr(), isTerminal(cmd.ErrOrStderr()))),
	)
	if err != nil {
		return err
	}
	if settings.Transcode {
		release, err := processor.Lock(runCtx)
		if err != nil {
			return err
		}
		defer release()
	}

	batchLogger.Info("batch started",
		logging.Int("albums", len(albums)),
		logging.Bool("transcode", settings.Transcode),
		logging.Bool("torrent", settings.Torrent),
		logging.Int("concurrency", settings.Concurrency),
	)
	results := make([]workflow.AlbumResult, 0, len(albums))
	for _, album := range albums {
		if runCtx.Err() != nil {
			batchLogger.Warn("batch interrupted", logging.Int("skipped", len(albums)-len(results)))
			break
		}
		result := processor.ProcessAlbum(runCtx, album)
		batch.Add(result.Failures...)
		results = append(results, result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(results, shouldColorize(cmd.OutOrStdout())))
	if runCtx.Err() != nil {
		return runCtx.Err()
	}
	if !batch.Empty() {
		return &exitError{code: batch.ExitCode()}
	}
	return nil
}
