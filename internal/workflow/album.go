package workflow

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"better/internal/album"
	"better/internal/fileutil"
	"better/internal/logging"
	"better/internal/policy"
	"better/internal/report"
	"better/internal/transcode"
)

// ProcessAlbum runs the whole pipeline for dir. Every failure is recorded on
// the result; none aborts anything beyond the album or format it belongs to.
func (p *Processor) ProcessAlbum(ctx context.Context, dir string) AlbumResult {
	result := AlbumResult{Album: dir}
	source, err := filepath.Abs(dir)
	if err != nil {
		result.fail(report.Wrap(report.FileNotFound, err))
		return result
	}
	result.Source = source
	ctx = logging.WithAlbum(ctx, filepath.Base(source))
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("processing album", logging.String("path", source))

	if failures := p.checkPreconditions(source); len(failures) > 0 {
		for _, f := range failures {
			logger.Error("album rejected", logging.String("reason", f.Flag.String()), logging.Error(f.Err))
			result.fail(f)
		}
		return result
	}

	if p.settings.OriginalTorrent && ctx.Err() == nil {
		output := p.torrentPath(filepath.Base(source))
		if err := p.torrents.Make(ctx, source, output, p.settings.Announce); err != nil {
			result.fail(report.AsFailure(err, report.TorrentError))
		} else {
			result.SourceTorrent = output
		}
	}

	if !p.settings.Transcode {
		return result
	}

	contents, err := album.Classify(source)
	if err != nil {
		logger.Error("classify album failed", logging.Error(err))
		result.fail(report.Wrap(report.FileNotFound, err))
		return result
	}
	logger.Debug("album classified",
		logging.Int("files", contents.FileCount()),
		logging.Int("lossless", len(contents.LosslessFiles)),
		logging.Bool("has_lossy", contents.HasLossy),
		logging.Bool("codec_tag", p.naming.HasCodecTag(source)),
	)
	if err := policy.CheckTranscode(contents.HasLossy, len(contents.LosslessFiles), p.settings.ExplicitTranscode); err != nil {
		logger.Warn("transcode not allowed", logging.Error(err))
		result.fail(report.Wrap(report.TranscodeAgainstRules, err))
		return result
	}

	for _, codec := range p.settings.Formats {
		if ctx.Err() != nil {
			result.Formats = append(result.Formats, FormatResult{Format: codec, Status: StatusInterrupted, Reason: "interrupted"})
			continue
		}
		formatResult, failures := p.processFormat(logging.WithFormat(ctx, codec), source, codec, contents)
		result.Formats = append(result.Formats, formatResult)
		for _, f := range failures {
			result.fail(f.WithFormat(codec))
		}
	}
	return result
}

func (p *Processor) checkPreconditions(source string) []report.Failure {
	var failures []report.Failure
	info, err := os.Stat(source)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		failures = append(failures, report.New(report.FileNotFound, "the directory %q doesn't exist", source))
	case err != nil:
		failures = append(failures, report.Wrap(report.FileNotFound, err))
	case !info.IsDir():
		failures = append(failures, report.New(report.NotDirectory, "the file %q is not a directory", source))
	}
	for _, codec := range p.settings.Formats {
		if _, ok := p.targets[codec]; !ok {
			failures = append(failures, report.New(report.UnknownTranscode, "no way of transcoding to %s", codec).WithFormat(codec))
		}
	}
	if p.settings.ExplicitTorrent && p.settings.Announce == "" {
		failures = append(failures, report.New(report.NoAnnounceURL, "cannot create torrents without an announce URL"))
	}
	return failures
}

func (p *Processor) processFormat(ctx context.Context, source, codec string, contents album.Contents) (FormatResult, []report.Failure) {
	logger := logging.WithContext(ctx, p.logger)
	target := p.targets[codec]
	out := FormatResult{Format: codec, Status: StatusSkipped}

	if err := target.Command.Available(); err != nil {
		logger.Error("transcoder not found", logging.String("binary", target.Command.Binary()))
		out.Reason = "transcoder not found"
		return out, []report.Failure{report.Wrap(report.NoTranscoder, err)}
	}

	name := p.naming.DestinationName(source, codec)
	dest := filepath.Join(p.settings.TranscodeOutput, name)
	out.Dest = dest

	if ctx.Err() != nil {
		out.Status = StatusInterrupted
		out.Reason = "interrupted"
		return out, nil
	}
	if err := os.Mkdir(dest, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			logger.Warn("destination already exists", logging.String("path", dest))
			out.Reason = "destination exists"
			if p.settings.ExplicitTranscode {
				return out, []report.Failure{report.New(report.TranscodeDirExists, "directory already exists: %s", dest).WithPath(dest)}
			}
			return out, nil
		}
		out.Status = StatusFailed
		out.Reason = "create destination failed"
		return out, []report.Failure{report.Wrap(report.TranscodeError, err).WithPath(dest)}
	}

	logger.Info("transcoding album", logging.String("destination", dest), logging.Int("files", len(contents.LosslessFiles)))
	if err := fileutil.MirrorTree(source, dest, contents.Directories, contents.DataFiles); err != nil {
		logger.Error("copy album contents failed", logging.Error(err))
		out.Status = StatusFailed
		out.Reason = "copy failed"
		return out, []report.Failure{report.Wrap(report.TranscodeError, err).WithPath(dest)}
	}

	run := p.pool.Run(ctx, transcode.Job{
		SourceDir:   source,
		DestDir:     dest,
		Files:       contents.LosslessFiles,
		Command:     target.Command,
		Extension:   target.Extension,
		Concurrency: p.settings.Concurrency,
		Label:       codec,
	})
	if ctx.Err() != nil {
		return p.discard(logger, out), nil
	}
	failures := run.Failures
	out.Files = len(run.Outputs) - len(run.Failures)
	out.Bytes = run.Bytes
	out.Status = StatusTranscoded
	if !run.OK() {
		out.Status = StatusPartial
		out.Reason = "some files failed"
	}

	if p.settings.Torrent {
		output := p.torrentPath(name)
		if err := p.torrents.Make(ctx, dest, output, p.settings.Announce); err != nil {
			failures = append(failures, report.AsFailure(err, report.TorrentError))
		} else {
			out.Torrent = output
		}
	}
	return out, failures
}

// discard removes a destination whose transcode was cut short so a later run
// does not mistake it for a finished album.
func (p *Processor) discard(logger *slog.Logger, out FormatResult) FormatResult {
	logger.Warn("transcode interrupted, removing destination", logging.String("path", out.Dest))
	out.Status = StatusInterrupted
	out.Reason = "interrupted"
	if err := os.RemoveAll(out.Dest); err != nil {
		logger.Error("remove interrupted destination failed", logging.String("path", out.Dest), logging.Error(err))
		out.Reason = "interrupted, partial output left behind"
	}
	return out
}

func (p *Processor) torrentPath(name string) string {
	return filepath.Join(p.settings.TorrentOutput, name+".torrent")
}
