package workflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"better/internal/config"
	"better/internal/report"
	"better/internal/testsupport"
	"better/internal/workflow"
)

func newProcessor(t *testing.T, cfg *config.Config, o workflow.Overrides) *workflow.Processor {
	t.Helper()
	p, err := workflow.NewProcessor(workflow.NewSettings(cfg, o), cfg)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	return p
}

func albumDir(t *testing.T, cfg *config.Config, name string, files ...string) string {
	t.Helper()
	return testsupport.WriteAlbum(t, filepath.Join(testsupport.BaseDir(cfg), "music", name), files...)
}

func TestProcessAlbumTranscodesAndTorrents(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	src := albumDir(t, cfg, "Artist - Album (2001) [FLAC]",
		"01.flac", "02.flac", "CD2/03.flac", "folder.jpg", "album.log")
	p := newProcessor(t, cfg, workflow.Overrides{Formats: []string{"320"}})

	result := p.ProcessAlbum(context.Background(), src)

	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	dest := filepath.Join(cfg.Paths.TranscodeOutput, "Artist - Album (2001) [320]")
	for _, rel := range []string{"01.mp3", "02.mp3", "CD2/03.mp3", "folder.jpg", "album.log"} {
		testsupport.RequireFile(t, filepath.Join(dest, filepath.FromSlash(rel)))
	}
	if _, err := os.Stat(filepath.Join(dest, "01.flac")); !os.IsNotExist(err) {
		t.Fatalf("lossless source should not be copied, stat err = %v", err)
	}
	testsupport.RequireFile(t, filepath.Join(cfg.Paths.TorrentOutput, "Artist - Album (2001) [320].torrent"))

	if len(result.Formats) != 1 {
		t.Fatalf("expected one format result, got %d", len(result.Formats))
	}
	got := result.Formats[0]
	if got.Status != workflow.StatusTranscoded || got.Files != 3 || got.Dest != dest {
		t.Fatalf("unexpected format result %#v", got)
	}
}

func TestProcessAlbumRejectsLossyOnly(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	src := albumDir(t, cfg, "Album [320]", "01.mp3", "02.mp3")
	p := newProcessor(t, cfg, workflow.Overrides{Formats: []string{"v0"}})

	result := p.ProcessAlbum(context.Background(), src)

	if result.Mask() != report.TranscodeAgainstRules {
		t.Fatalf("mask = %v, want transcode_against_rules", result.Mask())
	}
	entries, err := os.ReadDir(cfg.Paths.TranscodeOutput)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no destination, found %d entries", len(entries))
	}
}

func TestProcessAlbumMixedContentNeedsExplicitTranscode(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	src := albumDir(t, cfg, "Mixed [FLAC]", "01.flac", "bonus.mp3")

	result := newProcessor(t, cfg, workflow.Overrides{Formats: []string{"v0"}}).ProcessAlbum(context.Background(), src)
	if result.Mask() != report.TranscodeAgainstRules {
		t.Fatalf("mask = %v, want transcode_against_rules", result.Mask())
	}

	result = newProcessor(t, cfg, workflow.Overrides{Formats: []string{"v0"}, Transcode: true}).ProcessAlbum(context.Background(), src)
	if len(result.Failures) != 0 {
		t.Fatalf("explicit transcode should succeed, got %v", result.Failures)
	}
	testsupport.RequireFile(t, filepath.Join(cfg.Paths.TranscodeOutput, "Mixed [V0]", "bonus.mp3"))
}

func TestProcessAlbumExplicitTorrentWithoutAnnounce(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithAnnounce(""))
	src := albumDir(t, cfg, "Album [FLAC]", "01.flac")
	p := newProcessor(t, cfg, workflow.Overrides{TorrentCount: 1})

	result := p.ProcessAlbum(context.Background(), src)

	if result.Mask() != report.NoAnnounceURL {
		t.Fatalf("mask = %v, want no_announce_url", result.Mask())
	}
	entries, err := os.ReadDir(cfg.Paths.TorrentOutput)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no torrent files, found %d", len(entries))
	}
}

func TestProcessAlbumPreconditions(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	base := testsupport.BaseDir(cfg)
	file := filepath.Join(base, "not-a-dir.flac")
	testsupport.WriteFile(t, file, 4)

	cases := []struct {
		name    string
		dir     string
		formats []string
		want    report.Flag
	}{
		{"missing", filepath.Join(base, "missing"), nil, report.FileNotFound},
		{"file", file, nil, report.NotDirectory},
		{"unknown format", albumDir(t, cfg, "Album [FLAC]", "01.flac"), []string{"v0", "opus"}, report.UnknownTranscode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := newProcessor(t, cfg, workflow.Overrides{Formats: tc.formats}).ProcessAlbum(context.Background(), tc.dir)
			if result.Mask() != tc.want {
				t.Fatalf("mask = %v, want %v", result.Mask(), tc.want)
			}
			if len(result.Formats) != 0 {
				t.Fatalf("rejected album should not process formats, got %v", result.Formats)
			}
		})
	}
}

func TestProcessAlbumExistingDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	src := albumDir(t, cfg, "Album [FLAC]", "01.flac")
	if err := os.Mkdir(filepath.Join(cfg.Paths.TranscodeOutput, "Album [V0]"), 0o755); err != nil {
		t.Fatal(err)
	}

	result := newProcessor(t, cfg, workflow.Overrides{Formats: []string{"v0", "320"}}).ProcessAlbum(context.Background(), src)
	if len(result.Failures) != 0 {
		t.Fatalf("implicit transcode should skip silently, got %v", result.Failures)
	}
	if result.Formats[0].Status != workflow.StatusSkipped || result.Formats[1].Status != workflow.StatusTranscoded {
		t.Fatalf("unexpected statuses %v", result.Formats)
	}

	src = albumDir(t, cfg, "Other [FLAC]", "01.flac")
	if err := os.Mkdir(filepath.Join(cfg.Paths.TranscodeOutput, "Other [V0]"), 0o755); err != nil {
		t.Fatal(err)
	}
	result = newProcessor(t, cfg, workflow.Overrides{Formats: []string{"v0"}, Transcode: true}).ProcessAlbum(context.Background(), src)
	if result.Mask() != report.TranscodeDirExists {
		t.Fatalf("mask = %v, want transcode_dir_exists", result.Mask())
	}
}

func TestProcessAlbumMissingTranscoder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	bin := filepath.Join(testsupport.BaseDir(cfg), "bin")
	testsupport.WriteStub(t, bin, "mktorrent", testsupport.OutputStubScript)
	testsupport.IsolatePath(t, bin)
	src := albumDir(t, cfg, "Album [FLAC]", "01.flac")

	result := newProcessor(t, cfg, workflow.Overrides{Formats: []string{"320", "v0"}}).ProcessAlbum(context.Background(), src)

	if result.Mask() != report.NoTranscoder {
		t.Fatalf("mask = %v, want no_transcoder", result.Mask())
	}
	if len(result.Failures) != 2 {
		t.Fatalf("expected one failure per format, got %v", result.Failures)
	}
}

func TestProcessAlbumOriginalTorrent(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	src := albumDir(t, cfg, "Album [FLAC]", "01.flac")

	result := newProcessor(t, cfg, workflow.Overrides{TorrentCount: 2, NoTranscode: true}).ProcessAlbum(context.Background(), src)

	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	want := filepath.Join(cfg.Paths.TorrentOutput, "Album [FLAC].torrent")
	if result.SourceTorrent != want {
		t.Fatalf("SourceTorrent = %s, want %s", result.SourceTorrent, want)
	}
	testsupport.RequireFile(t, want)
	if len(result.Formats) != 0 {
		t.Fatal("transcoding was disabled")
	}
}

func TestProcessAlbumTranscodeFailureIsReported(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("mktorrent"))
	testsupport.WriteStub(t, filepath.Join(testsupport.BaseDir(cfg), "bin"), "ffmpeg", testsupport.FailingStubScript)
	src := albumDir(t, cfg, "Album [FLAC]", "01.flac", "02.flac")

	result := newProcessor(t, cfg, workflow.Overrides{Formats: []string{"v2"}, NoTorrent: true}).ProcessAlbum(context.Background(), src)

	if result.Mask() != report.TranscodeError {
		t.Fatalf("mask = %v, want transcode_error", result.Mask())
	}
	if len(result.Failures) != 2 {
		t.Fatalf("expected one failure per file, got %v", result.Failures)
	}
	if result.Formats[0].Status != workflow.StatusPartial {
		t.Fatalf("status = %s, want partial", result.Formats[0].Status)
	}
}

type cancellingExecutor struct {
	cancel context.CancelFunc
	calls  int
}

func (e *cancellingExecutor) Run(_ context.Context, argv []string) ([]byte, error) {
	e.calls++
	e.cancel()
	return nil, os.WriteFile(argv[len(argv)-1], []byte("audio"), 0o644)
}

func TestProcessAlbumCancelledBeforeStart(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	src := albumDir(t, cfg, "Album [FLAC]", "01.flac", "cover.jpg")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newProcessor(t, cfg, workflow.Overrides{Formats: []string{"320", "v0"}, TorrentCount: 2}).ProcessAlbum(ctx, src)

	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	for _, f := range result.Formats {
		if f.Status != workflow.StatusInterrupted {
			t.Fatalf("status for %s = %s, want interrupted", f.Format, f.Status)
		}
	}
	for _, dir := range []string{cfg.Paths.TranscodeOutput, cfg.Paths.TorrentOutput} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected %s to stay empty, found %d entries", dir, len(entries))
		}
	}

	result = newProcessor(t, cfg, workflow.Overrides{Formats: []string{"320"}}).ProcessAlbum(context.Background(), src)
	if result.Formats[0].Status != workflow.StatusTranscoded {
		t.Fatalf("rerun status = %s, want transcoded", result.Formats[0].Status)
	}
}

func TestProcessAlbumCancelledMidTranscodeRemovesDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	src := albumDir(t, cfg, "Album [FLAC]", "01.flac", "02.flac", "03.flac")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exec := &cancellingExecutor{cancel: cancel}
	settings := workflow.NewSettings(cfg, workflow.Overrides{Formats: []string{"320", "v0"}, Cores: intPtr(1)})
	p, err := workflow.NewProcessor(settings, cfg, workflow.WithExecutor(exec))
	if err != nil {
		t.Fatal(err)
	}

	result := p.ProcessAlbum(ctx, src)

	if exec.calls != 1 {
		t.Fatalf("expected dispatch to stop after cancellation, got %d calls", exec.calls)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", result.Failures)
	}
	if len(result.Formats) != 2 {
		t.Fatalf("expected a result per format, got %v", result.Formats)
	}
	for _, f := range result.Formats {
		if f.Status != workflow.StatusInterrupted || f.Torrent != "" {
			t.Fatalf("unexpected format result %#v", f)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.TranscodeOutput, "Album [320]")); !os.IsNotExist(err) {
		t.Fatalf("interrupted destination should be removed, stat err = %v", err)
	}
	entries, err := os.ReadDir(cfg.Paths.TorrentOutput)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("no torrent expected after cancellation, found %d", len(entries))
	}
}

func intPtr(v int) *int { return &v }

func TestNewSettingsTorrentPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Torrent.Announce = ""

	s := workflow.NewSettings(&cfg, workflow.Overrides{})
	if s.Torrent {
		t.Fatal("torrents should be silently disabled without an announce URL")
	}

	s = workflow.NewSettings(&cfg, workflow.Overrides{Announce: "https://t/a"})
	if !s.Torrent || s.ExplicitTorrent {
		t.Fatalf("unexpected settings %#v", s)
	}

	s = workflow.NewSettings(&cfg, workflow.Overrides{TorrentCount: 2})
	if !s.Torrent || !s.ExplicitTorrent || !s.OriginalTorrent {
		t.Fatalf("unexpected settings %#v", s)
	}

	s = workflow.NewSettings(&cfg, workflow.Overrides{TorrentCount: 3, Announce: "https://t/a"})
	if !s.ExplicitTorrent || s.OriginalTorrent {
		t.Fatalf("only -TT should torrent the source, got %#v", s)
	}

	s = workflow.NewSettings(&cfg, workflow.Overrides{NoTorrent: true, Announce: "https://t/a"})
	if s.Torrent {
		t.Fatal("-M must disable torrents")
	}

	cores := 0
	s = workflow.NewSettings(&cfg, workflow.Overrides{Cores: &cores, Formats: []string{"V0, 320"}})
	if s.Concurrency < 1 {
		t.Fatalf("cores below one must resolve to the CPU count, got %d", s.Concurrency)
	}
	if len(s.Formats) != 2 || s.Formats[0] != "v0" || s.Formats[1] != "320" {
		t.Fatalf("unexpected formats %v", s.Formats)
	}
}

func TestLockWaitsForOtherRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p := newProcessor(t, cfg, workflow.Overrides{})

	other := flock.New(filepath.Join(cfg.Paths.TranscodeOutput, ".better.lock"))
	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: %v %v", ok, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := p.Lock(ctx); err == nil {
		t.Fatal("expected lock acquisition to fail while held")
	}

	if err := other.Unlock(); err != nil {
		t.Fatal(err)
	}
	release, err := p.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	release()
}
