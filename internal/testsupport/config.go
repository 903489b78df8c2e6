package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"better/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Both output roots are created so they pass preflight checks.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.TorrentOutput = filepath.Join(base, "torrents")
	cfgVal.Paths.TranscodeOutput = filepath.Join(base, "transcodes")
	cfgVal.Torrent.Announce = "https://tracker.example/announce"
	for _, dir := range []string{cfgVal.Paths.TorrentOutput, cfgVal.Paths.TranscodeOutput} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAnnounce sets the announce URL on the test config.
func WithAnnounce(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Torrent.Announce = url
	}
}

// WithFormats overrides the default requested formats.
func WithFormats(formats ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Transcode.Formats = append([]string(nil), formats...)
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and mktorrent are stubbed.
// Stubs write a non-empty file at the path following -o (torrent clients) or
// at their last argument (transcoders).
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "mktorrent"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteStub(b.t, binDir, name, OutputStubScript)
		}
		PrependPath(b.t, binDir)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.TranscodeOutput)
}
