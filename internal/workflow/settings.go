package workflow

import (
	"strings"

	"better/internal/config"
)

// Settings is the immutable run configuration shared by every album in a
// batch.
type Settings struct {
	Announce        string
	TorrentOutput   string
	TranscodeOutput string
	Formats         []string

	Transcode         bool
	ExplicitTranscode bool

	Torrent         bool
	ExplicitTorrent bool
	OriginalTorrent bool

	Concurrency int
}

// Overrides carries command-line values that take precedence over config.
// Empty strings and nil slices leave the config value in place.
type Overrides struct {
	Announce        string
	TorrentOutput   string
	TranscodeOutput string
	Formats         []string
	Cores           *int

	Transcode   bool
	NoTranscode bool

	TorrentCount int
	NoTorrent    bool
}

// NewSettings merges cfg with command-line overrides.
func NewSettings(cfg *config.Config, o Overrides) Settings {
	s := Settings{
		Announce:        cfg.Torrent.Announce,
		TorrentOutput:   cfg.Paths.TorrentOutput,
		TranscodeOutput: cfg.Paths.TranscodeOutput,
		Formats:         append([]string(nil), cfg.Transcode.Formats...),
		Concurrency:     cfg.Cores(),
	}
	if v := strings.TrimSpace(o.Announce); v != "" {
		s.Announce = v
	}
	if o.TorrentOutput != "" {
		s.TorrentOutput = o.TorrentOutput
	}
	if o.TranscodeOutput != "" {
		s.TranscodeOutput = o.TranscodeOutput
	}
	if o.Formats != nil {
		s.Formats = config.NormalizeFormats(o.Formats)
	}
	if o.Cores != nil {
		s.Concurrency = config.ResolveCores(*o.Cores)
	}

	s.ExplicitTranscode = o.Transcode
	s.Transcode = (cfg.Transcode.Enabled || o.Transcode) && !o.NoTranscode

	s.ExplicitTorrent = o.TorrentCount > 0
	s.OriginalTorrent = o.TorrentCount == 2
	s.Torrent = (cfg.Torrent.Enabled || s.ExplicitTorrent) && !o.NoTorrent
	if !s.ExplicitTorrent && s.Announce == "" {
		s.Torrent = false
	}
	return s
}
