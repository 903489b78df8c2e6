package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTorrent()
	c.normalizeTranscode()
	c.normalizeFormats()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.TorrentOutput) == "" {
		c.Paths.TorrentOutput = defaultTorrentOutput
	}
	if c.Paths.TorrentOutput, err = expandPath(strings.TrimSpace(c.Paths.TorrentOutput)); err != nil {
		return fmt.Errorf("paths.torrent_output: %w", err)
	}
	if strings.TrimSpace(c.Paths.TranscodeOutput) == "" {
		c.Paths.TranscodeOutput = defaultTranscodeOutput
	}
	if c.Paths.TranscodeOutput, err = expandPath(strings.TrimSpace(c.Paths.TranscodeOutput)); err != nil {
		return fmt.Errorf("paths.transcode_output: %w", err)
	}
	return nil
}

func (c *Config) normalizeTorrent() {
	c.Torrent.Announce = strings.TrimSpace(c.Torrent.Announce)
	if c.Torrent.Announce == "" {
		if value, ok := os.LookupEnv("BETTER_ANNOUNCE_URL"); ok {
			c.Torrent.Announce = strings.TrimSpace(value)
		}
	}
	commands := make([]string, 0, len(c.Torrent.Commands))
	for _, command := range c.Torrent.Commands {
		if trimmed := strings.TrimSpace(command); trimmed != "" {
			commands = append(commands, trimmed)
		}
	}
	c.Torrent.Commands = commands
}

func (c *Config) normalizeTranscode() {
	c.Transcode.Formats = NormalizeFormats(c.Transcode.Formats)

	tags := make([]string, 0, len(c.Transcode.CodecTags))
	seen := make(map[string]struct{}, len(c.Transcode.CodecTags))
	for _, tag := range c.Transcode.CodecTags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		tags = append(tags, normalized)
	}
	c.Transcode.CodecTags = tags

	prefixes := make([]string, 0, len(c.Transcode.IgnoredPrefixes))
	for _, prefix := range c.Transcode.IgnoredPrefixes {
		if prefix != "" {
			prefixes = append(prefixes, prefix)
		}
	}
	c.Transcode.IgnoredPrefixes = prefixes
}

func (c *Config) normalizeFormats() {
	normalized := make(map[string]Format, len(defaultFormats))
	for name, format := range c.Formats {
		key := strings.ToLower(strings.TrimSpace(name))
		format.Command = strings.TrimSpace(format.Command)
		format.Extension = strings.TrimPrefix(strings.TrimSpace(format.Extension), ".")
		normalized[key] = format
	}
	for name, fallback := range defaultFormats {
		format := normalized[name]
		if format.Command == "" {
			format.Command = fallback.Command
		}
		if format.Extension == "" {
			format.Extension = fallback.Extension
		}
		normalized[name] = format
	}
	c.Formats = normalized
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// NormalizeFormats lower-cases, trims, and de-duplicates requested format names
// while keeping their order. Comma-separated entries are split.
func NormalizeFormats(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			name := strings.ToLower(strings.TrimSpace(part))
			if name == "" {
				continue
			}
			if _, exists := seen[name]; exists {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
