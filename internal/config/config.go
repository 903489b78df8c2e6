package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the output roots.
type Paths struct {
	TorrentOutput   string `toml:"torrent_output"`
	TranscodeOutput string `toml:"transcode_output"`
}

// Torrent contains torrent creation settings.
type Torrent struct {
	Enabled  bool     `toml:"enabled"`
	Announce string   `toml:"announce"`
	Commands []string `toml:"commands"`
}

// Transcode contains transcode defaults and naming settings.
type Transcode struct {
	Enabled         bool     `toml:"enabled"`
	Formats         []string `toml:"formats"`
	Cores           int      `toml:"cores"`
	IgnoredPrefixes []string `toml:"ignored_prefixes"`
	CodecTags       []string `toml:"codec_tags"`
}

// Format describes how to produce one target codec. Command is an argument
// template; {input} and {output} are replaced per file.
type Format struct {
	Command   string `toml:"command"`
	Extension string `toml:"extension"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for better.
//
// Configuration sections:
//   - Paths: where .torrent files and transcoded albums are written
//   - Torrent: default torrent behaviour, announce URL and client candidates
//   - Transcode: default behaviour, formats, concurrency and naming
//   - Formats: per-codec command templates and output extensions
//   - Logging: log format and level
type Config struct {
	Paths     Paths             `toml:"paths"`
	Torrent   Torrent           `toml:"torrent"`
	Transcode Transcode         `toml:"transcode"`
	Formats   map[string]Format `toml:"formats"`
	Logging   Logging           `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/better/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("better.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// Cores resolves the configured concurrency, falling back to the CPU count for
// values below one.
func (c *Config) Cores() int {
	return ResolveCores(c.Transcode.Cores)
}

// ResolveCores maps values below one to the number of CPUs.
func ResolveCores(value int) int {
	if value < 1 {
		return runtime.NumCPU()
	}
	return value
}

// Format returns the format definition for codec.
func (c *Config) Format(codec string) (Format, bool) {
	format, ok := c.Formats[strings.ToLower(strings.TrimSpace(codec))]
	return format, ok
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
