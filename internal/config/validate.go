package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable. Requested formats are not
// checked here: an unknown format is reported per album so sibling albums in a
// batch still run.
func (c *Config) Validate() error {
	if err := c.validateTorrent(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateFormats(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTorrent() error {
	for i, command := range c.Torrent.Commands {
		for _, placeholder := range []string{"{source}", "{torrent}"} {
			if !strings.Contains(command, placeholder) {
				return fmt.Errorf("torrent.commands[%d] must reference %s", i, placeholder)
			}
		}
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if len(c.Transcode.CodecTags) == 0 {
		return errors.New("transcode.codec_tags must include at least one tag")
	}
	return nil
}

func (c *Config) validateFormats() error {
	for name, format := range c.Formats {
		if !slices.Contains(Codecs, name) {
			return fmt.Errorf("formats.%s: unsupported codec (expected one of %s)", name, strings.Join(Codecs, ", "))
		}
		for _, placeholder := range []string{"{input}", "{output}"} {
			if !strings.Contains(format.Command, placeholder) {
				return fmt.Errorf("formats.%s.command must reference %s", name, placeholder)
			}
		}
		if strings.ContainsAny(format.Extension, `/\`) {
			return fmt.Errorf("formats.%s.extension must not contain path separators", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
