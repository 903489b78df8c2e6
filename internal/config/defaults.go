package config

const (
	defaultTorrentOutput   = "."
	defaultTranscodeOutput = "."
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultFFmpeg          = "ffmpeg -threads 1"
)

// Codecs is the fixed set of transcode targets, in presentation order.
var Codecs = []string{"alac", "320", "v0", "v1", "v2"}

var defaultFormats = map[string]Format{
	"alac": {Command: defaultFFmpeg + " -i {input} -acodec alac {output}", Extension: "m4a"},
	"320":  {Command: defaultFFmpeg + " -i {input} -acodec libmp3lame -ab 320k {output}", Extension: "mp3"},
	"v0":   {Command: defaultFFmpeg + " -i {input} -qscale:a 0 {output}", Extension: "mp3"},
	"v1":   {Command: defaultFFmpeg + " -i {input} -qscale:a 1 {output}", Extension: "mp3"},
	"v2":   {Command: defaultFFmpeg + " -i {input} -qscale:a 2 {output}", Extension: "mp3"},
}

var defaultTorrentCommands = []string{
	"transmission-create -p -o {torrent} -t {announce} {source}",
	"mktorrent -p -o {torrent} -a {announce} {source}",
}

// Lower-cased contents of the bracketed tags recognised in album folder names.
var defaultCodecTags = []string{
	"flac", "flac 24bit", "flac 16-44", "flac 16-48", "flac 24-44", "flac 24-48", "flac 24-96", "flac 24-196",
	"16-44", "16-48", "24-44", "24-48", "24-96", "24-196",
	"alac",
	"320", "256", "224", "192",
	"v0", "apx", "256 vbr", "v1", "224 vbr", "v2", "aps", "192 vbr",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	formats := make(map[string]Format, len(defaultFormats))
	for name, format := range defaultFormats {
		formats[name] = format
	}
	return Config{
		Paths: Paths{
			TorrentOutput:   defaultTorrentOutput,
			TranscodeOutput: defaultTranscodeOutput,
		},
		Torrent: Torrent{
			Enabled:  true,
			Commands: append([]string(nil), defaultTorrentCommands...),
		},
		Transcode: Transcode{
			Enabled:   true,
			Formats:   []string{"320", "v0"},
			Cores:     0,
			CodecTags: append([]string(nil), defaultCodecTags...),
		},
		Formats: formats,
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
