package report

import (
	"sort"
	"strings"
)

// Flag identifies one independent failure category. Flags are ORed together to
// build the process exit status.
type Flag uint16

const (
	FileNotFound Flag = 1 << iota
	NotDirectory
	NoTorrentClient
	TranscodeAgainstRules
	TranscodeDirExists
	UnknownTranscode
	NoAnnounceURL
	NoTranscoder
	TorrentError
	TranscodeError
)

var flagNames = map[Flag]string{
	FileNotFound:          "file_not_found",
	NotDirectory:          "not_a_directory",
	NoTorrentClient:       "no_torrent_client",
	TranscodeAgainstRules: "transcode_against_rules",
	TranscodeDirExists:    "transcode_dir_exists",
	UnknownTranscode:      "unknown_transcode_format",
	NoAnnounceURL:         "no_announce_url",
	NoTranscoder:          "no_transcoder",
	TorrentError:          "torrent_error",
	TranscodeError:        "transcode_error",
}

// String returns the snake_case names of every set bit joined with "|".
func (f Flag) String() string {
	if f == 0 {
		return "ok"
	}
	names := f.Names()
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}

// Names lists the names of the set bits in ascending bit order.
func (f Flag) Names() []string {
	bits := make([]Flag, 0, len(flagNames))
	for bit := range flagNames {
		if f&bit != 0 {
			bits = append(bits, bit)
		}
	}
	sort.Slice(bits, func(i, j int) bool { return bits[i] < bits[j] })
	names := make([]string, 0, len(bits))
	for _, bit := range bits {
		names = append(names, flagNames[bit])
	}
	return names
}

// Has reports whether every bit of other is set in f.
func (f Flag) Has(other Flag) bool {
	return other != 0 && f&other == other
}
