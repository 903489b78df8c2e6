package preflight

import (
	"better/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Path   string
	Passed bool
	Detail string
}

// RunAll executes the output directory checks that apply to cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if cfg.Transcode.Enabled {
		results = append(results, CheckDirectoryAccess("Transcode output", cfg.Paths.TranscodeOutput))
	}
	if cfg.Torrent.Enabled {
		results = append(results, CheckDirectoryAccess("Torrent output", cfg.Paths.TorrentOutput))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
