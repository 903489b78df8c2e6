package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"better/internal/command"
	"better/internal/config"
	"better/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Path: path, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Path: path, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps reports the transcoder for every requested format and the
// torrent client candidates. Torrent clients are alternatives, so they count
// as a single dependency.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	if cfg == nil {
		return nil
	}
	var requirements []deps.Requirement
	for _, codec := range cfg.Transcode.Formats {
		format, ok := cfg.Format(codec)
		if !ok {
			requirements = append(requirements, deps.Requirement{Name: codec, Description: "unknown format"})
			continue
		}
		requirements = append(requirements, deps.Requirement{
			Name:        codec,
			Command:     binaryOf(format.Command),
			Description: "Transcodes to " + strings.ToUpper(codec),
			Optional:    !cfg.Transcode.Enabled,
		})
	}
	statuses := deps.CheckBinaries(requirements)

	var clients []string
	for _, raw := range cfg.Torrent.Commands {
		if bin := binaryOf(raw); bin != "" {
			clients = append(clients, bin)
		}
	}
	torrent := deps.CheckAlternatives("Torrent client", "Creates .torrent files", clients)
	torrent.Optional = !cfg.Torrent.Enabled
	return append(statuses, torrent)
}

func binaryOf(raw string) string {
	tmpl, err := command.Parse(raw)
	if err != nil {
		return ""
	}
	return tmpl.Binary()
}
