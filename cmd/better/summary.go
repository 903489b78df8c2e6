package main

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"better/internal/report"
	"better/internal/workflow"
)

func renderSummary(results []workflow.AlbumResult, colorize bool) string {
	headers := []string{"Album", "Format", "Status", "Files", "Size", "Output"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}

	var rows [][]string
	for _, result := range results {
		name := filepath.Base(result.Album)
		if result.SourceTorrent != "" {
			rows = append(rows, []string{name, "source", "torrent", "", "", result.SourceTorrent})
		}
		if len(result.Formats) == 0 {
			status := "ok"
			if mask := result.Mask(); mask != 0 {
				status = "failed: " + mask.String()
			}
			if result.SourceTorrent == "" || status != "ok" {
				rows = append(rows, []string{name, "-", status, "", "", ""})
			}
			continue
		}
		for _, format := range result.Formats {
			rows = append(rows, formatRow(name, format, result.Failures))
		}
	}
	return renderTable(headers, rows, aligns, colorize)
}

func formatRow(album string, format workflow.FormatResult, failures []report.Failure) []string {
	status := string(format.Status)
	var mask report.Flag
	for _, f := range failures {
		if f.Format == format.Format {
			mask |= f.Flag
		}
	}
	if mask != 0 {
		status += " (" + mask.String() + ")"
	} else if format.Reason != "" {
		status += " (" + format.Reason + ")"
	}

	files, size := "", ""
	if format.Status == workflow.StatusTranscoded || format.Status == workflow.StatusPartial {
		files = strconv.Itoa(format.Files)
		size = humanize.Bytes(uint64(format.Bytes))
	}

	output := format.Dest
	if format.Torrent != "" {
		output = strings.Join([]string{format.Dest, format.Torrent}, "\n")
	}
	return []string{album, strings.ToUpper(format.Format), status, files, size, output}
}
