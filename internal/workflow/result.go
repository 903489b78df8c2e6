package workflow

import (
	"better/internal/report"
)

// Status summarises what happened to one format of an album.
type Status string

const (
	StatusTranscoded Status = "transcoded"
	StatusPartial    Status = "partial"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
	// StatusInterrupted marks formats not finished because the run was cancelled.
	StatusInterrupted Status = "interrupted"
)

// FormatResult describes one requested format of an album.
type FormatResult struct {
	Format  string
	Dest    string
	Status  Status
	Files   int
	Bytes   int64
	Torrent string
	Reason  string
}

// AlbumResult is everything ProcessAlbum observed for one input directory.
type AlbumResult struct {
	Album         string
	Source        string
	SourceTorrent string
	Formats       []FormatResult
	Failures      []report.Failure
}

// Mask ORs the flags of every failure recorded for the album.
func (r AlbumResult) Mask() report.Flag {
	var mask report.Flag
	for _, f := range r.Failures {
		mask |= f.Flag
	}
	return mask
}

func (r *AlbumResult) fail(f report.Failure) {
	r.Failures = append(r.Failures, f.WithAlbum(r.Album))
}
