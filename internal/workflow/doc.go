// Package workflow drives one album at a time through the pipeline:
// precondition checks, the optional source torrent, content classification,
// the transcode policy gate, and then every requested format independently
// (destination naming, skeleton copy, the transcode pool and the optional
// torrent of the result).
//
// Failures never escape as Go errors. Each one is recorded as a
// report.Failure on the AlbumResult so the caller can keep processing the
// rest of the batch and derive the exit status at the end.
package workflow
