// Package album inspects an album directory and partitions its entries into
// the pieces the transcode workflow needs: subdirectories to mirror, lossless
// audio to transcode, and everything else to copy verbatim.
package album
