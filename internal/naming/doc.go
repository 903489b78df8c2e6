// Package naming derives the folder name of a transcoded album from its
// source folder name.
//
// Album folders conventionally carry a bracketed codec tag such as [FLAC] or
// [24-96]. The policy swaps that tag for the target codec, or appends one
// when the source has none, then strips a configured release prefix.
package naming
