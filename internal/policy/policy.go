// Package policy decides whether an album may be transcoded at all.
package policy

import "errors"

var (
	// ErrLossyOnly rejects albums that contain lossy audio and nothing lossless.
	ErrLossyOnly = errors.New("cannot transcode lossy formats")
	// ErrMixedContent rejects albums mixing lossy and lossless audio unless
	// transcoding was requested explicitly.
	ErrMixedContent = errors.New("found mixed lossy and lossless audio, transcoding must be enabled explicitly")
	// ErrNothingToTranscode rejects albums without lossless audio.
	ErrNothingToTranscode = errors.New("nothing to transcode")
)

// CheckTranscode applies the lossy/lossless rules in order and returns nil when
// transcoding may proceed.
func CheckTranscode(hasLossy bool, losslessCount int, explicit bool) error {
	if hasLossy {
		if losslessCount == 0 {
			return ErrLossyOnly
		}
		if !explicit {
			return ErrMixedContent
		}
	}
	if losslessCount == 0 {
		return ErrNothingToTranscode
	}
	return nil
}
