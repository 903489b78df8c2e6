package report

import (
	"errors"
	"fmt"
	"strings"
)

// Failure is one structured failure raised while processing an album.
type Failure struct {
	Flag   Flag
	Album  string
	Format string
	Path   string
	Err    error
}

// New builds a Failure for the given flag with a formatted cause.
func New(flag Flag, format string, args ...any) Failure {
	return Failure{Flag: flag, Err: fmt.Errorf(format, args...)}
}

// Wrap builds a Failure that keeps err as its cause.
func Wrap(flag Flag, err error) Failure {
	if err == nil {
		err = errors.New(flag.String())
	}
	return Failure{Flag: flag, Err: err}
}

// WithAlbum returns a copy of f attributed to album.
func (f Failure) WithAlbum(album string) Failure {
	f.Album = album
	return f
}

// WithFormat returns a copy of f attributed to format.
func (f Failure) WithFormat(format string) Failure {
	f.Format = format
	return f
}

// WithPath returns a copy of f attributed to path.
func (f Failure) WithPath(path string) Failure {
	f.Path = path
	return f
}

func (f Failure) Error() string {
	parts := make([]string, 0, 4)
	parts = append(parts, f.Flag.String())
	if f.Album != "" {
		parts = append(parts, f.Album)
	}
	if f.Format != "" {
		parts = append(parts, f.Format)
	}
	if f.Err != nil {
		parts = append(parts, f.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (f Failure) Unwrap() error { return f.Err }

// AsFailure extracts a Failure from err. Errors that are not failures are
// classified with the fallback flag.
func AsFailure(err error, fallback Flag) Failure {
	var failure Failure
	if errors.As(err, &failure) {
		return failure
	}
	return Wrap(fallback, err)
}

// Report accumulates failures for a whole batch. It is owned by the batch
// coordinator and is not safe for concurrent use.
type Report struct {
	failures []Failure
}

// Add appends failures in the order they were raised.
func (r *Report) Add(failures ...Failure) {
	r.failures = append(r.failures, failures...)
}

// Failures returns a copy of the collected failures.
func (r *Report) Failures() []Failure {
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

// Mask ORs every collected flag together.
func (r *Report) Mask() Flag {
	var mask Flag
	for _, f := range r.failures {
		mask |= f.Flag
	}
	return mask
}

// Empty reports whether no failure was collected.
func (r *Report) Empty() bool {
	return len(r.failures) == 0
}

// ExitCode converts the collected flags into a process exit status.
func (r *Report) ExitCode() int {
	return int(r.Mask())
}
