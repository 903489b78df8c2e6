// Package progress renders transcode progress bars and torrent spinners on
// interactive terminals. Factories built for non-interactive output hand out
// no-op indicators so log output stays clean.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/schollz/progressbar/v3"
)

// Bar counts completed units of work.
type Bar interface {
	Add(n int)
	Close()
}

// Spinner marks an operation of unknown length.
type Spinner interface {
	Start()
	Stop()
}

// Factory builds progress indicators for one destination writer.
type Factory struct {
	out         io.Writer
	interactive bool
}

// New returns a factory writing to out. Indicators are only drawn when
// interactive is true.
func New(out io.Writer, interactive bool) *Factory {
	if out == nil {
		out = os.Stderr
	}
	return &Factory{out: out, interactive: interactive}
}

// Disabled returns a factory whose indicators draw nothing.
func Disabled() *Factory {
	return New(io.Discard, false)
}

// Interactive reports whether indicators are drawn.
func (f *Factory) Interactive() bool {
	return f != nil && f.interactive
}

// Bar returns a counter over total units labelled with description.
func (f *Factory) Bar(total int, description string) Bar {
	if !f.Interactive() || total <= 0 {
		return noopBar{}
	}
	bar := progressbar.NewOptions64(
		int64(total),
		progressbar.OptionSetWriter(f.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &meteredBar{bar: bar}
}

// Spinner returns a spinner labelled with suffix.
func (f *Factory) Spinner(suffix string) Spinner {
	if !f.Interactive() {
		return noopSpinner{}
	}
	spin := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(f.out))
	spin.Suffix = " " + suffix
	return spin
}

type meteredBar struct {
	bar *progressbar.ProgressBar
}

func (b *meteredBar) Add(n int) { _ = b.bar.Add(n) }

func (b *meteredBar) Close() { _ = b.bar.Close() }

type noopBar struct{}

func (noopBar) Add(int) {}
func (noopBar) Close()  {}

type noopSpinner struct{}

func (noopSpinner) Start() {}
func (noopSpinner) Stop()  {}
