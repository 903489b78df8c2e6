// Package report collects the failures raised while processing a batch of
// albums and derives the process exit status from them.
//
// Each failure is a structured value carrying one Flag, the album and format it
// belongs to, and the underlying cause. Flags keep the historical bit values so
// scripts that inspect the exit status keep working; the bitmask is only
// computed at the exit boundary through Report.Mask.
package report
