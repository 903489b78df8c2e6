// Package preflight provides readiness checks for the output directories and
// external tools better depends on.
//
// These checks run in two contexts:
//   - The root command calls RunAll before processing any album. A failing
//     output directory aborts the whole batch.
//   - The "better check" command prints RunAll and CheckSystemDeps results.
//
// Each check is gated by its config toggle -- disabled features are skipped.
package preflight
