// Package command turns user-configurable command templates into argument
// vectors and runs them as child processes.
//
// Templates are split on whitespace once, at load time. Placeholders such as
// {input} are substituted inside individual arguments, so file names and URLs
// are passed to the child verbatim and never reach a shell.
package command
