// Package main hosts the better CLI entrypoint and command graph.
//
// The root command takes one or more album directories, merges its flags
// with the configuration file into workflow settings, and processes each
// album in order. The process exit status is the OR of every failure flag
// raised during the batch. The check and config subcommands cover tool
// availability and configuration scaffolding.
package main
