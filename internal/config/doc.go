// Package config loads, normalizes, and validates better configuration data.
//
// It supplies repository defaults (the built-in format table, torrent client
// candidates, and codec tag vocabulary), expands user paths including tilde
// shortcuts, reads TOML files, and honours the BETTER_ANNOUNCE_URL environment
// fallback. Command-line flags override these values; the result is frozen into
// the workflow settings before any album is touched.
package config
