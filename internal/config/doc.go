// Package config loads, normalizes, and validates the TOML configuration that
// drives every other package.
//
// Load resolves the config path (explicit flag, ~/.config/exifstudio, or a
// project-local exifstudio.toml), fills in defaults for anything unset,
// expands ~ in path fields, and rejects invalid values up front so the rest of
// the codebase can treat the Config as trusted input.
package config
