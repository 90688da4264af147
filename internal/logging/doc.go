// Package logging constructs the application's slog loggers.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. NewFromConfig wires stderr plus a
// per-install log file under the configured log directory.
package logging
