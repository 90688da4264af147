// Package notifications delivers workflow outcome notifications. The
// primary implementation pushes to an ntfy topic; a noop service stands in
// when no topic is configured, and a Recorder captures events for tests and
// terminal output.
package notifications
