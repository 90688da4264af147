// Package session orchestrates the file lifecycle workflows: batch ingest,
// tag updates and removals, export, and workspace restore. It owns the
// wiring between the metadata engine, the registry, the metadata cache, and
// the workspace store, and reports outcomes through the notification
// service.
package session
