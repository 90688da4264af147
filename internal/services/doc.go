// Package services defines shared utilities consumed by the session workflows
// and the metadata engine integration.
//
// Key responsibilities:
//   - Context helpers that stamp file IDs and workflow names for logging.
//   - Structured error markers plus the Wrap helper that keep failures
//     classifiable with a stable diagnostic code.
//
// Use these helpers when wiring new workflow logic so operational behaviour
// (error handling, observability) stays uniform across the codebase.
package services
