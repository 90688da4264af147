// Package engine is the single choke point for all calls into the external
// metadata engine (exiftool).
//
// The CLI client performs a lazy one-time bootstrap (binary lookup plus
// version probe) guarded by a latch that shares one in-flight attempt between
// concurrent callers and allows retry after a failed attempt. Reads degrade to
// synthetic-only metadata on engine failure so batch ingestion is never
// aborted by one corrupt file; writes either return full new content or an
// error, never partial bytes.
package engine
