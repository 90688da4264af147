// Package registry holds the in-memory working set of ingested files. It
// keeps files in insertion order, tracks the single selected file and the
// workflow busy flag, and writes every mutation through to the workspace
// store.
package registry
