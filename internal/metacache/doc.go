// Package metacache keeps the in-memory mapping from file id to decoded
// metadata. Tag edits mutate entries in place; only a fresh decode replaces an
// entry wholesale. The three synthetic keys (file name, size, MIME type) are
// always present and survive every clear path.
package metacache
