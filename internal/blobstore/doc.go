// Package blobstore persists ingested files and their metadata snapshots in
// a SQLite workspace database. Records keep their insertion order across
// updates so the registry can rebuild its list deterministically on restore.
package blobstore
