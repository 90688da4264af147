package engine

import (
	"context"

	"exifstudio/internal/metacache"
)

// FileMeta carries the source file attributes the engine needs alongside raw
// bytes: the name drives temp-file extensions and the synthetic metadata keys.
type FileMeta struct {
	Name     string
	Size     int64
	MIMEType string
}

// TagChanges maps tag names to their new values for a write operation.
type TagChanges map[string]any

// Client defines metadata engine behaviour. All byte-producing operations are
// pure with respect to the input buffer: callers' bytes are never mutated and
// results are always fresh buffers.
type Client interface {
	// Read decodes metadata from raw bytes. Engine failures do not propagate:
	// the result degrades to the synthetic-only entry and the cause is logged,
	// so one corrupt file never aborts a batch.
	Read(ctx context.Context, data []byte, meta FileMeta) (metacache.Metadata, error)
	// Write applies tag changes and returns the full new content, or an error.
	Write(ctx context.Context, data []byte, meta FileMeta, changes TagChanges) ([]byte, error)
	// ClearTag removes a single tag and returns the full new content.
	ClearTag(ctx context.Context, data []byte, meta FileMeta, tagName string) ([]byte, error)
	// ClearAll strips every writable tag and returns the full new content.
	ClearAll(ctx context.Context, data []byte, meta FileMeta) ([]byte, error)
}
