package testsupport

import (
	"context"
	"sync"

	"exifstudio/internal/engine"
	"exifstudio/internal/metacache"
)

// FakeEngine is a scriptable engine.Client for tests. The zero value behaves
// like a healthy engine that reads no tags and passes content through writes
// unchanged.
type FakeEngine struct {
	mu sync.Mutex

	// ReadTags are merged into every successful read result.
	ReadTags map[string]any
	// FailRead makes Read return synthetic-only metadata, mimicking a
	// degraded engine.
	FailRead bool
	// WriteErr is returned from Write, ClearTag, and ClearAll when set.
	WriteErr error
	// WriteSuffix is appended to content returned from write operations.
	WriteSuffix []byte

	ReadCalls    int
	WriteCalls   int
	LastChanges  engine.TagChanges
	ClearedTags  []string
	ClearAllHits int
}

var _ engine.Client = (*FakeEngine)(nil)

func (f *FakeEngine) Read(ctx context.Context, content []byte, meta engine.FileMeta) (metacache.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReadCalls++

	md := metacache.New(meta.Name, meta.Size, meta.MIMEType)
	if f.FailRead {
		return md, nil
	}
	for name, value := range f.ReadTags {
		md[name] = value
	}
	return md, nil
}

func (f *FakeEngine) Write(ctx context.Context, content []byte, meta engine.FileMeta, changes engine.TagChanges) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WriteCalls++
	f.LastChanges = changes
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	return f.rewritten(content), nil
}

func (f *FakeEngine) ClearTag(ctx context.Context, content []byte, meta engine.FileMeta, tagName string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearedTags = append(f.ClearedTags, tagName)
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	return f.rewritten(content), nil
}

func (f *FakeEngine) ClearAll(ctx context.Context, content []byte, meta engine.FileMeta) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearAllHits++
	if f.WriteErr != nil {
		return nil, f.WriteErr
	}
	return f.rewritten(content), nil
}

func (f *FakeEngine) rewritten(content []byte) []byte {
	out := append([]byte(nil), content...)
	return append(out, f.WriteSuffix...)
}
