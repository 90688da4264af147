package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"exifstudio/internal/blobstore"
	"exifstudio/internal/metacache"
)

// File is an in-memory record of an ingested file.
type File struct {
	ID           string
	Name         string
	Size         int64
	MIMEType     string
	LastModified time.Time
	Content      []byte
	Preview      string
}

// Registry tracks ingested files in insertion order together with the
// current selection. Mutations are written through to the store; a store
// failure is logged and the in-memory state kept authoritative for the
// session.
type Registry struct {
	mu         sync.RWMutex
	files      []*File
	selectedID string
	loading    bool
	restored   bool

	store  *blobstore.Store
	cache  *metacache.Cache
	logger *slog.Logger
}

// New creates a registry backed by the given store and metadata cache.
func New(store *blobstore.Store, cache *metacache.Cache, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		store:  store,
		cache:  cache,
		logger: logger.With(slog.String("component", "registry")),
	}
}

// NewID returns a fresh unique file id.
func NewID() string {
	return uuid.NewString()
}

// Add appends the file and persists it together with its current cache
// metadata. The first file added to an empty registry becomes selected.
func (r *Registry) Add(ctx context.Context, file *File) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}
	if file.ID == "" {
		return fmt.Errorf("file id is empty")
	}

	r.mu.Lock()
	if _, idx := r.lookupLocked(file.ID); idx >= 0 {
		r.files[idx] = file
	} else {
		r.files = append(r.files, file)
	}
	if r.selectedID == "" {
		r.selectedID = file.ID
	}
	r.mu.Unlock()

	r.persist(ctx, file)
	return nil
}

// Select marks the file with the given id as the active one.
func (r *Registry) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, idx := r.lookupLocked(id); idx < 0 {
		return fmt.Errorf("unknown file id %s", id)
	}
	r.selectedID = id
	return nil
}

// Remove drops the file from the registry, cache, and store. When the
// removed file was selected, selection moves to the first remaining file.
func (r *Registry) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	_, idx := r.lookupLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("unknown file id %s", id)
	}
	r.files = append(r.files[:idx], r.files[idx+1:]...)
	if r.selectedID == id {
		r.selectedID = ""
		if len(r.files) > 0 {
			r.selectedID = r.files[0].ID
		}
	}
	r.mu.Unlock()

	r.cache.Delete(id)
	if err := r.store.Delete(ctx, id); err != nil {
		r.logger.Warn("failed to delete stored file", slog.String("file_id", id), slog.Any("error", err))
	}
	return nil
}

// Clear removes every file and resets selection.
func (r *Registry) Clear(ctx context.Context) {
	r.mu.Lock()
	r.files = nil
	r.selectedID = ""
	r.mu.Unlock()

	r.cache.Clear()
	if err := r.store.Clear(ctx); err != nil {
		r.logger.Warn("failed to clear stored files", slog.Any("error", err))
	}
}

// UpdateContent replaces the file's raw bytes after a metadata rewrite and
// persists the new state.
func (r *Registry) UpdateContent(ctx context.Context, id string, content []byte) error {
	r.mu.Lock()
	file, idx := r.lookupLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("unknown file id %s", id)
	}
	file.Content = content
	file.Size = int64(len(content))
	snapshot := *file
	r.mu.Unlock()

	r.persist(ctx, &snapshot)
	return nil
}

// Restore rebuilds the registry and metadata cache from the store. It runs
// at most once per registry; later calls are no-ops.
func (r *Registry) Restore(ctx context.Context) error {
	r.mu.Lock()
	if r.restored {
		r.mu.Unlock()
		return nil
	}
	r.restored = true
	r.mu.Unlock()

	records, err := r.store.List(ctx)
	if err != nil {
		return fmt.Errorf("restore files: %w", err)
	}

	files := make([]*File, 0, len(records))
	entries := make(map[string]metacache.Metadata, len(records))
	for _, rec := range records {
		files = append(files, &File{
			ID:           rec.ID,
			Name:         rec.Name,
			Size:         rec.Size,
			MIMEType:     rec.MIMEType,
			LastModified: rec.LastModified,
			Content:      rec.Content,
			Preview:      rec.Preview,
		})
		if rec.Metadata != nil {
			entries[rec.ID] = rec.Metadata
		}
	}
	r.cache.Restore(entries)

	r.mu.Lock()
	r.files = files
	r.selectedID = ""
	if len(files) > 0 {
		r.selectedID = files[0].ID
	}
	r.mu.Unlock()

	r.logger.Info("restored workspace", slog.Int("files", len(files)))
	return nil
}

// Get returns the file with the given id.
func (r *Registry) Get(id string) (*File, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, idx := r.lookupLocked(id)
	if idx < 0 {
		return nil, false
	}
	return file, true
}

// Selected returns the currently selected file, if any.
func (r *Registry) Selected() (*File, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.selectedID == "" {
		return nil, false
	}
	file, idx := r.lookupLocked(r.selectedID)
	if idx < 0 {
		return nil, false
	}
	return file, true
}

// SelectedID returns the id of the selected file, or "".
func (r *Registry) SelectedID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selectedID
}

// List returns the files in insertion order.
func (r *Registry) List() []*File {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*File, len(r.files))
	copy(out, r.files)
	return out
}

// Len reports the number of files.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.files)
}

// SetLoading toggles the busy flag covering ingest and tag workflows.
func (r *Registry) SetLoading(loading bool) {
	r.mu.Lock()
	r.loading = loading
	r.mu.Unlock()
}

// Loading reports whether a workflow is in flight.
func (r *Registry) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

func (r *Registry) lookupLocked(id string) (*File, int) {
	for i, file := range r.files {
		if file.ID == id {
			return file, i
		}
	}
	return nil, -1
}

func (r *Registry) persist(ctx context.Context, file *File) {
	metadata, _ := r.cache.Get(file.ID)
	rec := &blobstore.Record{
		ID:           file.ID,
		Name:         file.Name,
		Size:         file.Size,
		MIMEType:     file.MIMEType,
		LastModified: file.LastModified,
		Content:      file.Content,
		Preview:      file.Preview,
		Metadata:     metadata,
	}
	if err := r.store.Put(ctx, rec); err != nil {
		r.logger.Warn("failed to persist file", slog.String("file_id", file.ID), slog.Any("error", err))
	}
}
