package metacache

import "sync"

// Cache is the in-memory mapping from file id to decoded metadata. An entry
// exists exactly when the file has been decoded at least once; a failed decode
// still yields a synthetic-only entry, never a missing one.
type Cache struct {
	mu   sync.RWMutex
	data map[string]Metadata
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string]Metadata)}
}

// Set replaces the metadata entry for a file id, as happens after a decode.
func (c *Cache) Set(id string, md Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[id] = md.Clone()
}

// Get returns a copy of the metadata for a file id.
func (c *Cache) Get(id string) (Metadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	md, ok := c.data[id]
	if !ok {
		return nil, false
	}
	return md.Clone(), true
}

// UpdateTag upserts one tag in place. Missing entries are a no-op, not an
// error: callers are expected to have decoded first.
func (c *Cache) UpdateTag(id, name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if md, ok := c.data[id]; ok {
		md[name] = value
	}
}

// RemoveTag deletes one tag in place. Removing an absent tag is a no-op, and
// the synthetic keys are never removable through this path.
func (c *Cache) RemoveTag(id, name string) {
	if IsSynthetic(name) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if md, ok := c.data[id]; ok {
		delete(md, name)
	}
}

// ClearAllTags deletes every engine-provided tag for a file id. The synthetic
// keys survive.
func (c *Cache) ClearAllTags(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	md, ok := c.data[id]
	if !ok {
		return
	}
	for key := range md {
		if !IsSynthetic(key) {
			delete(md, key)
		}
	}
}

// Delete removes a file's entry entirely.
func (c *Cache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, id)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]Metadata)
}

// Restore replaces the cache contents wholesale, as happens when reloading
// persisted state at startup.
func (c *Cache) Restore(entries map[string]Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]Metadata, len(entries))
	for id, md := range entries {
		c.data[id] = md.Clone()
	}
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
