package session

import (
	"context"
	"fmt"
	"log/slog"

	"exifstudio/internal/engine"
	"exifstudio/internal/metacache"
	"exifstudio/internal/services"
	"exifstudio/internal/tags"
)

// UpdateTag writes one tag value into the file's content and refreshes the
// cache entry. The rewritten bytes are persisted before the call returns.
func (s *Session) UpdateTag(ctx context.Context, id, name string, value any) error {
	if err := tags.Validate(name); err != nil {
		return err
	}

	ctx = services.WithWorkflow(services.WithFileID(ctx, id), "tag-update")
	s.registry.SetLoading(true)
	defer s.registry.SetLoading(false)

	file, ok := s.registry.Get(id)
	if !ok {
		return fmt.Errorf("unknown file id %s", id)
	}

	meta := engine.FileMeta{Name: file.Name, Size: file.Size, MIMEType: file.MIMEType}
	content, err := s.engine.Write(ctx, file.Content, meta, engine.TagChanges{name: value})
	if err != nil {
		s.notifyError(ctx, fmt.Sprintf("Failed to update %s on %s: %v", name, file.Name, err))
		return err
	}

	s.cache.UpdateTag(id, name, value)
	if err := s.registry.UpdateContent(ctx, id, content); err != nil {
		return err
	}

	s.logger.Info("updated tag", slog.String("file_id", id), slog.String("tag", name))
	s.notifySuccess(ctx, s.cfg.Notifications.Tags, fmt.Sprintf("Updated %s for %s", name, file.Name))
	return nil
}

// RemoveTag clears one tag from the file's content and cache entry. The
// synthetic keys cannot be removed.
func (s *Session) RemoveTag(ctx context.Context, id, name string) error {
	if err := tags.Validate(name); err != nil {
		return err
	}
	if metacache.IsSynthetic(name) {
		return services.Wrap(services.ErrTagInvalid, "session", "remove-tag", fmt.Sprintf("%s is a file property, not a removable tag", name), nil)
	}

	ctx = services.WithWorkflow(services.WithFileID(ctx, id), "tag-remove")
	s.registry.SetLoading(true)
	defer s.registry.SetLoading(false)

	file, ok := s.registry.Get(id)
	if !ok {
		return fmt.Errorf("unknown file id %s", id)
	}

	meta := engine.FileMeta{Name: file.Name, Size: file.Size, MIMEType: file.MIMEType}
	content, err := s.engine.ClearTag(ctx, file.Content, meta, name)
	if err != nil {
		s.notifyError(ctx, fmt.Sprintf("Failed to remove %s from %s: %v", name, file.Name, err))
		return err
	}

	s.cache.RemoveTag(id, name)
	if err := s.registry.UpdateContent(ctx, id, content); err != nil {
		return err
	}

	s.logger.Info("removed tag", slog.String("file_id", id), slog.String("tag", name))
	s.notifySuccess(ctx, s.cfg.Notifications.Tags, fmt.Sprintf("Removed %s from %s", name, file.Name))
	return nil
}

// ClearAllTags strips every writable tag from the file. The synthetic keys
// survive in the cache entry.
func (s *Session) ClearAllTags(ctx context.Context, id string) error {
	ctx = services.WithWorkflow(services.WithFileID(ctx, id), "tag-clear")
	s.registry.SetLoading(true)
	defer s.registry.SetLoading(false)

	file, ok := s.registry.Get(id)
	if !ok {
		return fmt.Errorf("unknown file id %s", id)
	}

	meta := engine.FileMeta{Name: file.Name, Size: file.Size, MIMEType: file.MIMEType}
	content, err := s.engine.ClearAll(ctx, file.Content, meta)
	if err != nil {
		s.notifyError(ctx, fmt.Sprintf("Failed to clear tags from %s: %v", file.Name, err))
		return err
	}

	s.cache.ClearAllTags(id)
	if err := s.registry.UpdateContent(ctx, id, content); err != nil {
		return err
	}

	s.logger.Info("cleared all tags", slog.String("file_id", id))
	s.notifySuccess(ctx, s.cfg.Notifications.Tags, fmt.Sprintf("Cleared all tags from %s", file.Name))
	return nil
}
