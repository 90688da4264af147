package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"exifstudio/internal/services"
)

// ExportName derives the download name for a file: the base name with a
// _modified suffix, keeping the original extension.
func ExportName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(filepath.Base(name), ext)
	if base == "" {
		base = "file"
	}
	return base + "_modified" + ext
}

// ExportBytes returns the file's export name and a copy of its current
// content without touching disk.
func (s *Session) ExportBytes(id string) (string, []byte, error) {
	file, ok := s.registry.Get(id)
	if !ok {
		return "", nil, fmt.Errorf("unknown file id %s", id)
	}
	content := append([]byte(nil), file.Content...)
	return ExportName(file.Name), content, nil
}

// Export writes the file's current content to destDir under its export
// name. An empty destDir falls back to the configured export directory.
// Returns the written path.
func (s *Session) Export(ctx context.Context, id, destDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file, ok := s.registry.Get(id)
	if !ok {
		return "", fmt.Errorf("unknown file id %s", id)
	}

	if destDir == "" {
		destDir = s.cfg.Paths.ExportDir
	}
	if destDir == "" {
		return "", services.Wrap(services.ErrFileRead, "session", "export", "no export directory configured", nil)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	target := filepath.Join(destDir, ExportName(file.Name))
	if err := os.WriteFile(target, file.Content, 0o644); err != nil {
		s.notifyError(ctx, fmt.Sprintf("Failed to export %s: %v", file.Name, err))
		return "", fmt.Errorf("write export: %w", err)
	}

	s.logger.Info("exported file", slog.String("file_id", id), slog.String("path", target))
	s.notifySuccess(ctx, s.cfg.Notifications.Ingest, fmt.Sprintf("Exported %s", filepath.Base(target)))
	return target, nil
}
