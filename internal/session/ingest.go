package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"exifstudio/internal/engine"
	"exifstudio/internal/format"
	"exifstudio/internal/registry"
	"exifstudio/internal/services"
	"exifstudio/internal/tags"
)

// FileInput is one candidate file for ingestion.
type FileInput struct {
	Name         string
	Content      []byte
	MIMEType     string
	LastModified time.Time
}

// SkippedFile records why an input was rejected during ingest.
type SkippedFile struct {
	Name   string
	Reason string
}

// IngestResult summarizes one ingest batch.
type IngestResult struct {
	Added   []*registry.File
	Skipped []SkippedFile
}

// IngestBatch processes inputs sequentially. Each input is validated,
// decoded, and persisted independently; one bad file never aborts the rest
// of the batch. Decode failures are not rejections: the file is kept with
// synthetic-only metadata.
func (s *Session) IngestBatch(ctx context.Context, inputs []FileInput) (IngestResult, error) {
	ctx = services.WithWorkflow(ctx, "ingest")
	s.registry.SetLoading(true)
	defer s.registry.SetLoading(false)

	var result IngestResult
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		skip, reason := s.rejectInput(input)
		if skip {
			s.logger.Warn("skipped file", slog.String("file", input.Name), slog.String("reason", reason))
			result.Skipped = append(result.Skipped, SkippedFile{Name: input.Name, Reason: reason})
			s.notifyWarning(ctx, s.cfg.Notifications.Ingest, fmt.Sprintf("Skipped %s: %s", input.Name, reason))
			continue
		}

		file, err := s.ingestOne(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			s.logger.Error("failed to ingest file", slog.String("file", input.Name), slog.String("code", services.Code(err)), slog.Any("error", err))
			result.Skipped = append(result.Skipped, SkippedFile{Name: input.Name, Reason: err.Error()})
			s.notifyError(ctx, fmt.Sprintf("Failed to add %s: %v", input.Name, err))
			continue
		}
		result.Added = append(result.Added, file)
	}

	switch {
	case len(result.Added) > 0:
		s.notifySuccess(ctx, s.cfg.Notifications.Ingest, ingestSummary(result))
	case len(inputs) > 0:
		s.notifyError(ctx, fmt.Sprintf("No files added; %d rejected", len(result.Skipped)))
	}
	return result, nil
}

func (s *Session) rejectInput(input FileInput) (bool, string) {
	info := format.Detect(input.Name, input.MIMEType, head(input.Content))
	if !info.Supported {
		if info.MIMEType == "" {
			return true, "unrecognized file type"
		}
		return true, fmt.Sprintf("unsupported format %s", info.MIMEType)
	}
	if limit := s.cfg.MaxFileSizeBytes(); int64(len(input.Content)) > limit {
		return true, fmt.Sprintf("file exceeds %s limit", tags.FormatFileSize(limit))
	}
	return false, ""
}

func (s *Session) ingestOne(ctx context.Context, input FileInput) (*registry.File, error) {
	info := format.Detect(input.Name, input.MIMEType, head(input.Content))
	lastModified := input.LastModified
	if lastModified.IsZero() {
		lastModified = time.Now()
	}

	meta := engine.FileMeta{Name: input.Name, Size: int64(len(input.Content)), MIMEType: info.MIMEType}
	md, err := s.engine.Read(ctx, input.Content, meta)
	if err != nil {
		return nil, err
	}

	file := &registry.File{
		ID:           registry.NewID(),
		Name:         input.Name,
		Size:         int64(len(input.Content)),
		MIMEType:     info.MIMEType,
		LastModified: lastModified,
		Content:      input.Content,
	}
	if s.cfg.Ingest.Previews && strings.HasPrefix(info.MIMEType, "image/") {
		file.Preview = dataURL(info.MIMEType, input.Content)
	}

	s.cache.Set(file.ID, md)
	if err := s.registry.Add(ctx, file); err != nil {
		s.cache.Delete(file.ID)
		return nil, err
	}

	s.logger.Info("added file",
		slog.String("file_id", file.ID),
		slog.String("file", file.Name),
		slog.String("mime_type", file.MIMEType),
		slog.Int("tags", md.TagCount()))
	return file, nil
}

func ingestSummary(result IngestResult) string {
	if len(result.Skipped) == 0 {
		return fmt.Sprintf("Added %d file(s)", len(result.Added))
	}
	return fmt.Sprintf("Added %d file(s), skipped %d", len(result.Added), len(result.Skipped))
}

func head(content []byte) []byte {
	const sniffLen = 512
	if len(content) > sniffLen {
		return content[:sniffLen]
	}
	return content
}

func dataURL(mimeType string, content []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
}
