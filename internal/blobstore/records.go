package blobstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"exifstudio/internal/metacache"
)

// ErrNotFound indicates no record exists for the requested file id.
var ErrNotFound = errors.New("file record not found")

// Record is the durable form of an ingested file. Content holds the raw
// bytes; Metadata mirrors the cache entry current at persist time.
type Record struct {
	ID           string
	Name         string
	Size         int64
	MIMEType     string
	LastModified time.Time
	Content      []byte
	Preview      string
	Metadata     metacache.Metadata
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const recordColumns = "id, name, size, mime_type, last_modified, content, preview, metadata_json, created_at, updated_at"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Put inserts the record or replaces an existing one with the same id.
// Replacing keeps the record's original position in List order.
func (s *Store) Put(ctx context.Context, rec *Record) error {
	if rec == nil {
		return errors.New("record is nil")
	}
	if rec.ID == "" {
		return errors.New("record id is empty")
	}

	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata for %s: %w", rec.ID, err)
	}
	compressed := s.enc.EncodeAll(rec.Content, nil)

	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err = s.execWithRetry(ctx, `
INSERT INTO files (`+recordColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    size = excluded.size,
    mime_type = excluded.mime_type,
    last_modified = excluded.last_modified,
    content = excluded.content,
    preview = excluded.preview,
    metadata_json = excluded.metadata_json,
    updated_at = excluded.updated_at`,
		rec.ID, rec.Name, rec.Size, rec.MIMEType, formatTime(rec.LastModified),
		compressed, rec.Preview, string(metadataJSON),
		formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt))
	if err != nil {
		return fmt.Errorf("persist record %s: %w", rec.ID, err)
	}
	return nil
}

// Get loads a single record by id. Returns ErrNotFound when absent.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM files WHERE id = ?", id)
	rec, err := s.scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

// List returns all records in insertion order.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM files ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Delete removes the record with the given id. Deleting a missing id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.execWithRetry(ctx, "DELETE FROM files WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// Clear removes every record.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.execWithRetry(ctx, "DELETE FROM files"); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// Count reports the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM files").Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRecord(row rowScanner) (*Record, error) {
	var (
		rec          Record
		lastModified string
		compressed   []byte
		metadataJSON string
		createdAt    string
		updatedAt    string
	)
	err := row.Scan(&rec.ID, &rec.Name, &rec.Size, &rec.MIMEType, &lastModified,
		&compressed, &rec.Preview, &metadataJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	content, err := s.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress content for %s: %w", rec.ID, err)
	}
	rec.Content = content

	if err := json.Unmarshal([]byte(metadataJSON), &rec.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata for %s: %w", rec.ID, err)
	}

	rec.LastModified = parseTime(lastModified)
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)
	return &rec, nil
}
