package session_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"exifstudio/internal/config"
	"exifstudio/internal/metacache"
	"exifstudio/internal/notifications"
	"exifstudio/internal/services"
	"exifstudio/internal/session"
	"exifstudio/internal/testsupport"
)

type fixture struct {
	cfg      *config.Config
	engine   *testsupport.FakeEngine
	recorder *notifications.Recorder
	sess     *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	eng := &testsupport.FakeEngine{WriteSuffix: []byte("|rewritten")}
	rec := &notifications.Recorder{}
	sess := session.New(cfg, store, session.Options{Engine: eng, Notifier: rec})
	return &fixture{cfg: cfg, engine: eng, recorder: rec, sess: sess}
}

func jpegInput(name string) session.FileInput {
	return session.FileInput{
		Name:     name,
		Content:  []byte(name + "-bytes"),
		MIMEType: "image/jpeg",
	}
}

func hasLevel(events []notifications.Event, level notifications.Level) bool {
	for _, ev := range events {
		if ev.Level == level {
			return true
		}
	}
	return false
}

func TestIngestBatchIsolatesRejections(t *testing.T) {
	f := newFixture(t)
	f.cfg.Ingest.MaxFileSizeMiB = 1
	f.engine.ReadTags = map[string]any{"Make": "Canon"}
	ctx := context.Background()

	inputs := []session.FileInput{
		jpegInput("first.jpg"),
		{Name: "notes.txt", Content: []byte("plain text"), MIMEType: "text/plain"},
		{Name: "huge.jpg", Content: bytes.Repeat([]byte("x"), 2<<20), MIMEType: "image/jpeg"},
		jpegInput("second.jpg"),
	}

	result, err := f.sess.IngestBatch(ctx, inputs)
	if err != nil {
		t.Fatalf("IngestBatch failed: %v", err)
	}
	if len(result.Added) != 2 {
		t.Fatalf("added = %d, want 2", len(result.Added))
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("skipped = %d, want 2", len(result.Skipped))
	}
	if result.Skipped[0].Name != "notes.txt" || !strings.Contains(result.Skipped[0].Reason, "unsupported") {
		t.Fatalf("unexpected skip: %+v", result.Skipped[0])
	}
	if result.Skipped[1].Name != "huge.jpg" || !strings.Contains(result.Skipped[1].Reason, "limit") {
		t.Fatalf("unexpected skip: %+v", result.Skipped[1])
	}

	reg := f.sess.Registry()
	if reg.Len() != 2 {
		t.Fatalf("registry len = %d", reg.Len())
	}
	if reg.SelectedID() != result.Added[0].ID {
		t.Fatal("first added file should be selected")
	}
	if reg.Loading() {
		t.Fatal("loading flag must clear after ingest")
	}

	md, ok := f.sess.Metadata(result.Added[0].ID)
	if !ok || md["Make"] != "Canon" {
		t.Fatalf("metadata missing: %v", md)
	}
	if md[metacache.KeyFileName] != "first.jpg" {
		t.Fatalf("synthetic keys missing: %v", md)
	}

	events := f.recorder.Events()
	if !hasLevel(events, notifications.LevelWarning) {
		t.Fatal("expected warning notifications for skips")
	}
	if !hasLevel(events, notifications.LevelSuccess) {
		t.Fatal("expected success notification for the batch")
	}
}

func TestIngestKeepsFileWhenDecodeDegrades(t *testing.T) {
	f := newFixture(t)
	f.engine.FailRead = true
	ctx := context.Background()

	result, err := f.sess.IngestBatch(ctx, []session.FileInput{jpegInput("broken.jpg")})
	if err != nil {
		t.Fatalf("IngestBatch failed: %v", err)
	}
	if len(result.Added) != 1 || len(result.Skipped) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	md, ok := f.sess.Metadata(result.Added[0].ID)
	if !ok {
		t.Fatal("cache entry missing")
	}
	if md.TagCount() != 0 {
		t.Fatalf("expected synthetic-only metadata, got %v", md)
	}
}

func TestIngestAllRejectedNotifiesError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.sess.IngestBatch(ctx, []session.FileInput{
		{Name: "doc.pdf", Content: []byte("%PDF-1.4"), MIMEType: "application/pdf"},
	})
	if err != nil {
		t.Fatalf("IngestBatch failed: %v", err)
	}
	if len(result.Added) != 0 || len(result.Skipped) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !hasLevel(f.recorder.Events(), notifications.LevelError) {
		t.Fatal("expected error notification when nothing is added")
	}
}

func TestUpdateTagRewritesAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.sess.IngestBatch(ctx, []session.FileInput{jpegInput("a.jpg")})
	if err != nil || len(result.Added) != 1 {
		t.Fatalf("ingest failed: %v %+v", err, result)
	}
	id := result.Added[0].ID

	if err := f.sess.UpdateTag(ctx, id, "Make", "Nikon"); err != nil {
		t.Fatalf("UpdateTag failed: %v", err)
	}

	md, _ := f.sess.Metadata(id)
	if md["Make"] != "Nikon" {
		t.Fatalf("cache not updated: %v", md)
	}
	file, _ := f.sess.Registry().Get(id)
	if !bytes.HasSuffix(file.Content, []byte("|rewritten")) {
		t.Fatalf("content not rewritten: %q", file.Content)
	}
	if f.engine.LastChanges["Make"] != "Nikon" {
		t.Fatalf("engine saw changes %v", f.engine.LastChanges)
	}
	if f.sess.Registry().Loading() {
		t.Fatal("loading flag must clear")
	}
}

func TestUpdateTagRejectsInvalidName(t *testing.T) {
	f := newFixture(t)
	err := f.sess.UpdateTag(context.Background(), "any", "bad tag!", "x")
	if !errors.Is(err, services.ErrTagInvalid) {
		t.Fatalf("expected ErrTagInvalid, got %v", err)
	}
}

func TestUpdateTagPropagatesWriteFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, _ := f.sess.IngestBatch(ctx, []session.FileInput{jpegInput("a.jpg")})
	id := result.Added[0].ID

	f.engine.WriteErr = services.Wrap(services.ErrWrite, "engine", "write", "disk full", nil)
	err := f.sess.UpdateTag(ctx, id, "Make", "Nikon")
	if !errors.Is(err, services.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	if f.sess.Registry().Loading() {
		t.Fatal("loading flag must clear on failure")
	}

	md, _ := f.sess.Metadata(id)
	if _, ok := md["Make"]; ok {
		t.Fatal("cache must not change when the engine write fails")
	}
	if !hasLevel(f.recorder.Events(), notifications.LevelError) {
		t.Fatal("expected error notification")
	}
}

func TestRemoveTagProtectsFileProperties(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, _ := f.sess.IngestBatch(ctx, []session.FileInput{jpegInput("a.jpg")})
	id := result.Added[0].ID

	err := f.sess.RemoveTag(ctx, id, metacache.KeyFileName)
	if !errors.Is(err, services.ErrTagInvalid) {
		t.Fatalf("expected ErrTagInvalid for synthetic key, got %v", err)
	}
}

func TestRemoveTagClearsCacheEntry(t *testing.T) {
	f := newFixture(t)
	f.engine.ReadTags = map[string]any{"Make": "Canon", "Model": "R5"}
	ctx := context.Background()

	result, _ := f.sess.IngestBatch(ctx, []session.FileInput{jpegInput("a.jpg")})
	id := result.Added[0].ID

	if err := f.sess.RemoveTag(ctx, id, "Make"); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	md, _ := f.sess.Metadata(id)
	if _, ok := md["Make"]; ok {
		t.Fatal("tag should be removed from cache")
	}
	if md["Model"] != "R5" {
		t.Fatal("other tags must survive")
	}
	if len(f.engine.ClearedTags) != 1 || f.engine.ClearedTags[0] != "Make" {
		t.Fatalf("engine cleared %v", f.engine.ClearedTags)
	}
}

func TestClearAllTagsKeepsSyntheticKeys(t *testing.T) {
	f := newFixture(t)
	f.engine.ReadTags = map[string]any{"Make": "Canon", "ISO": 100}
	ctx := context.Background()

	result, _ := f.sess.IngestBatch(ctx, []session.FileInput{jpegInput("a.jpg")})
	id := result.Added[0].ID

	if err := f.sess.ClearAllTags(ctx, id); err != nil {
		t.Fatalf("ClearAllTags failed: %v", err)
	}

	md, _ := f.sess.Metadata(id)
	if md.TagCount() != 0 {
		t.Fatalf("engine tags should be cleared: %v", md)
	}
	if md[metacache.KeyFileName] != "a.jpg" {
		t.Fatal("synthetic keys must survive")
	}
	if f.engine.ClearAllHits != 1 {
		t.Fatalf("engine clear-all hits = %d", f.engine.ClearAllHits)
	}
}

func TestExportUsesModifiedSuffix(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, _ := f.sess.IngestBatch(ctx, []session.FileInput{jpegInput("holiday.jpg")})
	id := result.Added[0].ID

	dest := t.TempDir()
	path, err := f.sess.Export(ctx, id, dest)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filepath.Base(path) != "holiday_modified.jpg" {
		t.Fatalf("export name = %q", filepath.Base(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.Equal(content, []byte("holiday.jpg-bytes")) {
		t.Fatalf("unexpected export content: %q", content)
	}
}

func TestExportBytesReturnsCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, _ := f.sess.IngestBatch(ctx, []session.FileInput{jpegInput("a.jpg")})
	id := result.Added[0].ID

	name, content, err := f.sess.ExportBytes(id)
	if err != nil {
		t.Fatalf("ExportBytes failed: %v", err)
	}
	if name != "a_modified.jpg" {
		t.Fatalf("name = %q", name)
	}
	content[0] = 'X'
	file, _ := f.sess.Registry().Get(id)
	if file.Content[0] == 'X' {
		t.Fatal("ExportBytes must return a copy")
	}
}

func TestExportNameEdgeCases(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":        "photo_modified.jpg",
		"archive.tar.tiff": "archive.tar_modified.tiff",
		"noext":            "noext_modified",
		".heic":            "file_modified.heic",
	}
	for input, want := range cases {
		if got := session.ExportName(input); got != want {
			t.Errorf("ExportName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	eng := &testsupport.FakeEngine{ReadTags: map[string]any{"Make": "Canon"}}
	sess := session.New(cfg, store, session.Options{Engine: eng, Notifier: &notifications.Recorder{}})
	ctx := context.Background()

	result, err := sess.IngestBatch(ctx, []session.FileInput{jpegInput("a.jpg"), jpegInput("b.jpg")})
	if err != nil || len(result.Added) != 2 {
		t.Fatalf("ingest failed: %v %+v", err, result)
	}

	fresh := session.New(cfg, store, session.Options{Engine: eng, Notifier: &notifications.Recorder{}})
	if err := fresh.Restore(ctx); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if fresh.Registry().Len() != 2 {
		t.Fatalf("restored %d files", fresh.Registry().Len())
	}
	md, ok := fresh.Metadata(fresh.Registry().List()[0].ID)
	if !ok || md["Make"] != "Canon" {
		t.Fatalf("metadata not restored: %v", md)
	}
}
