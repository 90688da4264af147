package engine_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"exifstudio/internal/engine"
	"exifstudio/internal/metacache"
	"exifstudio/internal/services"
)

// stubExiftool writes a shell script standing in for exiftool. It answers the
// version probe, emits a fixed JSON record for reads, and appends a marker to
// the target file for rewrite operations.
func stubExiftool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub binary requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "exiftool")
	script := `#!/bin/sh
if [ "$1" = "-ver" ]; then
    echo "13.10"
    exit 0
fi
for arg in "$@"; do
    last=$arg
done
if [ "$last" = "-" ]; then
    cat > /dev/null
    echo '[{"SourceFile":"-","Make":"Canon","Model":"R5","ISOSpeedRatings":100}]'
    exit 0
fi
printf 'REWRITTEN' >> "$last"
exit 0
`
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestReadParsesAndStripsBookkeepingKeys(t *testing.T) {
	cli := engine.NewCLI(engine.WithBinary(stubExiftool(t)))

	data := []byte("jpeg-bytes")
	meta := engine.FileMeta{Name: "a.jpg", Size: int64(len(data)), MIMEType: "image/jpeg"}
	md, err := cli.Read(context.Background(), data, meta)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if md["Make"] != "Canon" || md["Model"] != "R5" {
		t.Fatalf("unexpected metadata: %v", md)
	}
	if _, ok := md["SourceFile"]; ok {
		t.Fatal("SourceFile must be stripped")
	}
	if md[metacache.KeyFileName] != "a.jpg" || md[metacache.KeyFileSize] != int64(len(data)) {
		t.Fatalf("synthetic keys missing: %v", md)
	}
	if cli.Version() != "13.10" {
		t.Fatalf("version = %q", cli.Version())
	}
}

func TestReadDegradesWhenBinaryMissing(t *testing.T) {
	cli := engine.NewCLI(engine.WithBinary(filepath.Join(t.TempDir(), "no-such-exiftool")))

	meta := engine.FileMeta{Name: "a.jpg", Size: 3, MIMEType: "image/jpeg"}
	md, err := cli.Read(context.Background(), []byte("abc"), meta)
	if err != nil {
		t.Fatalf("Read must not propagate engine failures: %v", err)
	}
	if len(md) != 3 {
		t.Fatalf("expected synthetic-only metadata, got %v", md)
	}
	if md[metacache.KeyFileName] != "a.jpg" {
		t.Fatalf("synthetic keys missing: %v", md)
	}
}

func TestWriteReturnsFreshBuffer(t *testing.T) {
	cli := engine.NewCLI(engine.WithBinary(stubExiftool(t)))

	original := []byte("jpeg-bytes")
	input := append([]byte(nil), original...)
	meta := engine.FileMeta{Name: "a.jpg", Size: int64(len(input)), MIMEType: "image/jpeg"}

	out, err := cli.Write(context.Background(), input, meta, engine.TagChanges{"Model": "R5"})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Equal(input, original) {
		t.Fatal("input buffer was mutated")
	}
	if !bytes.HasSuffix(out, []byte("REWRITTEN")) {
		t.Fatalf("expected rewritten content, got %q", out)
	}
	if !bytes.HasPrefix(out, original) {
		t.Fatalf("expected original content preserved, got %q", out)
	}
}

func TestWriteRequiresChanges(t *testing.T) {
	cli := engine.NewCLI(engine.WithBinary(stubExiftool(t)))
	meta := engine.FileMeta{Name: "a.jpg"}
	if _, err := cli.Write(context.Background(), []byte("x"), meta, nil); !errors.Is(err, services.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
}

func TestWriteFailsWithEngineInitWhenBinaryMissing(t *testing.T) {
	cli := engine.NewCLI(engine.WithBinary(filepath.Join(t.TempDir(), "no-such-exiftool")))
	meta := engine.FileMeta{Name: "a.jpg"}
	_, err := cli.Write(context.Background(), []byte("x"), meta, engine.TagChanges{"Model": "R5"})
	if !errors.Is(err, services.ErrEngineInit) {
		t.Fatalf("expected ErrEngineInit, got %v", err)
	}
}

func TestClearTagAndClearAll(t *testing.T) {
	cli := engine.NewCLI(engine.WithBinary(stubExiftool(t)))
	meta := engine.FileMeta{Name: "a.jpg"}

	out, err := cli.ClearTag(context.Background(), []byte("data"), meta, "Make")
	if err != nil {
		t.Fatalf("ClearTag failed: %v", err)
	}
	if !bytes.HasSuffix(out, []byte("REWRITTEN")) {
		t.Fatalf("unexpected content: %q", out)
	}

	out, err = cli.ClearAll(context.Background(), []byte("data"), meta)
	if err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if !bytes.HasSuffix(out, []byte("REWRITTEN")) {
		t.Fatalf("unexpected content: %q", out)
	}
}
