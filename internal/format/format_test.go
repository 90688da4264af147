package format_test

import (
	"testing"

	"exifstudio/internal/format"
)

func TestDetectDeclaredType(t *testing.T) {
	info := format.Detect("a.jpg", "image/jpeg", nil)
	if !info.Supported {
		t.Fatal("jpeg should be supported")
	}
	if info.MIMEType != "image/jpeg" || info.Extension != "jpg" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestDetectRejectsUnsupported(t *testing.T) {
	info := format.Detect("b.xyz", "application/x-thing", nil)
	if info.Supported {
		t.Fatalf("expected rejection, got %+v", info)
	}
	if info.Extension != "xyz" {
		t.Fatalf("extension = %q", info.Extension)
	}
}

func TestDetectFallsBackToExtension(t *testing.T) {
	cases := map[string]string{
		"photo.HEIC": "image/heic",
		"scan.tiff":  "image/tiff",
		"pic.jpeg":   "image/jpeg",
	}
	for name, want := range cases {
		info := format.Detect(name, "", nil)
		if !info.Supported || info.MIMEType != want {
			t.Fatalf("Detect(%q) = %+v, want %s", name, info, want)
		}
	}
}

func TestDetectSniffsContent(t *testing.T) {
	// PNG signature; name carries no extension hint.
	head := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	info := format.Detect("download", "", head)
	if !info.Supported || info.MIMEType != "image/png" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestDetectIgnoresMIMEParams(t *testing.T) {
	info := format.Detect("a.png", "image/png; charset=binary", nil)
	if !info.Supported || info.MIMEType != "image/png" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestDetectTreatsOctetStreamAsUndeclared(t *testing.T) {
	info := format.Detect("a.webp", "application/octet-stream", nil)
	if !info.Supported || info.MIMEType != "image/webp" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestSupportedTypesCopy(t *testing.T) {
	types := format.SupportedTypes()
	if len(types) != 5 {
		t.Fatalf("expected 5 supported types, got %d", len(types))
	}
	types[0] = "mutated"
	if format.SupportedTypes()[0] == "mutated" {
		t.Fatal("SupportedTypes must return a copy")
	}
}
