package services_test

import (
	"errors"
	"strings"
	"testing"

	"exifstudio/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	underlying := errors.New("exit status 1")
	err := services.Wrap(services.ErrWrite, "engine", "write", "exiftool failed", underlying)
	if !errors.Is(err, services.ErrWrite) {
		t.Fatalf("expected ErrWrite marker, got %v", err)
	}
	if !errors.Is(err, underlying) {
		t.Fatalf("expected underlying error preserved, got %v", err)
	}
	if !strings.Contains(err.Error(), "engine: write: exiftool failed") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestWrapDefaultsToUnknown(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrUnknown) {
		t.Fatalf("expected ErrUnknown fallback, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{services.Wrap(services.ErrEngineInit, "engine", "bootstrap", "", nil), "ENGINE_INIT_FAILED"},
		{services.Wrap(services.ErrFileRead, "session", "ingest", "", nil), "FILE_READ_FAILED"},
		{services.Wrap(services.ErrDecode, "engine", "read", "", nil), "DECODE_FAILED"},
		{services.Wrap(services.ErrWrite, "engine", "write", "", nil), "WRITE_FAILED"},
		{services.Wrap(services.ErrTagInvalid, "session", "tag-update", "", nil), "TAG_INVALID"},
		{services.Wrap(services.ErrFormatUnsupported, "format", "classify", "", nil), "FORMAT_UNSUPPORTED"},
		{errors.New("something else"), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := services.Code(tc.err); got != tc.code {
			t.Fatalf("Code(%v) = %q, want %q", tc.err, got, tc.code)
		}
	}
}
