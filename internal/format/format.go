package format

import (
	"net/http"
	"path/filepath"
	"strings"
)

// Info describes the classification of an incoming file.
type Info struct {
	MIMEType  string
	Extension string
	Supported bool
}

var supported = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/heic",
	"image/tiff",
}

var supportedSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(supported))
	for _, mt := range supported {
		set[mt] = struct{}{}
	}
	return set
}()

// extensionTypes maps known file extensions to MIME types. Sniffing cannot
// identify HEIC or TIFF, so the extension mapping carries those.
var extensionTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"heic": "image/heic",
	"heif": "image/heic",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

// SupportedTypes returns the MIME allow-list in stable order.
func SupportedTypes() []string {
	cp := make([]string, len(supported))
	copy(cp, supported)
	return cp
}

// Detect classifies a file by declared MIME type, falling back to the
// extension mapping and then to content sniffing of the first bytes when no
// type is declared. Pure decision, no failure mode: unsupported inputs come
// back with Supported=false.
func Detect(name, mimeType string, head []byte) Info {
	ext := extension(name)

	mt := normalizeType(mimeType)
	if mt == "" {
		mt = extensionTypes[ext]
	}
	if mt == "" && len(head) > 0 {
		mt = normalizeType(http.DetectContentType(head))
	}

	_, ok := supportedSet[mt]
	return Info{MIMEType: mt, Extension: ext, Supported: ok}
}

func normalizeType(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.IndexByte(mt, ';'); idx >= 0 {
		mt = strings.TrimSpace(mt[:idx])
	}
	if mt == "application/octet-stream" {
		return ""
	}
	return mt
}

func extension(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return strings.ToLower(ext)
}
