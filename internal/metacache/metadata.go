package metacache

// Synthetic keys always present in a file's metadata. They carry attributes of
// the originating file rather than engine-provided tags and survive every
// clear operation.
const (
	KeyFileName = "fileName"
	KeyFileSize = "fileSize"
	KeyMIMEType = "mimeType"
)

// Metadata maps tag names to values for one file, including the synthetic keys.
type Metadata map[string]any

// New builds the synthetic-only default metadata for a file. This is also the
// shape a failed decode degrades to.
func New(fileName string, fileSize int64, mimeType string) Metadata {
	return Metadata{
		KeyFileName: fileName,
		KeyFileSize: fileSize,
		KeyMIMEType: mimeType,
	}
}

// IsSynthetic reports whether a key is one of the protected synthetic keys.
func IsSynthetic(key string) bool {
	switch key {
	case KeyFileName, KeyFileSize, KeyMIMEType:
		return true
	default:
		return false
	}
}

// Clone returns an independent copy of the metadata.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	cp := make(Metadata, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// TagCount returns the number of engine-provided tags, excluding synthetic keys.
func (m Metadata) TagCount() int {
	count := 0
	for k := range m {
		if !IsSynthetic(k) {
			count++
		}
	}
	return count
}
