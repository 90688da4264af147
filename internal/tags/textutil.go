package tags

import (
	"fmt"
	"regexp"
)

var exifDatePattern = regexp.MustCompile(`^(\d{4}):(\d{2}):(\d{2})\s+(\d{2}):(\d{2}):(\d{2})$`)

// NormalizeExifDate rewrites the EXIF timestamp form "2024:01:02 03:04:05"
// into "2024-01-02 03:04:05" for display. Anything else passes through.
func NormalizeExifDate(value string) string {
	m := exifDatePattern.FindStringSubmatch(value)
	if m == nil {
		return value
	}
	return fmt.Sprintf("%s-%s-%s %s:%s:%s", m[1], m[2], m[3], m[4], m[5], m[6])
}

// FormatFileSize renders a byte count in binary units for display.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	units := []string{"B", "KiB", "MiB", "GiB"}
	size := float64(bytes)
	idx := 0
	for size >= 1024 && idx < len(units)-1 {
		size /= 1024
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.2f %s", size, units[idx])
}

// Truncate shortens a string for table cells, appending an ellipsis marker.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
