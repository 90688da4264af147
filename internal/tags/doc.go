// Package tags holds presentation and validation helpers for metadata fields:
// grouping, display names, EXIF date normalization, and the tag-name rules the
// engine boundary enforces.
package tags
