// Package format classifies incoming files against the supported image MIME
// allow-list. It is a pure pass/reject gate; rejection is a result, not an
// error.
package format
