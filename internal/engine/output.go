package engine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseReadOutput extracts the first record from exiftool's JSON array,
// dropping bookkeeping keys the engine adds about its own invocation.
func parseReadOutput(out []byte) (map[string]any, error) {
	var records []map[string]any
	if err := json.Unmarshal(out, &records); err != nil {
		return nil, fmt.Errorf("unmarshal engine output: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("engine produced no records")
	}

	clean := make(map[string]any, len(records[0]))
	for key, value := range records[0] {
		if strings.HasPrefix(key, "SourceFile") || strings.HasPrefix(key, "Error") || strings.HasPrefix(key, "Warning") {
			continue
		}
		clean[key] = value
	}
	return clean, nil
}
