package console

import (
	"encoding/json"
	"maps"
)

// DefaultExamples are shown until the server sends its own requestExamples.
func DefaultExamples() map[string]any {
	return map[string]any{
		"post": map[string]any{"name": "Marker", "quantity": 3},
		"put":  map[string]any{"name": "Updated Marker", "quantity": 6},
	}
}

// MergeExamples overlays the server's examples on the defaults, key by key.
func MergeExamples(server map[string]any) map[string]any {
	out := DefaultExamples()
	maps.Copy(out, server)
	return out
}

// ExamplesJSON renders the merged examples as two-space indented JSON.
func ExamplesJSON(server map[string]any) string {
	b, err := json.MarshalIndent(MergeExamples(server), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
