package services

import (
	"encoding/json"
	"fmt"

	"github.com/harivittal/bgai/models"
)

// NormalizeRecord parses one raw document record into a Verse. The corpus was
// exported by several different tools, so records come in a handful of shapes,
// tried in order:
//
//  1. {"type": "document", "page_content": ..., "metadata": {...}}
//  2. {"page_content": ..., "metadata": {...}} regardless of "type"
//  3. {"type": "string", "value": ...}
//
// Anything else is rejected with ErrUnsupportedFormat. A record that matches a
// shape but carries no text is rejected with ErrNoContent. Undecodable bytes
// are rejected with ErrMalformedRecord. Rejection is always an error return,
// never a panic; callers decide whether to skip or abort.
func NormalizeRecord(data []byte) (models.Verse, error) {
	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return models.Verse{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	record, ok := root.(map[string]interface{})
	if !ok {
		return models.Verse{}, fmt.Errorf("%w: root is not an object", ErrUnsupportedFormat)
	}

	var text string
	metadata := map[string]interface{}{}

	switch {
	case record["type"] == "document":
		text, _ = record["page_content"].(string)
		if m, ok := record["metadata"].(map[string]interface{}); ok {
			metadata = m
		}
	case hasKey(record, "page_content"):
		text, _ = record["page_content"].(string)
		if m, ok := record["metadata"].(map[string]interface{}); ok {
			metadata = m
		}
	case record["type"] == "string" && hasKey(record, "value"):
		text, _ = record["value"].(string)
	default:
		return models.Verse{}, fmt.Errorf("%w: unrecognized record shape", ErrUnsupportedFormat)
	}

	if text == "" {
		return models.Verse{}, ErrNoContent
	}

	return models.Verse{Content: text, Metadata: metadata}, nil
}

func hasKey(m map[string]interface{}, key string) bool {
	_, ok := m[key]
	return ok
}
