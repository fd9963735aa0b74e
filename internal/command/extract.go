package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when model output holds no brace-delimited span.
var ErrNoJSON = errors.New("no JSON found in model response")

// ExtractJSON parses the span from the first '{' to the last '}' of text.
// Braces in prose outside the object corrupt the span; that is accepted.
func ExtractJSON(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSON
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("json.Unmarshal failed: %w", err)
	}

	return out, nil
}

// Classify extracts the intent and details from model output.
func Classify(text string) (Classification, error) {
	obj, err := ExtractJSON(text)
	if err != nil {
		return Classification{}, err
	}

	intent, _ := obj["intent"].(string)

	return Classification{Intent: Intent(intent), Raw: obj["intent"], Details: obj["details"], Object: obj}, nil
}
