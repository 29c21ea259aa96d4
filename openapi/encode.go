package openapi

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// EncodeYAML encodes a plain document as YAML with two-space indentation.
// Map keys are written in sorted order.
func EncodeYAML(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJSON encodes a plain document as indented JSON.
func EncodeJSON(doc map[string]any) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
