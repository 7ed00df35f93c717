package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONParser implements Parser for JSON manifests.
type JSONParser struct{}

// NewJSONParser creates a new JSONParser.
func NewJSONParser() Parser {
	return &JSONParser{}
}

// Parse unmarshals JSON bytes into a Manifest, rejecting unknown fields.
func (p *JSONParser) Parse(data []byte) (*Manifest, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var m Manifest
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest JSON: %w", err)
	}
	return &m, nil
}
