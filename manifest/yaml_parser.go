package manifest

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// YAMLParser implements Parser for YAML manifests.
type YAMLParser struct{}

// NewYAMLParser creates a new YAMLParser.
func NewYAMLParser() Parser {
	return &YAMLParser{}
}

// Parse unmarshals YAML bytes into a Manifest. Unknown fields are
// rejected so that typos surface instead of silently disabling features.
func (p *YAMLParser) Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("decoding manifest YAML: %w", err)
	}
	return &m, nil
}
