package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/capgate/capgate/registry"
)

// Load reads, validates, and parses the manifest at path. The parser is
// chosen by file extension (.yaml/.yml or .json).
func Load(path string) (*Manifest, error) {
	var parser Parser
	var isYAML bool
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = NewYAMLParser()
		isYAML = true
	case ".json":
		parser = NewJSONParser()
	default:
		return nil, fmt.Errorf("unsupported manifest extension %q (want .yaml, .yml, or .json)", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	if err := ValidateDocument(data, isYAML); err != nil {
		return nil, fmt.Errorf("manifest %q: %w", path, err)
	}

	m, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %q: %w", path, err)
	}
	return m, nil
}

// RegisterAll converts every declaration and registers it with reg.
// Fails on the first invalid declaration or duplicate name; earlier
// registrations from this manifest remain in place.
func RegisterAll(m *Manifest, reg *registry.Registry) error {
	descriptors, err := m.Descriptors()
	if err != nil {
		return err
	}
	for _, desc := range descriptors {
		if err := reg.Register(desc); err != nil {
			return err
		}
	}
	return nil
}
