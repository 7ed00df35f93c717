package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	jsvalidate "github.com/santhosh-tekuri/jsonschema/v5"

	goyaml "github.com/goccy/go-yaml"
)

// schemaURL names the generated schema for error reporting.
const schemaURL = "capgate/manifest.schema.json"

// Schema returns the JSON Schema for Manifest documents, generated from
// the manifest structs.
func Schema() (string, error) {
	reflector := new(jsonschema.Reflector)
	reflector.ExpandedStruct = true

	schema := reflector.Reflect(&Manifest{})
	data, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest schema: %w", err)
	}
	return string(data), nil
}

// ValidateDocument checks a raw manifest document against the generated
// schema before parsing. YAML documents are converted to JSON first.
func ValidateDocument(data []byte, isYAML bool) error {
	schemaStr, err := Schema()
	if err != nil {
		return err
	}

	compiled, err := jsvalidate.CompileString(schemaURL, schemaStr)
	if err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}

	jsonData := data
	if isYAML {
		jsonData, err = goyaml.YAMLToJSON(data)
		if err != nil {
			return fmt.Errorf("converting manifest YAML to JSON: %w", err)
		}
	}

	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("decoding manifest document: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("manifest does not match schema: %w", err)
	}
	return nil
}
