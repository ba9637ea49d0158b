package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/dealscan/dealscan/internal/fields"
)

// BuildFieldSchema returns a JSON-Schema (draft 2020-12 subset) for a
// sanitized response: every requested field is an optional string and
// nothing else is allowed.
func BuildFieldSchema(specs []fields.Spec) map[string]any {
	props := make(map[string]any, len(specs))
	for _, spec := range specs {
		props[spec.Name] = map[string]any{"type": "string", "minLength": 1}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

// ValidateAgainstFieldSchema validates data against the schema for specs.
func ValidateAgainstFieldSchema(specs []fields.Spec, data []byte) error {
	b, err := json.Marshal(BuildFieldSchema(specs))
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
