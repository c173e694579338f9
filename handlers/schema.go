package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateSchema derives a Gemini response schema from a Go struct type.
// The result goes into generationConfig.response_schema, which accepts a
// schema object rather than a full JSON Schema document, so the top-level
// $schema marker is stripped.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := json.Marshal(schema)
	if err != nil {
		panic(fmt.Sprintf("schema: marshal %T: %v", v, err))
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("schema: unmarshal %T: %v", v, err))
	}
	delete(out, "$schema")
	return out
}
