package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor renders the JSON schema of T as a compact string, suitable
// for embedding in a prompt so the model is instructed with the exact
// field contract the validator will enforce.
func SchemaFor[T any]() (string, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var v T
	schema := reflector.Reflect(v)

	b, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}

	return string(b), nil
}

// MustSchemaFor is SchemaFor for schemas built from static types, where
// reflection cannot fail at runtime.
func MustSchemaFor[T any]() string {
	s, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return s
}
