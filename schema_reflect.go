package toolschema

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/quailyquaily/toolschema/internal/jsonx"
)

// reflector keeps nested structs as $defs references; Normalize inlines them.
var reflector = &jsonschema.Reflector{
	ExpandedStruct: true,
}

// SchemaFor reflects T into a JSON Schema and returns it normalized.
// Fields use json and jsonschema struct tags.
func SchemaFor[T any]() (map[string]any, Report, error) {
	var zero T
	return defaultNormalizer.SchemaOf(&zero)
}

// SchemaOf reflects the type of v into a JSON Schema and returns it normalized.
func (n *Normalizer) SchemaOf(v any) (map[string]any, Report, error) {
	data, err := jsonx.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, Report{}, fmt.Errorf("marshal reflected schema: %w", err)
	}
	schema, err := jsonx.DecodeObject(data)
	if err != nil {
		return nil, Report{}, fmt.Errorf("decode reflected schema: %w", err)
	}
	report := n.Normalize(schema)
	return schema, report, nil
}
