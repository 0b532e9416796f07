// Package toolschema rewrites JSON Schema trees into the restricted dialect
// accepted by function-calling APIs: references are inlined, validation-only
// keywords are removed or folded into the description, and type names are
// lowercased. The tree is mutated in place.
package toolschema

// Options toggles behaviour beyond the base transform. The zero value
// gives the base transform.
type Options struct {
	// EnsureArrayItems adds an empty "items" schema to array-typed nodes
	// that have none.
	EnsureArrayItems bool
	// KeepPropertyNames treats the keys of "properties" and
	// "patternProperties" as names rather than keywords.
	KeepPropertyNames bool
}

// Normalize flattens references against the root definitions, then cleans
// every node. It never fails; references it had to drop are reported.
func Normalize(value any, opts Options) Report {
	var report Report

	defs := map[string]any{}
	if root, ok := value.(map[string]any); ok {
		defs = extractDefinitions(root)
	}
	newFlattener(defs, opts.KeepPropertyNames, &report).walk(value, "/")

	c := &cleaner{
		ensureArrayItems: opts.EnsureArrayItems,
		keepNames:        opts.KeepPropertyNames,
	}
	c.clean(value)
	return report
}

func isNameMapKey(key string) bool {
	return key == "properties" || key == "patternProperties"
}
