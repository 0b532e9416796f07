package toolschema

import "github.com/quailyquaily/toolschema/chat"

// DebugFn receives labelled debug payloads.
type DebugFn = chat.DebugFn

// Config provides shared configuration for a Normalizer.
// The zero value normalizes exactly as the package-level Normalize.
type Config struct {
	Debug   bool
	DebugFn DebugFn

	// EnsureArrayItems gives array-typed schemas without "items" an empty one.
	EnsureArrayItems bool
	// KeepPropertyNames keeps property names that collide with removed keywords.
	KeepPropertyNames bool
	// RepairJSON retries undecodable payloads once through a JSON repairer.
	RepairJSON bool

	// ToolSchemaPaths are the gjson paths, relative to each entry of a request
	// body's "tools" array, that hold a parameter schema.
	ToolSchemaPaths []string
}

// DefaultToolSchemaPaths cover OpenAI chat/responses and Anthropic tool entries.
// Gemini functionDeclarations are always handled.
var DefaultToolSchemaPaths = []string{
	"function.parameters",
	"parameters",
	"input_schema",
}

func (cfg Config) withDefaults() Config {
	if len(cfg.ToolSchemaPaths) == 0 {
		cfg.ToolSchemaPaths = DefaultToolSchemaPaths
	}
	return cfg
}
