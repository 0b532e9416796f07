// Package toolschema normalizes JSON Schema documents for function-calling
// APIs that reject $ref indirection, validation-only keywords and mixed-case
// type names. Schemas are the generic trees produced by JSON decoding and
// are rewritten in place.
package toolschema

import (
	"github.com/quailyquaily/toolschema/internal/diag"
	ts "github.com/quailyquaily/toolschema/internal/toolschema"
)

type Normalizer struct {
	cfg Config
}

func New(cfg Config) *Normalizer {
	return &Normalizer{cfg: cfg.withDefaults()}
}

var defaultNormalizer = New(Config{})

// Default returns the normalizer used by the package-level functions.
func Default() *Normalizer {
	return defaultNormalizer
}

// Normalize rewrites schema in place. It never fails: references that cannot
// be inlined are dropped.
func Normalize(schema any) {
	defaultNormalizer.Normalize(schema)
}

// NormalizeWithReport is Normalize, returning what had to be dropped.
func NormalizeWithReport(schema any) Report {
	return defaultNormalizer.Normalize(schema)
}

// Normalize rewrites schema in place and reports dropped references.
// A nil Normalizer behaves like Default().
func (n *Normalizer) Normalize(schema any) Report {
	cfg := n.config()
	diag.LogJSON(cfg.Debug, cfg.DebugFn, "toolschema.input", schema)

	report := ts.Normalize(schema, ts.Options{
		EnsureArrayItems:  cfg.EnsureArrayItems,
		KeepPropertyNames: cfg.KeepPropertyNames,
	})

	diag.LogJSON(cfg.Debug, cfg.DebugFn, "toolschema.output", schema)
	for _, issue := range report.Issues {
		diag.LogText(cfg.Debug, cfg.DebugFn, "toolschema.issue", issue.String())
	}
	return report
}

// Config returns a copy of the effective configuration.
func (n *Normalizer) Config() Config {
	return n.config()
}

func (n *Normalizer) config() Config {
	if n == nil {
		return defaultNormalizer.cfg
	}
	return n.cfg
}
