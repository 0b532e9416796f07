package toolschema

import (
	"strings"

	"github.com/quailyquaily/toolschema/internal/jsonx"
)

// validationKeywords are softened into the description, in this order.
var validationKeywords = []struct {
	key   string
	label string
}{
	{"minLength", "minLen"},
	{"maxLength", "maxLen"},
	{"minimum", "min"},
	{"maximum", "max"},
	{"minItems", "minItems"},
	{"maxItems", "maxItems"},
	{"exclusiveMinimum", "exclMin"},
	{"exclusiveMaximum", "exclMax"},
	{"multipleOf", "multipleOf"},
	{"pattern", "pattern"},
}

var strippedKeywords = []string{
	"$schema",
	"additionalProperties",
	"enumCaseInsensitive",
	"enumNormalizeWhitespace",
	"uniqueItems",
	"format",
	"default",
}

type cleaner struct {
	ensureArrayItems bool
	keepNames        bool
}

func (c *cleaner) clean(value any) {
	switch node := value.(type) {
	case map[string]any:
		c.cleanMap(node)
	case []any:
		for _, item := range node {
			c.clean(item)
		}
	}
}

func (c *cleaner) cleanMap(node map[string]any) {
	softenConstraints(node)
	for _, key := range strippedKeywords {
		delete(node, key)
	}
	lowercaseType(node)
	if c.ensureArrayItems {
		ensureItems(node)
	}

	for key, child := range node {
		if c.keepNames && isNameMapKey(key) {
			if names, ok := child.(map[string]any); ok {
				for _, sub := range names {
					c.clean(sub)
				}
				continue
			}
		}
		c.clean(child)
	}
}

// softenConstraints moves validation keywords into a description suffix
// such as " [Validation: minLen: 1, pattern: \"^a\"]".
func softenConstraints(node map[string]any) {
	var constraints []string
	for _, kw := range validationKeywords {
		value, ok := node[kw.key]
		if !ok {
			continue
		}
		delete(node, kw.key)
		constraints = append(constraints, kw.label+": "+jsonx.Render(value))
	}
	if len(constraints) == 0 {
		return
	}

	suffix := " [Validation: " + strings.Join(constraints, ", ") + "]"
	desc, ok := node["description"]
	if !ok {
		node["description"] = suffix
		return
	}
	// a non-string description is left as is
	if s, ok := desc.(string); ok {
		node["description"] = s + suffix
	}
}

func lowercaseType(node map[string]any) {
	switch t := node["type"].(type) {
	case string:
		node["type"] = strings.ToLower(t)
	case []any:
		for i, item := range t {
			if s, ok := item.(string); ok {
				t[i] = strings.ToLower(s)
			}
		}
	case []string:
		for i, s := range t {
			t[i] = strings.ToLower(s)
		}
	}
}

func ensureItems(node map[string]any) {
	if !includesArrayType(node["type"]) {
		return
	}
	if items, ok := node["items"]; !ok || items == nil {
		node["items"] = map[string]any{}
	}
}

func includesArrayType(value any) bool {
	switch t := value.(type) {
	case string:
		return t == "array"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "array" {
				return true
			}
		}
	case []string:
		for _, item := range t {
			if item == "array" {
				return true
			}
		}
	}
	return false
}
