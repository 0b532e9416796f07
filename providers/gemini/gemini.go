// Package gemini maps function tools onto Gemini function declarations,
// both as REST payload maps and as google.golang.org/genai values.
package gemini

import (
	"strings"

	"github.com/lyricat/goutils/structs"
	"github.com/quailyquaily/toolschema"
	"github.com/quailyquaily/toolschema/chat"
	"github.com/quailyquaily/toolschema/internal/jsonx"
	"google.golang.org/genai"
)

// Gemini rejects array schemas without items.
var defaultNormalizer = toolschema.New(toolschema.Config{EnsureArrayItems: true})

type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations,omitempty"`
}

type FunctionDeclaration struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

// Declarations normalizes the parameters of every function tool and wraps
// them into a single Gemini tool. Issue paths are prefixed with the
// function name. A nil n uses a normalizer that fills in array items.
func Declarations(tools []chat.Tool, n *toolschema.Normalizer) ([]Tool, toolschema.Report, error) {
	var report toolschema.Report
	decls := make([]FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		if !tool.IsFunction() {
			continue
		}
		params, sub, err := normalizedParameters(tool, n)
		if err != nil {
			return nil, report, err
		}
		report.Append(sub)
		decls = append(decls, FunctionDeclaration{
			Name:        tool.Function.Name,
			Description: tool.Function.Description,
			Parameters:  toGeminiSchema(params),
		})
	}

	if len(decls) == 0 {
		return nil, report, nil
	}
	return []Tool{{FunctionDeclarations: decls}}, report, nil
}

// GenAITools is Declarations for the genai SDK.
func GenAITools(tools []chat.Tool, n *toolschema.Normalizer) ([]*genai.Tool, toolschema.Report, error) {
	var report toolschema.Report
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		if !tool.IsFunction() {
			continue
		}
		params, sub, err := normalizedParameters(tool, n)
		if err != nil {
			return nil, report, err
		}
		report.Append(sub)
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Function.Name,
			Description: tool.Function.Description,
			Parameters:  ToGenAISchema(params),
		})
	}

	if len(decls) == 0 {
		return nil, report, nil
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}, report, nil
}

func normalizedParameters(tool chat.Tool, n *toolschema.Normalizer) (map[string]any, toolschema.Report, error) {
	if n == nil {
		n = defaultNormalizer
	}
	params, err := tool.Parameters()
	if err != nil {
		return nil, toolschema.Report{}, err
	}
	if params == nil {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, toolschema.Report{}, nil
	}
	report := n.Normalize(params)
	return params, report.Prefixed(toolschema.Pointer("/", tool.Function.Name)), nil
}

// ResponseSchema reads "response_schema" from an option bag, given as an
// object, an array or a JSON string, and returns it normalized in Gemini
// form. It returns nil when the option is absent or cannot be decoded.
// The option bag is left untouched.
func ResponseSchema(opts structs.JSONMap, n *toolschema.Normalizer) (any, toolschema.Report) {
	if len(opts) == 0 {
		return nil, toolschema.Report{}
	}
	if n == nil {
		n = defaultNormalizer
	}
	if !opts.HasKey("response_schema") {
		return nil, toolschema.Report{}
	}

	var schema any
	switch v := opts["response_schema"].(type) {
	case map[string]any:
		schema = jsonx.Clone(v)
	case structs.JSONMap:
		schema = jsonx.Clone(map[string]any(v))
	case []any:
		schema = jsonx.Clone(v)
	case string:
		if strings.TrimSpace(v) == "" {
			break
		}
		decoded, err := n.Decode([]byte(v))
		if err != nil {
			return nil, toolschema.Report{}
		}
		schema = decoded
	}
	if schema == nil {
		return nil, toolschema.Report{}
	}

	report := n.Normalize(schema)
	return toGeminiSchema(schema), report
}

func toGeminiSchema(in any) any {
	switch node := in.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, v := range node {
			if k == "type" {
				continue
			}
			out[k] = toGeminiSchema(v)
		}
		typeNames, nullable := normalizeTypeValue(node["type"])
		if len(typeNames) > 0 {
			out["type"] = typeNames[0]
		} else if t := inferType(out); t != "" {
			out["type"] = t
		}
		if nullable {
			out["nullable"] = true
		}
		return out
	case []any:
		out := make([]any, 0, len(node))
		for _, item := range node {
			out = append(out, toGeminiSchema(item))
		}
		return out
	default:
		return in
	}
}

// ToGenAISchema converts a normalized schema tree into a genai.Schema.
// Keywords genai has no field for are ignored.
func ToGenAISchema(node map[string]any) *genai.Schema {
	if node == nil {
		return nil
	}
	out := &genai.Schema{}
	typeNames, nullable := normalizeTypeValue(node["type"])
	if len(typeNames) > 0 {
		out.Type = genai.Type(typeNames[0])
	} else if t := inferType(node); t != "" {
		out.Type = genai.Type(t)
	}
	if nullable {
		out.Nullable = genai.Ptr(true)
	}
	if s, ok := node["title"].(string); ok {
		out.Title = s
	}
	if s, ok := node["description"].(string); ok {
		out.Description = s
	}
	if enum, ok := node["enum"].([]any); ok {
		out.Enum = make([]string, 0, len(enum))
		for _, v := range enum {
			if s, ok := v.(string); ok {
				out.Enum = append(out.Enum, s)
				continue
			}
			out.Enum = append(out.Enum, jsonx.Render(v))
		}
	}
	if required := stringList(node["required"]); len(required) > 0 {
		out.Required = required
	}
	if props, ok := node["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if prop, ok := raw.(map[string]any); ok {
				out.Properties[name] = ToGenAISchema(prop)
			}
		}
	}
	if items, ok := node["items"].(map[string]any); ok {
		out.Items = ToGenAISchema(items)
	}
	for _, key := range []string{"anyOf", "oneOf"} {
		variants, ok := node[key].([]any)
		if !ok {
			continue
		}
		for _, raw := range variants {
			if variant, ok := raw.(map[string]any); ok {
				out.AnyOf = append(out.AnyOf, ToGenAISchema(variant))
			}
		}
	}
	return out
}

func inferType(node map[string]any) string {
	if _, ok := node["properties"]; ok {
		return "OBJECT"
	}
	if _, ok := node["items"]; ok {
		return "ARRAY"
	}
	return ""
}

func stringList(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// normalizeTypeValue returns the upper-cased type names of raw without
// "null", and whether "null" was among them.
func normalizeTypeValue(raw any) ([]string, bool) {
	var items []string
	switch t := raw.(type) {
	case string:
		items = []string{t}
	case []string:
		items = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	default:
		return nil, false
	}

	names := make([]string, 0, len(items))
	nullable := false
	for _, item := range items {
		upper := strings.ToUpper(strings.TrimSpace(item))
		switch upper {
		case "":
		case "NULL":
			nullable = true
		default:
			names = append(names, upper)
		}
	}
	return names, nullable
}
