package gemini

import (
	"testing"

	"github.com/lyricat/goutils/structs"
	"github.com/quailyquaily/toolschema"
	"github.com/quailyquaily/toolschema/chat"
	"google.golang.org/genai"
)

func TestDeclarationsNormalizesParameters(t *testing.T) {
	tools := []chat.Tool{
		chat.FunctionTool("read_file", "Read local file", []byte(`{
			"$defs": {"Path": {"type": "string", "minLength": 1}},
			"type": "object",
			"properties": {
				"path": {"$ref": "#/$defs/Path"},
				"lines": {"type": ["array", "null"]},
				"mode": {"$ref": "#/$defs/Mode"}
			},
			"required": ["path"],
			"additionalProperties": false
		}`)),
		chat.FunctionTool("ping", "", nil),
		{Type: "retrieval", Function: chat.ToolFunction{Name: "ignored"}},
		chat.FunctionTool("  ", "nameless", nil),
	}

	out, report, err := Declarations(tools, nil)
	if err != nil {
		t.Fatalf("declarations: %v", err)
	}
	if len(out) != 1 || len(out[0].FunctionDeclarations) != 2 {
		t.Fatalf("unexpected tools: %#v", out)
	}

	params, ok := out[0].FunctionDeclarations[0].Parameters.(map[string]any)
	if !ok {
		t.Fatalf("unexpected parameters type: %T", out[0].FunctionDeclarations[0].Parameters)
	}
	if params["type"] != "OBJECT" {
		t.Fatalf("unexpected root type: %#v", params["type"])
	}
	if _, ok := params["additionalProperties"]; ok {
		t.Fatalf("additionalProperties should be removed")
	}
	props := params["properties"].(map[string]any)
	path := props["path"].(map[string]any)
	if path["type"] != "STRING" || path["description"] != " [Validation: minLen: 1]" {
		t.Fatalf("unexpected path schema: %#v", path)
	}
	lines := props["lines"].(map[string]any)
	if lines["type"] != "ARRAY" || lines["nullable"] != true {
		t.Fatalf("unexpected lines schema: %#v", lines)
	}
	if _, ok := lines["items"]; !ok {
		t.Fatalf("expected items on array schema")
	}

	if len(report.Issues) != 1 || report.Issues[0].Path != "/read_file/properties/mode" {
		t.Fatalf("unexpected report: %+v", report)
	}

	ping := out[0].FunctionDeclarations[1].Parameters.(map[string]any)
	if ping["type"] != "OBJECT" {
		t.Fatalf("expected empty object schema for tool without parameters, got %#v", ping)
	}
}

func TestDeclarationsWithoutFunctions(t *testing.T) {
	out, report, err := Declarations([]chat.Tool{{Type: "retrieval"}}, nil)
	if err != nil || out != nil || !report.Empty() {
		t.Fatalf("expected nothing, got %#v %+v %v", out, report, err)
	}
}

func TestDeclarationsInvalidParameters(t *testing.T) {
	_, _, err := Declarations([]chat.Tool{chat.FunctionTool("bad", "", []byte(`[1,2]`))}, nil)
	if err == nil {
		t.Fatalf("expected error for non-object parameters")
	}
}

func TestGenAITools(t *testing.T) {
	tools := []chat.Tool{
		chat.FunctionTool("set_level", "Set level", []byte(`{
			"type": "object",
			"properties": {
				"level": {"type": "integer", "enum": [1, 2, 3], "maximum": 3},
				"tags": {"type": "array", "items": {"type": "String"}},
				"note": {"anyOf": [{"type": "string"}, {"type": "null"}]}
			},
			"required": ["level"]
		}`)),
	}

	out, _, err := GenAITools(tools, toolschema.New(toolschema.Config{}))
	if err != nil {
		t.Fatalf("genai tools: %v", err)
	}
	if len(out) != 1 || len(out[0].FunctionDeclarations) != 1 {
		t.Fatalf("unexpected tools: %#v", out)
	}
	params := out[0].FunctionDeclarations[0].Parameters
	if params.Type != genai.TypeObject {
		t.Fatalf("unexpected type: %v", params.Type)
	}
	if len(params.Required) != 1 || params.Required[0] != "level" {
		t.Fatalf("unexpected required: %v", params.Required)
	}

	level := params.Properties["level"]
	if level.Type != genai.TypeInteger {
		t.Fatalf("unexpected level type: %v", level.Type)
	}
	if len(level.Enum) != 3 || level.Enum[0] != "1" {
		t.Fatalf("expected stringified enum, got %v", level.Enum)
	}
	if level.Description != " [Validation: max: 3]" {
		t.Fatalf("unexpected level description: %q", level.Description)
	}

	tags := params.Properties["tags"]
	if tags.Type != genai.TypeArray || tags.Items == nil || tags.Items.Type != genai.TypeString {
		t.Fatalf("unexpected tags schema: %#v", tags)
	}

	note := params.Properties["note"]
	if len(note.AnyOf) != 2 || note.AnyOf[1].Nullable == nil || !*note.AnyOf[1].Nullable {
		t.Fatalf("unexpected note schema: %#v", note)
	}
}

func TestToGenAISchemaInfersType(t *testing.T) {
	out := ToGenAISchema(map[string]any{
		"properties": map[string]any{
			"list": map[string]any{"items": map[string]any{"type": "number"}},
		},
	})
	if out.Type != genai.TypeObject {
		t.Fatalf("unexpected type: %v", out.Type)
	}
	if out.Properties["list"].Type != genai.TypeArray {
		t.Fatalf("unexpected list type: %v", out.Properties["list"].Type)
	}
	if ToGenAISchema(nil) != nil {
		t.Fatalf("expected nil for nil schema")
	}
}

func TestResponseSchemaFromMap(t *testing.T) {
	original := map[string]any{
		"type":   "object",
		"format": "custom",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
		},
	}
	opts := structs.JSONMap{"response_schema": original}

	out, report := ResponseSchema(opts, nil)
	if !report.Empty() {
		t.Fatalf("unexpected issues: %v", report.Warnings())
	}
	schema, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("unexpected response schema: %#v", out)
	}
	if schema["type"] != "OBJECT" {
		t.Fatalf("unexpected type: %#v", schema["type"])
	}
	if _, ok := schema["format"]; ok {
		t.Fatalf("format should be removed")
	}

	if original["format"] != "custom" {
		t.Fatalf("option bag should not be modified")
	}
}

func TestResponseSchemaFromString(t *testing.T) {
	opts := structs.NewJSONMap()
	opts.SetValue("response_schema", `{"type":"array","items":{"$ref":"#/definitions/Item"},"definitions":{"Item":{"type":"integer"}}}`)

	out, _ := ResponseSchema(opts, nil)
	schema, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("unexpected response schema: %#v", out)
	}
	items := schema["items"].(map[string]any)
	if items["type"] != "INTEGER" {
		t.Fatalf("unexpected items: %#v", items)
	}
}

func TestResponseSchemaMissingOrInvalid(t *testing.T) {
	if out, _ := ResponseSchema(nil, nil); out != nil {
		t.Fatalf("expected nil for empty options")
	}
	opts := structs.NewJSONMap()
	opts.SetValue("response_schema", "{not json")
	if out, _ := ResponseSchema(opts, nil); out != nil {
		t.Fatalf("expected nil for invalid schema, got %#v", out)
	}
}
