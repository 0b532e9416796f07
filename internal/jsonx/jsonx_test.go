package jsonx

import (
	"strings"
	"testing"
)

func TestDecodeKeepsNumberText(t *testing.T) {
	value, err := Decode([]byte(`{"a":1.50,"b":10000000000000000001}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj := value.(map[string]any)
	if got := Render(obj["a"]); got != "1.50" {
		t.Fatalf("unexpected render for a: %q", got)
	}
	if got := Render(obj["b"]); got != "10000000000000000001" {
		t.Fatalf("unexpected render for b: %q", got)
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	if _, err := Decode([]byte(`{"a":1} {"b":2}`)); err == nil {
		t.Fatalf("expected error for trailing value")
	}
}

func TestDecodeObjectRejectsArray(t *testing.T) {
	_, err := DecodeObject([]byte(`[1,2]`))
	if err == nil || !strings.Contains(err.Error(), "array") {
		t.Fatalf("expected array kind error, got %v", err)
	}
}

func TestRenderDoesNotEscapeHTML(t *testing.T) {
	if got := Render("^<a>&$"); got != `"^<a>&$"` {
		t.Fatalf("unexpected render: %s", got)
	}
	if got := Render(nil); got != "null" {
		t.Fatalf("unexpected null render: %s", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	src := map[string]any{
		"properties": map[string]any{"a": map[string]any{"type": "string"}},
		"type":       []string{"string", "null"},
	}
	dup := Clone(src).(map[string]any)
	dup["properties"].(map[string]any)["a"].(map[string]any)["type"] = "number"
	dup["type"].([]string)[0] = "integer"

	a := src["properties"].(map[string]any)["a"].(map[string]any)
	if a["type"] != "string" {
		t.Fatalf("clone shares nested maps")
	}
	if src["type"].([]string)[0] != "string" {
		t.Fatalf("clone shares string slices")
	}
}

func TestMarshalIndent(t *testing.T) {
	out, err := MarshalIndent(map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected output: %q", out)
	}
}
