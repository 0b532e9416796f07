package chat

import "testing"

func TestFunctionTool(t *testing.T) {
	tool := FunctionTool("read_file", "Read a file", []byte(`{"type":"object"}`))
	if tool.Type != ToolTypeFunction {
		t.Fatalf("unexpected type: %q", tool.Type)
	}
	if !tool.IsFunction() {
		t.Fatalf("expected function tool")
	}
	if tool.Function.Name != "read_file" || tool.Function.Description != "Read a file" {
		t.Fatalf("unexpected function: %+v", tool.Function)
	}
}

func TestIsFunctionRequiresName(t *testing.T) {
	if FunctionTool("  ", "", nil).IsFunction() {
		t.Fatalf("blank name should not count as a function tool")
	}
	if (Tool{Type: "retrieval", Function: ToolFunction{Name: "x"}}).IsFunction() {
		t.Fatalf("non-function type should not count as a function tool")
	}
}

func TestParametersDecodesSchema(t *testing.T) {
	tool := FunctionTool("f", "", []byte(`{"type":"object","properties":{"n":{"type":"integer","minimum":1}}}`))
	params, err := tool.Parameters()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	props, ok := params["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties map")
	}
	if _, ok := props["n"]; !ok {
		t.Fatalf("expected property n")
	}
}

func TestParametersEmpty(t *testing.T) {
	params, err := FunctionTool("f", "", nil).Parameters()
	if err != nil || params != nil {
		t.Fatalf("expected nil params without error, got %#v, %v", params, err)
	}
}

func TestParametersRejectsNonObject(t *testing.T) {
	if _, err := FunctionTool("f", "", []byte(`["a"]`)).Parameters(); err == nil {
		t.Fatalf("expected error for array parameters")
	}
	if _, err := FunctionTool("f", "", []byte(`{`)).Parameters(); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}
