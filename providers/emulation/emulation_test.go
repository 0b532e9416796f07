package emulation

import (
	"strings"
	"testing"

	"github.com/quailyquaily/toolschema/chat"
)

func TestPromptInlinesNormalizedSchemas(t *testing.T) {
	tools := []chat.Tool{
		chat.FunctionTool("read_file", "Read <file>", []byte(`{
			"$defs": {"Path": {"type": "STRING", "minLength": 1}},
			"type": "object",
			"properties": {"path": {"$ref": "#/$defs/Path"}}
		}`)),
		{Type: "retrieval"},
	}

	prompt, report, err := Prompt(tools, Choice{Mode: ChoiceFunction, FunctionName: "read_file"}, nil)
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if !report.Empty() {
		t.Fatalf("unexpected issues: %v", report.Warnings())
	}
	mustContain := []string{
		`"name":"read_file"`,
		`"description":"Read <file>"`,
		`"path":{"description":" [Validation: minLen: 1]","type":"string"}`,
		`Tool choice: function. You MUST return exactly one tool named "read_file".`,
	}
	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Fatalf("prompt missing %q, got:\n%s", s, prompt)
		}
	}
	if strings.Contains(prompt, "$defs") || strings.Contains(prompt, "$ref") {
		t.Fatalf("prompt should not carry references:\n%s", prompt)
	}
}

func TestPromptChoices(t *testing.T) {
	tools := []chat.Tool{chat.FunctionTool("ping", "", nil)}

	prompt, _, err := Prompt(tools, Choice{Mode: ChoiceNone}, nil)
	if err != nil || !strings.Contains(prompt, "Tool choice: none.") {
		t.Fatalf("unexpected none prompt: %v\n%s", err, prompt)
	}
	if _, _, err := Prompt(tools, Choice{Mode: ChoiceFunction}, nil); err == nil {
		t.Fatalf("expected error for missing function name")
	}
	if _, _, err := Prompt(tools, Choice{Mode: "sometimes"}, nil); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestCatalogReportsIssuesPerTool(t *testing.T) {
	tools := []chat.Tool{
		chat.FunctionTool("a", "", nil),
		chat.FunctionTool("b", "", []byte(`{"properties":{"x":{"$ref":"#/$defs/X"}}}`)),
	}

	_, report, err := Catalog(tools, nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(report.Issues) != 1 || report.Issues[0].Path != "/1/parameters/properties/x" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestCatalogWithoutTools(t *testing.T) {
	if _, _, err := Catalog(nil, nil); err == nil {
		t.Fatalf("expected error without tools")
	}
}
