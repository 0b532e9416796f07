// Package emulation renders function tools into a system prompt for models
// without native tool calling. Schemas are normalized first so the catalog
// is self-contained.
package emulation

import (
	"fmt"
	"strings"

	"github.com/quailyquaily/toolschema"
	"github.com/quailyquaily/toolschema/chat"
	"github.com/quailyquaily/toolschema/internal/jsonx"
)

const (
	ChoiceAuto     = "auto"
	ChoiceNone     = "none"
	ChoiceRequired = "required"
	ChoiceFunction = "function"
)

// Choice constrains which tools the model may pick. The zero value is auto.
type Choice struct {
	Mode         string
	FunctionName string
}

type toolSpec struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

// Catalog encodes the function tools as a JSON array of
// {name, description, parameters} with normalized parameters.
func Catalog(tools []chat.Tool, n *toolschema.Normalizer) ([]byte, toolschema.Report, error) {
	var report toolschema.Report
	specs := make([]toolSpec, 0, len(tools))
	for _, tool := range tools {
		if !tool.IsFunction() {
			continue
		}
		spec := toolSpec{
			Name:        tool.Function.Name,
			Description: tool.Function.Description,
		}
		params, err := tool.Parameters()
		if err != nil {
			return nil, report, err
		}
		if params != nil {
			report.Append(n.Normalize(params).Prefixed(fmt.Sprintf("/%d/parameters", len(specs))))
			spec.Parameters = params
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, report, fmt.Errorf("no function tools available for emulation")
	}

	data, err := jsonx.Marshal(specs)
	if err != nil {
		return nil, report, err
	}
	return data, report, nil
}

// Prompt builds the system prompt asking the model to answer with
// {"tools":[{"tool":"<name>","arguments":{...}}]}.
func Prompt(tools []chat.Tool, choice Choice, n *toolschema.Normalizer) (string, toolschema.Report, error) {
	data, report, err := Catalog(tools, n)
	if err != nil {
		return "", report, err
	}

	lines := []string{
		"You are a tool-calling engine.",
		"Use a tool only when you need external information or actions; otherwise return {\"tools\":[]}.",
		"Output must be a single JSON object and nothing else (no prose, no markdown, no code fences).",
		"Format: {\"tools\":[{\"tool\":\"<name>\",\"arguments\":{...}}]}",
		"Rules: only key is \"tools\"; \"tools\" must be an array; \"tool\" must match an available tool name; \"arguments\" must be a JSON object.",
		fmt.Sprintf("Available tools (JSON): %s", string(data)),
	}
	switch choice.Mode {
	case "", ChoiceAuto:
	case ChoiceNone:
		lines = append(lines, "Tool choice: none. You MUST return {\"tools\":[]}.")
	case ChoiceRequired:
		lines = append(lines, "Tool choice: required. You MUST return at least one tool in tools[].")
	case ChoiceFunction:
		name := strings.TrimSpace(choice.FunctionName)
		if name == "" {
			return "", report, fmt.Errorf("function name is required when mode=function")
		}
		lines = append(lines, fmt.Sprintf("Tool choice: function. You MUST return exactly one tool named %q.", name))
	default:
		return "", report, fmt.Errorf("unsupported tool choice mode %q", choice.Mode)
	}
	return strings.Join(lines, "\n"), report, nil
}
