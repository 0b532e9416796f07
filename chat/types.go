package chat

import (
	"fmt"
	"strings"

	"github.com/quailyquaily/toolschema/internal/jsonx"
)

const ToolTypeFunction = "function"

type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

type ToolFunction struct {
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	ParametersJSONSchema []byte `json:"parameters,omitempty"`
	Strict               *bool  `json:"strict,omitempty"`
}

// DebugFn receives labelled debug payloads instead of the standard logger.
type DebugFn func(label string, payload string)

func FunctionTool(name, description string, paramsJSON []byte) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: ToolFunction{
			Name:                 name,
			Description:          description,
			ParametersJSONSchema: paramsJSON,
		},
	}
}

// IsFunction reports whether the tool is a named function tool.
func (t Tool) IsFunction() bool {
	return t.Type == ToolTypeFunction && strings.TrimSpace(t.Function.Name) != ""
}

// Parameters decodes the parameter schema into a fresh tree.
// It returns nil when the tool declares no parameters.
func (t Tool) Parameters() (map[string]any, error) {
	if len(t.Function.ParametersJSONSchema) == 0 {
		return nil, nil
	}
	params, err := jsonx.DecodeObject(t.Function.ParametersJSONSchema)
	if err != nil {
		return nil, fmt.Errorf("tool %q parameters: %w", t.Function.Name, err)
	}
	return params, nil
}
