// Package goopenai normalizes tool schemas for github.com/sashabaranov/go-openai.
package goopenai

import (
	"fmt"

	"github.com/quailyquaily/toolschema"
	"github.com/quailyquaily/toolschema/internal/jsonx"
	goopenai "github.com/sashabaranov/go-openai"
)

// NormalizeTools returns a copy of tools whose function parameters are
// normalized maps. Parameters may be any JSON-encodable value, such as a
// jsonschema.Definition, a map or raw JSON bytes. The input is not modified.
func NormalizeTools(tools []goopenai.Tool, n *toolschema.Normalizer) ([]goopenai.Tool, toolschema.Report, error) {
	var report toolschema.Report
	out := make([]goopenai.Tool, 0, len(tools))
	for i, tool := range tools {
		if tool.Type != goopenai.ToolTypeFunction || tool.Function == nil || tool.Function.Parameters == nil {
			out = append(out, tool)
			continue
		}
		params, err := parameters(tool.Function.Parameters)
		if err != nil {
			return nil, report, fmt.Errorf("tool %q parameters: %w", tool.Function.Name, err)
		}
		report.Append(n.Normalize(params).Prefixed(fmt.Sprintf("/tools/%d/function/parameters", i)))

		fn := *tool.Function
		fn.Parameters = params
		tool.Function = &fn
		out = append(out, tool)
	}
	return out, report, nil
}

func parameters(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case []byte:
		return jsonx.DecodeObject(v)
	case string:
		return jsonx.DecodeObject([]byte(v))
	case map[string]any:
		return jsonx.Clone(v).(map[string]any), nil
	}
	data, err := jsonx.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return jsonx.DecodeObject(data)
}
