// Package openai converts function tools to and from openai-go tool params,
// normalizing parameter schemas on the way.
package openai

import (
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
	"github.com/quailyquaily/toolschema"
	"github.com/quailyquaily/toolschema/chat"
	"github.com/quailyquaily/toolschema/internal/jsonx"
)

// ToolParams converts function tools into chat completion tool params with
// normalized parameters. A nil n uses toolschema.Default().
func ToolParams(tools []chat.Tool, n *toolschema.Normalizer) ([]openai.ChatCompletionToolUnionParam, toolschema.Report, error) {
	var report toolschema.Report
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		if tool.Type != chat.ToolTypeFunction {
			continue
		}
		fn := shared.FunctionDefinitionParam{
			Name: tool.Function.Name,
		}
		if tool.Function.Description != "" {
			fn.Description = openai.String(tool.Function.Description)
		}
		if tool.Function.Strict != nil {
			fn.Strict = openai.Bool(*tool.Function.Strict)
		}
		params, err := tool.Parameters()
		if err != nil {
			return nil, report, err
		}
		if params != nil {
			report.Append(n.Normalize(params).Prefixed(toolPointer(len(out))))
			fn.Parameters = shared.FunctionParameters(params)
		}
		out = append(out, openai.ChatCompletionFunctionTool(fn))
	}
	return out, report, nil
}

// NormalizeToolParams normalizes, in place, the parameters of every
// function tool already built with the SDK.
func NormalizeToolParams(tools []openai.ChatCompletionToolUnionParam, n *toolschema.Normalizer) toolschema.Report {
	var report toolschema.Report
	for i, tool := range tools {
		fn := tool.GetFunction()
		if fn == nil || len(fn.Parameters) == 0 {
			continue
		}
		report.Append(n.Normalize(map[string]any(fn.Parameters)).Prefixed(toolPointer(i)))
	}
	return report
}

// NormalizeResponseFormat normalizes a json_schema response format in place.
func NormalizeResponseFormat(params *openai.ChatCompletionNewParams, n *toolschema.Normalizer) toolschema.Report {
	if params == nil || params.ResponseFormat.OfJSONSchema == nil {
		return toolschema.Report{}
	}
	schema, ok := params.ResponseFormat.OfJSONSchema.JSONSchema.Schema.(map[string]any)
	if !ok {
		return toolschema.Report{}
	}
	return n.Normalize(schema).Prefixed("/response_format/json_schema/schema")
}

// Tools converts SDK tool params back into function tools.
func Tools(in []openai.ChatCompletionToolUnionParam) ([]chat.Tool, error) {
	tools := make([]chat.Tool, 0, len(in))
	for _, t := range in {
		fn := t.GetFunction()
		if fn == nil {
			continue
		}
		tool := chat.Tool{
			Type: chat.ToolTypeFunction,
			Function: chat.ToolFunction{
				Name: fn.Name,
			},
		}
		if fn.Description.Valid() {
			tool.Function.Description = fn.Description.Value
		}
		if fn.Strict.Valid() {
			v := fn.Strict.Value
			tool.Function.Strict = &v
		}
		if len(fn.Parameters) > 0 {
			data, err := jsonx.Marshal(fn.Parameters)
			if err != nil {
				return nil, fmt.Errorf("tool %q parameters: %w", fn.Name, err)
			}
			tool.Function.ParametersJSONSchema = data
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

func toolPointer(i int) string {
	return fmt.Sprintf("/tools/%d/function/parameters", i)
}
