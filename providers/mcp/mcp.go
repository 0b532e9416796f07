// Package mcp turns tools listed by an MCP server into function tools.
package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/quailyquaily/toolschema/chat"
	"github.com/quailyquaily/toolschema/internal/jsonx"
	"github.com/tidwall/gjson"
)

// Tools converts MCP tools into function tools carrying their input schema
// as raw JSON, ready for any of the provider adapters. Schemas given either
// structured or raw are taken as the server sent them.
func Tools(tools []mcp.Tool) ([]chat.Tool, error) {
	out := make([]chat.Tool, 0, len(tools))
	for _, tool := range tools {
		data, err := jsonx.Marshal(tool)
		if err != nil {
			return nil, fmt.Errorf("mcp tool %q: %w", tool.Name, err)
		}
		var params []byte
		if schema := gjson.GetBytes(data, "inputSchema"); schema.IsObject() {
			params = []byte(schema.Raw)
		}
		out = append(out, chat.FunctionTool(tool.Name, tool.Description, params))
	}
	return out, nil
}
