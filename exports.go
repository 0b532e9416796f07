package toolschema

import (
	"github.com/quailyquaily/toolschema/chat"
	ts "github.com/quailyquaily/toolschema/internal/toolschema"
)

type (
	Report    = ts.Report
	Issue     = ts.Issue
	IssueKind = ts.IssueKind

	Tool         = chat.Tool
	ToolFunction = chat.ToolFunction
)

const (
	IssueUnresolvedRef = ts.IssueUnresolvedRef
	IssueCyclicRef     = ts.IssueCyclicRef
	IssueMalformedRef  = ts.IssueMalformedRef
)

func FunctionTool(name, description string, paramsJSON []byte) Tool {
	return chat.FunctionTool(name, description, paramsJSON)
}

// Pointer appends key to a JSON pointer, escaping it per RFC 6901.
func Pointer(parent, key string) string {
	return ts.Pointer(parent, key)
}
