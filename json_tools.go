package toolschema

import (
	"fmt"

	"github.com/kaptinlin/jsonrepair"
	"github.com/quailyquaily/toolschema/internal/diag"
	"github.com/quailyquaily/toolschema/internal/jsonx"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// NormalizeJSON decodes raw, normalizes it and re-encodes it compactly.
func NormalizeJSON(raw []byte) ([]byte, Report, error) {
	return defaultNormalizer.NormalizeJSON(raw)
}

// NormalizeRequestTools rewrites every tool parameter schema inside a raw
// chat request body.
func NormalizeRequestTools(body []byte) ([]byte, Report, error) {
	return defaultNormalizer.NormalizeRequestTools(body)
}

// NormalizeJSON decodes raw, normalizes it and re-encodes it compactly.
// Numbers keep their original text.
func (n *Normalizer) NormalizeJSON(raw []byte) ([]byte, Report, error) {
	value, err := n.Decode(raw)
	if err != nil {
		return nil, Report{}, err
	}
	report := n.Normalize(value)
	out, err := jsonx.Marshal(value)
	if err != nil {
		return nil, report, fmt.Errorf("encode normalized schema: %w", err)
	}
	return out, report, nil
}

// Decode parses raw into a schema tree. With RepairJSON set, a payload that
// fails to decode is repaired once and decoded again.
func (n *Normalizer) Decode(raw []byte) (any, error) {
	cfg := n.config()
	value, err := jsonx.Decode(raw)
	if err == nil {
		return value, nil
	}
	if !cfg.RepairJSON {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(raw))
	if repairErr != nil {
		return nil, fmt.Errorf("decode schema: %w (repair failed: %v)", err, repairErr)
	}
	diag.LogText(cfg.Debug, cfg.DebugFn, "toolschema.repaired", repaired)

	value, err = jsonx.Decode([]byte(repaired))
	if err != nil {
		return nil, fmt.Errorf("decode repaired schema: %w", err)
	}
	return value, nil
}

// NormalizeRequestTools rewrites, inside a raw chat request body, the
// parameter schema of every entry of the top-level "tools" array found at
// one of the configured ToolSchemaPaths, plus every Gemini
// functionDeclarations entry. Issue paths are relative to the body.
func (n *Normalizer) NormalizeRequestTools(body []byte) ([]byte, Report, error) {
	if !gjson.ValidBytes(body) {
		return nil, Report{}, fmt.Errorf("request body is not valid json")
	}
	tools := gjson.GetBytes(body, "tools")
	if !tools.IsArray() {
		return body, Report{}, nil
	}

	var report Report
	out := body
	for i, tool := range tools.Array() {
		for _, rel := range n.config().ToolSchemaPaths {
			var err error
			out, err = n.rewriteSchemaAt(out, fmt.Sprintf("tools.%d.%s", i, rel), &report)
			if err != nil {
				return nil, report, err
			}
		}

		decls := tool.Get("functionDeclarations")
		if !decls.IsArray() {
			continue
		}
		for j := range decls.Array() {
			for _, key := range []string{"parameters", "parametersJsonSchema"} {
				var err error
				out, err = n.rewriteSchemaAt(out, fmt.Sprintf("tools.%d.functionDeclarations.%d.%s", i, j, key), &report)
				if err != nil {
					return nil, report, err
				}
			}
		}
	}
	return out, report, nil
}

func (n *Normalizer) rewriteSchemaAt(body []byte, path string, report *Report) ([]byte, error) {
	res := gjson.GetBytes(body, path)
	if !res.Exists() || !res.IsObject() {
		return body, nil
	}
	normalized, sub, err := n.NormalizeJSON([]byte(res.Raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	report.Append(sub.Prefixed(gjsonPathToPointer(path)))

	out, err := sjson.SetRawBytes(body, path, normalized)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// gjsonPathToPointer converts a dotted path built by NormalizeRequestTools
// (no escaped segments) into a JSON pointer.
func gjsonPathToPointer(path string) string {
	pointer := "/"
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			pointer = Pointer(pointer, path[start:i])
			start = i + 1
		}
	}
	return pointer
}
