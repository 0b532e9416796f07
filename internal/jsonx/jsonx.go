// Package jsonx holds the JSON codec shared by the normalizer and its adapters.
// Numbers are decoded as json.Number so they render back exactly as written.
package jsonx

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Decode parses a single JSON document into the generic value tree
// (nil, bool, json.Number, string, []any, map[string]any).
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return out, nil
}

// DecodeObject is Decode restricted to a top-level object.
func DecodeObject(data []byte) (map[string]any, error) {
	value, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a json object, got %s", Kind(value))
	}
	return obj, nil
}

// Marshal encodes v compactly without HTML escaping.
func Marshal(v any) ([]byte, error) {
	return encode(v, "")
}

// MarshalIndent encodes v with two-space indentation without HTML escaping.
func MarshalIndent(v any) ([]byte, error) {
	return encode(v, "  ")
}

func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Render returns the natural JSON text of v: numbers as written, strings quoted.
func Render(v any) string {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	data, err := Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// Clone deep-copies a decoded value tree.
func Clone(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[k] = Clone(val)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, item := range node {
			out[i] = Clone(item)
		}
		return out
	case []string:
		return append([]string(nil), node...)
	default:
		return v
	}
}

// Kind names the JSON kind of a decoded value, for error messages.
func Kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	case string:
		return "string"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
