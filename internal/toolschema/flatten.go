package toolschema

import (
	"strconv"
	"strings"

	"github.com/quailyquaily/toolschema/internal/jsonx"
)

// definitionKeys are read from the root only, in merge order: later keys win.
var definitionKeys = []string{"$defs", "definitions"}

// extractDefinitions removes the root definition keys and returns their
// union. Non-object containers are dropped without contributing.
func extractDefinitions(root map[string]any) map[string]any {
	defs := map[string]any{}
	for _, key := range definitionKeys {
		raw, ok := root[key]
		if !ok {
			continue
		}
		delete(root, key)
		if table, ok := raw.(map[string]any); ok {
			for name, def := range table {
				defs[name] = def
			}
		}
	}
	return defs
}

type flattener struct {
	defs      map[string]any
	active    map[string]bool
	keepNames bool
	report    *Report
}

func newFlattener(defs map[string]any, keepNames bool, report *Report) *flattener {
	return &flattener{
		defs:      defs,
		active:    map[string]bool{},
		keepNames: keepNames,
		report:    report,
	}
}

func (f *flattener) walk(value any, path string) {
	switch node := value.(type) {
	case map[string]any:
		f.walkMap(node, path)
	case []any:
		for i, item := range node {
			f.walk(item, Pointer(path, strconv.Itoa(i)))
		}
	}
}

// walkMap inlines the node's $ref, then walks the keys the node carried
// itself. Inlined content is flattened separately, with its definition on
// the active chain, so the chain only ever holds the definitions whose
// content is being walked.
func (f *flattener) walkMap(node map[string]any, path string) {
	own := make([]string, 0, len(node))
	for key := range node {
		if key != "$ref" {
			own = append(own, key)
		}
	}
	f.resolve(node, path)

	for _, key := range own {
		child := node[key]
		childPath := Pointer(path, key)
		if names, ok := f.nameMap(key, child); ok {
			for name, sub := range names {
				f.walk(sub, Pointer(childPath, name))
			}
			continue
		}
		f.walk(child, childPath)
	}
}

func (f *flattener) nameMap(key string, child any) (map[string]any, bool) {
	if !f.keepNames || !isNameMapKey(key) {
		return nil, false
	}
	names, ok := child.(map[string]any)
	return names, ok
}

// resolve removes the node's $ref and merges a flattened copy of its
// definition into the node. Keys already on the node win.
func (f *flattener) resolve(node map[string]any, path string) {
	raw, ok := node["$ref"]
	if !ok {
		return
	}
	delete(node, "$ref")

	ref, ok := raw.(string)
	if !ok {
		f.report.add(IssueMalformedRef, jsonx.Render(raw), path)
		return
	}
	name, def, ok := f.definition(ref)
	if !ok {
		f.report.add(IssueUnresolvedRef, ref, path)
		return
	}
	if f.active[name] {
		f.report.add(IssueCyclicRef, ref, path)
		return
	}

	expanded := jsonx.Clone(def).(map[string]any)
	f.active[name] = true
	f.walkMap(expanded, path)
	delete(f.active, name)

	for key, value := range expanded {
		if _, exists := node[key]; !exists {
			node[key] = value
		}
	}
}

// definition looks a reference up by its last segment, taken literally
// first and then with ~1 and ~0 unescaped.
func (f *flattener) definition(ref string) (string, map[string]any, bool) {
	name := refName(ref)
	if def, ok := f.defs[name].(map[string]any); ok {
		return name, def, true
	}
	unescaped := pointerUnescaper.Replace(name)
	if unescaped == name {
		return "", nil, false
	}
	def, ok := f.defs[unescaped].(map[string]any)
	return unescaped, def, ok
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// refName returns the last "/" segment of a reference.
// "#/$defs/Foo" -> "Foo"; "Foo" -> "Foo".
func refName(ref string) string {
	if idx := strings.LastIndex(ref, "/"); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}
