package toolschema

import (
	"fmt"
	"strings"
)

// IssueKind classifies a reference that could not be substituted.
type IssueKind string

const (
	IssueUnresolvedRef IssueKind = "unresolved_ref"
	IssueCyclicRef     IssueKind = "cyclic_ref"
	IssueMalformedRef  IssueKind = "malformed_ref"
)

// Issue is one degradation the transform applied instead of failing.
// Path is the JSON pointer of the node that carried the $ref.
type Issue struct {
	Kind IssueKind `json:"kind"`
	Ref  string    `json:"ref"`
	Path string    `json:"path"`
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueCyclicRef:
		return fmt.Sprintf("cyclic $ref %q at %s dropped", i.Ref, i.Path)
	case IssueMalformedRef:
		return fmt.Sprintf("non-string $ref %s at %s dropped", i.Ref, i.Path)
	default:
		return fmt.Sprintf("unresolved $ref %q at %s dropped", i.Ref, i.Path)
	}
}

// Report lists the issues of one normalization. The zero value is empty.
type Report struct {
	Issues []Issue `json:"issues,omitempty"`
}

func (r Report) Empty() bool {
	return len(r.Issues) == 0
}

// Warnings renders each issue as a human-readable line.
func (r Report) Warnings() []string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.String())
	}
	return out
}

// Append adds the issues of other to r.
func (r *Report) Append(other Report) {
	r.Issues = append(r.Issues, other.Issues...)
}

// Prefixed returns a copy of r with every issue path moved under prefix,
// for schemas embedded in a larger document.
func (r Report) Prefixed(prefix string) Report {
	if len(r.Issues) == 0 {
		return r
	}
	prefix = strings.TrimRight(prefix, "/")
	out := Report{Issues: make([]Issue, 0, len(r.Issues))}
	for _, issue := range r.Issues {
		if issue.Path == "/" {
			issue.Path = prefix
		} else {
			issue.Path = prefix + issue.Path
		}
		if issue.Path == "" {
			issue.Path = "/"
		}
		out.Issues = append(out.Issues, issue)
	}
	return out
}

func (r *Report) add(kind IssueKind, ref, path string) {
	r.Issues = append(r.Issues, Issue{Kind: kind, Ref: ref, Path: path})
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer appends key to the JSON pointer parent, escaping it per RFC 6901.
// The root pointer is "/".
func Pointer(parent, key string) string {
	esc := pointerEscaper.Replace(key)
	if parent == "" || parent == "/" {
		return "/" + esc
	}
	return parent + "/" + esc
}
