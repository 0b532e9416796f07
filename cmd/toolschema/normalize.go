package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quailyquaily/toolschema"
	"github.com/quailyquaily/toolschema/internal/jsonx"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newNormalizer(opts *options, logger *slog.Logger) *toolschema.Normalizer {
	return toolschema.New(toolschema.Config{
		Debug: opts.debug,
		DebugFn: func(label, payload string) {
			logger.Debug(label, "payload", payload)
		},
		EnsureArrayItems:  opts.ensureArrayItems,
		KeepPropertyNames: opts.keepPropertyNames,
		RepairJSON:        opts.repair,
		ToolSchemaPaths:   opts.toolSchemaPaths,
	})
}

func runNormalize(cmd *cobra.Command, opts *options, paths []string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.debug)
	n := newNormalizer(opts, logger)
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	dropped := 0
	for _, path := range paths {
		raw, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		tree, err := decodeSchema(n, path, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(path), err)
		}
		report := n.Normalize(tree)
		dropped += logReport(logger, displayName(path), report)

		out, err := encode(tree, opts.indent)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(path), err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out); err != nil {
			return err
		}
	}
	return strictError(opts, dropped)
}

func runBody(cmd *cobra.Command, opts *options, path string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.debug)
	n := newNormalizer(opts, logger)

	raw, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	if opts.repair {
		tree, err := n.Decode(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", displayName(path), err)
		}
		if raw, err = jsonx.Marshal(tree); err != nil {
			return err
		}
	}

	out, report, err := n.NormalizeRequestTools(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(path), err)
	}
	dropped := logReport(logger, displayName(path), report)

	if opts.indent {
		tree, err := jsonx.Decode(out)
		if err != nil {
			return err
		}
		if out, err = jsonx.MarshalIndent(tree); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out); err != nil {
		return err
	}
	return strictError(opts, dropped)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return b, nil
}

func decodeSchema(n *toolschema.Normalizer, path string, raw []byte) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var tree any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return fromYAML(tree)
	default:
		return n.Decode(raw)
	}
}

// fromYAML turns a decoded YAML document into the tree shape JSON decoding
// produces.
func fromYAML(v any) (any, error) {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			converted, err := fromYAML(child)
			if err != nil {
				return nil, err
			}
			node[k] = converted
		}
		return node, nil
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("yaml mapping key %v is not a string", k)
			}
			converted, err := fromYAML(child)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		for i, child := range node {
			converted, err := fromYAML(child)
			if err != nil {
				return nil, err
			}
			node[i] = converted
		}
		return node, nil
	default:
		return v, nil
	}
}

func encode(v any, indent bool) ([]byte, error) {
	if indent {
		return jsonx.MarshalIndent(v)
	}
	return jsonx.Marshal(v)
}

func logReport(logger *slog.Logger, source string, report toolschema.Report) int {
	for _, issue := range report.Issues {
		logger.Warn("reference dropped", "source", source, "kind", string(issue.Kind), "ref", issue.Ref, "path", issue.Path)
	}
	return len(report.Issues)
}

func strictError(opts *options, dropped int) error {
	if opts.strict && dropped > 0 {
		return fmt.Errorf("%d reference(s) dropped", dropped)
	}
	return nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
