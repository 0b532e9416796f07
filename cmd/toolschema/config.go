package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Debug             *bool    `yaml:"debug"`
	EnsureArrayItems  *bool    `yaml:"ensure_array_items"`
	KeepPropertyNames *bool    `yaml:"keep_property_names"`
	Repair            *bool    `yaml:"repair"`
	Strict            *bool    `yaml:"strict"`
	Indent            *bool    `yaml:"indent"`
	ToolSchemaPaths   []string `yaml:"tool_schema_paths"`
}

func loadConfig(path string) (*fileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	for i, p := range cfg.ToolSchemaPaths {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("tool_schema_paths[%d] is empty", i)
		}
	}
	return &cfg, nil
}

// apply copies file values into opts for every flag not set on the command line.
func (cfg *fileConfig) apply(opts *options, changed func(name string) bool) {
	set := func(name string, dst *bool, v *bool) {
		if v != nil && !changed(name) {
			*dst = *v
		}
	}
	set("debug", &opts.debug, cfg.Debug)
	set("ensure-array-items", &opts.ensureArrayItems, cfg.EnsureArrayItems)
	set("keep-property-names", &opts.keepPropertyNames, cfg.KeepPropertyNames)
	set("repair", &opts.repair, cfg.Repair)
	set("strict", &opts.strict, cfg.Strict)
	set("indent", &opts.indent, cfg.Indent)
	if len(cfg.ToolSchemaPaths) > 0 {
		opts.toolSchemaPaths = append([]string{}, cfg.ToolSchemaPaths...)
	}
}

func envOrDefault(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(envOrDefault(name, "false"))
	return err == nil && v
}
