package luq

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DecodeJSON unmarshals a JSON document into the generic value shape the
// engine validates (map[string]any, []any, float64, string, bool, nil).
func DecodeJSON(data []byte) (any, error) {
	var v any
	if err := gojson.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("luq: decode json: %w", err)
	}
	return v, nil
}

// DecodeYAML unmarshals a YAML document and normalizes any map[any]any nodes
// into map[string]any so paths resolve the same way for every input format.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("luq: decode yaml: %w", err)
	}
	return normalizeKeys(v), nil
}

// DecodeTOML unmarshals a TOML document into the generic value shape.
func DecodeTOML(data []byte) (any, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("luq: decode toml: %w", err)
	}
	return normalizeKeys(m), nil
}

// DecodeFile reads and decodes a document, dispatching on the file extension
// (.json, .yaml, .yml, .toml).
func DecodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("luq: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".toml":
		return DecodeTOML(data)
	}
	return nil, fmt.Errorf("luq: unsupported document format %q (supported: json, yaml, toml)", filepath.Ext(path))
}

// normalizeKeys converts decoded values that may contain map[any]any nodes
// into JSON-like map[string]any recursively. Non-string keys are dropped.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeKeys(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeKeys(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalizeKeys(vv)
		}
		return out
	default:
		return v
	}
}
