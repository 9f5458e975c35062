package jsonschema

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromJSON decodes a JSON schema document into the map form ToDSL consumes.
func FromJSON(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := gojson.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("jsonschema: decode: %w", err)
	}
	return m, nil
}

// FromYAML decodes a YAML schema document into the map form ToDSL consumes,
// converting the map[any]any values the decoder can produce.
func FromYAML(data []byte) (map[string]any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("jsonschema: decode: %w", err)
	}
	m := yamlToStringMap(node)
	if m == nil {
		return nil, fmt.Errorf("jsonschema: document root must be a mapping")
	}
	return m, nil
}

// yamlToStringMap converts YAML-decoded values into JSON-like map[string]any
// recursively. Non-map roots return nil; non-string keys are dropped.
func yamlToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlValue(t[i])
		}
		return arr
	default:
		return v
	}
}
