// Package jsonschema converts draft-07 JSON Schema documents into compiled
// validators and renders field definitions back as schema documents.
//
// Import is the one-call surface:
//
//	v, diag, err := jsonschema.Import(doc)
//	if err != nil { ... }
//	res := v.Validate(input, luq.CollectAll())
//
// ToDSL and ToFieldDefinitions expose the two conversion stages for callers
// that want to inspect or post-process the flattened records. Local $ref
// pointers resolve against the document itself; external references are
// construction errors. Unrecognized keywords never fail a conversion, they
// are reported through Diag.
package jsonschema

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	luq "github.com/maroonedog/luq-sub004"
)

// Import converts a schema document into a compiled validator. It accepts
// the map form produced by FromJSON/FromYAML, raw JSON bytes, or any value
// that marshals to a schema object. The returned Diag carries non-fatal
// notes whether or not conversion succeeded.
func Import(schema any, opts ...Options) (*luq.Validator, Diag, error) {
	opt := pickOptions(opts)
	d := opt.sink()
	doc, err := normalizeSchema(schema)
	if err != nil {
		return nil, d, err
	}
	recs, err := ToDSL(doc, "", opt)
	if err != nil {
		return nil, d, err
	}
	defs, err := ToFieldDefinitions(recs, opt)
	if err != nil {
		return nil, d, err
	}
	v, err := luq.Compile(defs)
	if err != nil {
		return nil, d, err
	}
	return v, d, nil
}

func normalizeSchema(schema any) (map[string]any, error) {
	switch s := schema.(type) {
	case map[string]any:
		return s, nil
	case []byte:
		return FromJSON(s)
	default:
		b, err := gojson.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: schema does not marshal: %w", err)
		}
		return FromJSON(b)
	}
}
