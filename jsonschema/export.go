package jsonschema

import (
	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/internal/fieldpath"
)

// Export renders field definitions as a draft-07 schema document, a
// best-effort inverse of Import: paths become nested properties and items,
// rule parameters become keywords. Rules the schema vocabulary cannot
// express (compositions, conditionals, custom checks, transforms,
// recursion) are omitted, as are definitions with malformed paths.
func Export(defs []luq.FieldDefinition) *Schema {
	root := &Schema{}
	for i := range defs {
		def := &defs[i]
		p, err := fieldpath.Parse(def.Path)
		if err != nil {
			continue
		}
		node := root
		var parent *Schema
		leaf := ""
		for _, seg := range p.Segments() {
			if seg.Key != "" {
				if node.Properties == nil {
					node.Properties = make(map[string]*Schema)
				}
				child := node.Properties[seg.Key]
				if child == nil {
					child = &Schema{}
					node.Properties[seg.Key] = child
				}
				parent, leaf = node, seg.Key
				node = child
			}
			// wildcard and literal indices both land on the items schema
			for range seg.Ops {
				if node.Items == nil {
					node.Items = &Schema{}
				}
				parent, leaf = nil, ""
				node = node.Items
			}
		}
		exportRules(node, parent, leaf, def)
	}
	return root
}

func exportRules(node, parent *Schema, leaf string, def *luq.FieldDefinition) {
	if def.Default != nil && def.Default.Generate == nil {
		node.Default = def.Default.Value
	}
	for _, r := range def.Rules {
		switch r.Kind {
		case luq.KindBase, luq.KindConditional:
		default:
			// presence markers, transforms and recursion have no keyword form
			continue
		}
		switch r.Code {
		case luq.CodeRequired:
			if names, ok := r.Params["required"].([]string); ok {
				for _, n := range names {
					node.Required = appendName(node.Required, n)
				}
			} else if parent != nil && leaf != "" {
				parent.Required = appendName(parent.Required, leaf)
			}
		case luq.CodeInvalidType:
			if s, ok := r.Params["expected"].(string); ok {
				node.Type = s
			}
		case luq.CodeNotInteger:
			node.Type = "integer"
		case luq.CodeInvalidEnum:
			if vals, ok := r.Params["values"].([]any); ok {
				node.Enum = vals
			}
		case luq.CodeInvalidConst:
			node.Const = r.Params["expected"]
		case luq.CodeTooShort:
			if n, ok := r.Params["min"].(int); ok {
				node.MinLength = &n
			}
		case luq.CodeTooLong:
			if n, ok := r.Params["max"].(int); ok {
				node.MaxLength = &n
			}
		case luq.CodePattern:
			if s, ok := r.Params["pattern"].(string); ok {
				node.Pattern = s
			}
		case luq.CodeInvalidFormat:
			if s, ok := r.Params["format"].(string); ok {
				node.Format = s
			}
		case luq.CodeTooSmall:
			if f, ok := r.Params["min"].(float64); ok {
				if r.Params["exclusive"] == true {
					node.ExclusiveMinimum = &f
				} else {
					node.Minimum = &f
				}
			}
		case luq.CodeTooBig:
			if f, ok := r.Params["max"].(float64); ok {
				if r.Params["exclusive"] == true {
					node.ExclusiveMaximum = &f
				} else {
					node.Maximum = &f
				}
			}
		case luq.CodeNotMultipleOf:
			if f, ok := r.Params["divisor"].(float64); ok {
				node.MultipleOf = &f
			}
		case luq.CodeTooFewItems:
			if n, ok := r.Params["min"].(int); ok {
				node.MinItems = &n
			}
		case luq.CodeTooManyItems:
			if n, ok := r.Params["max"].(int); ok {
				node.MaxItems = &n
			}
		case luq.CodeNotUnique:
			node.UniqueItems = true
		case luq.CodeTooFewProperties:
			if n, ok := r.Params["min"].(int); ok {
				node.MinProperties = &n
			}
		case luq.CodeTooManyProperties:
			if n, ok := r.Params["max"].(int); ok {
				node.MaxProperties = &n
			}
		case luq.CodeUnknownKey:
			node.AdditionalProperties = false
		}
	}
}

func appendName(list []string, name string) []string {
	for _, have := range list {
		if have == name {
			return list
		}
	}
	return append(list, name)
}
