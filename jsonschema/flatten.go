package jsonschema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maroonedog/luq-sub004/internal/fieldpath"
)

// ToDSL flattens a draft-07 schema document into path-keyed records,
// resolving local references on the way. parentPath prefixes every emitted
// path; pass "" to describe the document root.
func ToDSL(schema map[string]any, parentPath string, opts ...Options) ([]Record, error) {
	opt := pickOptions(opts)
	c := newConverter(schema, opt)
	c.basePath = parentPath
	if err := c.flatten(schema, parentPath, false); err != nil {
		return nil, err
	}
	return c.recs, nil
}

// converter walks one schema document depth-first and accumulates records.
type converter struct {
	root     map[string]any
	opt      Options
	diag     Diag
	basePath string
	// stack holds the $ref pointers currently being expanded; hitting one
	// again is a cycle. rootFrames are the pointers whose expansion is the
	// plan root: cycling back to one of those recurses through the plan
	// itself, any other cycle gets a standalone sub-plan.
	stack      []string
	rootFrames map[string]bool
	recs       []Record
}

func newConverter(root map[string]any, opt Options) *converter {
	return &converter{
		root:       root,
		opt:        opt,
		diag:       opt.sink(),
		stack:      []string{"#"},
		rootFrames: map[string]bool{"#": true},
	}
}

func (c *converter) flatten(raw map[string]any, path string, required bool) error {
	node, pushed, cycle, err := c.deref(raw, path == c.basePath)
	if len(pushed) > 0 {
		defer func() { c.stack = c.stack[:len(c.stack)-len(pushed)] }()
	}
	if err != nil {
		return err
	}
	if cycle != "" {
		cons := map[string]any{}
		// Engine recursion re-applies the whole plan to the cyclic value,
		// which is only right when the plan describes the cycle target.
		if c.rootFrames[cycle] && c.basePath == "" {
			cons["recurse"] = true
		} else {
			cons["recursiveRef"] = cycle
		}
		c.recs = append(c.recs, Record{Path: path, Type: TypeAny, Required: required, Constraints: cons, root: c.root})
		return nil
	}

	types, integer := c.declaredTypes(node, path)
	if len(types) == 0 {
		types = inferTypes(node)
	}
	cons := make(map[string]any)
	for _, k := range constraintKeywords {
		if v, ok := node[k]; ok {
			cons[k] = v
		}
	}
	if integer {
		cons["integer"] = true
	}
	if _, ok := node["additionalProperties"]; ok {
		cons["knownKeys"] = propertyKeys(node)
	}

	var itemsSchema map[string]any
	var itemsList []any
	switch it := node["items"].(type) {
	case map[string]any:
		itemsSchema = it
	case []any:
		itemsList = it
	case bool:
		if !it {
			cons["maxItems"] = 0
		}
	}
	if itemsList != nil && (len(types) == 0 || (len(types) == 1 && types[0] == TypeArray)) {
		types = []NodeType{TypeTuple}
	}
	c.warnUnknown(node, path)

	rec := Record{Path: path, Type: TypeAny, Required: required, Constraints: cons, root: c.root}
	switch len(types) {
	case 0:
	case 1:
		rec.Type = types[0]
	default:
		rec.Type = types[0]
		rec.MultipleTypes = types
	}
	c.recs = append(c.recs, rec)

	if err := c.flattenProperties(node, path); err != nil {
		return err
	}
	if itemsSchema != nil {
		if err := c.flatten(itemsSchema, fieldpath.Join(path, "[*]"), false); err != nil {
			return err
		}
	}
	for i, sub := range itemsList {
		p := fieldpath.Join(path, quoteIndex(i))
		switch s := sub.(type) {
		case map[string]any:
			if err := c.flatten(s, p, false); err != nil {
				return err
			}
		case bool:
			c.boolRecord(p, false, s)
		default:
			c.diag.Warnf("items[%d] at %q: schema must be an object or bool, got %T", i, path, sub)
		}
	}
	return nil
}

// deref chases a $ref chain, merging keys set alongside each $ref over the
// target's (explicit keys stay authoritative). A pointer already on the
// stack is reported as a cycle instead of being re-expanded. Pushed frames
// cover the caller's whole subtree; the caller pops them.
func (c *converter) deref(node map[string]any, atRoot bool) (resolved map[string]any, pushed []string, cycle string, err error) {
	for {
		refRaw, ok := node["$ref"]
		if !ok {
			return node, pushed, "", nil
		}
		ref, ok := refRaw.(string)
		if !ok {
			return nil, pushed, "", fmt.Errorf("jsonschema: $ref must be a string, got %T", refRaw)
		}
		for _, frame := range c.stack {
			if frame == ref {
				return nil, pushed, ref, nil
			}
		}
		target, err := schemaAt(c.root, ref)
		if err != nil {
			return nil, pushed, "", err
		}
		c.stack = append(c.stack, ref)
		pushed = append(pushed, ref)
		if atRoot {
			c.rootFrames[ref] = true
		}
		merged := make(map[string]any, len(target)+len(node))
		for k, v := range target {
			merged[k] = v
		}
		for k, v := range node {
			if k != "$ref" {
				merged[k] = v
			}
		}
		node = merged
	}
}

// flattenProperties emits one child record per property, in sorted name
// order, folding in names the required list mentions without a schema.
func (c *converter) flattenProperties(node map[string]any, path string) error {
	props, _ := node["properties"].(map[string]any)
	required := requiredNames(node)
	reqSet := make(map[string]bool, len(required))
	names := make([]string, 0, len(props)+len(required))
	for k := range props {
		names = append(names, k)
	}
	for _, k := range required {
		reqSet[k] = true
		if _, ok := props[k]; !ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if !addressable(name) {
			c.diag.Warnf("property %q at %q: name does not fit the field-path grammar, skipped", name, path)
			continue
		}
		sub := fieldpath.Join(path, name)
		switch s := props[name].(type) {
		case map[string]any:
			if err := c.flatten(s, sub, reqSet[name]); err != nil {
				return err
			}
		case bool:
			c.boolRecord(sub, reqSet[name], s)
		case nil: // required-only name
			c.boolRecord(sub, reqSet[name], true)
		default:
			c.diag.Warnf("property %q at %q: schema must be an object or bool, got %T", name, path, props[name])
		}
	}
	return nil
}

// boolRecord emits the record for a boolean schema: true constrains nothing,
// false rejects any present value.
func (c *converter) boolRecord(path string, required, allow bool) {
	cons := map[string]any{}
	if !allow {
		cons["schemaFalse"] = true
	}
	c.recs = append(c.recs, Record{Path: path, Type: TypeAny, Required: required, Constraints: cons, root: c.root})
}

// declaredTypes normalizes the type keyword. integer collapses to number
// with a flag; unknown type names are warned about and dropped.
func (c *converter) declaredTypes(node map[string]any, path string) ([]NodeType, bool) {
	integer := false
	var out []NodeType
	add := func(s string) {
		t := NodeType(s)
		if s == "integer" {
			integer = true
			t = TypeNumber
		}
		switch t {
		case TypeString, TypeNumber, TypeBoolean, TypeObject, TypeArray, TypeNull:
			out = appendType(out, t)
		default:
			c.diag.Warnf("type %q at %q ignored", s, path)
		}
	}
	switch t := node["type"].(type) {
	case string:
		add(t)
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				add(s)
			}
		}
	}
	return out, integer
}

// inferTypes guesses node types from enum members or const when the schema
// declares none.
func inferTypes(node map[string]any) []NodeType {
	if vals, ok := node["enum"].([]any); ok && len(vals) > 0 {
		var out []NodeType
		for _, v := range vals {
			if t := valueType(v); t != TypeAny {
				out = appendType(out, t)
			}
		}
		return out
	}
	if v, ok := node["const"]; ok {
		if t := valueType(v); t != TypeAny {
			return []NodeType{t}
		}
	}
	return nil
}

func appendType(list []NodeType, t NodeType) []NodeType {
	for _, have := range list {
		if have == t {
			return list
		}
	}
	return append(list, t)
}

// requiredNames extracts the object's required list, ignoring non-strings.
func requiredNames(node map[string]any) []string {
	return stringList(node["required"])
}

// propertyKeys returns the node's property names sorted, the known-key set
// additionalProperties enforcement checks against.
func propertyKeys(node map[string]any) []string {
	props, _ := node["properties"].(map[string]any)
	out := make([]string, 0, len(props))
	for k := range props {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// addressable reports whether a property name survives the field-path
// grammar unescaped.
func addressable(name string) bool {
	return name != "" && !strings.ContainsAny(name, ".[]")
}

// constraintKeywords are copied verbatim into record constraints.
var constraintKeywords = []string{
	"minLength", "maxLength", "pattern", "format",
	"contentEncoding", "contentMediaType",
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minItems", "maxItems", "uniqueItems", "contains",
	"minProperties", "maxProperties", "propertyNames", "patternProperties",
	"additionalProperties",
	"enum", "const",
	"allOf", "anyOf", "oneOf", "not", "if", "then", "else",
	"dependentRequired", "dependentSchemas", "dependencies",
	"default", "readOnly", "writeOnly", "title", "description",
}

// structuralKeywords shape the walk itself or are annotation containers.
var structuralKeywords = []string{
	"type", "properties", "items", "required",
	"$ref", "definitions", "$defs",
	"$schema", "$id", "$comment", "examples",
}

var recognizedKeywords = func() map[string]bool {
	m := make(map[string]bool, len(constraintKeywords)+len(structuralKeywords))
	for _, k := range constraintKeywords {
		m[k] = true
	}
	for _, k := range structuralKeywords {
		m[k] = true
	}
	return m
}()

func (c *converter) warnUnknown(node map[string]any, path string) {
	var unknown []string
	for k := range node {
		if !recognizedKeywords[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		c.diag.Warnf("keyword %q at %q ignored", k, path)
	}
}
