package jsonschema

import (
	"encoding/json"
	"math"
	"strconv"
)

// NodeType classifies a flattened schema node. Integer schemas flatten to
// TypeNumber plus an integer constraint rather than a type of their own.
type NodeType string

const (
	TypeString  NodeType = "string"
	TypeNumber  NodeType = "number"
	TypeBoolean NodeType = "boolean"
	TypeObject  NodeType = "object"
	TypeArray   NodeType = "array"
	TypeTuple   NodeType = "tuple"
	TypeNull    NodeType = "null"
	// TypeAny marks nodes that declare no type and offer none to infer.
	TypeAny NodeType = "any"
)

// Record is one flattened (path, constraint set) row of a schema document.
// Records are a pure intermediate: ToDSL builds them, ToFieldDefinitions
// consumes them, nothing retains them afterwards.
type Record struct {
	// Path locates the node in the engine's field-path grammar. Array
	// element constraints live at "parent[*]", tuple positions at
	// "parent[0]", "parent[1]", and so on.
	Path string
	// Type is the declared or inferred node type. For union types it holds
	// the first entry of MultipleTypes.
	Type NodeType
	// MultipleTypes lists every admissible type when the node declares a
	// union; nil otherwise.
	MultipleTypes []NodeType
	// Required marks properties named by the parent object's required list.
	Required bool
	// Constraints maps recognized keywords to their raw schema values.
	Constraints map[string]any

	// root keeps the owning document so expansion can resolve references
	// inside composition branches. nil for hand-built records.
	root map[string]any
}

// kinds returns the record's non-null types as type-check kind names, and
// whether null is among the declared types. Tuples check as arrays.
func (r *Record) kinds() (kinds []string, nullable bool) {
	types := r.MultipleTypes
	if types == nil && r.Type != TypeAny {
		types = []NodeType{r.Type}
	}
	for _, t := range types {
		if t == TypeNull && len(types) > 1 {
			nullable = true
			continue
		}
		if t == TypeTuple {
			t = TypeArray
		}
		kinds = append(kinds, string(t))
	}
	return kinds, nullable
}

// valueType classifies a decoded JSON value for enum/const type inference.
func valueType(v any) NodeType {
	switch v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case map[string]any:
		return TypeObject
	case []any:
		return TypeArray
	}
	if _, ok := floatValue(v); ok {
		return TypeNumber
	}
	return TypeAny
}

// floatValue coerces the numeric representations a decoded schema may carry.
func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// intValue coerces integral numeric values; non-integral floats are rejected.
func intValue(v any) (int, bool) {
	f, ok := floatValue(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// stringList filters a decoded array down to its string members.
func stringList(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// quoteIndex renders i as a literal bracket suffix.
func quoteIndex(i int) string { return "[" + strconv.Itoa(i) + "]" }
