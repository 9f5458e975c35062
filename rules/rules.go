// Package rules provides the built-in predicates for luq rule chains: presence
// markers, type checks, scalar and collection constraints, compositions,
// conditionals, recursion, and transforms.
//
// Constraint predicates are scoped: a value that is undefined or of a foreign
// type passes, leaving presence to Required/Optional and shape to TypeOf. This
// keeps one failure from fanning out into unrelated codes when every issue is
// collected.
//
// Factories whose parameters can be malformed (patterns, bounds, counts)
// return (luq.Rule, error); the rest return luq.Rule directly. Every factory
// accepts trailing luq.RuleOpt values to override the issue code or message.
package rules

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	luq "github.com/maroonedog/luq-sub004"
)

// Required rejects undefined and null values.
func Required(opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:  luq.CodeRequired,
		Kind:  luq.KindBase,
		Check: func(v luq.Value, _ luq.Env) bool { return v.Defined() },
	}, opts)
}

// RequiredKey rejects undefined values but lets explicit null through, for
// schemas where presence and type are checked separately.
func RequiredKey(opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:  luq.CodeRequired,
		Name:  "required_key",
		Kind:  luq.KindBase,
		Check: func(v luq.Value, _ luq.Env) bool { return v.Exists },
	}, opts)
}

// Optional short-circuits the rest of the chain with valid when the value is
// undefined. Null does not trigger it.
func Optional() luq.Rule {
	return luq.Rule{Code: "optional", Kind: luq.KindOptional}
}

// Nullable short-circuits the rest of the chain with valid when the value is
// an explicit null.
func Nullable() luq.Rule {
	return luq.Rule{Code: "nullable", Kind: luq.KindNullable}
}

// TypeOf checks the value against one JSON type name: "string", "number",
// "integer", "boolean", "object", "array" or "null". Undefined values pass.
func TypeOf(kind string, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeInvalidType,
		Kind:   luq.KindBase,
		Params: map[string]any{"expected": kind},
		Check: func(v luq.Value, _ luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			return typeMatches(kind, v.Data)
		},
	}, opts)
}

// TypeIn checks the value against a set of JSON type names, passing when any
// matches. Undefined values pass.
func TypeIn(kinds []string, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeInvalidType,
		Kind:   luq.KindBase,
		Params: map[string]any{"expected": kinds},
		Check: func(v luq.Value, _ luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			for _, k := range kinds {
				if typeMatches(k, v.Data) {
					return true
				}
			}
			return false
		},
	}, opts)
}

// StringType is TypeOf("string").
func StringType(opts ...luq.RuleOpt) luq.Rule { return TypeOf("string", opts...) }

// NumberType is TypeOf("number").
func NumberType(opts ...luq.RuleOpt) luq.Rule { return TypeOf("number", opts...) }

// BoolType is TypeOf("boolean").
func BoolType(opts ...luq.RuleOpt) luq.Rule { return TypeOf("boolean", opts...) }

// ObjectType is TypeOf("object").
func ObjectType(opts ...luq.RuleOpt) luq.Rule { return TypeOf("object", opts...) }

// ArrayType is TypeOf("array").
func ArrayType(opts ...luq.RuleOpt) luq.Rule { return TypeOf("array", opts...) }

// NullType is TypeOf("null").
func NullType(opts ...luq.RuleOpt) luq.Rule { return TypeOf("null", opts...) }

// IntegerRule rejects numeric values with a fractional part. Undefined and
// non-numeric values pass.
func IntegerRule(opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code: luq.CodeNotInteger,
		Kind: luq.KindBase,
		Check: func(v luq.Value, _ luq.Env) bool {
			f, ok := numericValue(v.Data)
			if !ok {
				return true
			}
			return f == float64(int64(f))
		},
	}, opts)
}

// Enum restricts the value to a fixed set. Values are compared by JSON
// equality, so 1 and 1.0 match. An empty set is a construction error.
func Enum(values []any, opts ...luq.RuleOpt) (luq.Rule, error) {
	if len(values) == 0 {
		return luq.Rule{}, fmt.Errorf("rules: enum requires at least one value")
	}
	set := make([]any, len(values))
	copy(set, values)
	return applyOpts(luq.Rule{
		Code:   luq.CodeInvalidEnum,
		Kind:   luq.KindBase,
		Params: map[string]any{"values": set},
		Check: func(v luq.Value, _ luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			for _, want := range set {
				if jsonEqual(v.Data, want) {
					return true
				}
			}
			return false
		},
	}, opts), nil
}

// Const pins the value to a single constant, compared by JSON equality.
func Const(want any, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeInvalidConst,
		Kind:   luq.KindBase,
		Params: map[string]any{"expected": want},
		Check: func(v luq.Value, _ luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			return jsonEqual(v.Data, want)
		},
	}, opts)
}

// Custom wraps an arbitrary predicate over the raw value. Undefined values
// pass; combine with Required when presence matters. An empty code falls back
// to "custom".
func Custom(code string, fn func(value any) bool, opts ...luq.RuleOpt) luq.Rule {
	if code == "" {
		code = luq.CodeCustom
	}
	return applyOpts(luq.Rule{
		Code: code,
		Kind: luq.KindBase,
		Check: func(v luq.Value, _ luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			return fn(v.Data)
		},
	}, opts)
}

// ------- shared helpers -------

func applyOpts(r luq.Rule, opts []luq.RuleOpt) luq.Rule {
	for _, o := range opts {
		r = o.Apply(r)
	}
	return r
}

func typeMatches(kind string, data any) bool {
	switch kind {
	case "string":
		_, ok := data.(string)
		return ok
	case "boolean":
		_, ok := data.(bool)
		return ok
	case "number":
		_, ok := numericValue(data)
		return ok
	case "integer":
		f, ok := numericValue(data)
		return ok && f == float64(int64(f))
	case "object":
		_, ok := data.(map[string]any)
		return ok
	case "array":
		_, ok := data.([]any)
		return ok
	case "null":
		return data == nil
	case "any":
		return true
	}
	return false
}

// numericValue widens any numeric representation produced by the decoders
// (float64, ints, json.Number) to float64.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8, int16, int32, int64:
		return float64(reflect.ValueOf(n).Int()), true
	case uint, uint8, uint16, uint32, uint64:
		return float64(reflect.ValueOf(n).Uint()), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// jsonEqual compares two decoded values by JSON semantics: numbers match by
// magnitude regardless of Go representation, objects and arrays recurse.
func jsonEqual(a, b any) bool {
	if af, ok := numericValue(a); ok {
		bf, ok := numericValue(b)
		return ok && af == bf
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !jsonEqual(x, y) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !jsonEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}
