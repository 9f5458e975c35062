package rules

import (
	"fmt"

	gojson "github.com/goccy/go-json"

	luq "github.com/maroonedog/luq-sub004"
)

// MinItems requires at least min array elements. Non-array values pass.
func MinItems(min int, opts ...luq.RuleOpt) (luq.Rule, error) {
	if min < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative minItems %d", min)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooFewItems,
		Kind:   luq.KindBase,
		Params: map[string]any{"min": min},
		Check: func(v luq.Value, _ luq.Env) bool {
			arr, ok := v.Data.([]any)
			if !ok {
				return true
			}
			return len(arr) >= min
		},
	}, opts), nil
}

// MaxItems allows at most max array elements. Non-array values pass.
func MaxItems(max int, opts ...luq.RuleOpt) (luq.Rule, error) {
	if max < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative maxItems %d", max)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooManyItems,
		Kind:   luq.KindBase,
		Params: map[string]any{"max": max},
		Check: func(v luq.Value, _ luq.Env) bool {
			arr, ok := v.Data.([]any)
			if !ok {
				return true
			}
			return len(arr) <= max
		},
	}, opts), nil
}

// UniqueItems rejects arrays containing two elements that are equal by JSON
// semantics. Non-array values pass.
func UniqueItems(opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code: luq.CodeNotUnique,
		Kind: luq.KindBase,
		Check: func(v luq.Value, _ luq.Env) bool {
			arr, ok := v.Data.([]any)
			if !ok {
				return true
			}
			seen := make(map[string]struct{}, len(arr))
			for _, el := range arr {
				key := canonicalKey(el)
				if _, dup := seen[key]; dup {
					return false
				}
				seen[key] = struct{}{}
			}
			return true
		},
	}, opts)
}

// Contains requires at least one array element to satisfy the evaluator, so
// an empty array fails. Non-array values pass.
func Contains(eval Evaluator, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code: luq.CodeContainsMismatch,
		Kind: luq.KindBase,
		Check: func(v luq.Value, env luq.Env) bool {
			arr, ok := v.Data.([]any)
			if !ok {
				return true
			}
			for _, el := range arr {
				if len(eval.Evaluate(el, env)) == 0 {
					return true
				}
			}
			return false
		},
	}, opts)
}

// ContainsRange requires between min and max array elements (inclusive) to
// satisfy the evaluator. A negative max means unbounded. Non-array values
// pass.
func ContainsRange(eval Evaluator, min, max int, opts ...luq.RuleOpt) (luq.Rule, error) {
	if min < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative contains minimum %d", min)
	}
	if max >= 0 && max < min {
		return luq.Rule{}, fmt.Errorf("rules: contains maximum %d below minimum %d", max, min)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeContainsMismatch,
		Kind:   luq.KindBase,
		Params: map[string]any{"min": min, "max": max},
		Check: func(v luq.Value, env luq.Env) bool {
			arr, ok := v.Data.([]any)
			if !ok {
				return true
			}
			n := 0
			for _, el := range arr {
				if len(eval.Evaluate(el, env)) == 0 {
					n++
				}
			}
			if n < min {
				return false
			}
			return max < 0 || n <= max
		},
	}, opts), nil
}

// TupleLength pins the array length exactly, for positional tuple schemas.
// Non-array values pass.
func TupleLength(n int, opts ...luq.RuleOpt) (luq.Rule, error) {
	if n < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative tuple length %d", n)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTupleLength,
		Kind:   luq.KindBase,
		Params: map[string]any{"expected": n},
		Check: func(v luq.Value, _ luq.Env) bool {
			arr, ok := v.Data.([]any)
			if !ok {
				return true
			}
			return len(arr) == n
		},
	}, opts), nil
}

// canonicalKey renders a value into a representation-independent comparison
// key: numeric forms collapse to float64 before marshaling.
func canonicalKey(v any) string {
	b, err := gojson.Marshal(canonicalize(v))
	if err != nil {
		return fmt.Sprintf("!%v", v)
	}
	return string(b)
}

func canonicalize(v any) any {
	if f, ok := numericValue(v); ok {
		return f
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = canonicalize(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = canonicalize(x)
		}
		return out
	}
	return v
}
