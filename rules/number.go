package rules

import (
	"fmt"
	"math"

	luq "github.com/maroonedog/luq-sub004"
)

// Min requires the number to be >= min. Non-numeric values pass.
func Min(min float64, opts ...luq.RuleOpt) (luq.Rule, error) {
	if math.IsNaN(min) {
		return luq.Rule{}, fmt.Errorf("rules: minimum is NaN")
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooSmall,
		Kind:   luq.KindBase,
		Params: map[string]any{"min": min},
		Check: func(v luq.Value, _ luq.Env) bool {
			f, ok := numericValue(v.Data)
			if !ok {
				return true
			}
			return f >= min
		},
	}, opts), nil
}

// Max requires the number to be <= max. Non-numeric values pass.
func Max(max float64, opts ...luq.RuleOpt) (luq.Rule, error) {
	if math.IsNaN(max) {
		return luq.Rule{}, fmt.Errorf("rules: maximum is NaN")
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooBig,
		Kind:   luq.KindBase,
		Params: map[string]any{"max": max},
		Check: func(v luq.Value, _ luq.Env) bool {
			f, ok := numericValue(v.Data)
			if !ok {
				return true
			}
			return f <= max
		},
	}, opts), nil
}

// ExclusiveMin requires the number to be strictly greater than min.
// Non-numeric values pass.
func ExclusiveMin(min float64, opts ...luq.RuleOpt) (luq.Rule, error) {
	if math.IsNaN(min) {
		return luq.Rule{}, fmt.Errorf("rules: exclusiveMinimum is NaN")
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooSmall,
		Kind:   luq.KindBase,
		Params: map[string]any{"min": min, "exclusive": true},
		Check: func(v luq.Value, _ luq.Env) bool {
			f, ok := numericValue(v.Data)
			if !ok {
				return true
			}
			return f > min
		},
	}, opts), nil
}

// ExclusiveMax requires the number to be strictly less than max. Non-numeric
// values pass.
func ExclusiveMax(max float64, opts ...luq.RuleOpt) (luq.Rule, error) {
	if math.IsNaN(max) {
		return luq.Rule{}, fmt.Errorf("rules: exclusiveMaximum is NaN")
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooBig,
		Kind:   luq.KindBase,
		Params: map[string]any{"max": max, "exclusive": true},
		Check: func(v luq.Value, _ luq.Env) bool {
			f, ok := numericValue(v.Data)
			if !ok {
				return true
			}
			return f < max
		},
	}, opts), nil
}

// MultipleOf requires the number to be an integer multiple of divisor, which
// must be positive. Non-numeric values pass.
func MultipleOf(divisor float64, opts ...luq.RuleOpt) (luq.Rule, error) {
	if math.IsNaN(divisor) || divisor <= 0 {
		return luq.Rule{}, fmt.Errorf("rules: multipleOf divisor must be positive, got %v", divisor)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeNotMultipleOf,
		Kind:   luq.KindBase,
		Params: map[string]any{"divisor": divisor},
		Check: func(v luq.Value, _ luq.Env) bool {
			f, ok := numericValue(v.Data)
			if !ok {
				return true
			}
			// Quotient distance from the nearest integer absorbs float noise
			// (0.3 is not representable, yet multipleOf 0.1 must accept it).
			q := f / divisor
			return math.Abs(q-math.Round(q)) < 1e-9
		},
	}, opts), nil
}
