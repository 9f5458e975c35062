package rules

import (
	luq "github.com/maroonedog/luq-sub004"
)

// Evaluator judges a candidate value against a compiled branch and reports
// its issues. Compositions and dependent-schema rules only consult pass/fail.
type Evaluator interface {
	Evaluate(value any, env luq.Env) luq.Issues
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(value any, env luq.Env) luq.Issues

func (f EvaluatorFunc) Evaluate(value any, env luq.Env) luq.Issues { return f(value, env) }

// Compiled wraps a validator as a branch evaluator. Branches run abort-early
// with the outer caller context; the branch value becomes the root the
// branch's own conditionals see.
func Compiled(v *luq.Validator) Evaluator {
	return EvaluatorFunc(func(value any, env luq.Env) luq.Issues {
		res := v.Validate(value, luq.Options{AbortEarly: true, AbortEarlyOnEachField: true, Context: env.Context})
		return res.Issues
	})
}

// Chain compiles an ad-hoc rule chain applied to the value itself into an
// Evaluator.
func Chain(rs ...luq.Rule) (Evaluator, error) {
	v, err := luq.Compile([]luq.FieldDefinition{{Rules: rs}})
	if err != nil {
		return nil, err
	}
	return Compiled(v), nil
}

// MustChain is Chain that panics on error. For chains known to be valid.
func MustChain(rs ...luq.Rule) Evaluator {
	ev, err := Chain(rs...)
	if err != nil {
		panic(err)
	}
	return ev
}

// AllOf requires every branch to accept the value. Undefined values pass.
func AllOf(branches []Evaluator, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeAllOf,
		Kind:   luq.KindBase,
		Params: map[string]any{"branches": len(branches)},
		Check: func(v luq.Value, env luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			for _, b := range branches {
				if len(b.Evaluate(v.Data, env)) > 0 {
					return false
				}
			}
			return true
		},
	}, opts)
}

// AnyOf requires at least one branch to accept the value. Undefined values
// pass; with no branches nothing can match, so every defined value fails.
func AnyOf(branches []Evaluator, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeAnyOf,
		Kind:   luq.KindBase,
		Params: map[string]any{"branches": len(branches)},
		Check: func(v luq.Value, env luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			for _, b := range branches {
				if len(b.Evaluate(v.Data, env)) == 0 {
					return true
				}
			}
			return false
		},
	}, opts)
}

// OneOf requires exactly one branch to accept the value. Undefined values
// pass.
func OneOf(branches []Evaluator, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeOneOf,
		Kind:   luq.KindBase,
		Params: map[string]any{"branches": len(branches)},
		Check: func(v luq.Value, env luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			matched := 0
			for _, b := range branches {
				if len(b.Evaluate(v.Data, env)) == 0 {
					matched++
					if matched > 1 {
						return false
					}
				}
			}
			return matched == 1
		},
	}, opts)
}

// Not requires the branch to reject the value. Undefined values pass.
func Not(branch Evaluator, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code: luq.CodeNot,
		Kind: luq.KindBase,
		Check: func(v luq.Value, env luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			return len(branch.Evaluate(v.Data, env)) > 0
		},
	}, opts)
}

// IfThenElse applies thenBranch when condBranch accepts the value and
// elseBranch when it rejects it. A nil then or else branch passes. Undefined
// values pass.
func IfThenElse(condBranch, thenBranch, elseBranch Evaluator, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code: luq.CodeCondition,
		Kind: luq.KindBase,
		Check: func(v luq.Value, env luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			if len(condBranch.Evaluate(v.Data, env)) == 0 {
				return thenBranch == nil || len(thenBranch.Evaluate(v.Data, env)) == 0
			}
			return elseBranch == nil || len(elseBranch.Evaluate(v.Data, env)) == 0
		},
	}, opts)
}
