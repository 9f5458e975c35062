package rules

import (
	"fmt"
	"regexp"

	luq "github.com/maroonedog/luq-sub004"
)

// MinProperties requires at least min object entries. Non-object values pass.
func MinProperties(min int, opts ...luq.RuleOpt) (luq.Rule, error) {
	if min < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative minProperties %d", min)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooFewProperties,
		Kind:   luq.KindBase,
		Params: map[string]any{"min": min},
		Check: func(v luq.Value, _ luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			return len(obj) >= min
		},
	}, opts), nil
}

// MaxProperties allows at most max object entries. Non-object values pass.
func MaxProperties(max int, opts ...luq.RuleOpt) (luq.Rule, error) {
	if max < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative maxProperties %d", max)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooManyProperties,
		Kind:   luq.KindBase,
		Params: map[string]any{"max": max},
		Check: func(v luq.Value, _ luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			return len(obj) <= max
		},
	}, opts), nil
}

// RequiredKeys checks that the object contains every named key. With strict
// set, a key holding null counts as missing. Non-object values pass.
func RequiredKeys(names []string, strict bool, opts ...luq.RuleOpt) luq.Rule {
	keys := make([]string, len(names))
	copy(keys, names)
	return applyOpts(luq.Rule{
		Code:   luq.CodeRequired,
		Name:   "required_keys",
		Kind:   luq.KindBase,
		Params: map[string]any{"required": keys},
		Check: func(v luq.Value, _ luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			for _, k := range keys {
				val, present := obj[k]
				if !present {
					return false
				}
				if strict && val == nil {
					return false
				}
			}
			return true
		},
	}, opts)
}

// PropertyNames requires every key of the object, taken as a string value, to
// satisfy the evaluator. Non-object values pass.
func PropertyNames(eval Evaluator, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code: luq.CodeInvalidKey,
		Kind: luq.KindBase,
		Check: func(v luq.Value, env luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			for k := range obj {
				if len(eval.Evaluate(k, env)) > 0 {
					return false
				}
			}
			return true
		},
	}, opts)
}

// PatternProperties applies an evaluator to the value of every key matching
// its pattern. A key may match several patterns; all of them apply.
// Non-object values pass.
func PatternProperties(patterns map[string]Evaluator, opts ...luq.RuleOpt) (luq.Rule, error) {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return luq.Rule{}, err
	}
	return applyOpts(luq.Rule{
		Code: luq.CodePatternProperty,
		Kind: luq.KindBase,
		Check: func(v luq.Value, env luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			for k, val := range obj {
				for _, pe := range compiled {
					if pe.re.MatchString(k) && len(pe.eval.Evaluate(val, env)) > 0 {
						return false
					}
				}
			}
			return true
		},
	}, opts), nil
}

// NoAdditionalProperties rejects objects carrying a key that is neither in
// known nor matched by any of the pattern expressions. Non-object values
// pass.
func NoAdditionalProperties(known []string, patterns []string, opts ...luq.RuleOpt) (luq.Rule, error) {
	match, err := keyMatcher(known, patterns)
	if err != nil {
		return luq.Rule{}, err
	}
	return applyOpts(luq.Rule{
		Code: luq.CodeUnknownKey,
		Kind: luq.KindBase,
		Check: func(v luq.Value, _ luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			for k := range obj {
				if !match(k) {
					return false
				}
			}
			return true
		},
	}, opts), nil
}

// AdditionalPropertiesSchema applies an evaluator to the value of every key
// that is neither in known nor matched by any pattern expression. Non-object
// values pass.
func AdditionalPropertiesSchema(eval Evaluator, known []string, patterns []string, opts ...luq.RuleOpt) (luq.Rule, error) {
	match, err := keyMatcher(known, patterns)
	if err != nil {
		return luq.Rule{}, err
	}
	return applyOpts(luq.Rule{
		Code: luq.CodeAdditionalProperty,
		Kind: luq.KindBase,
		Check: func(v luq.Value, env luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			for k, val := range obj {
				if match(k) {
					continue
				}
				if len(eval.Evaluate(val, env)) > 0 {
					return false
				}
			}
			return true
		},
	}, opts), nil
}

// DependentRequired activates when the object holds prop with a defined
// value; the needs keys must then be present. Non-object values and objects
// without prop pass.
func DependentRequired(prop string, needs []string, opts ...luq.RuleOpt) luq.Rule {
	deps := make([]string, len(needs))
	copy(deps, needs)
	return applyOpts(luq.Rule{
		Code:   luq.CodeDependentRequired,
		Kind:   luq.KindConditional,
		Params: map[string]any{"property": prop, "required": deps},
		Check: func(v luq.Value, _ luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			if trigger, present := obj[prop]; !present || trigger == nil {
				return true
			}
			for _, k := range deps {
				if _, present := obj[k]; !present {
					return false
				}
			}
			return true
		},
	}, opts)
}

// DependentSchema activates when the object holds prop with a defined value;
// the whole object must then satisfy the evaluator. Non-object values and
// objects without prop pass.
func DependentSchema(prop string, eval Evaluator, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeDependentSchema,
		Kind:   luq.KindConditional,
		Params: map[string]any{"property": prop},
		Check: func(v luq.Value, env luq.Env) bool {
			obj, ok := v.Data.(map[string]any)
			if !ok {
				return true
			}
			if trigger, present := obj[prop]; !present || trigger == nil {
				return true
			}
			return len(eval.Evaluate(v.Data, env)) == 0
		},
	}, opts)
}

type patternEval struct {
	re   *regexp.Regexp
	eval Evaluator
}

func compilePatterns(patterns map[string]Evaluator) ([]patternEval, error) {
	out := make([]patternEval, 0, len(patterns))
	for expr, ev := range patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rules: patternProperties %q: %w", expr, err)
		}
		out = append(out, patternEval{re: re, eval: ev})
	}
	return out, nil
}

// keyMatcher reports whether a key is accounted for by the declared property
// names or the pattern expressions.
func keyMatcher(known []string, patterns []string) (func(string) bool, error) {
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, expr := range patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rules: property pattern %q: %w", expr, err)
		}
		res = append(res, re)
	}
	return func(k string) bool {
		if _, ok := set[k]; ok {
			return true
		}
		for _, re := range res {
			if re.MatchString(k) {
				return true
			}
		}
		return false
	}, nil
}
