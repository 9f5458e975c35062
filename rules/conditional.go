package rules

import (
	luq "github.com/maroonedog/luq-sub004"
)

// RequiredIf makes the field required only while cond holds. The condition
// sees the whole document and, inside a wildcard expansion, the array context
// of the current element. While the condition is off the rule passes
// regardless of the field's own value.
func RequiredIf(cond func(root any, arr *luq.ArrayContext) bool, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code: luq.CodeRequiredIf,
		Kind: luq.KindConditional,
		Check: func(v luq.Value, env luq.Env) bool {
			if !cond(env.Root, env.Array) {
				return true
			}
			return v.Defined()
		},
	}, opts)
}

// FromContext checks the value against caller-supplied context (for example a
// tenant-specific limit). The rule passes when no context was provided or the
// value is undefined.
func FromContext(code string, fn func(ctxVal any, value any) bool, opts ...luq.RuleOpt) luq.Rule {
	if code == "" {
		code = luq.CodeContextRule
	}
	return applyOpts(luq.Rule{
		Code: code,
		Kind: luq.KindConditional,
		Check: func(v luq.Value, env luq.Env) bool {
			if env.Context == nil || v.IsUndefined() {
				return true
			}
			return fn(env.Context, v.Data)
		},
	}, opts)
}
