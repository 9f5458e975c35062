package luq

import "github.com/maroonedog/luq-sub004/i18n"

// RuleKind tags a chain entry. The compiler switches on the kind exhaustively
// instead of probing ad-hoc flags.
type RuleKind uint8

const (
	// KindBase is a plain value check.
	KindBase RuleKind = iota
	// KindOptional short-circuits the rest of the chain with valid when the
	// value is undefined. Null does not trigger it.
	KindOptional
	// KindNullable short-circuits the rest of the chain with valid when the
	// value is an explicit null.
	KindNullable
	// KindConditional is a check whose constraint activates only under a
	// condition it evaluates against the whole document or array context; it
	// passes whenever its condition is off.
	KindConditional
	// KindRecursive re-applies the owning validator's entire field set to the
	// value (or its elements). It performs no check of its own and must be
	// the terminal chain entry.
	KindRecursive
	// KindTransform rewrites the value during Parse. It is skipped during
	// validation.
	KindTransform
)

func (k RuleKind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindOptional:
		return "optional"
	case KindNullable:
		return "nullable"
	case KindConditional:
		return "conditional"
	case KindRecursive:
		return "recursive"
	case KindTransform:
		return "transform"
	}
	return "unknown"
}

// RecursionTarget selects what a recursive entry re-applies the field set to.
type RecursionTarget uint8

const (
	// SelfValue applies the field set to the field's own value.
	SelfValue RecursionTarget = iota
	// ArrayElement applies the field set to each element of the field's
	// array value.
	ArrayElement
)

func (t RecursionTarget) String() string {
	if t == ArrayElement {
		return "element"
	}
	return "self"
}

// DefaultMaxDepth caps recursive re-application when a recursive entry does
// not set its own limit.
const DefaultMaxDepth = 32

// RecursionSpec configures a KindRecursive entry.
type RecursionSpec struct {
	Target   RecursionTarget
	MaxDepth int
}

// CheckFunc judges a resolved value. Checks must be pure: no I/O, no mutation
// of the value or the environment.
type CheckFunc func(v Value, env Env) bool

// MessageFunc renders the failure message for one issue.
type MessageFunc func(v Value, path string, env Env) string

// TransformFunc rewrites a value during Parse. It must be pure.
type TransformFunc func(v any) any

// Rule is one entry of a field's rule chain. Factories in the rules package
// construct these; hand-built values work the same way.
type Rule struct {
	Code string
	Kind RuleKind
	// Check is required for KindBase and KindConditional, ignored otherwise.
	Check CheckFunc
	// Message overrides the i18n catalog message when set.
	Message MessageFunc
	// Recursion is required for KindRecursive.
	Recursion *RecursionSpec
	// Apply is required for KindTransform.
	Apply TransformFunc
	// Params carries structured message parameters ({"min": 3}, ...).
	Params map[string]any
	// Name labels the producing rule in issues; defaults to Code.
	Name string
}

// RuleOpt adjusts a rule factory's output: an override code and/or a custom
// message factory. The zero value changes nothing.
type RuleOpt struct {
	Code    string
	Message MessageFunc
}

// Apply merges the option into the rule, last caller wins.
func (o RuleOpt) Apply(r Rule) Rule {
	if o.Code != "" {
		r.Code = o.Code
	}
	if o.Message != nil {
		r.Message = o.Message
	}
	return r
}

// messageFor renders the issue message for a failed rule.
func (r Rule) messageFor(v Value, path string, env Env) string {
	if r.Message != nil {
		return r.Message(v, path, env)
	}
	return i18n.T(r.Code, r.Params)
}

func (r Rule) ruleName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Code
}
