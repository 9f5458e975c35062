package dsl

import (
	"fmt"

	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/rules"
)

// Chain accumulates one field's rule descriptors in call order. Chains are
// one-shot: hand each to exactly one Builder.Field call.
type Chain struct {
	list []luq.Rule
	def  *luq.DefaultSpec
	errs []error
}

// Any opens a chain with no type constraint.
func Any() *Chain { return &Chain{} }

// String opens a chain that requires string values.
func String() *Chain { return Any().Rule(rules.StringType()) }

// Number opens a chain that requires numeric values.
func Number() *Chain { return Any().Rule(rules.NumberType()) }

// Integer opens a chain that requires integral numeric values.
func Integer() *Chain { return Any().Rule(rules.TypeOf("integer")) }

// Bool opens a chain that requires boolean values.
func Bool() *Chain { return Any().Rule(rules.BoolType()) }

// Array opens a chain that requires array values.
func Array() *Chain { return Any().Rule(rules.ArrayType()) }

// Object opens a chain that requires object values.
func Object() *Chain { return Any().Rule(rules.ObjectType()) }

// Rule appends a prebuilt rule.
func (c *Chain) Rule(r luq.Rule) *Chain {
	c.list = append(c.list, r)
	return c
}

func (c *Chain) add(r luq.Rule, err error) *Chain {
	if err != nil {
		c.errs = append(c.errs, err)
		return c
	}
	return c.Rule(r)
}

// Message overrides the failure message of the most recently appended rule.
func (c *Chain) Message(msg string) *Chain {
	if len(c.list) == 0 {
		c.errs = append(c.errs, fmt.Errorf("dsl: Message called on an empty chain"))
		return c
	}
	last := &c.list[len(c.list)-1]
	*last = luq.RuleOpt{Message: func(luq.Value, string, luq.Env) string { return msg }}.Apply(*last)
	return c
}

// Required rejects undefined and null.
func (c *Chain) Required() *Chain { return c.Rule(rules.Required()) }

// RequiredKey rejects undefined but lets explicit null through.
func (c *Chain) RequiredKey() *Chain { return c.Rule(rules.RequiredKey()) }

// Optional short-circuits the rest of the chain when the value is undefined.
func (c *Chain) Optional() *Chain { return c.Rule(rules.Optional()) }

// Nullable short-circuits the rest of the chain when the value is null.
func (c *Chain) Nullable() *Chain { return c.Rule(rules.Nullable()) }

// MinLength requires at least n characters.
func (c *Chain) MinLength(n int) *Chain { return c.add(rules.MinLength(n)) }

// MaxLength allows at most n characters.
func (c *Chain) MaxLength(n int) *Chain { return c.add(rules.MaxLength(n)) }

// Pattern requires the string to match the regular expression.
func (c *Chain) Pattern(expr string) *Chain { return c.add(rules.Pattern(expr)) }

// Format checks the string against a named format.
func (c *Chain) Format(name string) *Chain { return c.Rule(rules.Format(name)) }

// Email checks the email format.
func (c *Chain) Email() *Chain { return c.Rule(rules.Email()) }

// URL checks the url format.
func (c *Chain) URL() *Chain { return c.Rule(rules.URL()) }

// UUID checks the canonical uuid format.
func (c *Chain) UUID() *Chain { return c.Rule(rules.UUIDFormat()) }

// Min requires the number to be >= n.
func (c *Chain) Min(n float64) *Chain { return c.add(rules.Min(n)) }

// Max requires the number to be <= n.
func (c *Chain) Max(n float64) *Chain { return c.add(rules.Max(n)) }

// ExclusiveMin requires the number to be > n.
func (c *Chain) ExclusiveMin(n float64) *Chain { return c.add(rules.ExclusiveMin(n)) }

// ExclusiveMax requires the number to be < n.
func (c *Chain) ExclusiveMax(n float64) *Chain { return c.add(rules.ExclusiveMax(n)) }

// MultipleOf requires the number to be a multiple of n.
func (c *Chain) MultipleOf(n float64) *Chain { return c.add(rules.MultipleOf(n)) }

// MinItems requires at least n elements.
func (c *Chain) MinItems(n int) *Chain { return c.add(rules.MinItems(n)) }

// MaxItems allows at most n elements.
func (c *Chain) MaxItems(n int) *Chain { return c.add(rules.MaxItems(n)) }

// UniqueItems rejects duplicate elements.
func (c *Chain) UniqueItems() *Chain { return c.Rule(rules.UniqueItems()) }

// TupleLength pins the array length exactly.
func (c *Chain) TupleLength(n int) *Chain { return c.add(rules.TupleLength(n)) }

// Contains requires at least one element to satisfy the evaluator.
func (c *Chain) Contains(eval rules.Evaluator) *Chain { return c.Rule(rules.Contains(eval)) }

// MinProperties requires at least n object entries.
func (c *Chain) MinProperties(n int) *Chain { return c.add(rules.MinProperties(n)) }

// MaxProperties allows at most n object entries.
func (c *Chain) MaxProperties(n int) *Chain { return c.add(rules.MaxProperties(n)) }

// DependentRequired requires the needs keys once prop is present and defined.
func (c *Chain) DependentRequired(prop string, needs ...string) *Chain {
	return c.Rule(rules.DependentRequired(prop, needs))
}

// Enum restricts the value to the given set.
func (c *Chain) Enum(values ...any) *Chain { return c.add(rules.Enum(values)) }

// Const pins the value to a constant.
func (c *Chain) Const(v any) *Chain { return c.Rule(rules.Const(v)) }

// AllOf requires every branch to accept the value.
func (c *Chain) AllOf(branches ...rules.Evaluator) *Chain { return c.Rule(rules.AllOf(branches)) }

// AnyOf requires at least one branch to accept the value.
func (c *Chain) AnyOf(branches ...rules.Evaluator) *Chain { return c.Rule(rules.AnyOf(branches)) }

// OneOf requires exactly one branch to accept the value.
func (c *Chain) OneOf(branches ...rules.Evaluator) *Chain { return c.Rule(rules.OneOf(branches)) }

// Not requires the branch to reject the value.
func (c *Chain) Not(branch rules.Evaluator) *Chain { return c.Rule(rules.Not(branch)) }

// IfThenElse applies thenBranch or elseBranch depending on condBranch.
func (c *Chain) IfThenElse(condBranch, thenBranch, elseBranch rules.Evaluator) *Chain {
	return c.Rule(rules.IfThenElse(condBranch, thenBranch, elseBranch))
}

// RequiredIf makes the field required while cond holds.
func (c *Chain) RequiredIf(cond func(root any, arr *luq.ArrayContext) bool) *Chain {
	return c.Rule(rules.RequiredIf(cond))
}

// FromContext checks the value against caller-supplied context.
func (c *Chain) FromContext(code string, fn func(ctxVal, value any) bool) *Chain {
	return c.Rule(rules.FromContext(code, fn))
}

// Custom appends an arbitrary predicate under the given code.
func (c *Chain) Custom(code string, fn func(value any) bool) *Chain {
	return c.Rule(rules.Custom(code, fn))
}

// Recurse re-applies the whole field set to this value or its elements. It
// must be the last rule of the chain.
func (c *Chain) Recurse(target luq.RecursionTarget, maxDepth int) *Chain {
	return c.add(rules.Recurse(target, maxDepth))
}

// RecurseSelf is Recurse(luq.SelfValue, luq.DefaultMaxDepth).
func (c *Chain) RecurseSelf() *Chain { return c.Recurse(luq.SelfValue, 0) }

// RecurseElements is Recurse(luq.ArrayElement, luq.DefaultMaxDepth).
func (c *Chain) RecurseElements() *Chain { return c.Recurse(luq.ArrayElement, 0) }

// Trim strips surrounding whitespace during Parse.
func (c *Chain) Trim() *Chain { return c.Rule(rules.Trim()) }

// ToLower lowercases string values during Parse.
func (c *Chain) ToLower() *Chain { return c.Rule(rules.ToLower()) }

// ToUpper uppercases string values during Parse.
func (c *Chain) ToUpper() *Chain { return c.Rule(rules.ToUpper()) }

// Transform rewrites the value during Parse.
func (c *Chain) Transform(fn luq.TransformFunc) *Chain { return c.Rule(rules.TransformFn(fn)) }

// Default substitutes v when the field is undefined. The substituted value is
// validated by the rest of the chain and materialized by Parse.
func (c *Chain) Default(v any) *Chain {
	c.ensureDefault().Value = v
	return c
}

// DefaultFn generates a fresh default per location when the field is
// undefined.
func (c *Chain) DefaultFn(fn func() any) *Chain {
	c.ensureDefault().Generate = fn
	return c
}

// DefaultOnNull extends the chain's default to explicit nulls.
func (c *Chain) DefaultOnNull() *Chain {
	c.ensureDefault().ApplyToNull = true
	return c
}

func (c *Chain) ensureDefault() *luq.DefaultSpec {
	if c.def == nil {
		c.def = &luq.DefaultSpec{}
	}
	return c.def
}

// finish freezes the chain into a field definition.
func (c *Chain) finish(path string) (luq.FieldDefinition, []error) {
	return luq.FieldDefinition{Path: path, Rules: c.list, Default: c.def}, c.errs
}
