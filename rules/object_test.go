package rules_test

import (
	"testing"

	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/rules"
)

func TestMinMaxProperties(t *testing.T) {
	min1 := must(rules.MinProperties(1))
	max2 := must(rules.MaxProperties(2))
	if fieldValid(t, withV(map[string]any{}), min1) {
		t.Fatalf("empty object fails minProperties 1")
	}
	if !fieldValid(t, withV(map[string]any{"a": 1, "b": 2}), max2) {
		t.Fatalf("two entries satisfy maxProperties 2")
	}
	if fieldValid(t, withV(map[string]any{"a": 1, "b": 2, "c": 3}), max2) {
		t.Fatalf("three entries exceed maxProperties 2")
	}
	if !fieldValid(t, withV("not an object"), min1) {
		t.Fatalf("non-object values pass property counts")
	}
}

func TestRequiredKeys(t *testing.T) {
	lenient := rules.RequiredKeys([]string{"a", "b"}, false)
	strict := rules.RequiredKeys([]string{"a", "b"}, true)
	obj := map[string]any{"a": 1, "b": nil}
	if !fieldValid(t, withV(obj), lenient) {
		t.Fatalf("lenient required accepts a null member")
	}
	if fieldValid(t, withV(obj), strict) {
		t.Fatalf("strict required rejects a null member")
	}
	if fieldValid(t, withV(map[string]any{"a": 1}), lenient) {
		t.Fatalf("missing key fails either way")
	}
}

func TestPropertyNames(t *testing.T) {
	shortKey := rules.MustChain(rules.StringType(), must(rules.MaxLength(3)))
	r := rules.PropertyNames(shortKey)
	if !fieldValid(t, withV(map[string]any{"ab": 1, "xyz": 2}), r) {
		t.Fatalf("conforming keys should pass")
	}
	if fieldValid(t, withV(map[string]any{"toolong": 1}), r) {
		t.Fatalf("offending key should fail")
	}
}

func TestPatternProperties(t *testing.T) {
	numeric := rules.MustChain(rules.Required(), rules.NumberType())
	r := must(rules.PatternProperties(map[string]rules.Evaluator{"^x_": numeric}))
	if !fieldValid(t, withV(map[string]any{"x_a": 1, "other": "s"}), r) {
		t.Fatalf("matching key with conforming value should pass")
	}
	if fieldValid(t, withV(map[string]any{"x_a": "not a number"}), r) {
		t.Fatalf("matching key with offending value should fail")
	}
	if _, err := rules.PatternProperties(map[string]rules.Evaluator{"(": numeric}); err == nil {
		t.Fatalf("invalid pattern must be a construction error")
	}
}

func TestNoAdditionalProperties(t *testing.T) {
	r := must(rules.NoAdditionalProperties([]string{"name"}, []string{"^x_"}))
	if !fieldValid(t, withV(map[string]any{"name": "a", "x_tag": 1}), r) {
		t.Fatalf("known and pattern-matched keys are allowed")
	}
	if fieldValid(t, withV(map[string]any{"name": "a", "rogue": 1}), r) {
		t.Fatalf("unknown key should fail")
	}
}

func TestAdditionalPropertiesSchema(t *testing.T) {
	stringOnly := rules.MustChain(rules.Required(), rules.StringType())
	r := must(rules.AdditionalPropertiesSchema(stringOnly, []string{"id"}, nil))
	if !fieldValid(t, withV(map[string]any{"id": 42, "extra": "ok"}), r) {
		t.Fatalf("known keys are exempt; conforming extras pass")
	}
	if fieldValid(t, withV(map[string]any{"id": 42, "extra": 99}), r) {
		t.Fatalf("non-conforming extra value should fail")
	}
}

func TestDependentRequired(t *testing.T) {
	r := rules.DependentRequired("creditCard", []string{"billingAddress"})
	if !fieldValid(t, withV(map[string]any{}), r) {
		t.Fatalf("object without the trigger passes")
	}
	if !fieldValid(t, withV(map[string]any{"creditCard": "x", "billingAddress": "y"}), r) {
		t.Fatalf("trigger plus dependents passes")
	}
	if fieldValid(t, withV(map[string]any{"creditCard": "x"}), r) {
		t.Fatalf("trigger without dependents fails")
	}
	if !fieldValid(t, withV(map[string]any{"creditCard": nil}), r) {
		t.Fatalf("a null trigger does not activate the dependency")
	}
}

func TestDependentSchema(t *testing.T) {
	needsBilling := rules.MustChain(rules.RequiredKeys([]string{"billingAddress"}, false))
	r := rules.DependentSchema("creditCard", needsBilling)
	if !fieldValid(t, withV(map[string]any{"other": 1}), r) {
		t.Fatalf("object without the trigger passes")
	}
	if fieldValid(t, withV(map[string]any{"creditCard": "x"}), r) {
		t.Fatalf("dependent schema applies once the trigger is present")
	}
	if !fieldValid(t, withV(map[string]any{"creditCard": "x", "billingAddress": "y"}), r) {
		t.Fatalf("object satisfying the dependent schema passes")
	}
}

func TestDependentIssueCode(t *testing.T) {
	v := luq.MustCompile([]luq.FieldDefinition{{
		Path:  "",
		Rules: []luq.Rule{rules.DependentRequired("a", []string{"b"})},
	}})
	res := v.Validate(map[string]any{"a": 1})
	if res.Valid || res.Issues[0].Code != luq.CodeDependentRequired {
		t.Fatalf("expected dependent_required at root, got %+v", res.Issues)
	}
	if res.Issues[0].Path != "" {
		t.Fatalf("root-path issues report an empty path, got %q", res.Issues[0].Path)
	}
}
