package rules_test

import (
	"encoding/json"
	"testing"

	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/rules"
)

// fieldValid compiles a one-field plan over "v" and reports whether doc
// passes it.
func fieldValid(t *testing.T, doc map[string]any, rs ...luq.Rule) bool {
	t.Helper()
	v, err := luq.Compile([]luq.FieldDefinition{{Path: "v", Rules: rs}})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return v.Validate(doc).Valid
}

func withV(data any) map[string]any { return map[string]any{"v": data} }

func must(r luq.Rule, err error) luq.Rule {
	if err != nil {
		panic(err)
	}
	return r
}

func TestRequired(t *testing.T) {
	if !fieldValid(t, withV("x"), rules.Required()) {
		t.Fatalf("defined value should pass required")
	}
	if fieldValid(t, withV(nil), rules.Required()) {
		t.Fatalf("null should fail required")
	}
	if fieldValid(t, map[string]any{}, rules.Required()) {
		t.Fatalf("absent key should fail required")
	}
}

func TestRequiredKey(t *testing.T) {
	if fieldValid(t, map[string]any{}, rules.RequiredKey()) {
		t.Fatalf("absent key should fail requiredKey")
	}
	if !fieldValid(t, withV(nil), rules.RequiredKey()) {
		t.Fatalf("explicit null should pass requiredKey")
	}
}

func TestOptionalShortCircuit(t *testing.T) {
	chain := []luq.Rule{rules.Optional(), rules.StringType(), must(rules.MinLength(2))}
	if !fieldValid(t, map[string]any{}, chain...) {
		t.Fatalf("absent value should short-circuit valid")
	}
	if fieldValid(t, withV(nil), chain...) {
		t.Fatalf("null must not trigger optional; the type check should fail")
	}
	if fieldValid(t, withV("a"), chain...) {
		t.Fatalf("present value must run the rest of the chain")
	}
	if !fieldValid(t, withV("ab"), chain...) {
		t.Fatalf("valid present value should pass")
	}
}

func TestNullableShortCircuit(t *testing.T) {
	chain := []luq.Rule{rules.Required(), rules.StringType()}
	nullable := []luq.Rule{rules.Nullable(), rules.StringType()}
	if fieldValid(t, withV(nil), chain...) {
		t.Fatalf("null should fail without nullable")
	}
	if !fieldValid(t, withV(nil), nullable...) {
		t.Fatalf("nullable should short-circuit on null")
	}
	if fieldValid(t, withV(42), nullable...) {
		t.Fatalf("non-null values still run the chain")
	}
}

func TestTypeOf(t *testing.T) {
	cases := []struct {
		kind string
		ok   any
		bad  any
	}{
		{"string", "x", 1},
		{"number", 1.5, "x"},
		{"integer", float64(3), 3.5},
		{"boolean", true, "true"},
		{"object", map[string]any{}, []any{}},
		{"array", []any{}, map[string]any{}},
		{"null", nil, "nil"},
	}
	for _, tc := range cases {
		if !fieldValid(t, withV(tc.ok), rules.TypeOf(tc.kind)) {
			t.Fatalf("type %s should accept %v", tc.kind, tc.ok)
		}
		if fieldValid(t, withV(tc.bad), rules.TypeOf(tc.kind)) {
			t.Fatalf("type %s should reject %v", tc.kind, tc.bad)
		}
	}
	// undefined passes every type check
	if !fieldValid(t, map[string]any{}, rules.TypeOf("string")) {
		t.Fatalf("undefined should pass the type check")
	}
}

func TestTypeOfNumberRepresentations(t *testing.T) {
	for _, n := range []any{1, int64(1), float64(1), json.Number("1")} {
		if !fieldValid(t, withV(n), rules.NumberType()) {
			t.Fatalf("number type should accept %T(%v)", n, n)
		}
	}
	if !fieldValid(t, withV(json.Number("2.5")), rules.NumberType()) {
		t.Fatalf("number type should accept json.Number decimals")
	}
	if fieldValid(t, withV(json.Number("2.5")), rules.TypeOf("integer")) {
		t.Fatalf("integer type should reject fractional json.Number")
	}
}

func TestTypeIn(t *testing.T) {
	r := rules.TypeIn([]string{"string", "null"})
	if !fieldValid(t, withV("x"), r) || !fieldValid(t, withV(nil), r) {
		t.Fatalf("typeIn should accept any listed kind")
	}
	if fieldValid(t, withV(1), r) {
		t.Fatalf("typeIn should reject unlisted kinds")
	}
}

func TestIntegerRule(t *testing.T) {
	if !fieldValid(t, withV(float64(3)), rules.IntegerRule()) {
		t.Fatalf("3.0 is integral")
	}
	if fieldValid(t, withV(3.5), rules.IntegerRule()) {
		t.Fatalf("3.5 is not integral")
	}
	if !fieldValid(t, withV("x"), rules.IntegerRule()) {
		t.Fatalf("non-numeric values pass the integer predicate")
	}
}

func TestEnum(t *testing.T) {
	r := must(rules.Enum([]any{1, "a"}))
	if !fieldValid(t, withV(float64(1)), r) {
		t.Fatalf("1.0 should match enum entry 1 by JSON equality")
	}
	if !fieldValid(t, withV("a"), r) {
		t.Fatalf("exact string should match")
	}
	if fieldValid(t, withV(2), r) {
		t.Fatalf("2 is not in the enum")
	}
	if _, err := rules.Enum(nil); err == nil {
		t.Fatalf("empty enum must be a construction error")
	}
}

func TestConst(t *testing.T) {
	want := map[string]any{"a": float64(1), "b": []any{"x"}}
	r := rules.Const(want)
	if !fieldValid(t, withV(map[string]any{"a": 1, "b": []any{"x"}}), r) {
		t.Fatalf("structurally equal object should match const")
	}
	if fieldValid(t, withV(map[string]any{"a": 2, "b": []any{"x"}}), r) {
		t.Fatalf("different object should fail const")
	}
}

func TestCustom(t *testing.T) {
	even := rules.Custom("odd_number", func(v any) bool {
		f, ok := v.(float64)
		return ok && int64(f)%2 == 0
	})
	if !fieldValid(t, withV(float64(4)), even) {
		t.Fatalf("custom predicate should pass 4")
	}
	if fieldValid(t, withV(float64(3)), even) {
		t.Fatalf("custom predicate should fail 3")
	}
	if !fieldValid(t, map[string]any{}, even) {
		t.Fatalf("undefined passes custom predicates")
	}
}

func TestCustomIssueCode(t *testing.T) {
	v := luq.MustCompile([]luq.FieldDefinition{{
		Path:  "v",
		Rules: []luq.Rule{rules.Custom("odd_number", func(any) bool { return false })},
	}})
	res := v.Validate(withV(1))
	if res.Valid || res.Issues[0].Code != "odd_number" {
		t.Fatalf("custom code should surface in the issue, got %+v", res.Issues)
	}
}

func TestRuleOptOverrides(t *testing.T) {
	r := rules.Required(luq.RuleOpt{
		Code: "missing_name",
		Message: func(_ luq.Value, path string, _ luq.Env) string {
			return "give " + path + " a value"
		},
	})
	v := luq.MustCompile([]luq.FieldDefinition{{Path: "v", Rules: []luq.Rule{r}}})
	res := v.Validate(map[string]any{})
	if res.Valid {
		t.Fatalf("expected failure")
	}
	it := res.Issues[0]
	if it.Code != "missing_name" || it.Message != "give v a value" {
		t.Fatalf("rule opts not applied: %+v", it)
	}
}

func TestRecurseConstruction(t *testing.T) {
	if _, err := rules.Recurse(luq.SelfValue, -1); err == nil {
		t.Fatalf("negative depth must be a construction error")
	}
	if _, err := rules.Recurse(luq.RecursionTarget(9), 0); err == nil {
		t.Fatalf("unknown target must be a construction error")
	}
	// recursion must be terminal
	_, err := luq.Compile([]luq.FieldDefinition{{
		Path:  "v",
		Rules: []luq.Rule{rules.MustRecurse(luq.SelfValue, 0), rules.Required()},
	}})
	if err == nil {
		t.Fatalf("non-terminal recursive entry must fail compilation")
	}
}
