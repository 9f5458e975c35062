package dsl_test

import (
	"strings"
	"testing"

	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/dsl"
)

func TestBuilderQuickstart(t *testing.T) {
	v := dsl.NewBuilder().
		Field("name", dsl.String().Required().MinLength(1).MaxLength(100)).
		Field("email", dsl.String().Required().Email()).
		Field("age", dsl.Integer().Optional().Min(0).Max(150)).
		MustBuild()

	ok := map[string]any{"name": "alice", "email": "alice@example.com", "age": float64(30)}
	if res := v.Validate(ok); !res.Valid {
		t.Fatalf("expected valid, got %v", res.Issues)
	}

	bad := map[string]any{"name": "", "email": "nope", "age": float64(200)}
	res := v.Validate(bad, luq.CollectAll())
	if res.Valid || len(res.Issues) != 3 {
		t.Fatalf("expected three issues, got %+v", res.Issues)
	}
	if res.Issues[0].Path != "name" || res.Issues[0].Code != luq.CodeTooShort {
		t.Fatalf("unexpected first issue: %+v", res.Issues[0])
	}
}

func TestTypedConstructorsPrependType(t *testing.T) {
	v := dsl.NewBuilder().Field("n", dsl.Number()).MustBuild()
	res := v.Validate(map[string]any{"n": "not a number"})
	if res.Valid || res.Issues[0].Code != luq.CodeInvalidType {
		t.Fatalf("number chain should reject strings, got %+v", res.Issues)
	}
}

func TestDeferredChainErrors(t *testing.T) {
	_, err := dsl.NewBuilder().
		Field("s", dsl.String().MinLength(-1)).
		Field("p", dsl.String().Pattern("(")).
		Build()
	if err == nil {
		t.Fatalf("chain parameter errors must surface at Build")
	}
	msg := err.Error()
	if !strings.Contains(msg, `field "s"`) || !strings.Contains(msg, `field "p"`) {
		t.Fatalf("joined error should name both fields, got %q", msg)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustBuild should panic on deferred errors")
		}
	}()
	dsl.NewBuilder().Field("s", dsl.String().MinLength(-1)).MustBuild()
}

func TestChainOrderPreserved(t *testing.T) {
	// both rules fail for "x"; only the first declared one reports
	v := dsl.NewBuilder().
		Field("v", dsl.Any().MinLength(5).Pattern("^z")).
		MustBuild()
	res := v.Validate(map[string]any{"v": "x"})
	if res.Valid || res.Issues[0].Code != luq.CodeTooShort {
		t.Fatalf("declaration order decides the first issue, got %+v", res.Issues)
	}
}

func TestDefaultValidatedAndMaterialized(t *testing.T) {
	v := dsl.NewBuilder().
		Field("role", dsl.String().Default("viewer").Enum("viewer", "editor", "admin")).
		MustBuild()

	out := v.Parse(map[string]any{})
	if !out.Valid {
		t.Fatalf("default should satisfy the chain, got %v", out.Issues)
	}
	doc := out.Data.(map[string]any)
	if doc["role"] != "viewer" {
		t.Fatalf("default not materialized: %v", doc)
	}

	// a default that violates the chain fails validation
	bad := dsl.NewBuilder().
		Field("role", dsl.String().Default("nope").Enum("viewer", "editor")).
		MustBuild()
	if res := bad.Validate(map[string]any{}); res.Valid {
		t.Fatalf("defaults are validated like input values")
	}
}

func TestTransformsAppliedByParse(t *testing.T) {
	v := dsl.NewBuilder().
		Field("email", dsl.String().Required().Trim().ToLower().Email()).
		MustBuild()

	in := map[string]any{"email": "  Alice@Example.COM "}
	out := v.Parse(in)
	if !out.Valid {
		t.Fatalf("expected valid, got %v", out.Issues)
	}
	got := out.Data.(map[string]any)["email"]
	if got != "alice@example.com" {
		t.Fatalf("transforms should fold in order, got %q", got)
	}
	if in["email"] != "  Alice@Example.COM " {
		t.Fatalf("input document must not be mutated")
	}
}

func TestMessageOverride(t *testing.T) {
	v := dsl.NewBuilder().
		Field("name", dsl.String().Required().Message("name is mandatory")).
		MustBuild()
	res := v.Validate(map[string]any{})
	if res.Valid || res.Issues[0].Message != "name is mandatory" {
		t.Fatalf("message override not applied: %+v", res.Issues)
	}
}

func TestWildcardChains(t *testing.T) {
	v := dsl.NewBuilder().
		Field("items", dsl.Array().Required().MinItems(1)).
		Field("items[*].sku", dsl.String().Required()).
		MustBuild()

	doc := map[string]any{"items": []any{
		map[string]any{"sku": "A-1"},
		map[string]any{},
	}}
	res := v.Validate(doc, luq.CollectAll())
	if res.Valid || len(res.Issues) != 1 || res.Issues[0].Path != "items[1].sku" {
		t.Fatalf("expected one issue at items[1].sku, got %+v", res.Issues)
	}
}

func TestRecurseSelfChain(t *testing.T) {
	v := dsl.NewBuilder().
		Field("name", dsl.String().Required()).
		Field("child", dsl.Object().Optional().RecurseSelf()).
		MustBuild()

	doc := map[string]any{
		"name": "root",
		"child": map[string]any{
			"name": "leaf",
		},
	}
	if res := v.Validate(doc); !res.Valid {
		t.Fatalf("nested tree should pass, got %v", res.Issues)
	}

	doc["child"].(map[string]any)["child"] = map[string]any{}
	res := v.Validate(doc)
	if res.Valid || res.Issues[0].Path != "child.child.name" {
		t.Fatalf("missing nested name should fail with the full path, got %+v", res.Issues)
	}
}

func TestBuilderDefinitions(t *testing.T) {
	b := dsl.NewBuilder().
		Field("a", dsl.String()).
		Field("b", dsl.Number())
	defs := b.Definitions()
	if len(defs) != 2 || defs[0].Path != "a" || defs[1].Path != "b" {
		t.Fatalf("definitions should preserve declaration order, got %+v", defs)
	}
}
