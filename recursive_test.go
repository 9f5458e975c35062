package luq_test

import (
	"testing"

	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/rules"
)

func treePlan(maxDepth int) *luq.Validator {
	return luq.MustCompile([]luq.FieldDefinition{
		{Path: "name", Rules: []luq.Rule{rules.Required(), rules.StringType()}},
		{Path: "child", Rules: []luq.Rule{rules.Optional(), rules.ObjectType(), rules.MustRecurse(luq.SelfValue, maxDepth)}},
	})
}

func TestRecurseSelfValueReportsNestedPaths(t *testing.T) {
	v := treePlan(0)
	doc := map[string]any{
		"name": "a",
		"child": map[string]any{
			"name": "b",
			"child": map[string]any{
				"child": map[string]any{},
			},
		},
	}

	res := v.Validate(doc, luq.CollectAll())
	want := []string{"child.child.name", "child.child.child.name"}
	if got := pathsOf(res.Issues); !equalStrings(got, want) {
		t.Fatalf("nested issue paths: got %v, want %v", got, want)
	}
	for _, it := range res.Issues {
		if it.Code != luq.CodeRequired {
			t.Fatalf("unexpected code %s at %s", it.Code, it.Path)
		}
	}
}

func TestRecurseArrayElement(t *testing.T) {
	v := luq.MustCompile([]luq.FieldDefinition{
		{Path: "value", Rules: []luq.Rule{rules.Required(), rules.NumberType()}},
		{Path: "kids", Rules: []luq.Rule{rules.Optional(), rules.ArrayType(), rules.MustRecurse(luq.ArrayElement, 0)}},
	})

	doc := map[string]any{
		"value": float64(1),
		"kids": []any{
			map[string]any{"value": float64(2)},
			map[string]any{"kids": []any{}},
		},
	}
	res := v.Validate(doc, luq.CollectAll())
	if len(res.Issues) != 1 || res.Issues[0].Path != "kids[1].value" {
		t.Fatalf("expected one issue at kids[1].value, got %v", res.Issues)
	}
}

func TestRecurseDepthLimitStopsSilently(t *testing.T) {
	deep := map[string]any{
		"id": float64(1),
		"next": map[string]any{
			"id": float64(2),
			"next": map[string]any{
				"id":   float64(3),
				"next": map[string]any{}, // id missing, three hops down
			},
		},
	}
	plan := func(maxDepth int) *luq.Validator {
		return luq.MustCompile([]luq.FieldDefinition{
			{Path: "id", Rules: []luq.Rule{rules.Required(), rules.NumberType()}},
			{Path: "next", Rules: []luq.Rule{rules.Optional(), rules.ObjectType(), rules.MustRecurse(luq.SelfValue, maxDepth)}},
		})
	}

	if res := plan(2).Validate(deep, luq.CollectAll()); !res.Valid {
		t.Fatalf("violation beyond the depth limit should stay invisible, got %v", res.Issues)
	}
	res := plan(3).Validate(deep, luq.CollectAll())
	if res.Valid || res.Issues[0].Path != "next.next.next.id" {
		t.Fatalf("within the limit the violation must surface, got %v", res.Issues)
	}
}

func TestRecurseSkipsNodesThatFailedTheirOwnChain(t *testing.T) {
	v := treePlan(0)
	doc := map[string]any{"name": "a", "child": float64(5)}

	res := v.Validate(doc, luq.CollectAll())
	if len(res.Issues) != 1 {
		t.Fatalf("a malformed node must not cascade into nested issues, got %v", res.Issues)
	}
	if res.Issues[0].Path != "child" || res.Issues[0].Code != luq.CodeInvalidType {
		t.Fatalf("unexpected issue: %+v", res.Issues[0])
	}
}

func TestRecurseNullDoesNotDescend(t *testing.T) {
	v := luq.MustCompile([]luq.FieldDefinition{
		{Path: "name", Rules: []luq.Rule{rules.Required(), rules.StringType()}},
		{Path: "child", Rules: []luq.Rule{rules.Optional(), rules.Nullable(), rules.ObjectType(), rules.MustRecurse(luq.SelfValue, 0)}},
	})

	if res := v.Validate(map[string]any{"name": "a", "child": nil}); !res.Valid {
		t.Fatalf("null child should short-circuit, got %v", res.Issues)
	}
}

func TestRecurseTerminatesOnCyclicDocuments(t *testing.T) {
	doc := map[string]any{"id": float64(1)}
	doc["next"] = doc

	v := luq.MustCompile([]luq.FieldDefinition{
		{Path: "id", Rules: []luq.Rule{rules.Required(), rules.NumberType()}},
		{Path: "next", Rules: []luq.Rule{rules.Optional(), rules.ObjectType(), rules.MustRecurse(luq.SelfValue, 0)}},
	})

	// The default depth cap bounds the walk; every revisited level is the
	// same valid node.
	res := v.Validate(doc)
	if !res.Valid {
		t.Fatalf("cyclic document should validate within the depth cap, got %v", res.Issues)
	}
}
