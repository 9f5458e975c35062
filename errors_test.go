package luq_test

import (
	"errors"
	"fmt"
	"testing"

	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/rules"
)

func TestIssuesErrorSummary(t *testing.T) {
	iss := luq.Issues{
		{Code: "too_short", Path: "items[2].name"},
		{Code: "required", Path: ""},
		{Code: "pattern", Path: "slug"},
		{Code: "too_big", Path: "n"},
	}
	want := "too_short at items[2].name; required at (root); pattern at slug; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("summary:\n got %q\nwant %q", got, want)
	}

	one := luq.Issues{{Code: "too_short", Path: "name"}}
	if got := one.Error(); got != "too_short at name" {
		t.Fatalf("single issue summary: %q", got)
	}
	if got := (luq.Issues{}).Error(); got != "" {
		t.Fatalf("empty issues should stringify empty, got %q", got)
	}
}

func TestAppendIssuesInitializesNil(t *testing.T) {
	var iss luq.Issues
	iss = luq.AppendIssues(iss, luq.Issue{Code: "a"})
	iss = luq.AppendIssues(iss, luq.Issue{Code: "b"}, luq.Issue{Code: "c"})
	if len(iss) != 3 || iss[0].Code != "a" || iss[2].Code != "c" {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestAsIssues(t *testing.T) {
	v := luq.MustCompile([]luq.FieldDefinition{{
		Path:  "name",
		Rules: []luq.Rule{rules.Required(), rules.StringType()},
	}})
	err := v.Validate(map[string]any{}).Err()
	if err == nil {
		t.Fatalf("expected an error")
	}

	iss, ok := luq.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != luq.CodeRequired {
		t.Fatalf("direct extraction failed: %v %v", iss, ok)
	}

	wrapped := fmt.Errorf("loading config: %w", err)
	if iss, ok = luq.AsIssues(wrapped); !ok || len(iss) != 1 {
		t.Fatalf("wrapped extraction failed: %v %v", iss, ok)
	}

	if _, ok = luq.AsIssues(nil); ok {
		t.Fatalf("nil error must not extract")
	}
	if _, ok = luq.AsIssues(errors.New("other")); ok {
		t.Fatalf("foreign error must not extract")
	}
}

func TestResultErr(t *testing.T) {
	v := luq.MustCompile([]luq.FieldDefinition{{
		Path:  "name",
		Rules: []luq.Rule{rules.Optional(), rules.StringType()},
	}})
	if err := v.Validate(map[string]any{"name": "a"}).Err(); err != nil {
		t.Fatalf("valid result must return nil, got %v", err)
	}
	if err := v.Validate(map[string]any{"name": float64(1)}).Err(); err == nil {
		t.Fatalf("invalid result must return the issues")
	}
}
