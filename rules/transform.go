package rules

import (
	"strings"

	luq "github.com/maroonedog/luq-sub004"
)

// Trim strips surrounding whitespace from string values during Parse.
// Non-string values are left untouched.
func Trim() luq.Rule {
	return stringTransform("trim", strings.TrimSpace)
}

// ToLower lowercases string values during Parse.
func ToLower() luq.Rule {
	return stringTransform("to_lower", strings.ToLower)
}

// ToUpper uppercases string values during Parse.
func ToUpper() luq.Rule {
	return stringTransform("to_upper", strings.ToUpper)
}

// TransformFn rewrites the value during Parse with an arbitrary function. The
// function must be pure; it runs only after the document validated.
func TransformFn(fn luq.TransformFunc) luq.Rule {
	return luq.Rule{Code: "transform", Kind: luq.KindTransform, Apply: fn}
}

func stringTransform(name string, fn func(string) string) luq.Rule {
	return luq.Rule{
		Code: name,
		Kind: luq.KindTransform,
		Apply: func(v any) any {
			if s, ok := v.(string); ok {
				return fn(s)
			}
			return v
		},
	}
}
