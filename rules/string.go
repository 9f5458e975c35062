package rules

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"

	luq "github.com/maroonedog/luq-sub004"
)

// MinLength requires at least min characters (code points, not bytes).
// Non-string values pass.
func MinLength(min int, opts ...luq.RuleOpt) (luq.Rule, error) {
	if min < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative minLength %d", min)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooShort,
		Kind:   luq.KindBase,
		Params: map[string]any{"min": min},
		Check: func(v luq.Value, _ luq.Env) bool {
			s, ok := v.Data.(string)
			if !ok {
				return true
			}
			return utf8.RuneCountInString(s) >= min
		},
	}, opts), nil
}

// MaxLength allows at most max characters. Non-string values pass.
func MaxLength(max int, opts ...luq.RuleOpt) (luq.Rule, error) {
	if max < 0 {
		return luq.Rule{}, fmt.Errorf("rules: negative maxLength %d", max)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodeTooLong,
		Kind:   luq.KindBase,
		Params: map[string]any{"max": max},
		Check: func(v luq.Value, _ luq.Env) bool {
			s, ok := v.Data.(string)
			if !ok {
				return true
			}
			return utf8.RuneCountInString(s) <= max
		},
	}, opts), nil
}

// Pattern requires the string to contain a match of the regular expression
// (unanchored, like JSON Schema "pattern"). Non-string values pass.
func Pattern(expr string, opts ...luq.RuleOpt) (luq.Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return luq.Rule{}, fmt.Errorf("rules: pattern %q: %w", expr, err)
	}
	return applyOpts(luq.Rule{
		Code:   luq.CodePattern,
		Kind:   luq.KindBase,
		Params: map[string]any{"pattern": expr},
		Check: func(v luq.Value, _ luq.Env) bool {
			s, ok := v.Data.(string)
			if !ok {
				return true
			}
			return re.MatchString(s)
		},
	}, opts), nil
}

// Base64Content requires the string to decode as the named content encoding.
// Only "base64" is checked; other encodings pass. Non-string values pass.
func Base64Content(encoding string, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeContentEncoding,
		Kind:   luq.KindBase,
		Params: map[string]any{"encoding": encoding},
		Check: func(v luq.Value, _ luq.Env) bool {
			s, ok := v.Data.(string)
			if !ok {
				return true
			}
			if encoding != "base64" {
				return true
			}
			_, err := base64.StdEncoding.DecodeString(s)
			return err == nil
		},
	}, opts)
}

// MediaType requires the string to parse as the named media type. Only
// "application/json" is checked; other media types pass. Non-string values
// pass.
func MediaType(mediaType string, opts ...luq.RuleOpt) luq.Rule {
	return applyOpts(luq.Rule{
		Code:   luq.CodeContentMediaType,
		Kind:   luq.KindBase,
		Params: map[string]any{"mediaType": mediaType},
		Check: func(v luq.Value, _ luq.Env) bool {
			s, ok := v.Data.(string)
			if !ok {
				return true
			}
			if mediaType != "application/json" {
				return true
			}
			var sink any
			return gojson.Unmarshal([]byte(s), &sink) == nil
		},
	}, opts)
}
