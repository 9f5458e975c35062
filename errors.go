package luq

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired           = "required"
	CodeInvalidType        = "invalid_type"
	CodeInvalidEnum        = "invalid_enum"
	CodeInvalidConst       = "invalid_const"
	CodeTooShort           = "too_short"
	CodeTooLong            = "too_long"
	CodePattern            = "pattern"
	CodeInvalidFormat      = "invalid_format"
	CodeTooSmall           = "too_small"
	CodeTooBig             = "too_big"
	CodeNotMultipleOf      = "not_multiple_of"
	CodeNotInteger         = "not_integer"
	CodeTooFewItems        = "too_few_items"
	CodeTooManyItems       = "too_many_items"
	CodeNotUnique          = "not_unique"
	CodeContainsMismatch   = "contains_mismatch"
	CodeTupleLength        = "tuple_length"
	CodeTooFewProperties   = "too_few_properties"
	CodeTooManyProperties  = "too_many_properties"
	CodeUnknownKey         = "unknown_key"
	CodeInvalidKey         = "invalid_key"
	CodePatternProperty    = "pattern_property"
	CodeAdditionalProperty = "additional_property"
	CodeDependentRequired  = "dependent_required"
	CodeDependentSchema    = "dependent_schema"
	CodeAllOf              = "all_of"
	CodeAnyOf              = "any_of"
	CodeOneOf              = "one_of"
	CodeNot                = "not"
	CodeCondition          = "condition"
	CodeRequiredIf         = "required_if"
	CodeContextRule        = "context_rule"
	CodeContentEncoding    = "content_encoding"
	CodeContentMediaType   = "content_media_type"
	CodeRefSchema          = "ref_schema"
	CodeCustom             = "custom"
	CodeParseError         = "parse_error"
)

// Issue represents a single validation failure at one concrete field path.
type Issue struct {
	Path    string // Dotted/indexed path (for example: items[2].price). Empty for the root value.
	Code    string // One of the codes listed above, or a caller-supplied code.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	// Params carries structured parameters (e.g., {"min":1, "max":10}) for
	// i18n and observability.
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule string
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		path := it.Path
		if path == "" {
			path = "(root)"
		}
		// e.g. too_short at items[2].name
		fmt.Fprintf(b, "%s at %s", it.Code, path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
