package jsonschema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Reference failures are construction errors, distinguishable with errors.Is.
var (
	// ErrExternalRef marks a $ref that leaves the current document.
	ErrExternalRef = errors.New("jsonschema: external $ref")
	// ErrUnresolvedRef marks a local $ref whose pointer has no target.
	ErrUnresolvedRef = errors.New("jsonschema: unresolved $ref")
)

// isExternal reports whether ref points outside the current document.
func isExternal(ref string) bool { return !strings.HasPrefix(ref, "#") }

// walkPointer resolves a local JSON pointer ("#", "#/seg/seg...") against the
// document root, unescaping ~1 and ~0 per RFC 6901. Numeric segments index
// into arrays.
func walkPointer(root map[string]any, ptr string) (any, error) {
	if isExternal(ptr) {
		return nil, fmt.Errorf("%w: %q", ErrExternalRef, ptr)
	}
	rest := strings.TrimPrefix(ptr, "#")
	if rest == "" {
		return root, nil
	}
	if rest[0] != '/' {
		return nil, fmt.Errorf("%w: %q is not a pointer", ErrUnresolvedRef, ptr)
	}
	var cur any = root
	for _, seg := range strings.Split(rest[1:], "/") {
		seg = strings.ReplaceAll(seg, "~1", "/")
		seg = strings.ReplaceAll(seg, "~0", "~")
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, fmt.Errorf("%w: %q has no member %q", ErrUnresolvedRef, ptr, seg)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("%w: %q has no index %q", ErrUnresolvedRef, ptr, seg)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("%w: %q dead-ends at %q", ErrUnresolvedRef, ptr, seg)
		}
	}
	return cur, nil
}

// schemaAt resolves ptr and requires the target to be a schema object.
func schemaAt(root map[string]any, ptr string) (map[string]any, error) {
	target, err := walkPointer(root, ptr)
	if err != nil {
		return nil, err
	}
	m, ok := target.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a schema object", ErrUnresolvedRef, ptr)
	}
	return m, nil
}
