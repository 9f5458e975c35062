// Package fieldpath parses the engine's field-path grammar and resolves paths
// against nested document values.
//
// Grammar: dot-separated segments; a segment is an object key optionally
// followed by bracket suffixes, each either a literal non-negative index
// ("items[3]") or the wildcard "items[*]". The empty string addresses the
// root value. Only the first segment may omit its key ("[0].name" for root
// arrays).
package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
)

// IndexOp is one bracket suffix of a segment.
type IndexOp struct {
	Wildcard bool
	N        int
}

// Segment is one dot-separated hop: an object key plus optional bracket ops.
type Segment struct {
	Key string
	Ops []IndexOp
}

// Path is a parsed field path. The zero value is the root path.
type Path struct {
	raw  string
	segs []Segment
	wild bool
}

// Parse validates and splits a path string. Malformed paths (empty segments,
// negative or non-numeric indices, unterminated brackets) are construction
// errors.
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	segs := make([]Segment, 0, len(parts))
	wild := false
	for pi, part := range parts {
		if part == "" {
			return Path{}, fmt.Errorf("fieldpath: empty segment in %q", s)
		}
		var seg Segment
		br := strings.IndexByte(part, '[')
		if br < 0 {
			if strings.IndexByte(part, ']') >= 0 {
				return Path{}, fmt.Errorf("fieldpath: stray ']' in segment %q", part)
			}
			seg.Key = part
			segs = append(segs, seg)
			continue
		}
		seg.Key = part[:br]
		if strings.IndexByte(seg.Key, ']') >= 0 {
			return Path{}, fmt.Errorf("fieldpath: stray ']' in segment %q", part)
		}
		if seg.Key == "" && pi != 0 {
			return Path{}, fmt.Errorf("fieldpath: segment %q has no key", part)
		}
		rest := part[br:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				return Path{}, fmt.Errorf("fieldpath: malformed index suffix in segment %q", part)
			}
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Path{}, fmt.Errorf("fieldpath: unterminated index in segment %q", part)
			}
			inner := rest[1:end]
			if inner == "*" {
				seg.Ops = append(seg.Ops, IndexOp{Wildcard: true})
				wild = true
			} else {
				n, err := strconv.Atoi(inner)
				if err != nil || n < 0 || inner[0] == '+' || inner[0] == '-' {
					return Path{}, fmt.Errorf("fieldpath: invalid index %q in segment %q", inner, part)
				}
				seg.Ops = append(seg.Ops, IndexOp{N: n})
			}
			rest = rest[end+1:]
		}
		segs = append(segs, seg)
	}
	return Path{raw: s, segs: segs, wild: wild}, nil
}

// MustParse panics on malformed paths. For paths known to be valid.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original path text.
func (p Path) String() string { return p.raw }

// IsRoot reports whether the path addresses the root value.
func (p Path) IsRoot() bool { return len(p.segs) == 0 }

// HasWildcard reports whether any segment carries a [*] suffix.
func (p Path) HasWildcard() bool { return p.wild }

// Segments exposes the parsed hops. Callers must not mutate the result.
func (p Path) Segments() []Segment { return p.segs }

// Render substitutes wildcard positions with the given concrete indices, in
// traversal order. Missing indices render as "*".
func (p Path) Render(indices []int) string {
	if p.IsRoot() {
		return ""
	}
	var b strings.Builder
	k := 0
	for i, seg := range p.segs {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
		for _, op := range seg.Ops {
			b.WriteByte('[')
			switch {
			case !op.Wildcard:
				b.WriteString(strconv.Itoa(op.N))
			case k < len(indices):
				b.WriteString(strconv.Itoa(indices[k]))
				k++
			default:
				b.WriteByte('*')
			}
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Join concatenates a concrete base path with a relative one.
func Join(base, rel string) string {
	if base == "" {
		return rel
	}
	if rel == "" {
		return base
	}
	if rel[0] == '[' {
		return base + rel
	}
	return base + "." + rel
}
