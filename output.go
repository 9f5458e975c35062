package luq

import "reflect"

// Parse validates root and, when valid, returns a normalized copy: defaults
// materialized at their paths and transforms applied left-to-right per field.
// A failing document is returned untransformed with nil Data; the input is
// never mutated either way.
func (v *Validator) Parse(root any, opts ...Options) ParseResult {
	opt := pickOptions(opts)
	res := v.Validate(root, opt)
	if !res.Valid {
		return ParseResult{Result: res}
	}
	out := v.materialize(deepCopy(root), 0)
	return ParseResult{Result: res, Data: out}
}

// materialize walks the field set over an owned copy of the document,
// writing defaults and transform results in declaration order so parent
// defaults become visible to nested fields.
func (v *Validator) materialize(doc any, depth int) any {
	for i := range v.fields {
		cf := &v.fields[i]
		if cf.def.Default == nil && len(cf.transforms) == 0 && cf.recursion == nil {
			continue
		}
		doc = v.materializeField(cf, doc, depth)
	}
	return doc
}

func (v *Validator) materializeField(cf *compiledField, doc any, depth int) any {
	for _, loc := range cf.path.Resolve(doc) {
		val := Value{Data: loc.Value, Exists: loc.Exists}
		cur := loc.Value
		wrote := false
		if cf.def.Default.covers(val) {
			cur = cf.def.Default.materialize()
			wrote = true
		} else if !loc.Exists {
			continue
		}
		if len(cf.transforms) > 0 {
			for _, t := range cf.transforms {
				cur = t(cur)
			}
			wrote = true
		}
		if wrote {
			doc = cf.path.Set(doc, loc.Indices, cur)
		}
		if cf.recursion != nil && cur != nil && depth+1 <= cf.recursion.MaxDepth {
			if cf.recursion.Target == ArrayElement {
				if arr, ok := cur.([]any); ok {
					for i := range arr {
						arr[i] = v.materialize(arr[i], depth+1)
					}
				}
			} else {
				doc = cf.path.Set(doc, loc.Indices, v.materialize(cur, depth+1))
			}
		}
	}
	return doc
}

type copyKey struct {
	ptr uintptr
	n   int
}

// deepCopy clones the map/slice spine of a document. Scalars and foreign
// types are shared; reference cycles in hand-built documents are preserved
// rather than expanded.
func deepCopy(v any) any {
	return copyValue(v, map[copyKey]any{})
}

func copyValue(v any, seen map[copyKey]any) any {
	switch t := v.(type) {
	case map[string]any:
		key := copyKey{ptr: reflect.ValueOf(t).Pointer(), n: -1}
		if c, ok := seen[key]; ok {
			return c
		}
		m := make(map[string]any, len(t))
		seen[key] = m
		for k, val := range t {
			m[k] = copyValue(val, seen)
		}
		return m
	case []any:
		key := copyKey{ptr: reflect.ValueOf(t).Pointer(), n: len(t)}
		if c, ok := seen[key]; ok {
			return c
		}
		s := make([]any, len(t))
		seen[key] = s
		for i, val := range t {
			s[i] = copyValue(val, seen)
		}
		return s
	default:
		return v
	}
}
