package fieldpath

// ArrayStep records the innermost bracket hop taken while resolving a
// location: the element index, the element, and the whole array.
type ArrayStep struct {
	Index int
	Item  any
	Array []any
}

// Location is one concrete place a path denotes inside a value. Exists is
// false when every parent hop resolved but the leaf key itself is missing.
type Location struct {
	// Path is the concrete rendered path with wildcard indices substituted.
	Path string
	// Value is the data at the location (nil for explicit null or missing).
	Value any
	// Exists distinguishes a missing leaf from a present null one.
	Exists bool
	// Indices holds one entry per wildcard hop, in traversal order.
	Indices []int
	// Array is the innermost bracket hop above the leaf, nil when none.
	Array *ArrayStep
}

// Resolve walks the value and returns every concrete location the path
// denotes. Contract:
//
//   - the root path resolves to exactly one existing location (the value);
//   - a wildcardless path resolves to one location iff every intermediate
//     hop exists and is non-null, else zero; the leaf itself may be absent
//     (Exists=false), which rules such as required act on;
//   - a [*] hop forks once per element of the array at that position; a
//     non-array (or absent parent) yields zero locations, never an error;
//   - a literal [n] hop forks exactly once, or zero when out of range.
//
// The resolver never panics on null/undefined intermediates: absence is
// reported as "no location" and rule predicates decide whether that is an
// error.
func (p Path) Resolve(root any) []Location {
	if p.IsRoot() {
		return []Location{{Value: root, Exists: true}}
	}
	w := walker{p: p}
	w.seg(root, 0, nil, nil)
	return w.out
}

type walker struct {
	p   Path
	out []Location
}

func (w *walker) emit(indices []int, inner *ArrayStep, val any, exists bool) {
	w.out = append(w.out, Location{
		Path:    w.p.Render(indices),
		Value:   val,
		Exists:  exists,
		Indices: indices,
		Array:   inner,
	})
}

func (w *walker) seg(cur any, si int, indices []int, inner *ArrayStep) {
	seg := w.p.segs[si]
	lastSeg := si == len(w.p.segs)-1
	if seg.Key != "" {
		leaf := lastSeg && len(seg.Ops) == 0
		m, ok := cur.(map[string]any)
		if !ok {
			// A non-null, non-object parent still satisfies the
			// "intermediates exist" contract; the leaf is just absent.
			if leaf && cur != nil {
				w.emit(indices, inner, nil, false)
			}
			return
		}
		val, exists := m[seg.Key]
		if leaf {
			w.emit(indices, inner, val, exists)
			return
		}
		if !exists || val == nil {
			return
		}
		cur = val
	}
	w.ops(cur, si, 0, indices, inner)
}

func (w *walker) ops(cur any, si, oi int, indices []int, inner *ArrayStep) {
	seg := w.p.segs[si]
	lastSeg := si == len(w.p.segs)-1
	if oi == len(seg.Ops) {
		if !lastSeg {
			w.seg(cur, si+1, indices, inner)
		}
		return
	}
	arr, ok := cur.([]any)
	if !ok {
		return
	}
	op := seg.Ops[oi]
	leaf := lastSeg && oi == len(seg.Ops)-1
	if op.Wildcard {
		for i := range arr {
			el := arr[i]
			step := &ArrayStep{Index: i, Item: el, Array: arr}
			ni := make([]int, len(indices)+1)
			copy(ni, indices)
			ni[len(indices)] = i
			if leaf {
				w.emit(ni, step, el, true)
			} else {
				w.ops(el, si, oi+1, ni, step)
			}
		}
		return
	}
	if op.N >= len(arr) {
		return
	}
	el := arr[op.N]
	step := &ArrayStep{Index: op.N, Item: el, Array: arr}
	if leaf {
		w.emit(indices, step, el, true)
		return
	}
	w.ops(el, si, oi+1, indices, step)
}

// Set writes val at the location the path denotes, substituting wildcard
// hops with the given concrete indices. Missing object intermediates are
// created; array hops never are. Writes onto shapes the path cannot traverse
// are silently skipped. The (possibly replaced) root is returned.
func (p Path) Set(root any, indices []int, val any) any {
	if p.IsRoot() {
		return val
	}
	k := 0
	cur := root
	for si, seg := range p.segs {
		lastSeg := si == len(p.segs)-1
		if seg.Key != "" {
			m, ok := cur.(map[string]any)
			if !ok {
				return root
			}
			if lastSeg && len(seg.Ops) == 0 {
				m[seg.Key] = val
				return root
			}
			next, exists := m[seg.Key]
			if !exists || next == nil {
				if len(seg.Ops) > 0 {
					return root
				}
				nm := map[string]any{}
				m[seg.Key] = nm
				next = nm
			}
			cur = next
		}
		for oi, op := range seg.Ops {
			arr, ok := cur.([]any)
			if !ok {
				return root
			}
			idx := op.N
			if op.Wildcard {
				if k >= len(indices) {
					return root
				}
				idx = indices[k]
				k++
			}
			if idx < 0 || idx >= len(arr) {
				return root
			}
			if lastSeg && oi == len(seg.Ops)-1 {
				arr[idx] = val
				return root
			}
			next := arr[idx]
			if next == nil {
				// A trailing object hop may be materialized in place.
				if oi == len(seg.Ops)-1 && p.segs[si+1].Key != "" {
					nm := map[string]any{}
					arr[idx] = nm
					next = nm
				} else {
					return root
				}
			}
			cur = next
		}
	}
	return root
}
