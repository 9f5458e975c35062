package luq

// Value is a field value as seen by rule checks. Exists distinguishes a key
// that is absent from one that is present with a nil value, mirroring the
// undefined/null split of loosely-typed documents.
type Value struct {
	Data   any
	Exists bool
}

// Present wraps data as a value that exists at its location.
func Present(data any) Value { return Value{Data: data, Exists: true} }

// Absent is the value of a location whose key is missing.
func Absent() Value { return Value{} }

// IsUndefined reports whether the key was missing entirely.
func (v Value) IsUndefined() bool { return !v.Exists }

// IsNull reports whether the key was present with an explicit null.
func (v Value) IsNull() bool { return v.Exists && v.Data == nil }

// Defined reports whether the value exists and is not null.
func (v Value) Defined() bool { return v.Exists && v.Data != nil }

// ArrayContext describes the innermost array hop taken while resolving a
// bracketed path segment. It is rebuilt on every traversal and handed to
// conditional rules so requiredness can depend on sibling-array state.
type ArrayContext struct {
	Index int
	Item  any
	Array []any
}

// Env carries the evaluation surroundings a rule check may consult: the whole
// document under validation, the innermost array context (nil outside
// brackets), and the caller-supplied Options.Context.
type Env struct {
	Root    any
	Array   *ArrayContext
	Context any
}
