package luq

// DefaultSpec supplies a fallback for a field whose resolved value is
// undefined (or null when ApplyToNull is set). The fallback is substituted
// before rule evaluation, so defaults are themselves validated.
type DefaultSpec struct {
	// Value is the literal default. Ignored when Generate is set.
	Value any
	// Generate produces a fresh default per location when set.
	Generate func() any
	// ApplyToNull extends the default to explicit nulls.
	ApplyToNull bool
}

func (d *DefaultSpec) materialize() any {
	if d.Generate != nil {
		return d.Generate()
	}
	return d.Value
}

// covers reports whether the default replaces the given value.
func (d *DefaultSpec) covers(v Value) bool {
	if d == nil {
		return false
	}
	if v.IsUndefined() {
		return true
	}
	return d.ApplyToNull && v.IsNull()
}

// FieldDefinition binds one field path to its ordered rule chain and optional
// default. Definitions are immutable once compiled into a Validator.
type FieldDefinition struct {
	Path    string
	Rules   []Rule
	Default *DefaultSpec
}
