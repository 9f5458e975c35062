package luq

import (
	"fmt"

	"github.com/maroonedog/luq-sub004/internal/fieldpath"
)

// compiledField is one field definition with its parsed path and the chain
// bookkeeping hoisted out of the per-call hot path.
type compiledField struct {
	def        FieldDefinition
	path       fieldpath.Path
	recursion  *RecursionSpec
	transforms []TransformFunc
}

// Compile builds an executable validation plan from field definitions.
// Definitions are checked up front: malformed paths, misplaced or duplicate
// recursive entries, and incomplete rules all fail here rather than during
// validation.
func Compile(defs []FieldDefinition) (*Validator, error) {
	v := &Validator{fields: make([]compiledField, 0, len(defs))}
	for _, def := range defs {
		cf, err := compileField(def)
		if err != nil {
			return nil, err
		}
		v.fields = append(v.fields, cf)
	}
	return v, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(defs []FieldDefinition) *Validator {
	v, err := Compile(defs)
	if err != nil {
		panic(err)
	}
	return v
}

func compileField(def FieldDefinition) (compiledField, error) {
	p, err := fieldpath.Parse(def.Path)
	if err != nil {
		return compiledField{}, fmt.Errorf("field %q: %w", def.Path, err)
	}
	cf := compiledField{def: def, path: p}
	for i := range def.Rules {
		r := &def.Rules[i]
		switch r.Kind {
		case KindBase, KindConditional:
			if r.Check == nil {
				return compiledField{}, fmt.Errorf("field %q: rule %q has no check", def.Path, r.Code)
			}
		case KindOptional, KindNullable:
			// short-circuit markers carry no check
		case KindRecursive:
			if cf.recursion != nil {
				return compiledField{}, fmt.Errorf("field %q: multiple recursive entries", def.Path)
			}
			if i != len(def.Rules)-1 {
				return compiledField{}, fmt.Errorf("field %q: recursive entry must be the terminal rule", def.Path)
			}
			if r.Recursion == nil {
				return compiledField{}, fmt.Errorf("field %q: recursive entry has no recursion spec", def.Path)
			}
			if r.Recursion.MaxDepth < 0 {
				return compiledField{}, fmt.Errorf("field %q: negative recursion depth %d", def.Path, r.Recursion.MaxDepth)
			}
			if r.Recursion.Target != SelfValue && r.Recursion.Target != ArrayElement {
				return compiledField{}, fmt.Errorf("field %q: unknown recursion target %d", def.Path, r.Recursion.Target)
			}
			spec := *r.Recursion
			if spec.MaxDepth == 0 {
				spec.MaxDepth = DefaultMaxDepth
			}
			cf.recursion = &spec
		case KindTransform:
			if r.Apply == nil {
				return compiledField{}, fmt.Errorf("field %q: transform entry has no function", def.Path)
			}
			cf.transforms = append(cf.transforms, r.Apply)
		default:
			return compiledField{}, fmt.Errorf("field %q: unknown rule kind %d", def.Path, r.Kind)
		}
	}
	return cf, nil
}

// evaluate runs the chain against one resolved value. It returns every issue
// when collectAll is set, otherwise it stops at the first failing rule.
func (cf *compiledField) evaluate(v Value, path string, env Env, collectAll bool) Issues {
	var out Issues
	for i := range cf.def.Rules {
		r := &cf.def.Rules[i]
		switch r.Kind {
		case KindOptional:
			if v.IsUndefined() {
				return out
			}
		case KindNullable:
			if v.IsNull() {
				return out
			}
		case KindTransform, KindRecursive:
			// the executor handles these
		default:
			if r.Check(v, env) {
				continue
			}
			out = append(out, Issue{
				Path:    path,
				Code:    r.Code,
				Message: r.messageFor(v, path, env),
				Params:  r.Params,
				Rule:    r.ruleName(),
			})
			if !collectAll {
				return out
			}
		}
	}
	return out
}
