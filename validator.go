package luq

import (
	"strconv"

	"github.com/maroonedog/luq-sub004/internal/fieldpath"
)

// Validator is a compiled validation plan. It is immutable after Compile and
// safe for concurrent use.
type Validator struct {
	fields []compiledField
}

// Result is the outcome of a Validate call. Issues is empty when Valid.
type Result struct {
	Valid  bool
	Issues Issues
}

// Err returns the issues as an error, or nil when the result is valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return r.Issues
}

// ParseResult is the outcome of a Parse call. Data holds the normalized
// document when Valid, nil otherwise.
type ParseResult struct {
	Result
	Data any
}

// Definitions returns the field definitions the plan was compiled from, in
// declaration order.
func (v *Validator) Definitions() []FieldDefinition {
	out := make([]FieldDefinition, len(v.fields))
	for i := range v.fields {
		out[i] = v.fields[i].def
	}
	return out
}

// Validate checks root against every field in declaration order and reports
// failures per the aggregation options. The input is never mutated.
func (v *Validator) Validate(root any, opts ...Options) Result {
	opt := pickOptions(opts)
	iss := v.run(root, "", 0, opt)
	return Result{Valid: len(iss) == 0, Issues: iss}
}

// run evaluates the whole field set against doc. basePath prefixes issue
// paths during recursive re-application; depth counts recursion levels.
func (v *Validator) run(doc any, basePath string, depth int, opt Options) Issues {
	var out Issues
	for i := range v.fields {
		cf := &v.fields[i]
		out = append(out, v.runField(cf, doc, basePath, depth, opt)...)
		if opt.AbortEarly && len(out) > 0 {
			return out
		}
	}
	return out
}

func (v *Validator) runField(cf *compiledField, doc any, basePath string, depth int, opt Options) Issues {
	collectAll := !opt.AbortEarly && !opt.AbortEarlyOnEachField
	var out Issues
	for _, loc := range cf.path.Resolve(doc) {
		val := Value{Data: loc.Value, Exists: loc.Exists}
		if cf.def.Default.covers(val) {
			val = Present(cf.def.Default.materialize())
		}
		env := Env{Root: doc, Array: arrayContext(loc.Array), Context: opt.Context}
		path := fieldpath.Join(basePath, loc.Path)
		iss := cf.evaluate(val, path, env, collectAll)
		out = append(out, iss...)
		if opt.AbortEarly && len(out) > 0 {
			return out
		}
		// Recursion only descends into locations whose own chain passed;
		// a malformed node would otherwise cascade into nested noise.
		if cf.recursion != nil && len(iss) == 0 && val.Defined() {
			out = append(out, v.recurse(cf, val.Data, path, depth, opt)...)
			if opt.AbortEarly && len(out) > 0 {
				return out
			}
		}
	}
	return out
}

// recurse re-applies the plan's entire field set beneath path. Depth beyond
// the entry's MaxDepth stops silently: cycle protection, not a failure.
func (v *Validator) recurse(cf *compiledField, data any, path string, depth int, opt Options) Issues {
	if depth+1 > cf.recursion.MaxDepth {
		return nil
	}
	if cf.recursion.Target == ArrayElement {
		arr, ok := data.([]any)
		if !ok {
			return nil
		}
		var out Issues
		for i := range arr {
			sub := fieldpath.Join(path, "["+strconv.Itoa(i)+"]")
			out = append(out, v.run(arr[i], sub, depth+1, opt)...)
			if opt.AbortEarly && len(out) > 0 {
				return out
			}
		}
		return out
	}
	return v.run(data, path, depth+1, opt)
}

func arrayContext(step *fieldpath.ArrayStep) *ArrayContext {
	if step == nil {
		return nil
	}
	return &ArrayContext{Index: step.Index, Item: step.Item, Array: step.Array}
}
