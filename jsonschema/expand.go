package jsonschema

import (
	"fmt"
	"reflect"
	"sort"

	luq "github.com/maroonedog/luq-sub004"
	"github.com/maroonedog/luq-sub004/rules"
)

// ToFieldDefinitions expands records into executable field definitions, one
// per record, preserving record order. Composition branches and dependent
// schemas compile to standalone sub-plans here; malformed constraint
// parameters surface as construction errors.
func ToFieldDefinitions(recs []Record, opts ...Options) ([]luq.FieldDefinition, error) {
	return newExpander(pickOptions(opts)).expand(recs)
}

// refUnrollLimit bounds how many nested copies of a definition are compiled
// when a $ref cycles back into it through a composition branch.
const refUnrollLimit = 8

type expander struct {
	opt  Options
	diag Diag
	// subs caches definition sub-plans by pointer; building counts nested
	// compilations of the same pointer so cyclic references through
	// composition branches unroll a bounded number of levels. inFlight
	// guards anonymous subschema nodes the same cycle can route back into.
	subs     map[string]rules.Evaluator
	building map[string]int
	inFlight map[uintptr]bool
}

func newExpander(opt Options) *expander {
	return &expander{
		opt:      opt,
		diag:     opt.sink(),
		subs:     make(map[string]rules.Evaluator),
		building: make(map[string]int),
		inFlight: make(map[uintptr]bool),
	}
}

func (e *expander) expand(recs []Record) ([]luq.FieldDefinition, error) {
	defs := make([]luq.FieldDefinition, 0, len(recs))
	for i := range recs {
		def, err := e.fieldDef(&recs[i])
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %q: %w", recs[i].Path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// fieldDef assembles one record's rule chain: presence, null handling and
// shape first, then constraint rules in a fixed keyword order so issue order
// is stable across imports, recursion entries last.
func (e *expander) fieldDef(rec *Record) (luq.FieldDefinition, error) {
	cons := rec.Constraints
	kinds, nullable := rec.kinds()
	var chain []luq.Rule

	if rec.Required {
		if e.opt.StrictRequired && !nullable {
			chain = append(chain, rules.Required())
		} else {
			chain = append(chain, rules.RequiredKey())
		}
	} else if rec.Path != "" {
		chain = append(chain, rules.Optional())
	}
	if nullable {
		chain = append(chain, rules.Nullable())
	}
	switch {
	case len(kinds) == 1:
		chain = append(chain, rules.TypeOf(kinds[0]))
	case len(kinds) > 1:
		chain = append(chain, rules.TypeIn(kinds))
	}
	if cons["integer"] == true {
		chain = append(chain, rules.IntegerRule())
	}
	if cons["schemaFalse"] == true {
		chain = append(chain, rules.Custom("", func(any) bool { return false },
			luq.RuleOpt{Message: func(luq.Value, string, luq.Env) string { return "no value satisfies this schema" }}))
	}
	if v, ok := cons["enum"]; ok {
		vals, _ := v.([]any)
		r, err := rules.Enum(vals)
		if err != nil {
			return luq.FieldDefinition{}, err
		}
		chain = append(chain, r)
	}
	if v, ok := cons["const"]; ok {
		chain = append(chain, rules.Const(v))
	}

	var err error
	if chain, err = e.stringRules(chain, cons); err != nil {
		return luq.FieldDefinition{}, err
	}
	if chain, err = e.numberRules(chain, cons); err != nil {
		return luq.FieldDefinition{}, err
	}
	if chain, err = e.arrayRules(chain, rec, cons); err != nil {
		return luq.FieldDefinition{}, err
	}
	if chain, err = e.objectRules(chain, rec, cons); err != nil {
		return luq.FieldDefinition{}, err
	}
	if chain, err = e.compositionRules(chain, rec, cons); err != nil {
		return luq.FieldDefinition{}, err
	}
	if chain, err = e.dependencyRules(chain, rec, cons); err != nil {
		return luq.FieldDefinition{}, err
	}

	var dft *luq.DefaultSpec
	if v, ok := cons["default"]; ok {
		dft = &luq.DefaultSpec{Value: v}
	}

	if cons["recurse"] == true {
		r, err := rules.Recurse(luq.SelfValue, 0)
		if err != nil {
			return luq.FieldDefinition{}, err
		}
		chain = append(chain, r)
	}
	if ptr, ok := cons["recursiveRef"].(string); ok {
		ev, err := e.refEvaluator(rec.root, ptr)
		if err != nil {
			return luq.FieldDefinition{}, err
		}
		chain = append(chain, refSchemaRule(ptr, ev))
	}
	return luq.FieldDefinition{Path: rec.Path, Rules: chain, Default: dft}, nil
}

func (e *expander) stringRules(chain []luq.Rule, cons map[string]any) ([]luq.Rule, error) {
	if n, ok := e.intParam(cons, "minLength"); ok {
		r, err := rules.MinLength(n)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if n, ok := e.intParam(cons, "maxLength"); ok {
		r, err := rules.MaxLength(n)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if s, ok := cons["pattern"].(string); ok {
		r, err := rules.Pattern(s)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if name, ok := cons["format"].(string); ok {
		if !rules.KnownFormat(name) && e.opt.CustomFormats[name] == nil {
			e.diag.Warnf("format %q has no checker, values pass", name)
		}
		chain = append(chain, rules.FormatWith(name, e.opt.CustomFormats))
	}
	if enc, ok := cons["contentEncoding"].(string); ok {
		chain = append(chain, rules.Base64Content(enc))
	}
	if mt, ok := cons["contentMediaType"].(string); ok {
		chain = append(chain, rules.MediaType(mt))
	}
	return chain, nil
}

func (e *expander) numberRules(chain []luq.Rule, cons map[string]any) ([]luq.Rule, error) {
	min, hasMin := e.floatParam(cons, "minimum")
	max, hasMax := e.floatParam(cons, "maximum")
	exclMin, exclMax := false, false

	// Draft-07 exclusives are numeric bounds of their own; the legacy
	// boolean form instead flips minimum/maximum to exclusive.
	switch x := cons["exclusiveMinimum"].(type) {
	case nil:
	case bool:
		exclMin = x
	default:
		f, ok := floatValue(x)
		if !ok {
			return nil, fmt.Errorf("exclusiveMinimum: expected a number or bool, got %T", x)
		}
		r, err := rules.ExclusiveMin(f)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if hasMin {
		mk := rules.Min
		if exclMin {
			mk = rules.ExclusiveMin
		}
		r, err := mk(min)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	switch x := cons["exclusiveMaximum"].(type) {
	case nil:
	case bool:
		exclMax = x
	default:
		f, ok := floatValue(x)
		if !ok {
			return nil, fmt.Errorf("exclusiveMaximum: expected a number or bool, got %T", x)
		}
		r, err := rules.ExclusiveMax(f)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if hasMax {
		mk := rules.Max
		if exclMax {
			mk = rules.ExclusiveMax
		}
		r, err := mk(max)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if f, ok := e.floatParam(cons, "multipleOf"); ok {
		r, err := rules.MultipleOf(f)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	return chain, nil
}

func (e *expander) arrayRules(chain []luq.Rule, rec *Record, cons map[string]any) ([]luq.Rule, error) {
	if n, ok := e.intParam(cons, "minItems"); ok {
		r, err := rules.MinItems(n)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if n, ok := e.intParam(cons, "maxItems"); ok {
		r, err := rules.MaxItems(n)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if cons["uniqueItems"] == true {
		chain = append(chain, rules.UniqueItems())
	}
	if v, ok := cons["contains"]; ok {
		ev, err := e.evaluatorFor(rec, v)
		if err != nil {
			return nil, fmt.Errorf("contains: %w", err)
		}
		chain = append(chain, rules.Contains(ev))
	}
	return chain, nil
}

func (e *expander) objectRules(chain []luq.Rule, rec *Record, cons map[string]any) ([]luq.Rule, error) {
	if n, ok := e.intParam(cons, "minProperties"); ok {
		r, err := rules.MinProperties(n)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if n, ok := e.intParam(cons, "maxProperties"); ok {
		r, err := rules.MaxProperties(n)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	if v, ok := cons["propertyNames"]; ok {
		ev, err := e.evaluatorFor(rec, v)
		if err != nil {
			return nil, fmt.Errorf("propertyNames: %w", err)
		}
		chain = append(chain, rules.PropertyNames(ev))
	}
	var patternKeys []string
	if pp, ok := cons["patternProperties"].(map[string]any); ok && len(pp) > 0 {
		patternKeys = sortedKeys(pp)
		m := make(map[string]rules.Evaluator, len(pp))
		for _, patt := range patternKeys {
			ev, err := e.evaluatorFor(rec, pp[patt])
			if err != nil {
				return nil, fmt.Errorf("patternProperties[%q]: %w", patt, err)
			}
			m[patt] = ev
		}
		r, err := rules.PatternProperties(m)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	known, _ := cons["knownKeys"].([]string)
	switch ap := cons["additionalProperties"].(type) {
	case bool:
		if !ap && !e.opt.AllowAdditionalProperties {
			r, err := rules.NoAdditionalProperties(known, patternKeys)
			if err != nil {
				return nil, err
			}
			chain = append(chain, r)
		}
	case map[string]any:
		ev, err := e.evaluatorFor(rec, ap)
		if err != nil {
			return nil, fmt.Errorf("additionalProperties: %w", err)
		}
		r, err := rules.AdditionalPropertiesSchema(ev, known, patternKeys)
		if err != nil {
			return nil, err
		}
		chain = append(chain, r)
	}
	return chain, nil
}

func (e *expander) compositionRules(chain []luq.Rule, rec *Record, cons map[string]any) ([]luq.Rule, error) {
	if v, ok := cons["allOf"]; ok {
		evs, err := e.branchEvaluators(rec, v, "allOf")
		if err != nil {
			return nil, err
		}
		chain = append(chain, rules.AllOf(evs))
	}
	if v, ok := cons["anyOf"]; ok {
		evs, err := e.branchEvaluators(rec, v, "anyOf")
		if err != nil {
			return nil, err
		}
		chain = append(chain, rules.AnyOf(evs))
	}
	if v, ok := cons["oneOf"]; ok {
		evs, err := e.branchEvaluators(rec, v, "oneOf")
		if err != nil {
			return nil, err
		}
		chain = append(chain, rules.OneOf(evs))
	}
	if v, ok := cons["not"]; ok {
		ev, err := e.evaluatorFor(rec, v)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		chain = append(chain, rules.Not(ev))
	}
	if v, ok := cons["if"]; ok {
		condEv, err := e.evaluatorFor(rec, v)
		if err != nil {
			return nil, fmt.Errorf("if: %w", err)
		}
		var thenEv, elseEv rules.Evaluator
		if t, ok := cons["then"]; ok {
			if thenEv, err = e.evaluatorFor(rec, t); err != nil {
				return nil, fmt.Errorf("then: %w", err)
			}
		}
		if t, ok := cons["else"]; ok {
			if elseEv, err = e.evaluatorFor(rec, t); err != nil {
				return nil, fmt.Errorf("else: %w", err)
			}
		}
		chain = append(chain, rules.IfThenElse(condEv, thenEv, elseEv))
	} else {
		if _, ok := cons["then"]; ok {
			e.diag.Warnf("then without if at %q ignored", rec.Path)
		}
		if _, ok := cons["else"]; ok {
			e.diag.Warnf("else without if at %q ignored", rec.Path)
		}
	}
	return chain, nil
}

func (e *expander) dependencyRules(chain []luq.Rule, rec *Record, cons map[string]any) ([]luq.Rule, error) {
	if m, ok := cons["dependentRequired"].(map[string]any); ok {
		for _, prop := range sortedKeys(m) {
			chain = append(chain, rules.DependentRequired(prop, stringList(m[prop])))
		}
	}
	if m, ok := cons["dependentSchemas"].(map[string]any); ok {
		for _, prop := range sortedKeys(m) {
			ev, err := e.evaluatorFor(rec, m[prop])
			if err != nil {
				return nil, fmt.Errorf("dependentSchemas[%q]: %w", prop, err)
			}
			chain = append(chain, rules.DependentSchema(prop, ev))
		}
	}
	// Legacy dependencies dispatch on shape: arrays list required names,
	// anything schema-like applies when the property is present.
	if m, ok := cons["dependencies"].(map[string]any); ok {
		for _, prop := range sortedKeys(m) {
			switch dep := m[prop].(type) {
			case []any:
				chain = append(chain, rules.DependentRequired(prop, stringList(dep)))
			case map[string]any, bool:
				ev, err := e.evaluatorFor(rec, dep)
				if err != nil {
					return nil, fmt.Errorf("dependencies[%q]: %w", prop, err)
				}
				chain = append(chain, rules.DependentSchema(prop, ev))
			default:
				e.diag.Warnf("dependencies[%q] at %q: expected array or schema, got %T", prop, rec.Path, dep)
			}
		}
	}
	return chain, nil
}

// evaluatorFor compiles a subschema into an evaluator applied to one value
// in isolation. Boolean schemas collapse to accept-all or reject-all; a bare
// {"$ref": ...} node shares the named sub-plan. Anonymous nodes a cycle
// routes back into degrade to accept-all with a warning.
func (e *expander) evaluatorFor(rec *Record, raw any) (rules.Evaluator, error) {
	switch s := raw.(type) {
	case bool:
		return boolEvaluator(s), nil
	case map[string]any:
		if ptr, ok := s["$ref"].(string); ok && len(s) == 1 {
			return e.refEvaluator(rec.root, ptr)
		}
		key := reflect.ValueOf(s).Pointer()
		if e.inFlight[key] {
			e.diag.Warnf("subschema cycles back into its own compilation, deeper levels pass unchecked")
			return boolEvaluator(true), nil
		}
		e.inFlight[key] = true
		defer delete(e.inFlight, key)
		return e.compileSubSchema(s, rec.root, nil)
	default:
		return nil, fmt.Errorf("schema must be an object or bool, got %T", raw)
	}
}

func (e *expander) branchEvaluators(rec *Record, raw any, kw string) ([]rules.Evaluator, error) {
	arr, ok := raw.([]any)
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("%s must be a non-empty array", kw)
	}
	evs := make([]rules.Evaluator, 0, len(arr))
	for i, b := range arr {
		ev, err := e.evaluatorFor(rec, b)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", kw, i, err)
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

// compileSubSchema runs the full flatten/expand/compile pipeline over one
// node. rootFrame, when set, names the pointer the node came from so its
// self-references recurse through the sub-plan itself.
func (e *expander) compileSubSchema(node, root map[string]any, rootFrame []string) (rules.Evaluator, error) {
	c := &converter{root: root, opt: e.opt, diag: e.diag, rootFrames: make(map[string]bool)}
	for _, f := range rootFrame {
		c.stack = append(c.stack, f)
		c.rootFrames[f] = true
	}
	if err := c.flatten(node, "", false); err != nil {
		return nil, err
	}
	defs, err := e.expand(c.recs)
	if err != nil {
		return nil, err
	}
	v, err := luq.Compile(defs)
	if err != nil {
		return nil, err
	}
	return rules.Compiled(v), nil
}

// refEvaluator builds the sub-plan for a definition referenced from outside
// its own plan. The sub-plan validates one node; self-references inside it
// recurse in-plan. A pointer that cycles back here through a composition
// branch is unrolled into nested copies up to refUnrollLimit, past which
// values pass with a warning.
func (e *expander) refEvaluator(root map[string]any, ptr string) (rules.Evaluator, error) {
	if ev, ok := e.subs[ptr]; ok {
		return ev, nil
	}
	if root == nil {
		return nil, fmt.Errorf("%w: %q outside a document", ErrUnresolvedRef, ptr)
	}
	if e.building[ptr] >= refUnrollLimit {
		e.diag.Warnf("$ref %q cycles through a composition branch; levels beyond %d pass unchecked", ptr, refUnrollLimit)
		return boolEvaluator(true), nil
	}
	node, err := schemaAt(root, ptr)
	if err != nil {
		return nil, err
	}
	e.building[ptr]++
	defer func() { e.building[ptr]-- }()
	ev, err := e.compileSubSchema(node, root, []string{ptr})
	if err != nil {
		return nil, err
	}
	// only the outermost copy is the full unroll worth keeping
	if e.building[ptr] == 1 {
		e.subs[ptr] = ev
	}
	return ev, nil
}

// refSchemaRule applies a definition sub-plan at the reference occurrence.
// Undefined values pass; presence rules own absence.
func refSchemaRule(ptr string, ev rules.Evaluator) luq.Rule {
	return luq.Rule{
		Code:   luq.CodeRefSchema,
		Kind:   luq.KindBase,
		Params: map[string]any{"pointer": ptr},
		Check: func(v luq.Value, env luq.Env) bool {
			if v.IsUndefined() {
				return true
			}
			return len(ev.Evaluate(v.Data, env)) == 0
		},
	}
}

// boolEvaluator is the degenerate schema: true accepts everything, false
// rejects everything.
func boolEvaluator(allow bool) rules.Evaluator {
	return rules.EvaluatorFunc(func(value any, env luq.Env) luq.Issues {
		if allow {
			return nil
		}
		return luq.Issues{{Code: luq.CodeCustom, Message: "no value allowed"}}
	})
}

func (e *expander) intParam(cons map[string]any, key string) (int, bool) {
	v, ok := cons[key]
	if !ok {
		return 0, false
	}
	n, ok := intValue(v)
	if !ok {
		e.diag.Warnf("keyword %q: expected an integer, got %v", key, v)
		return 0, false
	}
	return n, true
}

func (e *expander) floatParam(cons map[string]any, key string) (float64, bool) {
	v, ok := cons[key]
	if !ok {
		return 0, false
	}
	f, ok := floatValue(v)
	if !ok {
		e.diag.Warnf("keyword %q: expected a number, got %v", key, v)
		return 0, false
	}
	return f, true
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
