// Package dsl provides the fluent chain surface for building luq validators.
//
// Overview
//   - Chain API: declare one field's ordered rule chain by chaining calls
//     (Required/MinLength/Email/...); the chain is an explicit ordered list of
//     rule descriptors, evaluated in exactly the declared order.
//   - Typed entry points: String()/Number()/Integer()/Bool()/Array()/Object()
//     open a chain with the matching type check; Any() opens an unconstrained
//     chain.
//   - Builder: NewBuilder().Field(path, chain)... collects field definitions
//     and Build()/MustBuild() compiles them into a *luq.Validator.
//   - Deferred errors: malformed chain parameters (negative lengths, bad
//     patterns, empty enums) are remembered on the chain and surface at
//     Build, so call sites stay fluent.
//
// Entry points
//   - String()/Number()/Integer()/Bool()/Array()/Object()/Any(): open a chain.
//   - NewBuilder(): create a builder; chain Field(path, c) then
//     Build()/MustBuild().
//
// Example (quickstart)
//
//	v := dsl.NewBuilder().
//	    Field("name", dsl.String().Required().MinLength(1).MaxLength(100)).
//	    Field("email", dsl.String().Required().Email()).
//	    Field("age", dsl.Integer().Optional().Min(0).Max(150)).
//	    MustBuild()
//
//	res := v.Validate(doc)
//	if !res.Valid {
//	    for _, it := range res.Issues { fmt.Println(it.Path, it.Code) }
//	}
//
// Example (wildcards and conditional requiredness)
//
//	v := dsl.NewBuilder().
//	    Field("items", dsl.Array().Required().MinItems(1)).
//	    Field("items[*].sku", dsl.String().Required()).
//	    Field("items[*].reason", dsl.Any().RequiredIf(func(root any, arr *luq.ArrayContext) bool {
//	        item, _ := arr.Item.(map[string]any)
//	        return item["sale"] == true
//	    })).
//	    MustBuild()
//
// Example (defaults and transforms, applied by Parse)
//
//	v := dsl.NewBuilder().
//	    Field("role", dsl.String().Default("viewer").Enum("viewer", "editor", "admin")).
//	    Field("email", dsl.String().Required().Trim().ToLower().Email()).
//	    MustBuild()
//	out := v.Parse(doc)
//	// out.Data carries defaults and transformed values; doc is untouched.
package dsl
