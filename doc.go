package luq

// Package luq is a field-path validation engine:
//
// - Field definitions bind dotted/indexed/wildcarded paths ("items[*].price")
//   to ordered rule chains; Compile hoists them into a reusable Validator.
// - Validate reports failures as Issues (path, code, message) under three
//   aggregation policies; Parse additionally returns a normalized copy with
//   defaults materialized and transforms applied.
// - The jsonschema package converts draft-07 schemas to field definitions and
//   back, so externally authored schemas drive the same machinery.
//
// Design policy:
// - Keep only public APIs in the root package; path algebra lives under
//   internal/fieldpath.
// - Place rule factories under rules/, the fluent surface under dsl/, and the
//   schema adapter under jsonschema/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  v, err := dsl.NewBuilder().
//      Field("name", dsl.String().Required().MinLength(3)).
//      Field("items[*].price", dsl.Number().Min(0)).
//      Build()
//  res := v.Validate(doc)
//  out := v.Parse(doc, luq.Options{AbortEarly: false, AbortEarlyOnEachField: true})
//
