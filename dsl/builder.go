package dsl

import (
	"errors"
	"fmt"

	luq "github.com/maroonedog/luq-sub004"
)

// Builder collects field definitions in declaration order and compiles them.
type Builder struct {
	defs []luq.FieldDefinition
	errs []error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder { return &Builder{} }

// Field registers one path with its chain. Declaration order is evaluation
// order.
func (b *Builder) Field(path string, c *Chain) *Builder {
	def, errs := c.finish(path)
	for _, err := range errs {
		b.errs = append(b.errs, fmt.Errorf("field %q: %w", path, err))
	}
	b.defs = append(b.defs, def)
	return b
}

// Definitions returns the accumulated field definitions without compiling,
// for callers that assemble validators elsewhere.
func (b *Builder) Definitions() []luq.FieldDefinition {
	out := make([]luq.FieldDefinition, len(b.defs))
	copy(out, b.defs)
	return out
}

// Build compiles the accumulated fields. Deferred chain errors surface here,
// joined, before compilation is attempted.
func (b *Builder) Build() (*luq.Validator, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return luq.Compile(b.defs)
}

// MustBuild is Build that panics on error.
func (b *Builder) MustBuild() *luq.Validator {
	v, err := b.Build()
	if err != nil {
		panic(err)
	}
	return v
}
