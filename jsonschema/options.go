package jsonschema

import (
	"fmt"

	"github.com/maroonedog/luq-sub004/rules"
)

// Options controls schema conversion. The zero value reads schemas the
// permissive draft-07 way.
type Options struct {
	// CustomFormats maps format names to checkers consulted before the
	// built-in catalog. Entries here override built-ins of the same name.
	CustomFormats map[string]rules.FormatFunc
	// StrictRequired makes required properties reject explicit null in
	// addition to absence. The default reads required literally as key
	// presence. Properties whose type admits null keep the lenient reading
	// either way.
	StrictRequired bool
	// AllowAdditionalProperties disables additionalProperties:false
	// enforcement, restoring the permissive default.
	AllowAdditionalProperties bool
	// Diag receives non-fatal conversion notes. A fresh sink is created
	// when nil; Import returns whichever sink was active.
	Diag Diag
}

// Diag carries non-fatal warnings produced during schema conversion:
// ignored keywords, formats without a checker, skipped property names.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
	Warnf(format string, args ...any)
}

type diagSink struct{ ws []string }

func (d *diagSink) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *diagSink) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *diagSink) Warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

func pickOptions(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}

// sink returns the configured Diag, installing a fresh one first if needed.
func (o *Options) sink() Diag {
	if o.Diag == nil {
		o.Diag = &diagSink{}
	}
	return o.Diag
}
