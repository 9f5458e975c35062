package luq

// Options control error aggregation and expose caller context to rules.
// Validate and Parse use DefaultOptions when no options are passed; an
// explicit Options value is taken as-is, so start from DefaultOptions() when
// overriding a single knob.
type Options struct {
	// AbortEarly stops at the first failing field and returns that single
	// issue. Default true.
	AbortEarly bool
	// AbortEarlyOnEachField reports only the first failing rule per concrete
	// field location. Default true. Ignored while AbortEarly is set.
	AbortEarlyOnEachField bool
	// Context is handed to context-aware rules via Env.Context. The engine
	// never inspects it.
	Context any
}

// DefaultOptions returns the documented defaults: abort on the first failing
// field, first failing rule per field.
func DefaultOptions() Options {
	return Options{AbortEarly: true, AbortEarlyOnEachField: true}
}

// CollectAll returns options that gather every failing rule of every field.
func CollectAll() Options {
	return Options{}
}

func pickOptions(opts []Options) Options {
	if len(opts) == 0 {
		return DefaultOptions()
	}
	return opts[len(opts)-1]
}
