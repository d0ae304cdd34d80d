// Package config carries the options that steer the type checker.
//
// The source this core is distilled from keeps a package-global
// STRICT_OPTIONAL flag plus a per-thread "current experiment" context; this
// repo never reads from a global during a core operation. Every call site
// that needs configuration takes an explicit Options value instead.
package config

// TypingMode collapses the source's boolean "full/weak/none" ternary into a
// two-valued enum. Suppression of emitted diagnostics is tracked separately
// via Options.SuppressErrors rather than folded into a third mode value.
type TypingMode int

const (
	// ModeFull type-checks normally and reports every diagnostic.
	ModeFull TypingMode = iota
	// ModeWeak infers types for documentation/IDE purposes but treats
	// every unannotated site leniently, as if bound by Any.
	ModeWeak
)

func (m TypingMode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeWeak:
		return "weak"
	default:
		return "unknown"
	}
}

// Options is the immutable configuration bag threaded through every call.
// Construct one with Default and derive variations with the With* helpers;
// Options is never mutated in place.
type Options struct {
	StrictOptional     bool
	PythonVersion      [2]int
	DisallowAny        bool
	WarnReturnAny      bool
	WarnRedundantCasts bool
	ShowNoneErrors     bool
	StrictBoolean      bool

	TypingMode     TypingMode
	SuppressErrors bool
}

// Default returns the baseline configuration: strict-optional checking on,
// full typing mode, no suppression.
func Default() Options {
	return Options{
		StrictOptional: true,
		PythonVersion:  [2]int{3, 12},
		ShowNoneErrors: true,
		TypingMode:     ModeFull,
	}
}

// WithStrictOptional returns a copy of o with StrictOptional set.
func (o Options) WithStrictOptional(v bool) Options {
	o.StrictOptional = v
	return o
}

// WithTypingMode returns a copy of o with TypingMode set.
func (o Options) WithTypingMode(m TypingMode) Options {
	o.TypingMode = m
	return o
}

// WithSuppressErrors returns a copy of o with SuppressErrors set.
func (o Options) WithSuppressErrors(v bool) Options {
	o.SuppressErrors = v
	return o
}

// Suppressed reports whether diagnostics should be dropped rather than
// reported, either because the caller asked for suppression or because weak
// mode is in effect.
func (o Options) Suppressed() bool {
	return o.SuppressErrors || o.TypingMode == ModeWeak
}
