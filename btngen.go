package btngen

import (
	"github.com/grindlemire/btngen/internal/compgen"
)

// MaxRowSize is the most controls a single action row holds.
const MaxRowSize = compgen.MaxRowSize

// Target names the builder API generated code calls into.
type Target = compgen.Target

// Error is a positioned expansion error.
type Error = compgen.Error

// DefaultTarget returns the builder API of github.com/keia-bot/discord.
func DefaultTarget() Target {
	return compgen.DefaultTarget()
}

// Option configures an expansion.
type Option func(*compgen.Options)

// WithTarget selects the builder API. Empty fields take DefaultTarget values.
func WithTarget(t Target) Option {
	return func(o *compgen.Options) {
		o.Target = t
	}
}

// Lenient allows rows that mix url and btn components. Each mixed row is
// passed to warn, which may be nil.
func Lenient(warn func(*Error)) Option {
	return func(o *compgen.Options) {
		o.LenientRows = true
		o.OnWarning = warn
	}
}

// WithFilename names the snippet in error positions.
func WithFilename(name string) Option {
	return func(o *compgen.Options) {
		o.Filename = name
	}
}

// WithLineDirectives prefixes embedded expressions with /*line*/ directives
// pointing back at the snippet. Requires WithFilename.
func WithLineDirectives() Option {
	return func(o *compgen.Options) {
		o.LineDirectives = true
	}
}

func buildOptions(opts []Option) compgen.Options {
	var o compgen.Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Component expands a single component into a builder chain expression.
// A row!() separator is rejected.
func Component(src string, opts ...Option) (string, error) {
	return compgen.ExpandComponent(src, buildOptions(opts))
}

// SplitComponents expands a component list into a slice literal of action
// rows.
func SplitComponents(src string, opts ...Option) (string, error) {
	return compgen.ExpandComponents(src, buildOptions(opts))
}
