// Package meta is the orchestration engine: it wires the parser, compiler,
// and VM stages together, plus the literal-set/prefilter fast paths,
// behind a single Engine type. Three strategies exist: plain VM,
// prefilter-then-VM-verify, and, for a capture-free pure alternation of
// literals, an Aho-Corasick automaton whose hit is the match itself.
package meta

import "github.com/coregx/pikere/syntax"

// Config controls compile-time knobs the pipeline's three stages don't
// carry on their own.
type Config struct {
	// MaxRepeat bounds {n}, {n,}, {n,m} counts. Zero means
	// syntax.DefaultMaxRepeat.
	MaxRepeat int
	// MaxNestingDepth bounds parenthesis nesting. Zero means
	// syntax.DefaultMaxNestingDepth.
	MaxNestingDepth int
	// ASCIIWordBoundary makes \b, \B, and the default \w/\W/\d/\D/\s/\S
	// universes ASCII-only. Default true; set false for Unicode word-ness.
	ASCIIWordBoundary bool
	// EnablePrefilter turns on the literal-prefix / alternation-literal-set
	// fast paths. Disabling it only affects performance, never match
	// results.
	EnablePrefilter bool
}

// DefaultConfig returns the configuration Compile uses when none is given.
func DefaultConfig() Config {
	return Config{
		MaxRepeat:         syntax.DefaultMaxRepeat,
		MaxNestingDepth:   syntax.DefaultMaxNestingDepth,
		ASCIIWordBoundary: true,
		EnablePrefilter:   true,
	}
}

func (c Config) parserOptions(flags syntax.Flags) syntax.Options {
	return syntax.Options{
		Flags:               flags,
		MaxRepeat:           c.MaxRepeat,
		MaxNestingDepth:     c.MaxNestingDepth,
		UnicodeWordBoundary: !c.ASCIIWordBoundary,
	}
}
