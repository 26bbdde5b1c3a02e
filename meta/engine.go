package meta

import (
	"bytes"
	"unicode/utf8"

	"github.com/coregx/pikere/literal"
	"github.com/coregx/pikere/nfa"
	"github.com/coregx/pikere/prefilter"
	"github.com/coregx/pikere/program"
	"github.com/coregx/pikere/syntax"
)

// maxExactLiteralSet bounds the alternation-literal-set fast path
// (exactLiterals below): beyond this many alternatives, building the
// automaton costs more than it's worth for an engine that isn't tuned for
// pathological alternations. This stays an internal fast path for one
// compiled pattern, not a multi-pattern API.
const maxExactLiteralSet = 64

// Engine is the compiled, immutable result of one Compile call: a
// program.Program, the VM that executes it, and (when applicable) a
// prefilter wired in ahead of it. Safe to share across concurrent
// matchers, same as the Program it wraps.
type Engine struct {
	Prog  *program.Program
	Names []string

	vm  *nfa.VM
	pre prefilter.Prefilter

	// exactLiterals is set instead of pre when the whole pattern (no
	// capture groups, no anchors, no classes) reduces to a pure,
	// substring-free alternation of literals: an automaton hit IS the
	// match, and the VM is never invoked at all.
	exactLiterals *prefilter.AhoCorasick
}

// Compile parses pattern under flags and cfg, then compiles and wires an
// Engine. The only error it can return is a *syntax.Error.
func Compile(pattern string, flags syntax.Flags, cfg Config) (*Engine, error) {
	ast, err := syntax.Parse(pattern, cfg.parserOptions(flags))
	if err != nil {
		return nil, err
	}
	prog, err := program.Compile(ast)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Prog:  prog,
		Names: syntax.NamesOf(ast),
		vm:    nfa.New(prog, nfa.Config{ASCIIWordBoundary: cfg.ASCIIWordBoundary}),
	}
	if cfg.EnablePrefilter {
		e.wirePrefilter(ast, prog)
	}
	return e, nil
}

// wirePrefilter selects between the two fast paths this module carries:
// an exact alternation-of-literals automaton (skips the VM entirely) or a
// literal-prefix substring scan (narrows where the VM is asked to verify
// from). Neither changes the result the plain VM alone would produce.
func (e *Engine) wirePrefilter(ast *syntax.Regexp, prog *program.Program) {
	if syntax.NumCapsOf(ast) == 0 {
		lits, ok := literal.ExtractSet(ast)
		if ok && len(lits) > 0 && len(lits) <= maxExactLiteralSet && substringFree(lits) {
			if ac, err := prefilter.BuildAhoCorasick(lits); err == nil {
				e.exactLiterals = ac
				return
			}
		}
	}
	if len(prog.Prefix) > 0 {
		e.pre = prefilter.NewLiteral(prog.Prefix)
	}
}

// substringFree reports whether no literal in lits contains another. With
// containment ruled out, every automaton match ordering (earliest end,
// leftmost start) selects the same occurrence the VM's leftmost-first
// priority would, so the fast path cannot change observable results. A set
// like {"a", "ab"} fails the check and falls back to the plain VM, which
// is the only engine that knows "ab|a" prefers the alternative written
// first.
func substringFree(lits [][]byte) bool {
	for i, a := range lits {
		for j, b := range lits {
			if i != j && bytes.Contains(a, b) {
				return false
			}
		}
	}
	return true
}

// NumCaptures returns the number of groups a Match carries, including
// group 0.
func (e *Engine) NumCaptures() int { return e.Prog.NumSlots / 2 }

// IsMatch reports whether haystack contains any match.
func (e *Engine) IsMatch(haystack []byte) bool {
	return e.Find(haystack, 0) != nil
}

// Find returns the leftmost-first match starting no earlier than from, or
// nil if none exists. Capture slots cost nothing extra once the VM has
// run, so there is no separate captures-less variant.
func (e *Engine) Find(haystack []byte, from int) *Match {
	if e.exactLiterals != nil {
		start, end, ok := e.exactLiterals.FindMatch(haystack, from)
		if !ok {
			return nil
		}
		return exactMatch(start, end, e.Prog.NumSlots)
	}

	if e.pre == nil {
		caps := e.vm.FindSubmatchIndex(haystack, from)
		if caps == nil {
			return nil
		}
		return &Match{Groups: caps}
	}

	pos := from
	for {
		cand := e.pre.Find(haystack, pos)
		if cand < 0 {
			return nil
		}
		if caps := e.vm.FindSubmatchIndexAt(haystack, cand); caps != nil {
			return &Match{Groups: caps}
		}
		pos = cand + 1
		if pos > len(haystack) {
			return nil
		}
	}
}

// FindAll returns every non-overlapping match starting no earlier than
// from, advancing past empty matches by one codepoint to guarantee
// termination. n caps the result count; n < 0 means unlimited.
//
// An empty match immediately after a non-empty one is skipped (advancing
// one codepoint and retrying) rather than reported — the same rule Go's
// stdlib regexp applies, so "a*" against "ab" yields [0,1) and [2,2), not
// also a spurious [1,1).
func (e *Engine) FindAll(haystack []byte, from, n int) []*Match {
	if n == 0 {
		return nil
	}
	var out []*Match
	pos := from
	lastMatchEnd := -1
	for pos <= len(haystack) {
		m := e.Find(haystack, pos)
		if m == nil {
			break
		}
		if m.Start() == m.End() && m.Start() == lastMatchEnd {
			pos = nextCodepoint(haystack, pos)
			continue
		}

		out = append(out, m)
		if m.Start() != m.End() {
			lastMatchEnd = m.End()
		}
		if n > 0 && len(out) >= n {
			break
		}
		if m.End() > pos {
			pos = m.End()
		} else {
			pos = nextCodepoint(haystack, pos)
		}
	}
	return out
}

// nextCodepoint advances pos by one rune's width, or by one byte past an
// invalid/absent rune, guaranteeing forward progress over arbitrary bytes.
func nextCodepoint(haystack []byte, pos int) int {
	if pos >= len(haystack) {
		return pos + 1
	}
	_, size := utf8.DecodeRune(haystack[pos:])
	if size <= 0 {
		size = 1
	}
	return pos + size
}
