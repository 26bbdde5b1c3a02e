// Package prefilter implements the substring/multi-literal fast path: a
// prefilter narrows the positions the VM is asked to simulate from, but
// never changes the result a plain unanchored VM search would produce on
// its own.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
)

// Prefilter returns the next input offset at or after at where a match
// could possibly begin (or, for the exact variant built over an alternation
// of literals, simply the next literal occurrence at all). -1 means no
// further candidate exists in the haystack.
type Prefilter interface {
	Find(haystack []byte, at int) int
}

// Literal is a single-substring prefilter backed by bytes.Index, used when
// program.Program carries a non-empty literal prefix. It only narrows the
// search window; the VM still verifies (and may fail) from any candidate
// it returns.
type Literal struct {
	lit []byte
}

// NewLiteral builds a Literal prefilter over lit. lit must be non-empty.
func NewLiteral(lit []byte) *Literal {
	return &Literal{lit: lit}
}

// Find returns the next occurrence of the literal at or after at.
func (p *Literal) Find(haystack []byte, at int) int {
	if at < 0 || at > len(haystack) {
		return -1
	}
	i := bytes.Index(haystack[at:], p.lit)
	if i < 0 {
		return -1
	}
	return at + i
}

// AhoCorasick is a multi-literal prefilter over an Aho-Corasick automaton,
// for patterns that are themselves a pure alternation of literals, where
// an automaton hit *is* the full match, not merely a candidate (see
// meta.Engine's exact-literal path).
type AhoCorasick struct {
	auto *ahocorasick.Automaton
}

// BuildAhoCorasick compiles lits into an automaton. Returns an error if the
// underlying library rejects the pattern set (e.g. too many literals).
func BuildAhoCorasick(lits [][]byte) (*AhoCorasick, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &AhoCorasick{auto: auto}, nil
}

// Find returns the start offset of the next automaton match at or after at,
// or -1 if none remains.
func (p *AhoCorasick) Find(haystack []byte, at int) int {
	m := p.auto.Find(haystack, at)
	if m == nil {
		return -1
	}
	return m.Start
}

// FindMatch returns the full [start,end) span of the next automaton match
// at or after at, used by meta.Engine's exact-literal fast path to report a
// match without any VM verification at all.
func (p *AhoCorasick) FindMatch(haystack []byte, at int) (start, end int, ok bool) {
	m := p.auto.Find(haystack, at)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}
