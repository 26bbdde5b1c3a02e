// Package literal extracts the set of literal byte strings a regex AST can
// reduce to, for the Aho-Corasick prefilter fast path. Where the compiler's
// prefix scan reads off a single mandatory prefix, this package handles
// the alternation case: a pattern that is nothing but literals glued with
// | and concatenation reduces to a finite string set.
package literal

import (
	"unicode/utf8"

	"github.com/coregx/pikere/syntax"
)

// MaxSetSize bounds the cross product ExtractSet will materialize before
// giving up; a pattern like (a|b|c|d){10} would otherwise blow up to 4^10
// literals for no benefit (the VM handles it just fine without a
// prefilter).
const MaxSetSize = 64

// ExtractSet walks ast and, if every node is a literal shape (Empty,
// Literal, Concat, Alternate, Capture — no classes, wildcards, repetition,
// or anchors), returns the complete set of byte strings ast can match. ok
// is false if ast contains anything else, or if the cross product would
// exceed MaxSetSize; callers fall back to the plain VM (or the §4.2 literal
// prefix) in that case.
//
// Case-folded literals are deliberately excluded (ok=false): folding a
// literal into its full case-orbit before taking a cross product would
// multiply the set size for a benefit this module doesn't need (the single
// Aho-Corasick prefilter strategy is meant for alternations of exact
// words, e.g. "cat|dog|bird", not case-insensitive ones).
func ExtractSet(ast *syntax.Regexp) (lits [][]byte, ok bool) {
	lits, ok = extract(ast)
	if !ok || len(lits) == 0 {
		return nil, false
	}
	return lits, true
}

func extract(re *syntax.Regexp) ([][]byte, bool) {
	switch re.Op {
	case syntax.OpEmpty:
		return [][]byte{{}}, true

	case syntax.OpLiteral:
		if re.FoldCase {
			return nil, false
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], re.Rune)
		return [][]byte{append([]byte(nil), buf[:n]...)}, true

	case syntax.OpCapture:
		return extract(re.Sub[0])

	case syntax.OpConcat:
		return extractConcat(re.Sub)

	case syntax.OpAlternate:
		return extractAlternate(re.Sub)

	default:
		return nil, false
	}
}

// extractConcat takes the cross product of each child's literal set, in
// order, so "ab(c|d)" yields ["abc", "abd"].
func extractConcat(subs []*syntax.Regexp) ([][]byte, bool) {
	cur := [][]byte{{}}
	for _, sub := range subs {
		next, ok := extract(sub)
		if !ok {
			return nil, false
		}
		cross := make([][]byte, 0, len(cur)*len(next))
		for _, a := range cur {
			for _, b := range next {
				if len(cross) >= MaxSetSize {
					return nil, false
				}
				combined := make([]byte, 0, len(a)+len(b))
				combined = append(combined, a...)
				combined = append(combined, b...)
				cross = append(cross, combined)
			}
		}
		cur = cross
	}
	return cur, true
}

// extractAlternate unions each child's literal set, so "cat|dog" yields
// ["cat", "dog"].
func extractAlternate(subs []*syntax.Regexp) ([][]byte, bool) {
	var out [][]byte
	for _, sub := range subs {
		lits, ok := extract(sub)
		if !ok {
			return nil, false
		}
		out = append(out, lits...)
		if len(out) > MaxSetSize {
			return nil, false
		}
	}
	return out, true
}
