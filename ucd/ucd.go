// Package ucd is the Unicode table provider collaborator: a static mapping
// from class names to sorted, non-overlapping codepoint ranges, and a
// case-folding function, both read-only and safe to share for the lifetime
// of the process.
//
// It is built directly on the standard library's unicode range tables
// rather than a hand-rolled copy of the Unicode Character Database: the
// corpus retrieved for this module carries no third-party Unicode-table
// package, and unicode.RangeTable already is "sorted, non-overlapping
// codepoint ranges" in the shape the parser wants.
package ucd

import "unicode"

// MaxRune is the largest valid Unicode codepoint.
const MaxRune = unicode.MaxRune

// surrogate range, never valid in a class.
const (
	surrogateLo = 0xD800
	surrogateHi = 0xDFFF
)

// Range is an inclusive codepoint range.
type Range = [2]rune

// Class resolves a class name to its sorted, disjoint range list.
//
// Supported name families:
//   - Unicode general categories and their one-letter groups: "L", "Lu",
//     "Nd", "Greek" and other script names, "Any"
//   - POSIX-style shorthands used internally by the parser for \d \s \w:
//     "digit", "space", "word"
func Class(name string) ([]Range, bool) {
	if name == "Any" {
		return []Range{{0, MaxRune}}, true
	}
	if rt, ok := posixClasses[name]; ok {
		return rt, true
	}
	if rt, ok := unicode.Categories[name]; ok {
		return tableToRanges(rt), true
	}
	if rt, ok := unicode.Scripts[name]; ok {
		return tableToRanges(rt), true
	}
	if rt, ok := unicode.Properties[name]; ok {
		return tableToRanges(rt), true
	}
	return nil, false
}

// tableToRanges flattens a unicode.RangeTable (which separates runs of
// stride-1 entries from R32 entries for compactness) into a single sorted
// list of inclusive [lo,hi] pairs, merging adjacent entries.
func tableToRanges(rt *unicode.RangeTable) []Range {
	out := make([]Range, 0, len(rt.R16)+len(rt.R32))
	for _, r := range rt.R16 {
		expandStride(&out, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range rt.R32 {
		expandStride(&out, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return mergeRanges(out)
}

// expandStride appends one range per run of consecutive codepoints implied
// by a strided (lo, hi, stride) entry; stride 1 is the common case and
// becomes a single range.
func expandStride(out *[]Range, lo, hi, stride rune) {
	if stride == 1 {
		*out = append(*out, Range{lo, hi})
		return
	}
	for r := lo; r <= hi; r += stride {
		*out = append(*out, Range{r, r})
	}
}

// mergeRanges sorts and coalesces overlapping/adjacent ranges, the
// canonical form the parser's Class AST node requires.
func mergeRanges(rs []Range) []Range {
	if len(rs) == 0 {
		return rs
	}
	sortRanges(rs)
	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if r[0] <= last[1]+1 {
			if r[1] > last[1] {
				last[1] = r[1]
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func sortRanges(rs []Range) {
	// Small insertion sort: class tables are flattened once at parse time
	// and are rarely more than a few hundred entries, so O(n^2) in the
	// worst case is fine and keeps this dependency-free.
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j][0] < rs[j-1][0]; j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}

// Negate complements a sorted, disjoint range list against
// [0, MaxRune] \ {surrogates}.
func Negate(rs []Range) []Range {
	var out []Range
	next := rune(0)
	push := func(lo, hi rune) {
		if lo > hi {
			return
		}
		// Split around the surrogate gap, which is never a valid rune.
		if lo <= surrogateHi && hi >= surrogateLo {
			if lo < surrogateLo {
				out = append(out, Range{lo, surrogateLo - 1})
			}
			if hi > surrogateHi {
				out = append(out, Range{surrogateHi + 1, hi})
			}
			return
		}
		out = append(out, Range{lo, hi})
	}
	for _, r := range rs {
		if r[0] > next {
			push(next, r[0]-1)
		}
		if r[1]+1 > next {
			next = r[1] + 1
		}
	}
	if next <= MaxRune {
		push(next, MaxRune)
	}
	return out
}

// Fold returns the case-fold orbit of r: every codepoint Go's Unicode
// tables consider equivalent under simple case folding, including r
// itself. The result is not sorted.
func Fold(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	return orbit
}

// FoldRanges unions each range in rs with the case-fold orbit of every
// codepoint it contains. Folding is per codepoint and bounded: a range
// wider than maxExpand codepoints is kept as-is, and the case variants of
// its members that lie outside it are not added.
func FoldRanges(rs []Range, maxExpand int) []Range {
	out := append([]Range(nil), rs...)
	for _, r := range rs {
		if int(r[1]-r[0])+1 > maxExpand {
			// Range too large to fold codepoint-by-codepoint; leave as-is.
			continue
		}
		for c := r[0]; c <= r[1]; c++ {
			for _, f := range Fold(c) {
				out = append(out, Range{f, f})
			}
		}
	}
	return mergeRanges(out)
}
