package nfa

import (
	"unicode/utf8"

	"github.com/coregx/pikere/program"
	"github.com/coregx/pikere/ucd"
)

// Config controls VM behavior that the compiled Program alone doesn't
// capture, threaded through from package meta's Config.
type Config struct {
	// ASCIIWordBoundary makes \b, \B treat only [0-9A-Za-z_] as word
	// characters. When false, word-ness follows Unicode letters, marks,
	// digits, and underscore.
	ASCIIWordBoundary bool
}

// runeBefore decodes the rune immediately before pos, or -1 if pos is at
// the start of haystack.
func runeBefore(haystack []byte, pos int) rune {
	if pos <= 0 {
		return -1
	}
	r, _ := utf8.DecodeLastRune(haystack[:pos])
	return r
}

// runeAt decodes the rune starting at pos, or -1 if pos is at or past the
// end of haystack.
func runeAt(haystack []byte, pos int) rune {
	if pos >= len(haystack) {
		return -1
	}
	r, _ := utf8.DecodeRune(haystack[pos:])
	return r
}

func isWordRune(r rune, asciiOnly bool) bool {
	if r < 0 {
		return false
	}
	if asciiOnly {
		return ucd.IsASCIIWord(r)
	}
	return ucd.IsUnicodeWord(r)
}

func isWordBoundary(haystack []byte, pos int, cfg Config) bool {
	before := isWordRune(runeBefore(haystack, pos), cfg.ASCIIWordBoundary)
	after := isWordRune(runeAt(haystack, pos), cfg.ASCIIWordBoundary)
	return before != after
}

// satisfiesLook evaluates a zero-width assertion at pos. End-of-text
// anchors do not match just before a trailing '\n' (RE2/Go semantics, not
// Perl's).
func satisfiesLook(look program.Look, haystack []byte, pos int, cfg Config) bool {
	switch look {
	case program.LookBeginText:
		return pos == 0
	case program.LookEndText:
		return pos == len(haystack)
	case program.LookBeginLine:
		return pos == 0 || haystack[pos-1] == '\n'
	case program.LookEndLine:
		return pos == len(haystack) || haystack[pos] == '\n'
	case program.LookWordBoundary:
		return isWordBoundary(haystack, pos, cfg)
	case program.LookNoWordBoundary:
		return !isWordBoundary(haystack, pos, cfg)
	default:
		return false
	}
}
