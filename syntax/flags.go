package syntax

// Flags controls parse-time interpretation of regex syntax.
type Flags uint8

const (
	// FoldCase makes literals and classes match without regard to case ('i').
	FoldCase Flags = 1 << iota
	// DotNL makes '.' match '\n' as well as every other codepoint ('s').
	DotNL
	// Multiline makes '^' and '$' match at line boundaries, not just at the
	// start/end of the whole text ('m').
	Multiline
	// Ungreedy swaps the default greediness of repetition operators: bare
	// '*' '+' '?' '{n,m}' become lazy, and the same operators followed by
	// '?' become greedy ('U').
	Ungreedy
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }
