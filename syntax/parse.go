package syntax

import "unicode/utf8"

// Default resource limits.
const (
	DefaultMaxRepeat       = 1000
	DefaultMaxNestingDepth = 200
)

// Options configures a Parse call.
type Options struct {
	Flags Flags

	// MaxRepeat bounds {n}, {n,}, {n,m} counts. Zero means DefaultMaxRepeat.
	MaxRepeat int
	// MaxNestingDepth bounds parenthesis-nesting recursion. Zero means
	// DefaultMaxNestingDepth.
	MaxNestingDepth int
	// UnicodeWordBoundary makes \w, \W, \d, \D, \s, \S use Unicode
	// categories instead of their ASCII defaults. It does not affect \b and
	// \B: their word-ness is decided at match time by nfa.Config.
	UnicodeWordBoundary bool
}

type parser struct {
	src             string
	pos             int
	flags           Flags
	maxRepeat       int
	maxDepth        int
	numCaps         int
	names           map[string]int
	unicodeClasses  bool
}

// Parse parses pattern into a canonical AST. The returned *Regexp does
// not itself carry the implicit whole-match capture group; package program
// wraps it with slots 0/1 during compilation.
func Parse(pattern string, opts Options) (*Regexp, error) {
	maxRepeat := opts.MaxRepeat
	if maxRepeat == 0 {
		maxRepeat = DefaultMaxRepeat
	}
	maxDepth := opts.MaxNestingDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxNestingDepth
	}

	p := &parser{
		src:            pattern,
		flags:          opts.Flags,
		maxRepeat:      maxRepeat,
		maxDepth:       maxDepth,
		names:          make(map[string]int),
		unicodeClasses: opts.UnicodeWordBoundary,
	}

	re, err := p.parseAlternate(0)
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		// Only reachable via a stray ')' with no matching '('.
		return nil, p.errorf(ErrUnclosedGroup, p.pos, "")
	}
	return re, nil
}

// NumCapsOf returns how many capture groups Parse registered (not counting
// the implicit group 0), for callers that parse once and want the count
// without recompiling.
func NumCapsOf(re *Regexp) int {
	max := 0
	var walk func(*Regexp)
	walk = func(n *Regexp) {
		if n == nil {
			return
		}
		if n.Op == OpCapture && n.Cap > max {
			max = n.Cap
		}
		for _, s := range n.Sub {
			walk(s)
		}
	}
	walk(re)
	return max
}

// NamesOf returns the capture-group names registered while parsing re,
// indexed by group number (index 0, the whole match, is always ""). Used
// by the façade's SubexpNames.
func NamesOf(re *Regexp) []string {
	n := NumCapsOf(re)
	names := make([]string, n+1)
	var walk func(*Regexp)
	walk = func(node *Regexp) {
		if node == nil {
			return
		}
		if node.Op == OpCapture && node.Name != "" {
			names[node.Cap] = node.Name
		}
		for _, s := range node.Sub {
			walk(s)
		}
	}
	walk(re)
	return names
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

// peekRune decodes the rune at the current position without consuming it.
// Returns (utf8.RuneError, 0) at eof and (utf8.RuneError, 1) on invalid
// UTF-8, so callers that blindly advance by the returned size never overrun
// the string.
func (p *parser) peekRune() (rune, int) {
	if p.eof() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(p.src[p.pos:])
}

func (p *parser) lookingAt(s string) bool {
	return p.pos+len(s) <= len(p.src) && p.src[p.pos:p.pos+len(s)] == s
}

// parseAlternate parses "concat ('|' concat)*".
func (p *parser) parseAlternate(depth int) (*Regexp, error) {
	first, err := p.parseConcat(depth)
	if err != nil {
		return nil, err
	}
	subs := []*Regexp{first}
	for !p.eof() && p.lookingAt("|") {
		p.pos++
		next, err := p.parseConcat(depth)
		if err != nil {
			return nil, err
		}
		subs = append(subs, next)
	}
	return Alternate(subs...), nil
}

// parseConcat parses a (possibly empty) run of repeat-atoms, stopping at
// '|', ')', or end of input.
func (p *parser) parseConcat(depth int) (*Regexp, error) {
	var subs []*Regexp
	for !p.eof() && !p.atConcatBoundary() {
		atom, err := p.parseRepeat(depth)
		if err != nil {
			return nil, err
		}
		subs = append(subs, atom)
	}
	return Concat(subs...), nil
}

func (p *parser) atConcatBoundary() bool {
	if p.eof() {
		return true
	}
	c, _ := p.peekRune()
	return c == '|' || c == ')'
}

// parseRepeat parses "atom [suffix]" and rejects a second, directly
// adjacent suffix ("a**") as nested repetition.
func (p *parser) parseRepeat(depth int) (*Regexp, error) {
	atom, repeatable, err := p.parseAtom(depth)
	if err != nil {
		return nil, err
	}
	if p.eof() {
		return atom, nil
	}

	kind := p.quantifierKindAt(p.pos)
	if kind == quantNone {
		return atom, nil
	}
	if !repeatable {
		return nil, p.errorf(ErrRepetitionWithoutAtom, p.pos, "")
	}

	result, err := p.applyQuantifier(atom, kind)
	if err != nil {
		return nil, err
	}

	if !p.eof() && p.quantifierKindAt(p.pos) != quantNone {
		return nil, p.errorf(ErrNestedRepetition, p.pos, "")
	}
	return result, nil
}

type quantKind uint8

const (
	quantNone quantKind = iota
	quantOpt
	quantStar
	quantPlus
	quantBrace
)

// quantifierKindAt classifies the quantifier (if any) starting at pos
// without consuming input. '{' only counts as a quantifier if it is
// followed by valid {n}/{n,}/{n,m} syntax; otherwise it's a literal brace.
func (p *parser) quantifierKindAt(pos int) quantKind {
	if pos >= len(p.src) {
		return quantNone
	}
	switch p.src[pos] {
	case '?':
		return quantOpt
	case '*':
		return quantStar
	case '+':
		return quantPlus
	case '{':
		if _, _, _, ok := braceRepeatAt(p.src, pos); ok {
			return quantBrace
		}
		return quantNone
	default:
		return quantNone
	}
}

func (p *parser) applyQuantifier(atom *Regexp, kind quantKind) (*Regexp, error) {
	switch kind {
	case quantOpt:
		p.pos++
		return Quest(atom, p.consumeLazyMarker()), nil
	case quantStar:
		p.pos++
		return Star(atom, p.consumeLazyMarker()), nil
	case quantPlus:
		p.pos++
		return Plus(atom, p.consumeLazyMarker()), nil
	case quantBrace:
		start := p.pos
		min, max, newPos, ok := braceRepeatAt(p.src, p.pos)
		if !ok {
			return nil, p.errorf(ErrInvalidRepetition, start, "")
		}
		p.pos = newPos
		greedy := p.consumeLazyMarker()
		if max != -1 && max < min {
			return nil, p.errorf(ErrInvalidRepetition, start, "")
		}
		if min > p.maxRepeat || (max != -1 && max > p.maxRepeat) {
			return nil, p.errorf(ErrRepetitionLimitExceeded, start, "")
		}
		return expandCounted(atom, min, max, greedy), nil
	default:
		return atom, nil
	}
}

// consumeLazyMarker consumes a trailing '?' (if present) and returns the
// resulting greediness, honoring the Ungreedy ('U') flag.
func (p *parser) consumeLazyMarker() bool {
	defaultGreedy := !p.flags.Has(Ungreedy)
	if !p.eof() {
		if c, size := p.peekRune(); c == '?' {
			p.pos += size
			return !defaultGreedy
		}
	}
	return defaultGreedy
}

// braceRepeatAt tries to parse "{n}", "{n,}", or "{n,m}" at src[pos] (which
// must be '{'). Returns ok=false (without mutating anything) if the braces
// don't hold valid counted-repetition syntax, so the caller can fall back
// to treating '{' as a literal character.
func braceRepeatAt(src string, pos int) (min, max, newPos int, ok bool) {
	i := pos + 1
	n, i2, ok2 := scanDigits(src, i)
	if !ok2 {
		return 0, 0, 0, false
	}
	i = i2
	if i < len(src) && src[i] == '}' {
		return n, n, i + 1, true
	}
	if i >= len(src) || src[i] != ',' {
		return 0, 0, 0, false
	}
	i++
	if i < len(src) && src[i] == '}' {
		return n, -1, i + 1, true
	}
	m, i3, ok3 := scanDigits(src, i)
	if !ok3 {
		return 0, 0, 0, false
	}
	i = i3
	if i >= len(src) || src[i] != '}' {
		return 0, 0, 0, false
	}
	return n, m, i + 1, true
}

func scanDigits(src string, pos int) (value, newPos int, ok bool) {
	start := pos
	for pos < len(src) && src[pos] >= '0' && src[pos] <= '9' {
		value = value*10 + int(src[pos]-'0')
		pos++
		if value > 1<<30 {
			// Runaway digit run; stop growing but keep scanning so the
			// caller still sees a well-formed {n,m} shape and reports
			// RepetitionLimitExceeded rather than a confusing parse error.
			value = 1 << 30
		}
	}
	if pos == start {
		return 0, 0, false
	}
	return value, pos, true
}
