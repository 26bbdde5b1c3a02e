package syntax

import (
	"unicode/utf8"

	"github.com/coregx/pikere/ucd"
)

// escapeResult is what a single backslash escape produces: either a literal
// codepoint, a character class (shorthand \d\s\w or \p{...}), or a
// zero-width anchor/boundary op (\A \z \b \B), valid only outside a class.
type escapeResult struct {
	kind     escapeKind
	r        rune
	ranges   []Range
	anchorOp Op
}

type escapeKind uint8

const (
	escapeLiteral escapeKind = iota
	escapeClass
	escapeAnchor
)

// parseEscape consumes a backslash escape starting at the current position
// (the '\' itself must already be consumed by the caller) and classifies it.
// inClass changes the meaning of \b (backspace vs word boundary) and
// disallows \A \z \b-as-boundary \B, which have no meaning inside a
// bracket expression.
func (p *parser) parseEscape(inClass bool) (escapeResult, error) {
	start := p.pos - 1 // position of the backslash
	if p.eof() {
		return escapeResult{}, p.errorf(ErrUnexpectedEOF, start, `\`)
	}
	c, size := p.peekRune()

	switch c {
	case 'n':
		p.pos += size
		return litResult('\n'), nil
	case 'r':
		p.pos += size
		return litResult('\r'), nil
	case 't':
		p.pos += size
		return litResult('\t'), nil
	case 'f':
		p.pos += size
		return litResult('\f'), nil
	case 'v':
		p.pos += size
		return litResult('\v'), nil
	case 'a':
		p.pos += size
		return litResult('\a'), nil

	case 'A':
		if inClass {
			return escapeResult{}, p.errorf(ErrInvalidEscape, start, `\A`)
		}
		p.pos += size
		return escapeResult{kind: escapeAnchor, anchorOp: OpBeginText}, nil
	case 'z':
		if inClass {
			return escapeResult{}, p.errorf(ErrInvalidEscape, start, `\z`)
		}
		p.pos += size
		return escapeResult{kind: escapeAnchor, anchorOp: OpEndText}, nil
	case 'b':
		p.pos += size
		if inClass {
			return litResult('\b'), nil
		}
		return escapeResult{kind: escapeAnchor, anchorOp: OpWordBoundary}, nil
	case 'B':
		if inClass {
			return escapeResult{}, p.errorf(ErrInvalidEscape, start, `\B`)
		}
		p.pos += size
		return escapeResult{kind: escapeAnchor, anchorOp: OpNoWordBoundary}, nil

	case 'd', 'D':
		p.pos += size
		return classResult(p.shorthandRanges(toSyntaxRanges(ucd.ASCIIDigit), posixOrUnicode(p, "digit")), c == 'D'), nil
	case 's', 'S':
		p.pos += size
		return classResult(p.shorthandRanges(toSyntaxRanges(ucd.ASCIISpace), posixOrUnicode(p, "space")), c == 'S'), nil
	case 'w', 'W':
		p.pos += size
		return classResult(p.shorthandRanges(toSyntaxRanges(ucd.ASCIIWord), posixOrUnicode(p, "word")), c == 'W'), nil

	case 'p', 'P':
		p.pos += size
		return p.parseUnicodeClass(c == 'P', start)

	case 'x':
		p.pos += size
		return p.parseHexEscape(start)
	case 'u':
		p.pos += size
		return p.parseFixedHexEscape(4, start)
	case 'U':
		p.pos += size
		return p.parseFixedHexEscape(8, start)

	default:
		if isASCIIPunct(c) {
			p.pos += size
			return litResult(c), nil
		}
		return escapeResult{}, p.errorf(ErrInvalidEscape, start, string(c))
	}
}

func litResult(r rune) escapeResult { return escapeResult{kind: escapeLiteral, r: r} }

func classResult(ranges []Range, negate bool) escapeResult {
	if negate {
		ranges = toSyntaxRanges(ucd.Negate(toUCDRanges(ranges)))
	}
	return escapeResult{kind: escapeClass, ranges: ranges}
}

// shorthandRanges picks ASCII or Unicode ranges for \d \s \w depending on
// the parser's word-boundary/Unicode mode; the toggle that governs \b also
// governs these shorthands' default universe, for consistency.
func (p *parser) shorthandRanges(ascii []Range, unicode []Range) []Range {
	if p.unicodeClasses {
		return unicode
	}
	return ascii
}

func posixOrUnicode(p *parser, name string) []Range {
	rs, _ := ucd.Class(name)
	return toSyntaxRanges(rs)
}

func (p *parser) parseUnicodeClass(negate bool, start int) (escapeResult, error) {
	name, err := p.readClassName()
	if err != nil {
		return escapeResult{}, err
	}
	rs, ok := ucd.Class(name)
	if !ok {
		return escapeResult{}, p.errorf(ErrUnknownUnicodeClass, start, name)
	}
	return classResult(toSyntaxRanges(rs), negate), nil
}

// readClassName reads either "{Name}" or a single letter, covering both
// the \p{Greek} and \pL forms.
func (p *parser) readClassName() (string, error) {
	if p.eof() {
		return "", p.errorf(ErrUnexpectedEOF, p.pos, "")
	}
	if c, size := p.peekRune(); c == '{' {
		p.pos += size
		nameStart := p.pos
		for {
			if p.eof() {
				return "", p.errorf(ErrUnexpectedEOF, nameStart, "")
			}
			c2, size2 := p.peekRune()
			if c2 == '}' {
				name := p.src[nameStart:p.pos]
				p.pos += size2
				return name, nil
			}
			p.pos += size2
		}
	}
	c, size := p.peekRune()
	p.pos += size
	return string(c), nil
}

// parseHexEscape parses \xHH (exactly two hex digits) or \x{H...H}
// (one or more hex digits whose value is at most 0x10FFFF).
func (p *parser) parseHexEscape(start int) (escapeResult, error) {
	if !p.eof() {
		if c, size := p.peekRune(); c == '{' {
			p.pos += size
			digitsStart := p.pos
			for {
				if p.eof() {
					return escapeResult{}, p.errorf(ErrUnexpectedEOF, digitsStart, "")
				}
				c2, size2 := p.peekRune()
				if c2 == '}' {
					digits := p.src[digitsStart:p.pos]
					p.pos += size2
					return hexLiteral(digits, start)
				}
				p.pos += size2
			}
		}
	}
	if p.pos+2 > len(p.src) {
		return escapeResult{}, p.errorf(ErrUnexpectedEOF, start, "")
	}
	digits := p.src[p.pos : p.pos+2]
	r, err := hexLiteral(digits, start)
	if err != nil {
		return escapeResult{}, err
	}
	p.pos += 2
	return r, nil
}

func (p *parser) parseFixedHexEscape(n int, start int) (escapeResult, error) {
	if p.pos+n > len(p.src) {
		return escapeResult{}, p.errorf(ErrUnexpectedEOF, start, "")
	}
	digits := p.src[p.pos : p.pos+n]
	r, err := hexLiteral(digits, start)
	if err != nil {
		return escapeResult{}, err
	}
	p.pos += n
	return r, nil
}

func hexLiteral(digits string, pos int) (escapeResult, error) {
	if digits == "" {
		return escapeResult{}, &Error{Code: ErrInvalidEscape, Pos: pos, Expr: digits}
	}
	var v int64
	for _, c := range digits {
		d, ok := hexDigit(c)
		if !ok {
			return escapeResult{}, &Error{Code: ErrInvalidEscape, Pos: pos, Expr: digits}
		}
		v = v*16 + int64(d)
		if v > utf8.MaxRune {
			return escapeResult{}, &Error{Code: ErrInvalidCodepoint, Pos: pos, Expr: digits}
		}
	}
	if !utf8.ValidRune(rune(v)) {
		return escapeResult{}, &Error{Code: ErrInvalidCodepoint, Pos: pos, Expr: digits}
	}
	return litResult(rune(v)), nil
}

func hexDigit(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

func isASCIIPunct(c rune) bool {
	switch c {
	case '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$',
		'\\', '-', '/', '!', '"', '#', '%', '&', '\'', ',', ':', ';', '<',
		'=', '>', '@', '_', '`', '~':
		return true
	default:
		return false
	}
}

func toSyntaxRanges(rs []ucd.Range) []Range {
	out := make([]Range, len(rs))
	for i, r := range rs {
		out[i] = Range(r)
	}
	return out
}

func toUCDRanges(rs []Range) []ucd.Range {
	out := make([]ucd.Range, len(rs))
	for i, r := range rs {
		out[i] = ucd.Range(r)
	}
	return out
}
