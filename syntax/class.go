package syntax

import "github.com/coregx/pikere/ucd"

// parseClass parses a bracket expression "[" ... "]" (the leading '[' must
// already be consumed) into a canonical OpClass node: ranges sorted,
// merged, case-folded and negated.
func (p *parser) parseClass() (*Regexp, error) {
	start := p.pos - 1 // position of '['

	negated := false
	if !p.eof() {
		if c, size := p.peekRune(); c == '^' {
			negated = true
			p.pos += size
		}
	}

	var ranges []Range
	for {
		if p.eof() {
			return nil, p.errorf(ErrUnclosedClass, start, "")
		}
		c, size := p.peekRune()
		if c == ']' {
			p.pos += size
			break
		}

		if p.lookingAt("[:") {
			rs, err := p.parsePOSIXClass()
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, rs...)
			continue
		}

		lo, err := p.classItemRune()
		if err != nil {
			return nil, err
		}
		if lo.isClass {
			ranges = append(ranges, lo.ranges...)
			continue
		}

		hi := lo.r
		if !p.eof() {
			if c2, size2 := p.peekRune(); c2 == '-' {
				// Lookahead: a trailing '-' right before ']' is a literal
				// hyphen, not the start of a range.
				savedPos := p.pos
				p.pos += size2
				if !p.eof() {
					if c3, _ := p.peekRune(); c3 == ']' {
						p.pos = savedPos
						ranges = append(ranges, Range{lo.r, lo.r})
						continue
					}
				}
				hiItem, err := p.classItemRune()
				if err != nil {
					return nil, err
				}
				if hiItem.isClass {
					return nil, p.errorf(ErrInvalidRange, savedPos, "")
				}
				hi = hiItem.r
			}
		}
		if hi < lo.r {
			return nil, p.errorf(ErrInvalidRange, start, string(lo.r)+"-"+string(hi))
		}
		ranges = append(ranges, Range{lo.r, hi})
	}

	if len(ranges) == 0 {
		return nil, p.errorf(ErrEmptyClass, start, "")
	}

	ucdRanges := toUCDRanges(ranges)
	if p.flags.Has(FoldCase) {
		ucdRanges = ucd.FoldRanges(mergeUCD(ucdRanges), foldExpandLimit)
	} else {
		ucdRanges = mergeUCD(ucdRanges)
	}
	if negated {
		ucdRanges = ucd.Negate(ucdRanges)
	}

	return &Regexp{Op: OpClass, Ranges: toSyntaxRanges(ucdRanges), FoldCase: p.flags.Has(FoldCase)}, nil
}

// foldExpandLimit bounds per-codepoint case folding of a single class
// range (see ucd.FoldRanges) so a pathological range doesn't force folding
// millions of codepoints one at a time.
const foldExpandLimit = 4096

// parsePOSIXClass parses a "[:name:]" or "[:^name:]" element inside a
// bracket expression (the parser is positioned on the inner "[:"). Names
// resolve through the same ucd table \p{...} uses, so [[:alpha:]] follows
// the Unicode letter definition rather than an ASCII-only one.
func (p *parser) parsePOSIXClass() ([]Range, error) {
	start := p.pos
	p.pos += len("[:")

	negated := false
	if !p.eof() {
		if c, size := p.peekRune(); c == '^' {
			negated = true
			p.pos += size
		}
	}

	nameStart := p.pos
	for !p.lookingAt(":]") {
		if p.eof() {
			return nil, p.errorf(ErrUnclosedClass, start, "")
		}
		_, size := p.peekRune()
		p.pos += size
	}
	name := p.src[nameStart:p.pos]
	p.pos += len(":]")

	rs, ok := ucd.Class(name)
	if !ok {
		return nil, p.errorf(ErrUnknownUnicodeClass, start, name)
	}
	if negated {
		rs = ucd.Negate(rs)
	}
	return toSyntaxRanges(rs), nil
}

// classItem is one element parsed out of a bracket expression: either a
// single codepoint or an already-expanded shorthand class.
type classItem struct {
	isClass bool
	r       rune
	ranges  []Range
}

// classItemRune reads one class element: an escape (literal or shorthand
// class) or a bare codepoint.
func (p *parser) classItemRune() (classItem, error) {
	c, size := p.peekRune()
	if c == '\\' {
		p.pos += size
		res, err := p.parseEscape(true)
		if err != nil {
			return classItem{}, err
		}
		switch res.kind {
		case escapeClass:
			return classItem{isClass: true, ranges: res.ranges}, nil
		case escapeAnchor:
			return classItem{}, p.errorf(ErrInvalidEscape, p.pos, "")
		default:
			return classItem{r: res.r}, nil
		}
	}
	p.pos += size
	return classItem{r: c}, nil
}

// mergeUCD sorts and coalesces a ucd.Range slice; ucd.Class already returns
// merged ranges per class, but unioning several classes/escapes inside one
// bracket expression can reintroduce overlaps that must be collapsed
// before the compiler sees them; class ranges stay pairwise disjoint.
func mergeUCD(rs []ucd.Range) []ucd.Range {
	cp := append([]ucd.Range(nil), rs...)
	for i := 1; i < len(cp); i++ {
		for j := i; j > 0 && cp[j][0] < cp[j-1][0]; j-- {
			cp[j], cp[j-1] = cp[j-1], cp[j]
		}
	}
	if len(cp) == 0 {
		return cp
	}
	out := cp[:1]
	for _, r := range cp[1:] {
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
