package syntax

// parseAtom parses a single atom: a literal, a class, an anchor, or a
// group. The bool result reports whether the atom may be followed by a
// quantifier; anchors and zero-width assertions are not ("^*" is rejected
// the same way a bare "*" with nothing before it is).
func (p *parser) parseAtom(depth int) (*Regexp, bool, error) {
	if p.eof() {
		return nil, false, p.errorf(ErrUnexpectedEOF, p.pos, "")
	}
	c, size := p.peekRune()

	switch c {
	case '(':
		p.pos += size
		return p.parseGroup(depth)

	case '.':
		p.pos += size
		if p.flags.Has(DotNL) {
			return &Regexp{Op: OpAnyChar}, true, nil
		}
		return &Regexp{Op: OpAnyCharNoNL}, true, nil

	case '[':
		p.pos += size
		re, err := p.parseClass()
		if err != nil {
			return nil, false, err
		}
		return re, true, nil

	case '^':
		p.pos += size
		if p.flags.Has(Multiline) {
			return &Regexp{Op: OpBeginLine}, false, nil
		}
		return &Regexp{Op: OpBeginText}, false, nil

	case '$':
		p.pos += size
		if p.flags.Has(Multiline) {
			return &Regexp{Op: OpEndLine}, false, nil
		}
		return &Regexp{Op: OpEndText}, false, nil

	case '\\':
		p.pos += size
		res, err := p.parseEscape(false)
		if err != nil {
			return nil, false, err
		}
		switch res.kind {
		case escapeAnchor:
			return &Regexp{Op: res.anchorOp}, false, nil
		case escapeClass:
			return &Regexp{Op: OpClass, Ranges: res.ranges}, true, nil
		default:
			return Literal(res.r, p.flags.Has(FoldCase)), true, nil
		}

	case '?', '*', '+':
		return nil, false, p.errorf(ErrRepetitionWithoutAtom, p.pos, "")

	case '{':
		// A bare '{' only means repetition-without-atom if it actually
		// parses as {n}/{n,}/{n,m}; otherwise it's a literal brace.
		if _, _, _, ok := braceRepeatAt(p.src, p.pos); ok {
			return nil, false, p.errorf(ErrRepetitionWithoutAtom, p.pos, "")
		}
		p.pos += size
		return Literal(c, p.flags.Has(FoldCase)), true, nil

	default:
		p.pos += size
		return Literal(c, p.flags.Has(FoldCase)), true, nil
	}
}

// parseGroup parses the body of a parenthesized group; the opening '('
// has already been consumed. Handles plain capturing groups, (?:...)
// non-capturing groups, (?P<name>...) named captures, and (?flags) /
// (?flags:...) inline flag groups.
func (p *parser) parseGroup(depth int) (*Regexp, bool, error) {
	start := p.pos - 1
	if depth+1 > p.maxDepth {
		return nil, false, p.errorf(ErrNestingLimitExceeded, start, "")
	}

	if !p.eof() && p.lookingAt("?") {
		return p.parseSpecialGroup(depth, start)
	}

	capIdx := p.numCaps + 1
	p.numCaps = capIdx
	saved := p.flags
	sub, err := p.parseAlternate(depth + 1)
	p.flags = saved // a bare (?flags) inside the group scopes to that group
	if err != nil {
		return nil, false, err
	}
	if !p.consumeCloseParen() {
		return nil, false, p.errorf(ErrUnclosedGroup, start, "")
	}
	return &Regexp{Op: OpCapture, Sub: []*Regexp{sub}, Cap: capIdx}, true, nil
}

func (p *parser) consumeCloseParen() bool {
	if p.eof() {
		return false
	}
	if c, size := p.peekRune(); c == ')' {
		p.pos += size
		return true
	}
	return false
}

// parseSpecialGroup handles everything that can follow "(?": named
// captures, non-capturing groups, and inline flag toggles.
func (p *parser) parseSpecialGroup(depth int, start int) (*Regexp, bool, error) {
	p.pos++ // consume '?'

	if !p.eof() && p.lookingAt("P<") {
		return p.parseNamedGroup(depth, start)
	}
	if !p.eof() && p.lookingAt(":") {
		p.pos++
		saved := p.flags
		sub, err := p.parseAlternate(depth + 1)
		p.flags = saved
		if err != nil {
			return nil, false, err
		}
		if !p.consumeCloseParen() {
			return nil, false, p.errorf(ErrUnclosedGroup, start, "")
		}
		return sub, true, nil
	}

	// (?flags) or (?flags:...)
	newFlags, err := p.parseInlineFlags(start)
	if err != nil {
		return nil, false, err
	}

	if !p.eof() && p.lookingAt(":") {
		p.pos++
		saved := p.flags
		p.flags = newFlags
		sub, err := p.parseAlternate(depth + 1)
		p.flags = saved
		if err != nil {
			return nil, false, err
		}
		if !p.consumeCloseParen() {
			return nil, false, p.errorf(ErrUnclosedGroup, start, "")
		}
		return sub, true, nil
	}

	if !p.consumeCloseParen() {
		return nil, false, p.errorf(ErrUnclosedGroup, start, "")
	}
	// (?flags) with no ':' changes flags for the remainder of the
	// enclosing group/pattern (Perl/PCRE "mode modifier" semantics).
	p.flags = newFlags
	return Empty(), false, nil
}

func (p *parser) parseNamedGroup(depth int, start int) (*Regexp, bool, error) {
	p.pos += len("P<")
	nameStart := p.pos
	for {
		if p.eof() {
			return nil, false, p.errorf(ErrUnclosedGroup, start, "")
		}
		c, size := p.peekRune()
		if c == '>' {
			break
		}
		if !isNameRune(c) {
			return nil, false, p.errorf(ErrUnclosedGroup, start, "")
		}
		p.pos += size
	}
	name := p.src[nameStart:p.pos]
	p.pos++ // consume '>'
	if name == "" {
		return nil, false, p.errorf(ErrUnclosedGroup, start, "")
	}
	if _, dup := p.names[name]; dup {
		return nil, false, p.errorf(ErrUnclosedGroup, start, name)
	}

	capIdx := p.numCaps + 1
	p.numCaps = capIdx
	p.names[name] = capIdx

	saved := p.flags
	sub, err := p.parseAlternate(depth + 1)
	p.flags = saved
	if err != nil {
		return nil, false, err
	}
	if !p.consumeCloseParen() {
		return nil, false, p.errorf(ErrUnclosedGroup, start, "")
	}
	return &Regexp{Op: OpCapture, Sub: []*Regexp{sub}, Cap: capIdx, Name: name}, true, nil
}

func isNameRune(c rune) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// parseInlineFlags parses a run of flag letters, optionally with a '-'
// separator introducing flags to clear, e.g. "i", "ims", "i-s".
func (p *parser) parseInlineFlags(start int) (Flags, error) {
	f := p.flags
	negate := false
	saw := false
	for !p.eof() {
		c, size := p.peekRune()
		if c == '-' {
			if negate {
				return 0, p.errorf(ErrUnknownFlag, start, "")
			}
			negate = true
			p.pos += size
			continue
		}
		bit, ok := flagBit(c)
		if !ok {
			break
		}
		saw = true
		if negate {
			f &^= bit
		} else {
			f |= bit
		}
		p.pos += size
	}
	if !saw {
		return 0, p.errorf(ErrUnknownFlag, start, "")
	}
	return f, nil
}

func flagBit(c rune) (Flags, bool) {
	switch c {
	case 'i':
		return FoldCase, true
	case 's':
		return DotNL, true
	case 'm':
		return Multiline, true
	case 'U':
		return Ungreedy, true
	default:
		return 0, false
	}
}
