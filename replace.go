package pikere

import "strconv"

// ReplaceAll returns a copy of src with each match of re replaced by repl,
// which may reference capture groups using "$1", "$name", or "${name}"
// ("$0" is the whole match; "$$" is a literal dollar sign). A "$" that
// doesn't start a valid reference is copied through unchanged.
func (re *Regex) ReplaceAll(src, repl []byte) []byte {
	return re.replaceAll(src, func(dst []byte, match []int) []byte {
		return re.expand(dst, repl, src, match)
	})
}

// ReplaceAllString is ReplaceAll for string arguments/results.
func (re *Regex) ReplaceAllString(src, repl string) string {
	return string(re.ReplaceAll([]byte(src), []byte(repl)))
}

// ReplaceAllLiteral is like ReplaceAll but treats repl as a literal
// replacement with no "$" expansion.
func (re *Regex) ReplaceAllLiteral(src, repl []byte) []byte {
	return re.replaceAll(src, func(dst []byte, match []int) []byte {
		return append(dst, repl...)
	})
}

// ReplaceAllLiteralString is ReplaceAllLiteral for string arguments/results.
func (re *Regex) ReplaceAllLiteralString(src, repl string) string {
	return string(re.ReplaceAllLiteral([]byte(src), []byte(repl)))
}

// ReplaceAllFunc replaces each match of re in src with the result of
// calling repl on the matched bytes; unlike ReplaceAll, repl's result is
// never itself "$"-expanded.
func (re *Regex) ReplaceAllFunc(src []byte, repl func([]byte) []byte) []byte {
	return re.replaceAll(src, func(dst []byte, match []int) []byte {
		return append(dst, repl(src[match[0]:match[1]])...)
	})
}

// ReplaceAllStringFunc is ReplaceAllFunc for string arguments/results.
func (re *Regex) ReplaceAllStringFunc(src string, repl func(string) string) string {
	b := []byte(src)
	out := re.replaceAll(b, func(dst []byte, match []int) []byte {
		return append(dst, repl(string(b[match[0]:match[1]]))...)
	})
	return string(out)
}

// replaceAll walks every non-overlapping match of re in src, copying
// unmatched stretches through verbatim and delegating the replacement of
// each matched stretch to emit.
func (re *Regex) replaceAll(src []byte, emit func(dst []byte, match []int) []byte) []byte {
	matches := re.engine.FindAll(src, 0, -1)
	if len(matches) == 0 {
		out := make([]byte, len(src))
		copy(out, src)
		return out
	}

	var dst []byte
	last := 0
	for _, m := range matches {
		dst = append(dst, src[last:m.Start()]...)
		dst = emit(dst, m.Groups)
		last = m.End()
	}
	dst = append(dst, src[last:]...)
	return dst
}

// expand appends template to dst with "$name"/"${name}" references to
// match's capture groups substituted in, then returns the extended slice
// (grounded on the same template syntax Go's stdlib regexp.Expand uses).
// match is a flattened capture-slot slice as returned by FindSubmatchIndex:
// match[2i], match[2i+1] is group i's span in haystack, or -1, -1 if group i
// didn't participate in the match.
func (re *Regex) expand(dst []byte, template, haystack []byte, match []int) []byte {
	for len(template) > 0 {
		i := indexByte(template, '$')
		if i < 0 {
			break
		}
		dst = append(dst, template[:i]...)
		template = template[i:]

		if len(template) > 1 && template[1] == '$' {
			dst = append(dst, '$')
			template = template[2:]
			continue
		}

		name, num, rest, ok := parseGroupRef(template)
		if !ok {
			dst = append(dst, '$')
			template = template[1:]
			continue
		}
		template = rest

		var groupIdx int
		if name != "" {
			groupIdx = re.SubexpIndex(name)
		} else {
			groupIdx = num
		}
		if groupIdx >= 0 && groupIdx*2+1 < len(match) {
			start, end := match[2*groupIdx], match[2*groupIdx+1]
			if start >= 0 && end >= 0 {
				dst = append(dst, haystack[start:end]...)
			}
		}
	}
	return append(dst, template...)
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}

// parseGroupRef parses a "$name", "$123", or "${name}" reference at the
// start of s (s[0] == '$'). It returns ok=false, leaving s untouched, for a
// bare "$" with no valid reference following (end of string, "$", "${"
// with no matching '}', or an empty name).
func parseGroupRef(s []byte) (name string, num int, rest []byte, ok bool) {
	if len(s) < 2 {
		return "", 0, s, false
	}
	if s[1] == '{' {
		end := indexByte(s[2:], '}')
		if end < 0 {
			return "", 0, s, false
		}
		inner := string(s[2 : 2+end])
		if inner == "" {
			return "", 0, s, false
		}
		rest = s[2+end+1:]
		if n, err := strconv.Atoi(inner); err == nil {
			return "", n, rest, true
		}
		return inner, 0, rest, true
	}

	j := 1
	for j < len(s) && isGroupNameByte(s[j]) {
		j++
	}
	if j == 1 {
		return "", 0, s, false
	}
	inner := string(s[1:j])
	rest = s[j:]
	if n, err := strconv.Atoi(inner); err == nil {
		return "", n, rest, true
	}
	return inner, 0, rest, true
}

func isGroupNameByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

// Split slices src into substrings separated by matches of re, the same
// way strings.Split works but with a regular expression as the separator
// (n < 0 means unlimited; n == 0 returns nil). Empty matches remove
// nothing: splitting on a pattern that matches the empty string cuts src
// between codepoints without producing empty fields, matching the stdlib
// regexp behavior this façade mirrors.
func (re *Regex) Split(src string, n int) []string {
	if n == 0 {
		return nil
	}
	if len(re.pattern) > 0 && len(src) == 0 {
		return []string{""}
	}

	matches := re.engine.FindAll([]byte(src), 0, -1)

	var out []string
	beg, end := 0, 0
	for _, m := range matches {
		if n > 0 && len(out) >= n-1 {
			break
		}
		end = m.Start()
		if m.End() != 0 {
			out = append(out, src[beg:end])
		}
		beg = m.End()
	}
	if end != len(src) {
		out = append(out, src[beg:])
	}
	return out
}
