// Package pikere is a regular-expression engine built on the RE2 design: a
// parser and compiler produce a flat byte-code program, and a virtual
// machine simulates it as a nondeterministic finite automaton with two
// thread lists, in time linear in the input length — no catastrophic
// backtracking, regardless of pattern shape.
//
// Basic usage:
//
//	re := pikere.MustCompile(`\d+`)
//	if re.MatchString("age: 42") {
//	    fmt.Println(re.FindString("age: 42")) // 42
//	}
//
// The public API mirrors Go's stdlib regexp package where the two overlap
// (Find/Match/Replace/Split families), so most code that only needs the
// common subset can switch between them with an import-path change.
package pikere

import (
	"github.com/coregx/pikere/meta"
	"github.com/coregx/pikere/syntax"
)

// Flags controls parse-time interpretation of regex syntax. Re-exported
// from package syntax so callers never need to import it directly just to
// pass a flag to CompileFlags.
type Flags = syntax.Flags

const (
	FoldCase  = syntax.FoldCase
	DotNL     = syntax.DotNL
	Multiline = syntax.Multiline
	Ungreedy  = syntax.Ungreedy
)

// Regex is a compiled regular expression, safe for concurrent use by
// multiple goroutines: the underlying program.Program is immutable, and
// every match call allocates its own VM state.
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Compile parses and compiles pattern with no flags set.
//
// Example:
//
//	re, err := pikere.Compile(`\d{3}-\d{4}`)
func Compile(pattern string) (*Regex, error) {
	return CompileFlags(pattern, 0)
}

// CompileFlags parses and compiles pattern under the given top-level
// flags. Inline flag groups in the pattern itself, e.g. "(?i)", still
// apply on top of these.
func CompileFlags(pattern string, flags Flags) (*Regex, error) {
	engine, err := meta.Compile(pattern, flags, meta.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine, pattern: pattern}, nil
}

// MustCompile is like Compile but panics if pattern fails to parse. Meant
// for program-literal patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(`pikere: Compile(` + quote(pattern) + `): ` + err.Error())
	}
	return re
}

// MustCompileFlags is CompileFlags's panicking counterpart.
func MustCompileFlags(pattern string, flags Flags) *Regex {
	re, err := CompileFlags(pattern, flags)
	if err != nil {
		panic(`pikere: CompileFlags(` + quote(pattern) + `): ` + err.Error())
	}
	return re
}

func quote(s string) string { return "\"" + s + "\"" }

// String returns the source pattern re was compiled from.
func (re *Regex) String() string { return re.pattern }

// NumSubexp returns the number of capturing subexpressions, not counting
// the whole match itself.
func (re *Regex) NumSubexp() int { return re.engine.NumCaptures() - 1 }

// SubexpNames returns the names of the capturing subexpressions, indexed
// by group number; index 0 (the whole match) and unnamed groups are "".
func (re *Regex) SubexpNames() []string { return re.engine.Names }

// SubexpIndex returns the index of the first capture group named name, or
// -1 if no such group exists.
func (re *Regex) SubexpIndex(name string) int {
	for i, n := range re.engine.Names {
		if n == name && name != "" {
			return i
		}
	}
	return -1
}

// Match reports whether b contains any match of re.
func (re *Regex) Match(b []byte) bool { return re.engine.IsMatch(b) }

// MatchString reports whether s contains any match of re.
func (re *Regex) MatchString(s string) bool { return re.engine.IsMatch([]byte(s)) }

// Find returns the text of the leftmost match in b, or nil if none.
func (re *Regex) Find(b []byte) []byte {
	m := re.engine.Find(b, 0)
	if m == nil {
		return nil
	}
	return b[m.Start():m.End()]
}

// FindString is Find for a string argument/result.
func (re *Regex) FindString(s string) string {
	b := re.Find([]byte(s))
	if b == nil {
		return ""
	}
	return string(b)
}

// FindIndex returns the [start, end) byte offsets of the leftmost match in
// b, or nil if none.
func (re *Regex) FindIndex(b []byte) []int {
	m := re.engine.Find(b, 0)
	if m == nil {
		return nil
	}
	return []int{m.Start(), m.End()}
}

// FindStringIndex is FindIndex for a string argument.
func (re *Regex) FindStringIndex(s string) []int { return re.FindIndex([]byte(s)) }

// FindSubmatch returns the leftmost match and all its capture groups. Index
// 0 is the whole match; unmatched groups are nil.
func (re *Regex) FindSubmatch(b []byte) [][]byte {
	m := re.engine.Find(b, 0)
	if m == nil {
		return nil
	}
	return groupBytes(b, m)
}

// FindStringSubmatch is FindSubmatch for string argument/result.
func (re *Regex) FindStringSubmatch(s string) []string {
	groups := re.FindSubmatch([]byte(s))
	if groups == nil {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		if g != nil {
			out[i] = string(g)
		}
	}
	return out
}

// FindSubmatchIndex returns the [start, end) offsets of the leftmost match
// and every capture group, flattened as result[2i:2i+2]. Unmatched groups
// report [-1, -1].
func (re *Regex) FindSubmatchIndex(b []byte) []int {
	m := re.engine.Find(b, 0)
	if m == nil {
		return nil
	}
	return m.Groups
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string argument.
func (re *Regex) FindStringSubmatchIndex(s string) []int {
	return re.FindSubmatchIndex([]byte(s))
}

// FindAll returns every non-overlapping match in b. n caps the number of
// matches returned; n < 0 means unlimited.
func (re *Regex) FindAll(b []byte, n int) [][]byte {
	matches := re.engine.FindAll(b, 0, n)
	if matches == nil {
		return nil
	}
	out := make([][]byte, len(matches))
	for i, m := range matches {
		out[i] = b[m.Start():m.End()]
	}
	return out
}

// FindAllString is FindAll for string argument/result.
func (re *Regex) FindAllString(s string, n int) []string {
	matches := re.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}

// FindAllIndex returns the [start, end) offsets of every non-overlapping
// match in b.
func (re *Regex) FindAllIndex(b []byte, n int) [][]int {
	matches := re.engine.FindAll(b, 0, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{m.Start(), m.End()}
	}
	return out
}

// FindAllStringIndex is FindAllIndex for a string argument.
func (re *Regex) FindAllStringIndex(s string, n int) [][]int {
	return re.FindAllIndex([]byte(s), n)
}

// FindAllSubmatch returns every non-overlapping match in b along with each
// match's capture groups.
func (re *Regex) FindAllSubmatch(b []byte, n int) [][][]byte {
	matches := re.engine.FindAll(b, 0, n)
	if matches == nil {
		return nil
	}
	out := make([][][]byte, len(matches))
	for i, m := range matches {
		out[i] = groupBytes(b, m)
	}
	return out
}

// FindAllStringSubmatch is FindAllSubmatch for string argument/result.
func (re *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	b := []byte(s)
	matches := re.engine.FindAll(b, 0, n)
	if matches == nil {
		return nil
	}
	out := make([][]string, len(matches))
	for i, m := range matches {
		groups := groupBytes(b, m)
		strs := make([]string, len(groups))
		for j, g := range groups {
			if g != nil {
				strs[j] = string(g)
			}
		}
		out[i] = strs
	}
	return out
}

// FindAllSubmatchIndex returns the flattened group offsets for every
// non-overlapping match, same layout as FindSubmatchIndex per match.
func (re *Regex) FindAllSubmatchIndex(b []byte, n int) [][]int {
	matches := re.engine.FindAll(b, 0, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = m.Groups
	}
	return out
}

// FindAllStringSubmatchIndex is FindAllSubmatchIndex for a string argument.
func (re *Regex) FindAllStringSubmatchIndex(s string, n int) [][]int {
	return re.FindAllSubmatchIndex([]byte(s), n)
}

func groupBytes(haystack []byte, m *meta.Match) [][]byte {
	out := make([][]byte, m.NumGroups())
	for i := range out {
		start, end := m.Group(i)
		if start < 0 || end < 0 {
			continue
		}
		out[i] = haystack[start:end]
	}
	return out
}
