package syntax

import "testing"

func mustParse(t *testing.T, pattern string, flags Flags) *Regexp {
	t.Helper()
	re, err := Parse(pattern, Options{Flags: flags})
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", pattern, err)
	}
	return re
}

func parseErr(t *testing.T, pattern string) *Error {
	t.Helper()
	_, err := Parse(pattern, Options{})
	if err == nil {
		t.Fatalf("Parse(%q) expected error, got nil", pattern)
	}
	se, ok := err.(*Error)
	if !ok {
		t.Fatalf("Parse(%q) error is %T, want *syntax.Error", pattern, err)
	}
	return se
}

func TestParseLiteralConcat(t *testing.T) {
	re := mustParse(t, "abc", 0)
	if re.Op != OpConcat || len(re.Sub) != 3 {
		t.Fatalf("got %v, want 3-way concat", re.Op)
	}
	for i, want := range []rune{'a', 'b', 'c'} {
		if re.Sub[i].Op != OpLiteral || re.Sub[i].Rune != want {
			t.Fatalf("sub[%d] = %v %q, want literal %q", i, re.Sub[i].Op, re.Sub[i].Rune, want)
		}
	}
}

func TestParseAlternate(t *testing.T) {
	re := mustParse(t, "a|b|c", 0)
	if re.Op != OpAlternate || len(re.Sub) != 3 {
		t.Fatalf("got %v with %d subs, want 3-way alternate", re.Op, len(re.Sub))
	}
}

func TestParseCaptureGroups(t *testing.T) {
	re := mustParse(t, "(a)(b)", 0)
	if re.Op != OpConcat || len(re.Sub) != 2 {
		t.Fatalf("got %v", re.Op)
	}
	if re.Sub[0].Op != OpCapture || re.Sub[0].Cap != 1 {
		t.Fatalf("first group: op=%v cap=%d", re.Sub[0].Op, re.Sub[0].Cap)
	}
	if re.Sub[1].Op != OpCapture || re.Sub[1].Cap != 2 {
		t.Fatalf("second group: op=%v cap=%d", re.Sub[1].Op, re.Sub[1].Cap)
	}
}

func TestParseNonCapturingGroup(t *testing.T) {
	re := mustParse(t, "(?:ab)", 0)
	if NumCapsOf(re) != 0 {
		t.Fatalf("non-capturing group registered %d captures", NumCapsOf(re))
	}
}

func TestParseNamedGroup(t *testing.T) {
	re, err := Parse("(?P<year>[0-9]+)", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if re.Op != OpCapture || re.Name != "year" || re.Cap != 1 {
		t.Fatalf("got op=%v name=%q cap=%d", re.Op, re.Name, re.Cap)
	}
}

func TestParseDuplicateNamedGroupRejected(t *testing.T) {
	se := parseErr(t, "(?P<x>a)(?P<x>b)")
	if se.Code != ErrUnclosedGroup {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseStarPlusQuest(t *testing.T) {
	cases := []struct {
		pattern string
		op      Op
		greedy  bool
	}{
		{"a*", OpStar, true},
		{"a+", OpPlus, true},
		{"a?", OpQuest, true},
		{"a*?", OpStar, false},
		{"a+?", OpPlus, false},
		{"a??", OpQuest, false},
	}
	for _, c := range cases {
		re := mustParse(t, c.pattern, 0)
		if re.Op != c.op || re.Greedy != c.greedy {
			t.Errorf("%q: got op=%v greedy=%v, want op=%v greedy=%v", c.pattern, re.Op, re.Greedy, c.op, c.greedy)
		}
	}
}

func TestParseUngreedyFlagInverts(t *testing.T) {
	re := mustParse(t, "a*", Ungreedy)
	if re.Greedy {
		t.Fatalf("Ungreedy flag: a* should be lazy")
	}
	re2 := mustParse(t, "a*?", Ungreedy)
	if !re2.Greedy {
		t.Fatalf("Ungreedy flag: a*? should be greedy")
	}
}

func TestParseNestedRepetitionRejected(t *testing.T) {
	for _, pattern := range []string{"a**", "a*+", "a+*", "a{1,2}*", "a?*"} {
		se := parseErr(t, pattern)
		if se.Code != ErrNestedRepetition {
			t.Errorf("%q: got %v, want NestedRepetition", pattern, se.Code)
		}
	}
}

func TestParseRepetitionWithoutAtomRejected(t *testing.T) {
	for _, pattern := range []string{"*", "+", "?", "(*)", "|*", "a|*"} {
		se := parseErr(t, pattern)
		if se.Code != ErrRepetitionWithoutAtom {
			t.Errorf("%q: got %v, want RepetitionWithoutAtom", pattern, se.Code)
		}
	}
}

func TestParseCountedRepetitionExpansion(t *testing.T) {
	re := mustParse(t, "a{2,4}", 0)
	if re.Op != OpConcat {
		t.Fatalf("got %v", re.Op)
	}
	// 2 mandatory + 1 nested-optional tail == 3 top-level subs.
	if len(re.Sub) != 3 {
		t.Fatalf("got %d subs, want 3", len(re.Sub))
	}
	if re.Sub[2].Op != OpQuest {
		t.Fatalf("tail op = %v, want Quest", re.Sub[2].Op)
	}
}

func TestParseCountedRepetitionUnbounded(t *testing.T) {
	re := mustParse(t, "a{2,}", 0)
	if re.Op != OpConcat || len(re.Sub) != 3 {
		t.Fatalf("got op=%v nsub=%d", re.Op, len(re.Sub))
	}
	if re.Sub[2].Op != OpStar {
		t.Fatalf("tail op = %v, want Star", re.Sub[2].Op)
	}
}

func TestParseCountedRepetitionExact(t *testing.T) {
	re := mustParse(t, "a{3}", 0)
	if re.Op != OpConcat || len(re.Sub) != 3 {
		t.Fatalf("got op=%v nsub=%d", re.Op, len(re.Sub))
	}
}

func TestParseBraceLiteralWhenMalformed(t *testing.T) {
	re := mustParse(t, "a{z}", 0)
	if re.Op != OpConcat || len(re.Sub) != 4 {
		t.Fatalf("got op=%v nsub=%d, want literal '{' 'z' '}'", re.Op, len(re.Sub))
	}
}

func TestParseInvalidRepetitionRange(t *testing.T) {
	se := parseErr(t, "a{4,2}")
	if se.Code != ErrInvalidRepetition {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseRepetitionLimitExceeded(t *testing.T) {
	se := parseErr(t, "a{1000001}")
	if se.Code != ErrRepetitionLimitExceeded {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseUnclosedGroup(t *testing.T) {
	se := parseErr(t, "(a")
	if se.Code != ErrUnclosedGroup {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseStrayCloseParen(t *testing.T) {
	se := parseErr(t, "a)")
	if se.Code != ErrUnclosedGroup {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseUnknownInlineFlag(t *testing.T) {
	se := parseErr(t, "(?z)")
	if se.Code != ErrUnknownFlag {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseInlineFlagsScoped(t *testing.T) {
	re := mustParse(t, "(?i:a)b", 0)
	if re.Op != OpConcat || len(re.Sub) != 2 {
		t.Fatalf("got %v", re.Op)
	}
	if !re.Sub[0].FoldCase {
		t.Fatalf("inside (?i:a), literal should be fold-cased")
	}
	if re.Sub[1].FoldCase {
		t.Fatalf("outside the group, fold-case should not leak")
	}
}

func TestParseInlineFlagsUnscopedPersists(t *testing.T) {
	re := mustParse(t, "(?i)ab", 0)
	if re.Op != OpConcat || len(re.Sub) != 2 {
		t.Fatalf("got %v", re.Op)
	}
	if !re.Sub[0].FoldCase || !re.Sub[1].FoldCase {
		t.Fatalf("(?i) with no ':' should apply to the rest of the group")
	}
}

func TestParseInlineFlagsNegation(t *testing.T) {
	re := mustParse(t, "(?i-s:a.)", DotNL)
	if re.Op != OpConcat || len(re.Sub) != 2 {
		t.Fatalf("got %v", re.Op)
	}
	if !re.Sub[0].FoldCase {
		t.Fatalf("i should set FoldCase inside the group")
	}
	if re.Sub[1].Op != OpAnyCharNoNL {
		t.Fatalf("-s should clear DotNL inside the group, got %v", re.Sub[1].Op)
	}
}

func TestParseAnchorsDefault(t *testing.T) {
	re := mustParse(t, "^a$", 0)
	if re.Op != OpConcat || len(re.Sub) != 3 {
		t.Fatalf("got %v", re.Op)
	}
	if re.Sub[0].Op != OpBeginText || re.Sub[2].Op != OpEndText {
		t.Fatalf("got begin=%v end=%v, want BeginText/EndText", re.Sub[0].Op, re.Sub[2].Op)
	}
}

func TestParseAnchorsMultiline(t *testing.T) {
	re := mustParse(t, "^a$", Multiline)
	if re.Sub[0].Op != OpBeginLine || re.Sub[2].Op != OpEndLine {
		t.Fatalf("got begin=%v end=%v, want BeginLine/EndLine", re.Sub[0].Op, re.Sub[2].Op)
	}
}

func TestParseAnchorNotRepeatable(t *testing.T) {
	se := parseErr(t, "^*")
	if se.Code != ErrRepetitionWithoutAtom {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseDotDefaultExcludesNewline(t *testing.T) {
	re := mustParse(t, ".", 0)
	if re.Op != OpAnyCharNoNL {
		t.Fatalf("got %v", re.Op)
	}
	re2 := mustParse(t, ".", DotNL)
	if re2.Op != OpAnyChar {
		t.Fatalf("got %v with DotNL", re2.Op)
	}
}

func TestParseWordBoundaryEscapes(t *testing.T) {
	re := mustParse(t, `\b\B`, 0)
	if re.Sub[0].Op != OpWordBoundary || re.Sub[1].Op != OpNoWordBoundary {
		t.Fatalf("got %v %v", re.Sub[0].Op, re.Sub[1].Op)
	}
}

func TestParseAnchorEscapesAZ(t *testing.T) {
	re := mustParse(t, `\Aa\z`, 0)
	if re.Sub[0].Op != OpBeginText || re.Sub[2].Op != OpEndText {
		t.Fatalf("got %v %v", re.Sub[0].Op, re.Sub[2].Op)
	}
}

func TestParseNestingLimitExceeded(t *testing.T) {
	pattern := ""
	for i := 0; i < 250; i++ {
		pattern += "("
	}
	pattern += "a"
	for i := 0; i < 250; i++ {
		pattern += ")"
	}
	se := parseErr(t, pattern)
	if se.Code != ErrNestingLimitExceeded {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseEmptyAlternative(t *testing.T) {
	re := mustParse(t, "a|", 0)
	if re.Op != OpAlternate || len(re.Sub) != 2 {
		t.Fatalf("got %v", re.Op)
	}
	if re.Sub[1].Op != OpEmpty {
		t.Fatalf("second alternative = %v, want Empty", re.Sub[1].Op)
	}
}

func TestParseUnicodeClassEscape(t *testing.T) {
	re := mustParse(t, `\p{Greek}`, 0)
	if re.Op != OpClass || len(re.Ranges) == 0 {
		t.Fatalf("got op=%v nranges=%d", re.Op, len(re.Ranges))
	}
}

func TestParseUnicodeClassSingleLetter(t *testing.T) {
	re := mustParse(t, `\pL`, 0)
	if re.Op != OpClass || len(re.Ranges) == 0 {
		t.Fatalf("got op=%v nranges=%d", re.Op, len(re.Ranges))
	}
}

func TestParseUnknownUnicodeClassRejected(t *testing.T) {
	se := parseErr(t, `\p{Nope}`)
	if se.Code != ErrUnknownUnicodeClass {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseHexEscapeBraced(t *testing.T) {
	re := mustParse(t, `\x{48}`, 0)
	if re.Op != OpLiteral || re.Rune != 'H' {
		t.Fatalf("got op=%v rune=%q", re.Op, re.Rune)
	}
}

func TestParseHexEscapeTwoDigit(t *testing.T) {
	re := mustParse(t, `\x41`, 0)
	if re.Op != OpLiteral || re.Rune != 'A' {
		t.Fatalf("got op=%v rune=%q", re.Op, re.Rune)
	}
}

func TestParseInvalidCodepointRejected(t *testing.T) {
	se := parseErr(t, `\x{110000}`)
	if se.Code != ErrInvalidCodepoint {
		t.Fatalf("got %v", se.Code)
	}
}

func TestParseInvalidEscapeRejected(t *testing.T) {
	se := parseErr(t, `\q`)
	if se.Code != ErrInvalidEscape {
		t.Fatalf("got %v", se.Code)
	}
}
