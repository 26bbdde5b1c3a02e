package pikere

import (
	"reflect"
	"testing"
)

// corpusCase is one (pattern, input, expected spans) tuple in the style of
// the Fowler POSIX test corpus, adjusted where needed for leftmost-first
// semantics. A nil spans slice means "no match"; otherwise spans is the
// flattened [start, end) pair per group, -1 for a group the winning path
// never visited.
type corpusCase struct {
	pattern string
	input   string
	spans   []int
}

var matchCorpus = []corpusCase{
	// Literals and concatenation.
	{`abc`, "abc", []int{0, 3}},
	{`abc`, "xabcy", []int{1, 4}},
	{`abc`, "xbc", nil},
	{`abc`, "axc", nil},

	// Basic repetition.
	{`ab*c`, "abc", []int{0, 3}},
	{`ab*c`, "ac", []int{0, 2}},
	{`ab*bc`, "abbbbc", []int{0, 6}},
	{`ab+bc`, "abbc", []int{0, 4}},
	{`ab+bc`, "abc", nil},
	{`ab?bc`, "abbc", []int{0, 4}},
	{`ab?bc`, "abc", []int{0, 3}},
	{`ab?c`, "abc", []int{0, 3}},

	// Anchors.
	{`^abc$`, "abc", []int{0, 3}},
	{`^abc$`, "abcc", nil},
	{`^abc`, "abcc", []int{0, 3}},
	{`abc$`, "aabc", []int{1, 4}},
	{`^`, "abc", []int{0, 0}},
	{`$`, "abc", []int{3, 3}},

	// Dot.
	{`a.c`, "abc", []int{0, 3}},
	{`a.c`, "axc", []int{0, 3}},
	{`a.c`, "a\nc", nil},
	{`a.*c`, "axyzc", []int{0, 5}},
	{`a.*c`, "axyzd", nil},

	// Classes.
	{`a[bc]d`, "abd", []int{0, 3}},
	{`a[bc]d`, "aed", nil},
	{`a[b-d]e`, "ace", []int{0, 3}},
	{`a[b-d]`, "aac", []int{1, 3}},
	{`a[^bc]d`, "aed", []int{0, 3}},
	{`a[^bc]d`, "abd", nil},
	{`a[^-b]c`, "adc", []int{0, 3}},
	{`a[^-b]c`, "a-c", nil},
	{`a[-b]c`, "a-c", []int{0, 3}},

	// Alternation, leftmost-first.
	{`a|b`, "b", []int{0, 1}},
	{`a|ab`, "ab", []int{0, 1}},
	{`ab|a`, "ab", []int{0, 2}},
	{`(foo|foobar)`, "foobar", []int{0, 3, 0, 3}},
	{`abc|abd`, "xabdy", []int{1, 4}},

	// Groups and captures.
	{`(a)(b)(c)`, "abc", []int{0, 3, 0, 1, 1, 2, 2, 3}},
	{`(a+)(b+)`, "aabb", []int{0, 4, 0, 2, 2, 4}},
	{`(a|b)*c`, "ababc", []int{0, 5, 3, 4}},
	{`(a)(b)?`, "a", []int{0, 1, 0, 1, -1, -1}},
	{`((a)(b))`, "ab", []int{0, 2, 0, 2, 0, 1, 1, 2}},

	// Greedy vs lazy.
	{`a*`, "aaa", []int{0, 3}},
	{`a*?`, "aaa", []int{0, 0}},
	{`a+?`, "aaa", []int{0, 1}},
	{`<.+>`, "<a><b>", []int{0, 6}},
	{`<.+?>`, "<a><b>", []int{0, 3}},

	// Counted repetition.
	{`a{2}`, "aaa", []int{0, 2}},
	{`a{2,}`, "aaaa", []int{0, 4}},
	{`a{2,3}`, "aaaa", []int{0, 3}},
	{`a{2,3}?`, "aaaa", []int{0, 2}},
	{`a{2}`, "a", nil},
	{`a{0}b`, "b", []int{0, 1}},
	{`(a){0}b`, "b", []int{0, 1, -1, -1}},
	{`(ab){2,3}`, "ababab", []int{0, 6, 4, 6}},

	// Escapes and shorthands.
	{`\d+`, "abc123def", []int{3, 6}},
	{`\D+`, "123abc456", []int{3, 6}},
	{`\w+`, "!hi_there!", []int{1, 9}},
	{`\s\w`, "a b", []int{1, 3}},
	{`\x41`, "A", []int{0, 1}},
	{`\x{1F600}`, "\U0001F600", []int{0, 4}},
	{`\.`, "a.b", []int{1, 2}},

	// Word boundaries.
	{`\bfoo\b`, "a foo bar", []int{2, 5}},
	{`\bfoo\b`, "afoob", nil},
	{`\Bob\B`, "robot", []int{1, 3}},

	// Text anchors.
	{`\Aab`, "ab", []int{0, 2}},
	{`\Aab`, "xab", nil},
	{`ab\z`, "xab", []int{1, 3}},
	{`ab\z`, "abx", nil},

	// Case folding.
	{`(?i)abc`, "ABC", []int{0, 3}},
	{`(?i)[a-c]+`, "BaC", []int{0, 3}},
	{`(?i)σ`, "Σ", []int{0, 2}},

	// Dot-all and multiline via inline flags.
	{`(?s)a.c`, "a\nc", []int{0, 3}},
	{`(?m)^b`, "a\nb", []int{2, 3}},

	// Unicode classes.
	{`\p{Greek}+`, "αβγ hello", []int{0, 6}},
	{`\p{Nd}+`, "x42y", []int{1, 3}},
	{`\P{L}+`, "ab12cd", []int{2, 4}},

	// Empty-matching shapes.
	{``, "abc", []int{0, 0}},
	{`a*`, "", []int{0, 0}},
	{`x?`, "y", []int{0, 0}},
	{`()`, "ab", []int{0, 0, 0, 0}},
}

func TestMatchCorpus(t *testing.T) {
	for _, tt := range matchCorpus {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}
			got := re.FindStringSubmatchIndex(tt.input)
			if tt.spans == nil {
				if got != nil {
					t.Fatalf("FindStringSubmatchIndex(%q) = %v, want no match", tt.input, got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.spans) {
				t.Fatalf("FindStringSubmatchIndex(%q) = %v, want %v", tt.input, got, tt.spans)
			}
		})
	}
}

// TestCorpusFindAgreesWithIsMatch: whenever a pattern matches, find must
// produce a well-formed span inside the input.
func TestCorpusFindAgreesWithIsMatch(t *testing.T) {
	for _, tt := range matchCorpus {
		re, err := Compile(tt.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tt.pattern, err)
		}
		if !re.MatchString(tt.input) {
			continue
		}
		span := re.FindStringIndex(tt.input)
		if span == nil {
			t.Errorf("%q matches %q but FindStringIndex is nil", tt.pattern, tt.input)
			continue
		}
		if span[0] < 0 || span[0] > span[1] || span[1] > len(tt.input) {
			t.Errorf("%q on %q: span %v out of bounds", tt.pattern, tt.input, span)
		}
	}
}

// TestCorpusCompileDeterministic compiles each pattern twice and checks the
// two programs behave identically on the corpus input.
func TestCorpusCompileDeterministic(t *testing.T) {
	for _, tt := range matchCorpus {
		re1, err := Compile(tt.pattern)
		if err != nil {
			t.Fatal(err)
		}
		re2, err := Compile(tt.pattern)
		if err != nil {
			t.Fatal(err)
		}
		got1 := re1.FindStringSubmatchIndex(tt.input)
		got2 := re2.FindStringSubmatchIndex(tt.input)
		if !reflect.DeepEqual(got1, got2) {
			t.Errorf("%q: two compiles disagree: %v vs %v", tt.pattern, got1, got2)
		}
	}
}
