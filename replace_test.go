package pikere

import (
	"reflect"
	"testing"
)

func TestReplaceAllString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		repl    string
		want    string
	}{
		{`\d+`, "age: 42", "XX", "age: XX"},
		{`\d+`, "1 2 3", "X", "X X X"},
		{`\d+`, "abc", "X", "abc"},
		{`(\d+)-(\d+)`, "10-20", "$2-$1", "20-10"},
		{`(?P<word>\w+)`, "hi", "<$word>", "<hi>"},
		{`(?P<word>\w+)`, "hi", "<${word}>", "<hi>"},
		{`a`, "aaa", "$$", "$$$"},
		{`(a)`, "a", "$0$1", "aa"},
		{`(a)|(b)`, "ab", "[$1$2]", "[a][b]"},
		{`x`, "axa", "$", "a$a"},
		{`x`, "axa", "$9", "aa"},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		if got := re.ReplaceAllString(tt.input, tt.repl); got != tt.want {
			t.Errorf("ReplaceAllString(%q, %q, %q) = %q, want %q",
				tt.pattern, tt.input, tt.repl, got, tt.want)
		}
	}
}

func TestReplaceAllLiteralString(t *testing.T) {
	re := MustCompile(`(\d+)`)
	got := re.ReplaceAllLiteralString("n=42", "$1")
	if got != "n=$1" {
		t.Errorf("ReplaceAllLiteralString = %q, want \"n=$1\"", got)
	}
}

func TestReplaceAllFunc(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.ReplaceAllStringFunc("1 22 333", func(m string) string {
		return "<" + m + ">"
	})
	if got != "<1> <22> <333>" {
		t.Errorf("ReplaceAllStringFunc = %q", got)
	}
}

// Replacing every match with itself must reproduce the input exactly,
// including on inputs with empty matches in play.
func TestReplaceAllIdentityRoundTrip(t *testing.T) {
	cases := []struct {
		pattern string
		input   string
	}{
		{`\d+`, "a1b22c333"},
		{`a*`, "baaac"},
		{`x?`, "hello"},
		{`\w+`, "the quick brown fox"},
		{``, "abc"},
	}
	for _, tt := range cases {
		re := MustCompile(tt.pattern)
		if got := re.ReplaceAllString(tt.input, "$0"); got != tt.input {
			t.Errorf("identity ReplaceAllString(%q, %q) = %q", tt.pattern, tt.input, got)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		n       int
		want    []string
	}{
		{",", "a,b,c", -1, []string{"a", "b", "c"}},
		{",", "a,b,c", 2, []string{"a", "b,c"}},
		{",", "a,b,c", 0, nil},
		{",", "abc", -1, []string{"abc"}},
		{`\s+`, "a  b\t c", -1, []string{"a", "b", "c"}},
		{",", ",a,", -1, []string{"", "a", ""}},
		{"", "abc", -1, []string{"a", "b", "c"}},
		{"x", "", -1, []string{""}},
	}

	for _, tt := range tests {
		re := MustCompile(tt.pattern)
		got := re.Split(tt.input, tt.n)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q, %q, %d) = %q, want %q",
				tt.pattern, tt.input, tt.n, got, tt.want)
		}
	}
}

func TestReplaceAllEmptyMatches(t *testing.T) {
	re := MustCompile("a*")
	// Matches "a" at 0, then the empty string at 2 (the empty match
	// adjacent to the previous match's end is skipped).
	got := re.ReplaceAllString("ab", "-")
	if got != "-b-" {
		t.Errorf("ReplaceAllString(a*, ab, -) = %q, want \"-b-\"", got)
	}
}
