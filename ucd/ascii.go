package ucd

import "unicode"

// ASCIIDigit, ASCIISpace, and ASCIIWord are the default (non-Unicode)
// expansions of \d, \s, and \w — RE2 and Perl both default these shorthand
// classes to plain ASCII unless a Unicode mode is requested.
var (
	ASCIIDigit = []Range{{'0', '9'}}
	ASCIISpace = []Range{{'\t', '\n'}, {'\f', '\r'}, {' ', ' '}}
	ASCIIWord  = []Range{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
)

// posixClasses backs \d \s \w in Unicode mode, and the bracket-expression
// POSIX names (e.g. [[:alpha:]]) the parser also recognizes.
var posixClasses = map[string][]Range{
	"digit": tableToRanges(unicode.Nd),
	"space": tableToRanges(unicode.White_Space),
	"word":  wordRanges(),

	"alpha":  tableToRanges(unicode.L),
	"alnum":  mergeRanges(append(tableToRanges(unicode.L), tableToRanges(unicode.Nd)...)),
	"upper":  tableToRanges(unicode.Upper),
	"lower":  tableToRanges(unicode.Lower),
	"punct":  tableToRanges(unicode.P),
	"cntrl":  tableToRanges(unicode.Cc),
	"print":  mergeRanges(append(append(tableToRanges(unicode.L), tableToRanges(unicode.Nd)...), tableToRanges(unicode.P)...)),
	"graph":  mergeRanges(append(append(tableToRanges(unicode.L), tableToRanges(unicode.Nd)...), tableToRanges(unicode.P)...)),
	"blank":  {{'\t', '\t'}, {' ', ' '}},
	"xdigit": {{'0', '9'}, {'A', 'F'}, {'a', 'f'}},
}

// wordRanges approximates Unicode "word" characters as letters, marks,
// decimal digits, connector punctuation (which includes '_'), following
// the definition used by PCRE/RE2's Unicode \w.
func wordRanges() []Range {
	combined := append([]Range(nil), tableToRanges(unicode.L)...)
	combined = append(combined, tableToRanges(unicode.M)...)
	combined = append(combined, tableToRanges(unicode.Nd)...)
	combined = append(combined, tableToRanges(unicode.Pc)...)
	return mergeRanges(combined)
}

// IsASCIIWord reports whether r is an ASCII word character, the default
// (non-Unicode) word-boundary classification.
func IsASCIIWord(r rune) bool {
	return r == '_' ||
		('0' <= r && r <= '9') ||
		('A' <= r && r <= 'Z') ||
		('a' <= r && r <= 'z')
}

// IsUnicodeWord reports whether r is a Unicode word character, used when
// the Unicode word-boundary mode is requested.
func IsUnicodeWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || r == '_'
}
