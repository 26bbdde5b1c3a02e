package syntax

import "testing"

func TestFlagsHas(t *testing.T) {
	f := FoldCase | Multiline
	if !f.Has(FoldCase) || !f.Has(Multiline) {
		t.Fatal("Has missed a set bit")
	}
	if f.Has(DotNL) || f.Has(FoldCase|DotNL) {
		t.Fatal("Has reported an unset bit")
	}
}

// A bare (?flags) applies to the remainder of its enclosing group only; it
// must not survive past that group's closing paren.
func TestParseInlineFlagsScopedToEnclosingGroup(t *testing.T) {
	re := mustParse(t, "((?i)a)b", 0)
	if re.Op != OpConcat || len(re.Sub) != 2 {
		t.Fatalf("got %v", re.Op)
	}
	group := re.Sub[0]
	if group.Op != OpCapture {
		t.Fatalf("sub[0] = %v, want Capture", group.Op)
	}
	if !group.Sub[0].FoldCase {
		t.Error("literal inside ((?i)a) should be fold-cased")
	}
	if re.Sub[1].FoldCase {
		t.Error("fold-case leaked past the enclosing group")
	}
}

func TestParseInlineFlagsScopedInNonCapturing(t *testing.T) {
	re := mustParse(t, "(?:(?i)a)b", 0)
	if re.Op != OpConcat || len(re.Sub) != 2 {
		t.Fatalf("got %v", re.Op)
	}
	if re.Sub[1].FoldCase {
		t.Error("fold-case leaked past the non-capturing group")
	}
}
