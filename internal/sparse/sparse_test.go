package sparse

import "testing"

func TestPCSetAddContains(t *testing.T) {
	s := NewPCSet(8)
	if s.Contains(3) {
		t.Fatal("empty set should not contain 3")
	}
	s.Add(3)
	if !s.Contains(3) {
		t.Fatal("set should contain 3 after Add")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestPCSetTryAddFirstWriterWins(t *testing.T) {
	s := NewPCSet(4)
	if !s.TryAdd(1) {
		t.Fatal("first TryAdd(1) should succeed")
	}
	if s.TryAdd(1) {
		t.Fatal("second TryAdd(1) should report already-present")
	}
	if got := s.Values(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("Values() = %v, want [1]", got)
	}
}

func TestPCSetClear(t *testing.T) {
	s := NewPCSet(4)
	s.Add(0)
	s.Add(2)
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", s.Len())
	}
	if s.Contains(0) || s.Contains(2) {
		t.Fatal("cleared set should contain nothing")
	}
	// Re-adding after clear must work (sparse array stays valid).
	s.Add(2)
	if !s.Contains(2) {
		t.Fatal("should be able to re-add after Clear")
	}
}

func TestPCSetOutOfRange(t *testing.T) {
	s := NewPCSet(4)
	if s.Contains(-1) || s.Contains(4) {
		t.Fatal("out-of-range values must never be reported as members")
	}
}
