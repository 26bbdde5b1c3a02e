package syntax

// Star, Plus, and Quest build repetition nodes. Counted repetitions
// ({n}, {n,}, {n,m}) are desugared into combinations of these plus Concat
// at parse time, so the compiler never sees a counted-repeat node at all.
func Star(sub *Regexp, greedy bool) *Regexp {
	return &Regexp{Op: OpStar, Sub: []*Regexp{sub}, Greedy: greedy}
}

func Plus(sub *Regexp, greedy bool) *Regexp {
	return &Regexp{Op: OpPlus, Sub: []*Regexp{sub}, Greedy: greedy}
}

func Quest(sub *Regexp, greedy bool) *Regexp {
	return &Regexp{Op: OpQuest, Sub: []*Regexp{sub}, Greedy: greedy}
}

// expandCounted desugars atom{min,max} (max == -1 means unbounded) into
// Concat/Star/Quest nodes.
//
// atom is reused by pointer across every repeated position: the compiler
// walks the AST structurally, so sharing one subtree across `min` mandatory
// copies and the optional tail is equivalent to (and cheaper than) deep
// copying, and it is what makes "last iteration wins" capture semantics
// fall out for free: every occurrence emits the same Save slot.
func expandCounted(atom *Regexp, min, max int, greedy bool) *Regexp {
	if max == 0 {
		// {0} matches only the empty string, but capture groups inside the
		// operand keep their numbering; park the operand under an Empty
		// node (the compiler emits nothing for it) so NumCapsOf and
		// NamesOf still see them.
		return &Regexp{Op: OpEmpty, Sub: []*Regexp{atom}}
	}

	required := make([]*Regexp, min)
	for i := range required {
		required[i] = atom
	}

	if max == -1 {
		// {min,} == atom^min atom*
		return Concat(append(required, Star(atom, greedy))...)
	}

	// {min,max}: min mandatory copies, then (max-min) nested optionals so
	// the k-th optional copy can only match if the (k-1)-th did, e.g.
	// a{2,4} == a a (a (a)?)?
	tail := Empty()
	for i := 0; i < max-min; i++ {
		tail = Quest(Concat(atom, tail), greedy)
	}
	return Concat(append(required, tail)...)
}
