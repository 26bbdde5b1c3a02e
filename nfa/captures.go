package nfa

// cowCaptures gives each thread copy-on-write capture slots, so forking a
// thread at a Split is a pointer copy and only the first write after a fork
// actually allocates.
type cowCaptures struct {
	shared *sharedCaptures
}

type sharedCaptures struct {
	data []int
	refs int
}

func newCaptures(numSlots int) cowCaptures {
	data := make([]int, numSlots)
	for i := range data {
		data[i] = -1
	}
	return cowCaptures{shared: &sharedCaptures{data: data, refs: 1}}
}

// clone returns a reference to the same backing data with the refcount
// bumped; no copy happens until one of the references writes.
func (c cowCaptures) clone() cowCaptures {
	if c.shared == nil {
		return c
	}
	c.shared.refs++
	return c
}

// withSlot returns captures with slot set to value, copying the backing
// array only if another thread still holds a reference to it.
func (c cowCaptures) withSlot(slot, value int) cowCaptures {
	if c.shared == nil || slot < 0 || slot >= len(c.shared.data) {
		return c
	}
	if c.shared.refs > 1 {
		c.shared.refs--
		data := make([]int, len(c.shared.data))
		copy(data, c.shared.data)
		data[slot] = value
		return cowCaptures{shared: &sharedCaptures{data: data, refs: 1}}
	}
	c.shared.data[slot] = value
	return c
}

// snapshot returns an independent copy of the capture slots, safe to keep
// after the thread that produced it is discarded.
func (c cowCaptures) snapshot() []int {
	if c.shared == nil {
		return nil
	}
	out := make([]int, len(c.shared.data))
	copy(out, c.shared.data)
	return out
}
