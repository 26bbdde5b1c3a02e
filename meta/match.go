package meta

// Match is the result of a successful search: the whole-match span plus
// every capture group's span. Group i occupies Groups[2i]
// (start) and Groups[2i+1] (end); an unvisited group reports -1 for both.
type Match struct {
	Groups []int
}

// Start returns the whole match's start offset (Groups[0]).
func (m *Match) Start() int { return m.Groups[0] }

// End returns the whole match's end offset (Groups[1]).
func (m *Match) End() int { return m.Groups[1] }

// NumGroups returns the number of groups reported, including group 0.
func (m *Match) NumGroups() int { return len(m.Groups) / 2 }

// Group returns group i's [start, end) span, or (-1, -1) if group i was
// never visited on the winning path.
func (m *Match) Group(i int) (start, end int) {
	if i < 0 || i >= m.NumGroups() {
		return -1, -1
	}
	return m.Groups[2*i], m.Groups[2*i+1]
}

func exactMatch(start, end, numSlots int) *Match {
	groups := make([]int, numSlots)
	for i := range groups {
		groups[i] = -1
	}
	groups[0], groups[1] = start, end
	return &Match{Groups: groups}
}
