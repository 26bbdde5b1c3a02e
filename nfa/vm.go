// Package nfa implements the VM stage of the pipeline: Pike's algorithm
// over a compiled program.Program, simulating the NFA with two thread
// lists and an explicit-stack epsilon closure rather than recursion.
// Matching is leftmost-first (Perl/PCRE priority order), not
// leftmost-longest: the first thread to reach Match wins and every
// lower-priority thread already queued for the same step is dropped.
package nfa

import (
	"unicode/utf8"

	"github.com/coregx/pikere/internal/sparse"
	"github.com/coregx/pikere/program"
	"github.com/coregx/pikere/ucd"
)

// VM executes a single compiled Program. A VM holds no per-call state: it
// is immutable and safe to share across goroutines. Each search call
// allocates its own thread lists and presence sets; there is no pooling
// and no locking.
type VM struct {
	Prog *program.Program
	Cfg  Config
}

// New returns a VM for prog.
func New(prog *program.Program, cfg Config) *VM {
	return &VM{Prog: prog, Cfg: cfg}
}

type thread struct {
	pc   int
	caps cowCaptures
}

type threadList struct {
	threads []thread
	pcs     *sparse.PCSet
}

func newThreadList(capacity int) *threadList {
	return &threadList{
		threads: make([]thread, 0, capacity),
		pcs:     sparse.NewPCSet(capacity),
	}
}

type pendingThread struct {
	pc   int
	caps cowCaptures
}

// FindSubmatchIndex runs the VM starting no earlier than startPos and
// returns the capture slots of the leftmost-first match, or nil if none
// exists. Slot i*2/i*2+1 is group i's [start,end) byte offsets; -1 marks
// an unset slot. Slots 0/1 are always set on a match (the whole-match
// group). The search is unanchored unless the program is AnchoredBegin.
func (vm *VM) FindSubmatchIndex(haystack []byte, startPos int) []int {
	return vm.search(haystack, startPos, vm.Prog.AnchoredBegin)
}

// FindSubmatchIndexAt verifies a single candidate start position, exactly
// as if the program were anchored there: thread 0 is seeded once, at pos,
// and never re-seeded at a later position. This is what lets package meta
// turn a prefilter candidate into a match without re-running the whole
// unanchored search.
func (vm *VM) FindSubmatchIndexAt(haystack []byte, pos int) []int {
	return vm.search(haystack, pos, true)
}

func (vm *VM) search(haystack []byte, startPos int, anchored bool) []int {
	n := len(vm.Prog.Insts)

	cur := newThreadList(n)
	next := newThreadList(n)
	var stack []pendingThread

	pos := startPos
	matched := false
	var matchCaps []int

	for {
		if !matched && (!anchored || pos == startPos) {
			stack = vm.addThread(cur, stack, vm.Prog.Start, newCaptures(vm.Prog.NumSlots), pos, haystack)
		}

		var r rune
		var width int
		if pos < len(haystack) {
			r, width = utf8.DecodeRune(haystack[pos:])
		} else {
			r, width = utf8.RuneError, 0
		}
		// A byte that does not start valid UTF-8 is consumed by no
		// instruction; it is skipped one byte at a time, never read as U+FFFD.
		invalid := r == utf8.RuneError && width == 1

		for i := 0; i < len(cur.threads); i++ {
			th := cur.threads[i]
			in := vm.Prog.Insts[th.pc]

			if in.Op == program.Match {
				matched = true
				matchCaps = th.caps.snapshot()
				break
			}
			if pos >= len(haystack) {
				continue
			}
			if invalid || !instConsumes(in, r) {
				continue
			}
			stack = vm.addThread(next, stack, th.pc+1, th.caps, pos+width, haystack)
		}

		if pos >= len(haystack) {
			break
		}
		pos += width
		cur, next = next, cur
		next.threads = next.threads[:0]
		next.pcs.Clear()
	}

	if !matched {
		return nil
	}
	return matchCaps
}

// addThread computes the epsilon closure of pc (and, transitively, every
// state reachable from it without consuming input) using an explicit
// stack rather than recursion, appending every consuming or
// accepting instruction reached to list in priority (DFS preorder) order.
// Already-visited pcs this generation are skipped (first writer wins),
// which is what bounds a search to O(program size x input length). stack
// is caller-owned scratch space, reused across calls within one search.
func (vm *VM) addThread(list *threadList, stack []pendingThread, pc int, caps cowCaptures, pos int, haystack []byte) []pendingThread {
	stack = append(stack[:0], pendingThread{pc, caps})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !list.pcs.TryAdd(top.pc) {
			continue
		}
		in := vm.Prog.Insts[top.pc]

		switch in.Op {
		case program.Jump:
			stack = append(stack, pendingThread{in.X, top.caps})

		case program.Split:
			stack = append(stack, pendingThread{in.Y, top.caps.clone()})
			stack = append(stack, pendingThread{in.X, top.caps})

		case program.Save:
			stack = append(stack, pendingThread{top.pc + 1, top.caps.withSlot(in.Slot, pos)})

		case program.EmptyLook:
			if satisfiesLook(in.Look, haystack, pos, vm.Cfg) {
				stack = append(stack, pendingThread{top.pc + 1, top.caps})
			}

		case program.CharLit, program.CharClass, program.Any, program.AnyNoNL, program.Match:
			list.threads = append(list.threads, thread{pc: top.pc, caps: top.caps})
		}
	}
	return stack
}

// instConsumes reports whether consuming instruction in accepts rune r.
func instConsumes(in program.Inst, r rune) bool {
	switch in.Op {
	case program.CharLit:
		if in.FoldCase {
			return runeFoldEq(in.Rune, r)
		}
		return in.Rune == r
	case program.CharClass:
		return inRanges(in.Ranges, r)
	case program.Any:
		return true
	case program.AnyNoNL:
		return r != '\n'
	default:
		return false
	}
}

// runeFoldEq reports whether a and b are equal under simple case folding.
func runeFoldEq(a, b rune) bool {
	if a == b {
		return true
	}
	for _, f := range ucd.Fold(a) {
		if f == b {
			return true
		}
	}
	return false
}

func inRanges(ranges []program.Range, r rune) bool {
	lo, hi := 0, len(ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case r < ranges[mid][0]:
			hi = mid - 1
		case r > ranges[mid][1]:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}
