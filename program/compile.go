package program

import (
	"unicode/utf8"

	"github.com/coregx/pikere/syntax"
)

// Compile performs a single pre-order walk over ast, emitting a flat
// instruction Program via backpatched forward jumps. The result wraps ast
// in the implicit whole-match capture group (slots 0/1)
// and is immutable: nothing below mutates a Program after Compile returns.
func Compile(ast *syntax.Regexp) (*Program, error) {
	c := &compiler{}

	c.emit(Inst{Op: Save, Slot: 0})
	start := len(c.insts)
	out, err := c.compileNode(ast)
	if err != nil {
		return nil, err
	}
	c.patch(out, len(c.insts))
	c.emit(Inst{Op: Save, Slot: 1})
	c.emit(Inst{Op: Match})

	numCaps := syntax.NumCapsOf(ast)
	prog := &Program{
		Insts:         c.insts,
		NumCaps:       numCaps,
		NumSlots:      2 * (numCaps + 1),
		AnchoredBegin: leadsWithBeginText(ast),
		AnchoredEnd:   trailsWithEndText(ast),
		Start:         0,
	}
	prog.Prefix, prog.PrefixFold = extractPrefix(prog.Insts, start)
	return prog, nil
}

type patch struct {
	pc   int
	setX bool // true: patch Insts[pc].X; false: patch Insts[pc].Y
}

type patchList []patch

type compiler struct {
	insts []Inst
}

func (c *compiler) emit(in Inst) int {
	pc := len(c.insts)
	c.insts = append(c.insts, in)
	return pc
}

func (c *compiler) patch(pl patchList, target int) {
	for _, p := range pl {
		if p.setX {
			c.insts[p.pc].X = target
		} else {
			c.insts[p.pc].Y = target
		}
	}
}

// compileNode emits instructions for re and returns its dangling forward
// jumps: the set of (instruction, field) pairs that must be patched to
// point at whatever code follows this fragment once that address is known.
func (c *compiler) compileNode(re *syntax.Regexp) (patchList, error) {
	switch re.Op {
	case syntax.OpEmpty:
		return nil, nil

	case syntax.OpLiteral:
		c.emit(Inst{Op: CharLit, Rune: re.Rune, FoldCase: re.FoldCase})
		return nil, nil

	case syntax.OpAnyChar:
		c.emit(Inst{Op: Any})
		return nil, nil

	case syntax.OpAnyCharNoNL:
		c.emit(Inst{Op: AnyNoNL})
		return nil, nil

	case syntax.OpClass:
		c.emit(Inst{Op: CharClass, Ranges: re.Ranges})
		return nil, nil

	case syntax.OpBeginText:
		c.emit(Inst{Op: EmptyLook, Look: LookBeginText})
		return nil, nil
	case syntax.OpEndText:
		c.emit(Inst{Op: EmptyLook, Look: LookEndText})
		return nil, nil
	case syntax.OpBeginLine:
		c.emit(Inst{Op: EmptyLook, Look: LookBeginLine})
		return nil, nil
	case syntax.OpEndLine:
		c.emit(Inst{Op: EmptyLook, Look: LookEndLine})
		return nil, nil
	case syntax.OpWordBoundary:
		c.emit(Inst{Op: EmptyLook, Look: LookWordBoundary})
		return nil, nil
	case syntax.OpNoWordBoundary:
		c.emit(Inst{Op: EmptyLook, Look: LookNoWordBoundary})
		return nil, nil

	case syntax.OpCapture:
		slot := 2 * re.Cap
		c.emit(Inst{Op: Save, Slot: slot})
		out, err := c.compileNode(re.Sub[0])
		if err != nil {
			return nil, err
		}
		c.patch(out, len(c.insts))
		c.emit(Inst{Op: Save, Slot: slot + 1})
		return nil, nil

	case syntax.OpConcat:
		var pending patchList
		for i, sub := range re.Sub {
			if i > 0 {
				c.patch(pending, len(c.insts))
			}
			out, err := c.compileNode(sub)
			if err != nil {
				return nil, err
			}
			pending = out
		}
		return pending, nil

	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)

	case syntax.OpStar:
		return c.compileStar(re.Sub[0], re.Greedy)
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0], re.Greedy)
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0], re.Greedy)

	default:
		return nil, nil
	}
}

// compileAlternate expands subs as a left-associative chain of Split
// instructions, so subs[0] has the highest match priority.
func (c *compiler) compileAlternate(subs []*syntax.Regexp) (patchList, error) {
	if len(subs) == 1 {
		return c.compileNode(subs[0])
	}

	splitPc := c.emit(Inst{Op: Split})
	c1Start := len(c.insts)
	c1Out, err := c.compileNode(subs[0])
	if err != nil {
		return nil, err
	}
	jmpPc := c.emit(Inst{Op: Jump})
	restStart := len(c.insts)
	c.insts[splitPc].X = c1Start
	c.insts[splitPc].Y = restStart

	restOut, err := c.compileAlternate(subs[1:])
	if err != nil {
		return nil, err
	}

	out := append(patchList{{jmpPc, true}}, c1Out...)
	out = append(out, restOut...)
	return out, nil
}

// compileStar emits Split(body, after); body: compile(child); Jump(Split);
// after: ..., swapping priority for lazy stars.
func (c *compiler) compileStar(child *syntax.Regexp, greedy bool) (patchList, error) {
	l1 := c.emit(Inst{Op: Split})
	bodyStart := len(c.insts)
	bodyOut, err := c.compileNode(child)
	if err != nil {
		return nil, err
	}
	jmpPc := len(c.insts)
	c.patch(bodyOut, jmpPc)
	c.emit(Inst{Op: Jump, X: l1})

	return c.patchLoopPriority(l1, bodyStart, greedy), nil
}

// compilePlus emits body: compile(child); Split(body, after): the body
// always runs once before the repeat test.
func (c *compiler) compilePlus(child *syntax.Regexp, greedy bool) (patchList, error) {
	bodyStart := len(c.insts)
	bodyOut, err := c.compileNode(child)
	if err != nil {
		return nil, err
	}
	splitPc := c.emit(Inst{Op: Split})
	c.patch(bodyOut, splitPc)

	return c.patchLoopPriority(splitPc, bodyStart, greedy), nil
}

// compileQuest emits Split(body, after); body: compile(child); after: ...
func (c *compiler) compileQuest(child *syntax.Regexp, greedy bool) (patchList, error) {
	splitPc := c.emit(Inst{Op: Split})
	bodyStart := len(c.insts)
	bodyOut, err := c.compileNode(child)
	if err != nil {
		return nil, err
	}

	out := append(patchList{}, bodyOut...)
	return append(out, c.patchLoopPriority(splitPc, bodyStart, greedy)...), nil
}

// patchLoopPriority wires a Split's known body target, greedy choosing
// which field (X or Y) carries priority, and returns the dangling "after"
// target as a patch entry on the other field.
func (c *compiler) patchLoopPriority(splitPc, bodyStart int, greedy bool) patchList {
	if greedy {
		c.insts[splitPc].X = bodyStart
		return patchList{{splitPc, false}}
	}
	c.insts[splitPc].Y = bodyStart
	return patchList{{splitPc, true}}
}

// leadsWithBeginText reports whether every leftmost path through re
// necessarily crosses a begin-of-text anchor before consuming input,
// letting the VM skip unanchored re-seeding entirely.
func leadsWithBeginText(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText:
		return true
	case syntax.OpCapture:
		return leadsWithBeginText(re.Sub[0])
	case syntax.OpConcat:
		return len(re.Sub) > 0 && leadsWithBeginText(re.Sub[0])
	case syntax.OpAlternate:
		for _, s := range re.Sub {
			if !leadsWithBeginText(s) {
				return false
			}
		}
		return len(re.Sub) > 0
	default:
		return false
	}
}

// trailsWithEndText is leadsWithBeginText's mirror image for the rightmost
// path and \z / $.
func trailsWithEndText(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEndText:
		return true
	case syntax.OpCapture:
		return trailsWithEndText(re.Sub[0])
	case syntax.OpConcat:
		return len(re.Sub) > 0 && trailsWithEndText(re.Sub[len(re.Sub)-1])
	case syntax.OpAlternate:
		for _, s := range re.Sub {
			if !trailsWithEndText(s) {
				return false
			}
		}
		return len(re.Sub) > 0
	default:
		return false
	}
}

// extractPrefix walks insts from start through Save instructions, reading
// off a contiguous run of non-folded CharLit instructions as a literal
// byte prefix. It stops at the first non-literal instruction,
// any branch, or the first case-folded literal.
func extractPrefix(insts []Inst, start int) ([]byte, bool) {
	var buf []byte
	pc := start
	for pc < len(insts) {
		in := insts[pc]
		switch in.Op {
		case Save:
			pc++
			continue
		case CharLit:
			if in.FoldCase {
				return buf, false
			}
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], in.Rune)
			buf = append(buf, tmp[:n]...)
			pc++
			continue
		default:
			return buf, false
		}
	}
	return buf, false
}
