// Package program implements the compiler stage of the pipeline: a parsed
// syntax.Regexp in, a flat, index-addressed instruction Program out.
//
// A Program is immutable once Compile returns and is safe to share across
// concurrent matchers: every field is read-only after construction, and
// nothing in this package keeps per-call state on the Program itself.
package program

import "github.com/coregx/pikere/syntax"

// Range is an inclusive codepoint range, re-exported from package syntax so
// callers outside the parser (the VM's CharClass matcher, the literal-set
// extractor) don't need to import syntax just to name the type.
type Range = syntax.Range

// Opcode identifies one instruction kind.
type Opcode uint8

const (
	CharLit    Opcode = iota // consume one codepoint == Rune (mod case if FoldCase)
	CharClass                // consume one codepoint in Ranges
	Any                      // consume any codepoint, including '\n'
	AnyNoNL                  // consume any codepoint except '\n'
	EmptyLook                // zero-width assertion, kind in Look
	Save                     // record current offset into capture Slot
	Jump                     // unconditional epsilon transition to X
	Split                    // fork: try X first, then Y
	Match                    // accept
)

func (op Opcode) String() string {
	switch op {
	case CharLit:
		return "CharLit"
	case CharClass:
		return "CharClass"
	case Any:
		return "Any"
	case AnyNoNL:
		return "AnyNoNL"
	case EmptyLook:
		return "EmptyLook"
	case Save:
		return "Save"
	case Jump:
		return "Jump"
	case Split:
		return "Split"
	case Match:
		return "Match"
	default:
		return "Unknown"
	}
}

// Look is the assertion kind an EmptyLook instruction checks.
type Look uint8

const (
	LookBeginText Look = 1 << iota
	LookEndText
	LookBeginLine
	LookEndLine
	LookWordBoundary
	LookNoWordBoundary
)

// Inst is one instruction. Only the fields relevant to Op carry meaning,
// mirroring the AST's tagged-payload shape (syntax.Regexp) rather than a
// type per opcode.
type Inst struct {
	Op Opcode

	Rune     rune    // CharLit
	FoldCase bool    // CharLit
	Ranges   []Range // CharClass
	Look     Look    // EmptyLook
	Slot     int     // Save

	X int // Jump target; Split first (higher-priority) target
	Y int // Split second (lower-priority) target
}

// Program is the compiler's output: a flat instruction sequence plus the
// metadata the VM and prefilter stages need.
type Program struct {
	Insts []Inst

	NumCaps       int // number of capture groups, not counting the implicit group 0
	NumSlots      int // 2 * (NumCaps + 1)
	Prefix        []byte
	PrefixFold    bool
	AnchoredBegin bool
	AnchoredEnd   bool

	// Start is the entry instruction index: the Save(0) prologue, so every
	// seeded thread records the whole-match start.
	Start int
}

// NumSubexp reports the number of explicit (non-zero) capture groups.
func (p *Program) NumSubexp() int { return p.NumCaps }
