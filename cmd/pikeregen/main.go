// Command pikeregen embeds a pre-compiled regex program into Go source.
//
// It runs the parser and compiler once, offline, and emits a file holding
// the instruction array as a literal plus thin Match/Find wrappers that
// execute it on the same VM the dynamic path uses, so the generated form
// produces byte-for-byte identical results to compiling the pattern at
// runtime. The only thing saved is the compilation itself.
//
// Typical use, from the package that wants the embedded matcher:
//
//	//go:generate pikeregen -pattern (?P<y>\d{4})-(?P<m>\d{2}) -name Date -pkg event -o date_gen.go
package main

import (
	"flag"
	"log"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/pikere/internal/conv"
	"github.com/coregx/pikere/program"
	"github.com/coregx/pikere/syntax"
)

const (
	programPkg = "github.com/coregx/pikere/program"
	nfaPkg     = "github.com/coregx/pikere/nfa"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pikeregen: ")

	var (
		pattern  = flag.String("pattern", "", "regex pattern to embed (required)")
		name     = flag.String("name", "", "identifier prefix for the generated declarations (required)")
		pkg      = flag.String("pkg", "", "package name of the generated file (required)")
		out      = flag.String("o", "", "output file path (required)")
		flagsArg = flag.String("flags", "", "compile flags, any of \"imsU\"")
	)
	flag.Parse()

	if *pattern == "" || *name == "" || *pkg == "" || *out == "" {
		flag.Usage()
		log.Fatal("-pattern, -name, -pkg, and -o are all required")
	}

	flags, err := parseFlagLetters(*flagsArg)
	if err != nil {
		log.Fatal(err)
	}

	f, n, err := generate(*pattern, *name, *pkg, flags)
	if err != nil {
		log.Fatalf("compiling %q: %v", *pattern, err)
	}
	if err := f.Save(*out); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	log.Printf("wrote %s (%d instructions)", *out, n)
}

// parseFlagLetters maps the same one-letter flag names the inline (?flags)
// syntax uses onto syntax.Flags.
func parseFlagLetters(s string) (syntax.Flags, error) {
	var flags syntax.Flags
	for _, c := range s {
		switch c {
		case 'i':
			flags |= syntax.FoldCase
		case 's':
			flags |= syntax.DotNL
		case 'm':
			flags |= syntax.Multiline
		case 'U':
			flags |= syntax.Ungreedy
		default:
			return 0, &syntax.Error{Code: syntax.ErrUnknownFlag, Pos: 0, Expr: string(c)}
		}
	}
	return flags, nil
}

// generate parses and compiles pattern, then renders the generated file:
// the program literal, a package-level VM over it, and the wrapper funcs.
func generate(pattern, name, pkg string, flags syntax.Flags) (*jen.File, int, error) {
	ast, err := syntax.Parse(pattern, syntax.Options{Flags: flags})
	if err != nil {
		return nil, 0, err
	}
	prog, err := program.Compile(ast)
	if err != nil {
		return nil, 0, err
	}
	checkOperands(prog)

	progVar := name + "Program"
	vmVar := "vm" + name

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by pikeregen; DO NOT EDIT.")
	f.HeaderComment("pattern: " + pattern)

	f.Comment(progVar + " is the pre-compiled instruction program for the pattern above.")
	f.Var().Id(progVar).Op("=").Op("&").Qual(programPkg, "Program").Values(programDict(prog))

	f.Var().Id(vmVar).Op("=").Qual(nfaPkg, "New").Call(
		jen.Id(progVar),
		jen.Qual(nfaPkg, "Config").Values(jen.Dict{
			jen.Id("ASCIIWordBoundary"): jen.True(),
		}),
	)

	f.Comment(name + "Match reports whether b contains a match of the embedded pattern.")
	f.Func().Id(name+"Match").Params(jen.Id("b").Index().Byte()).Bool().Block(
		jen.Return(jen.Id(name + "FindSubmatchIndex").Call(jen.Id("b")).Op("!=").Nil()),
	)

	f.Comment(name + "Find returns the [start, end) span of the leftmost match in b, or nil.")
	f.Func().Id(name+"Find").Params(jen.Id("b").Index().Byte()).Index().Int().Block(
		jen.Id("caps").Op(":=").Id(name+"FindSubmatchIndex").Call(jen.Id("b")),
		jen.If(jen.Id("caps").Op("==").Nil()).Block(jen.Return(jen.Nil())),
		jen.Return(jen.Index().Int().Values(jen.Id("caps").Index(jen.Lit(0)), jen.Id("caps").Index(jen.Lit(1)))),
	)

	f.Comment(name + "FindSubmatchIndex returns the capture slots of the leftmost match in b, or nil.")
	f.Func().Id(name+"FindSubmatchIndex").Params(jen.Id("b").Index().Byte()).Index().Int().Block(
		jen.Return(jen.Id(vmVar).Dot("FindSubmatchIndex").Call(jen.Id("b"), jen.Lit(0))),
	)

	return f, len(prog.Insts), nil
}

// checkOperands asserts every emitted target and slot narrows to uint32
// cleanly before it is printed as a source literal; failure means the
// compiler broke its own invariants, and conv panics with a clear message
// instead of this tool silently generating a corrupt table.
func checkOperands(prog *program.Program) {
	for _, in := range prog.Insts {
		switch in.Op {
		case program.Jump:
			conv.IntToUint32(in.X)
		case program.Split:
			conv.IntToUint32(in.X)
			conv.IntToUint32(in.Y)
		case program.Save:
			conv.IntToUint32(in.Slot)
		}
	}
}

func programDict(prog *program.Program) jen.Dict {
	insts := make([]jen.Code, len(prog.Insts))
	for i, in := range prog.Insts {
		insts[i] = jen.Values(instDict(in))
	}

	d := jen.Dict{
		jen.Id("Insts"):    jen.Index().Qual(programPkg, "Inst").Values(insts...),
		jen.Id("NumCaps"):  jen.Lit(prog.NumCaps),
		jen.Id("NumSlots"): jen.Lit(prog.NumSlots),
		jen.Id("Start"):    jen.Lit(prog.Start),
	}
	if len(prog.Prefix) > 0 {
		d[jen.Id("Prefix")] = jen.Index().Byte().Parens(jen.Lit(string(prog.Prefix)))
	}
	if prog.AnchoredBegin {
		d[jen.Id("AnchoredBegin")] = jen.True()
	}
	if prog.AnchoredEnd {
		d[jen.Id("AnchoredEnd")] = jen.True()
	}
	return d
}

// instDict emits only the fields the instruction's opcode actually reads,
// keeping the generated table as close as possible to what a person would
// have written by hand.
func instDict(in program.Inst) jen.Dict {
	d := jen.Dict{jen.Id("Op"): jen.Qual(programPkg, in.Op.String())}
	switch in.Op {
	case program.CharLit:
		d[jen.Id("Rune")] = jen.Lit(int(in.Rune))
		if in.FoldCase {
			d[jen.Id("FoldCase")] = jen.True()
		}
	case program.CharClass:
		ranges := make([]jen.Code, len(in.Ranges))
		for i, r := range in.Ranges {
			ranges[i] = jen.Values(jen.Lit(int(r[0])), jen.Lit(int(r[1])))
		}
		d[jen.Id("Ranges")] = jen.Index().Qual(programPkg, "Range").Values(ranges...)
	case program.EmptyLook:
		d[jen.Id("Look")] = jen.Lit(int(in.Look))
	case program.Save:
		d[jen.Id("Slot")] = jen.Lit(in.Slot)
	case program.Jump:
		d[jen.Id("X")] = jen.Lit(in.X)
	case program.Split:
		d[jen.Id("X")] = jen.Lit(in.X)
		d[jen.Id("Y")] = jen.Lit(in.Y)
	}
	return d
}
