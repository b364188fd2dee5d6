// Package pipeline wires the lexer, parser, semantic analyzer, IR
// generator, and interpreter into the single compile-and-run pass
// cmd/lang and cmd/desktop both drive, the way pkg/compiler/compile.go
// chains its own stages for gocpu's assembler.
package pipeline

import (
	"io"

	"github.com/pterm/pterm"

	"toylang/pkg/ast"
	"toylang/pkg/diagnostics"
	"toylang/pkg/interp"
	"toylang/pkg/ir"
	"toylang/pkg/lexer"
	"toylang/pkg/parser"
	"toylang/pkg/sema"
)

// Run lexes, parses, analyzes, lowers, and interprets source end to end,
// printing diagnostics as the original toolchain does and returning the
// process exit code (§4.5, §7): 0 on a clean run or an explicit quit(),
// 1 on a parse or runtime failure. Semantic errors alone do not change
// the exit code.
//
// newScreen may be nil for a console-only run; keys satisfies
// key_pressed() reads. This takes a ScreenFactory rather than an
// already-built Screen because SCREEN(w,h,title) can be called more
// than once and the Machine owns exactly one live handle at a time —
// there is nothing to hand it up front.
func Run(source string, keys interp.KeyReader, newScreen interp.ScreenFactory, stdin io.Reader, stdout io.Writer) int {
	prog, sink, err := Compile(source)
	if err != nil {
		printParseError(err)
		return 1
	}
	// A program with only semantic errors still proceeds to IR generation
	// and execution — a documented gap, not a bug, so this only reports.
	if sink.HasErrors() {
		sink.PrintAll()
	}

	irProg := ir.Generate(prog)

	m := interp.NewMachine(stdin, stdout, keys, newScreen)
	defer m.Close()
	if err := m.Run(irProg); err != nil {
		diagnostics.FatalRuntime("%s", err)
		return 1
	}
	return 0
}

// Compile runs lexing, parsing, and semantic analysis without executing
// anything, for cmd/lang's -dump-tokens/-dump-ast/-dump-ir flags and for
// pipeline-level tests that want the AST directly. A non-nil error means
// a parse failure; semantic errors are reported through the returned
// Sink instead, matching pkg/sema.Analyze's own contract.
func Compile(source string) (*ast.Program, *diagnostics.Sink, error) {
	toks := lexer.Tokenize(source)

	prog, err := parser.Parse(toks, source)
	if err != nil {
		return nil, nil, err
	}

	sink := sema.Analyze(prog)
	return prog, sink, nil
}

// Tokens exposes the lexer stage on its own, for cmd/lang -dump-tokens.
func Tokens(source string) []lexer.Token {
	return lexer.Tokenize(source)
}

// Generate exposes IR lowering on its own, for cmd/lang -dump-ir. Callers
// are expected to have already checked Compile's Sink for errors.
func Generate(prog *ast.Program) *ir.Program {
	return ir.Generate(prog)
}

func printParseError(err error) {
	pterm.NewStyle(pterm.BgRed, pterm.FgWhite).Println("Parse Error")
	pterm.FgRed.Printfln(" %s", err)
}
