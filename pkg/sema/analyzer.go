// Package sema walks a parsed program and resolves every name and type,
// recording errors to a diagnostics.Sink without ever halting: later
// stages may still run over a program that failed analysis (§4.3).
package sema

import (
	"toylang/pkg/ast"
	"toylang/pkg/diagnostics"
	"toylang/pkg/lexer"
)

// Analyzer walks the AST maintaining a scope stack rooted at a global scope.
type Analyzer struct {
	global  *Scope
	current *Scope
	sink    *diagnostics.Sink
}

// Analyze runs semantic analysis over prog and returns the Sink recording
// every error and warning found. It never aborts early.
func Analyze(prog *ast.Program) *diagnostics.Sink {
	a := &Analyzer{sink: diagnostics.NewSink()}
	a.global = newScope(nil)
	a.current = a.global

	// First pass: register every function name so forward references and
	// mutual recursion resolve.
	for _, fn := range prog.Functions {
		paramTypes := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			paramTypes[i] = p.Type
		}
		if a.global.Define(fn.Name, Symbol{Type: fn.ReturnType, IsFunction: true, IsDeclared: true, Params: paramTypes}) {
			a.sink.Error("semantic", 0, "Symbol already declared: %q", fn.Name)
		}
	}

	// Second pass: analyze each function body.
	for _, fn := range prog.Functions {
		a.analyzeFunction(fn)
	}
	return a.sink
}

func (a *Analyzer) enterScope() {
	a.current = newScope(a.current)
}

func (a *Analyzer) exitScope() {
	if a.current.parent != nil {
		a.current = a.current.parent
	}
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDecl) {
	a.enterScope()
	defer a.exitScope()

	for _, p := range fn.Params {
		a.current.Define(p.Name, Symbol{Type: p.Type, IsDeclared: true})
	}
	a.analyzeBlock(fn.Body, fn.ReturnType)
}

func (a *Analyzer) analyzeBlock(b *ast.Block, retType string) {
	a.enterScope()
	defer a.exitScope()
	for _, stmt := range b.Stmts {
		a.analyzeStmt(stmt, retType)
	}
}

func (a *Analyzer) analyzeStmt(stmt ast.Stmt, retType string) {
	switch s := stmt.(type) {
	case *ast.Block:
		a.analyzeBlock(s, retType)

	case *ast.VariableDecl:
		if s.Initializer != nil {
			initType := a.analyzeExpr(s.Initializer)
			declType := s.Type
			if declType == "" {
				declType = initType
			} else if initType != "" && !compatible(declType, initType) {
				a.sink.Error("semantic", 0, "type mismatch: cannot assign %s to %s %q", initType, declType, s.Name)
			}
			if a.current.Define(s.Name, Symbol{Type: declType, IsDeclared: true}) {
				a.sink.Error("semantic", 0, "Symbol already declared: %q", s.Name)
			}
		} else {
			if a.current.Define(s.Name, Symbol{Type: s.Type, IsDeclared: true}) {
				a.sink.Error("semantic", 0, "Symbol already declared: %q", s.Name)
			}
		}

	case *ast.Return:
		if s.Expr != nil {
			exprType := a.analyzeExpr(s.Expr)
			if retType != "" && retType != "void" && exprType != "" && !compatible(retType, exprType) {
				a.sink.Error("semantic", 0, "return type mismatch: function returns %s, got %s", retType, exprType)
			}
		}

	case *ast.If:
		a.analyzeExpr(s.Cond)
		a.analyzeStmt(s.Then, retType)
		if s.Else != nil {
			a.analyzeStmt(s.Else, retType)
		}

	case *ast.While:
		a.analyzeExpr(s.Cond)
		a.analyzeStmt(s.Body, retType)

	case *ast.For:
		// The for statement opens its own scope spanning init/cond/incr/body.
		a.enterScope()
		defer a.exitScope()
		if s.Init != nil {
			a.analyzeStmt(s.Init, retType)
		}
		if s.Cond != nil {
			a.analyzeExpr(s.Cond)
		}
		if s.Incr != nil {
			a.analyzeExpr(s.Incr)
		}
		a.analyzeStmt(s.Body, retType)

	case *ast.ExpressionStatement:
		a.analyzeExpr(s.Expr)

	case *ast.PrintStatement:
		a.analyzeExpr(s.Expr)
	}
}

// analyzeExpr resolves expr's type, recording errors as it goes. The
// returned string may be "" when the type could not be determined (e.g.
// after an undefined-identifier error), in which case callers skip
// compatibility checks against it rather than cascading a second error.
func (a *Analyzer) analyzeExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Literal:
		switch e.Kind {
		case lexer.INTEGER:
			return "int"
		case lexer.FLOAT:
			return "float"
		case lexer.STRING:
			return "string"
		case lexer.TRUE, lexer.FALSE:
			return "bool"
		}
		return ""

	case *ast.Identifier:
		sym, ok := a.current.Lookup(e.Name)
		if !ok {
			a.sink.Error("semantic", 0, "Undefined identifier %q", e.Name)
			return ""
		}
		return sym.Type

	case *ast.BinaryOp:
		lt := a.analyzeExpr(e.Left)
		rt := a.analyzeExpr(e.Right)
		switch e.Op {
		case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
			return commonType(lt, rt)
		case lexer.EQUALS, lexer.NOT_EQ, lexer.LESS, lexer.GREATER, lexer.LESS_EQ, lexer.GREATER_EQ,
			lexer.AND_AND, lexer.OR_OR:
			return "int"
		case lexer.COMMA:
			return rt
		}
		return ""

	case *ast.UnaryOp:
		return a.analyzeExpr(e.Operand)

	case *ast.Assignment:
		sym, ok := a.current.Lookup(e.Name)
		if !ok {
			a.sink.Error("semantic", 0, "Undefined identifier %q", e.Name)
			a.analyzeExpr(e.Value)
			return ""
		}
		valType := a.analyzeExpr(e.Value)
		if valType != "" && !compatible(sym.Type, valType) {
			a.sink.Error("semantic", 0, "type mismatch: cannot assign %s to %s %q", valType, sym.Type, e.Name)
		}
		return sym.Type

	case *ast.FunctionCall:
		sym, ok := a.global.Lookup(e.Name)
		for _, arg := range e.Args {
			a.analyzeExpr(arg)
		}
		if !ok || !sym.IsFunction {
			// Builtins (screen, drawPixel, ...) are not registered as user
			// functions; they resolve structurally, not by symbol lookup.
			if isBuiltin(e.Name) {
				return "void"
			}
			a.sink.Error("semantic", 0, "Undefined function %q", e.Name)
			return ""
		}
		// Argument arity and types are not checked (known gap, §9).
		return sym.Type

	case *ast.ArrayAccess:
		a.analyzeExpr(e.Base)
		a.analyzeExpr(e.Index)
		return ""

	case *ast.InputCall:
		if e.Prompt != nil {
			a.analyzeExpr(e.Prompt)
		}
		return "string"

	case *ast.KeyPressedCall:
		return "int"
	}
	return ""
}

var builtinNames = map[string]bool{
	"screen": true, "clearScreen": true, "drawPixel": true, "drawRect": true,
	"drawLine": true, "drawCircle": true, "display": true, "quit": true,
	"isKeyDown": true, "updateInput": true,
}

func isBuiltin(name string) bool {
	return builtinNames[name]
}

// commonType promotes to float if either side is float, otherwise returns
// the left type (§4.3).
func commonType(l, r string) string {
	if l == "float" || r == "float" {
		return "float"
	}
	return l
}

// compatiblePairs is the symmetric compatibility relation from §4.3;
// identity is always compatible and checked separately.
var compatiblePairs = map[[2]string]bool{
	{"int", "float"}: true, {"float", "int"}: true,
	{"int", "string"}: true, {"string", "int"}: true,
	{"int", "bool"}: true, {"bool", "int"}: true,
}

func compatible(a, b string) bool {
	if a == "" || b == "" || a == b {
		return true
	}
	return compatiblePairs[[2]string{a, b}]
}
