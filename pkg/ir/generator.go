package ir

import (
	"strconv"

	"toylang/pkg/ast"
	"toylang/pkg/lexer"
)

// Generator lowers an *ast.Program into an ir.Program. It performs no
// validation; that is the semantic analyzer's job (§4.4).
type Generator struct {
	program     *Program
	current     *Function
	symbols     map[string]Value // name -> Local/Global for the current function
	tempCounter int
	labelSeq    int // shared across the whole generator instance
}

// Generate lowers prog to its IR form.
func Generate(prog *ast.Program) *Program {
	g := &Generator{program: &Program{}}
	for _, fn := range prog.Functions {
		g.visitFunction(fn)
	}
	return g.program
}

func (g *Generator) newTemp() Value {
	t := Temp(g.tempCounter)
	g.tempCounter++
	return t
}

func (g *Generator) newLabel() string {
	l := "L" + strconv.Itoa(g.labelSeq)
	g.labelSeq++
	return l
}

func (g *Generator) emit(in Instruction) {
	g.current.Instructions = append(g.current.Instructions, in)
}

func (g *Generator) visitFunction(fn *ast.FunctionDecl) {
	irFn := &Function{Name: fn.Name, ReturnType: fn.ReturnType}
	for _, p := range fn.Params {
		irFn.Params = append(irFn.Params, Param{Type: p.Type, Name: p.Name})
	}
	g.program.Functions = append(g.program.Functions, irFn)
	g.current = irFn

	g.symbols = make(map[string]Value, len(fn.Params))
	g.tempCounter = 0
	for _, p := range fn.Params {
		g.symbols[p.Name] = Local(p.Name)
	}

	g.visitStmt(fn.Body)
}

func (g *Generator) resolveName(name string) Value {
	if v, ok := g.symbols[name]; ok {
		return v
	}
	// Unknown names default to Local (§4.4).
	v := Local(name)
	g.symbols[name] = v
	return v
}

// ---- Statements ----

func (g *Generator) visitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		for _, st := range s.Stmts {
			g.visitStmt(st)
		}

	case *ast.VariableDecl:
		v := g.resolveName(s.Name)
		if s.Initializer != nil {
			val := g.visitExpr(s.Initializer)
			g.emit(Instruction{Op: STORE, Operands: []Value{val}, Result: v})
		}

	case *ast.Return:
		if s.Expr != nil {
			val := g.visitExpr(s.Expr)
			g.emit(Instruction{Op: RET, Operands: []Value{val}})
		} else {
			g.emit(Instruction{Op: RET})
		}

	case *ast.If:
		g.visitIf(s)

	case *ast.While:
		loopLabel := g.newLabel()
		endLabel := g.newLabel()
		g.emit(Instruction{Op: LABEL, Label: loopLabel})
		cond := g.visitExpr(s.Cond)
		g.emit(Instruction{Op: JZ, Operands: []Value{cond}, Label: endLabel})
		g.visitStmt(s.Body)
		g.emit(Instruction{Op: JMP, Label: loopLabel})
		g.emit(Instruction{Op: LABEL, Label: endLabel})

	case *ast.For:
		if s.Init != nil {
			g.visitStmt(s.Init)
		}
		loopLabel := g.newLabel()
		endLabel := g.newLabel()
		g.emit(Instruction{Op: LABEL, Label: loopLabel})
		if s.Cond != nil {
			cond := g.visitExpr(s.Cond)
			g.emit(Instruction{Op: JZ, Operands: []Value{cond}, Label: endLabel})
		}
		g.visitStmt(s.Body)
		if s.Incr != nil {
			g.visitExpr(s.Incr)
		}
		g.emit(Instruction{Op: JMP, Label: loopLabel})
		g.emit(Instruction{Op: LABEL, Label: endLabel})

	case *ast.ExpressionStatement:
		g.visitExpr(s.Expr)

	case *ast.PrintStatement:
		val := g.visitExpr(s.Expr)
		g.emit(Instruction{Op: PRINT, Operands: []Value{val}})
	}
}

func (g *Generator) visitIf(s *ast.If) {
	cond := g.visitExpr(s.Cond)
	thenLabel := g.newLabel()
	elseLabel := g.newLabel()
	endLabel := g.newLabel()

	g.emit(Instruction{Op: JZ, Operands: []Value{cond}, Label: elseLabel})
	g.emit(Instruction{Op: LABEL, Label: thenLabel})
	g.visitStmt(s.Then)
	g.emit(Instruction{Op: JMP, Label: endLabel})
	g.emit(Instruction{Op: LABEL, Label: elseLabel})
	if s.Else != nil {
		g.visitStmt(s.Else)
	}
	g.emit(Instruction{Op: LABEL, Label: endLabel})
}

// ---- Expressions ----

// binaryOpcode is the literal token-to-opcode mapping from §4.4. || is
// deliberately mapped to CONCAT rather than OR, matching the front-end's
// reuse of || for value concatenation (documented in §9, not a bug).
var binaryOpcode = map[lexer.TokenType]Opcode{
	lexer.PLUS: ADD, lexer.MINUS: SUB, lexer.STAR: MUL, lexer.SLASH: DIV, lexer.PERCENT: MOD,
	lexer.EQUALS: EQ, lexer.NOT_EQ: NE, lexer.LESS: LT, lexer.GREATER: GT,
	lexer.LESS_EQ: LE, lexer.GREATER_EQ: GE,
	lexer.AND_AND: AND,
	lexer.OR_OR:   CONCAT,
	lexer.COMMA:   CONCAT,
}

var builtinOpcode = map[string]Opcode{
	"screen":      SCREEN,
	"clearScreen": CLEAR_SCREEN,
	"drawPixel":   DRAW_PIXEL,
	"drawRect":    DRAW_RECT,
	"drawLine":    DRAW_LINE,
	"drawCircle":  DRAW_CIRCLE,
}

func (g *Generator) visitExpr(expr ast.Expr) Value {
	switch e := expr.(type) {
	case *ast.Literal:
		return g.visitLiteral(e)

	case *ast.Identifier:
		return g.resolveName(e.Name)

	case *ast.BinaryOp:
		left := g.visitExpr(e.Left)
		right := g.visitExpr(e.Right)
		result := g.newTemp()
		op := binaryOpcode[e.Op]
		g.emit(Instruction{Op: op, Operands: []Value{left, right}, Result: result})
		return result

	case *ast.UnaryOp:
		operand := g.visitExpr(e.Operand)
		result := g.newTemp()
		op := NEG
		if e.Op == lexer.BANG {
			op = NOT
		}
		g.emit(Instruction{Op: op, Operands: []Value{operand}, Result: result})
		return result

	case *ast.Assignment:
		val := g.visitExpr(e.Value)
		dst := g.resolveName(e.Name)
		g.emit(Instruction{Op: STORE, Operands: []Value{val}, Result: dst})
		return dst

	case *ast.FunctionCall:
		return g.visitCall(e)

	case *ast.ArrayAccess:
		base := g.visitExpr(e.Base)
		index := g.visitExpr(e.Index)
		result := g.newTemp()
		g.emit(Instruction{Op: LOAD, Operands: []Value{base, index}, Result: result})
		return result

	case *ast.InputCall:
		result := g.newTemp()
		instr := Instruction{Op: INPUT, Result: result}
		if e.Prompt != nil {
			// A non-literal prompt is dropped whole (§4.4): not evaluated at
			// all, not just stripped of its text, matching the original's
			// visitExpression never being called on it.
			if lit, ok := e.Prompt.(*ast.Literal); ok && lit.Kind == lexer.STRING {
				instr.Prompt = lit.Text
			}
		}
		g.emit(instr)
		return result

	case *ast.KeyPressedCall:
		result := g.newTemp()
		g.emit(Instruction{Op: KEY_PRESSED, Result: result})
		return result
	}
	return Value{}
}

func (g *Generator) visitLiteral(lit *ast.Literal) Value {
	result := g.newTemp()
	switch lit.Kind {
	case lexer.INTEGER:
		g.emit(Instruction{Op: LOAD_INT, Operands: []Value{Constant(lit.Text)}, Result: result})
	case lexer.FLOAT:
		g.emit(Instruction{Op: LOAD_FLOAT, Operands: []Value{Constant(lit.Text)}, Result: result})
	case lexer.STRING:
		g.emit(Instruction{Op: LOAD_STRING, Operands: []Value{Constant(lit.Text)}, Result: result})
	case lexer.TRUE:
		g.emit(Instruction{Op: LOAD_INT, Operands: []Value{Constant("1")}, Result: result})
	case lexer.FALSE:
		g.emit(Instruction{Op: LOAD_INT, Operands: []Value{Constant("0")}, Result: result})
	}
	return result
}

func (g *Generator) visitCall(call *ast.FunctionCall) Value {
	result := g.newTemp()

	if op, ok := builtinOpcode[call.Name]; ok {
		instr := Instruction{Op: op, Result: result}
		for _, a := range call.Args {
			instr.Operands = append(instr.Operands, g.visitExpr(a))
		}
		g.emit(instr)
		return result
	}

	if call.Name == "display" {
		g.emit(Instruction{Op: PRESENT, Result: result})
		return result
	}

	// quit/isKeyDown/updateInput fall through to the same generic CALL
	// shape as a user-defined function (§4.4).
	instr := Instruction{Op: CALL, Label: call.Name, Result: result}
	for _, a := range call.Args {
		instr.Operands = append(instr.Operands, g.visitExpr(a))
	}
	g.emit(instr)
	return result
}
