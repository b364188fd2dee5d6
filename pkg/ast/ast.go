// Package ast defines the two node families produced by the parser:
// expressions, which produce a value, and statements, which do not.
package ast

import (
	"fmt"
	"strings"

	"toylang/pkg/lexer"
)

// Expr is implemented by every node that produces a value.
type Expr interface {
	exprNode()
	String() string
}

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
}

// Literal is a compile-time int, float, string, or bool constant.
type Literal struct {
	Kind lexer.TokenType // INTEGER, FLOAT, STRING, TRUE, or FALSE
	Text string
}

func (*Literal) exprNode()        {}
func (l *Literal) String() string { return fmt.Sprintf("Literal(%s, %q)", l.Kind, l.Text) }

// Identifier is a read of a named variable.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode()        {}
func (i *Identifier) String() string { return i.Name }

// BinaryOp represents Left Op Right for arithmetic/comparison/logical/comma ops.
type BinaryOp struct {
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

func (*BinaryOp) exprNode() {}
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// UnaryOp represents Op Operand, e.g. -x or !x.
type UnaryOp struct {
	Op      lexer.TokenType
	Operand Expr
}

func (*UnaryOp) exprNode()        {}
func (u *UnaryOp) String() string { return fmt.Sprintf("(%s %s)", u.Op, u.Operand) }

// Assignment represents Name = Value.
type Assignment struct {
	Name  string
	Value Expr
}

func (*Assignment) exprNode()        {}
func (a *Assignment) String() string { return fmt.Sprintf("(%s = %s)", a.Name, a.Value) }

// FunctionCall represents Name(Args...).
type FunctionCall struct {
	Name string
	Args []Expr
}

func (*FunctionCall) exprNode() {}
func (c *FunctionCall) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

// ArrayAccess represents Base[Index]. Parsed and lowered, but no storage
// semantics exist beyond an indexed load (spec Non-goals).
type ArrayAccess struct {
	Base  Expr
	Index Expr
}

func (*ArrayAccess) exprNode()        {}
func (a *ArrayAccess) String() string { return fmt.Sprintf("%s[%s]", a.Base, a.Index) }

// InputCall represents input([prompt]).
type InputCall struct {
	Prompt Expr // may be nil
}

func (*InputCall) exprNode() {}
func (i *InputCall) String() string {
	if i.Prompt != nil {
		return fmt.Sprintf("input(%s)", i.Prompt)
	}
	return "input()"
}

// KeyPressedCall represents key_pressed([prompt]).
type KeyPressedCall struct {
	Prompt Expr // may be nil
}

func (*KeyPressedCall) exprNode()        {}
func (k *KeyPressedCall) String() string { return "key_pressed()" }

//  Statements

// Block represents { stmt... }.
type Block struct {
	Stmts []Stmt
}

func (*Block) stmtNode()        {}
func (b *Block) String() string { return fmt.Sprintf("Block(len=%d)", len(b.Stmts)) }

// VariableDecl represents a declaration, with or without an initializer.
type VariableDecl struct {
	Name        string
	Type        string // "int", "float", "bool", "string", or "" if inferred
	Initializer Expr   // may be nil
}

func (*VariableDecl) stmtNode() {}
func (d *VariableDecl) String() string {
	if d.Initializer != nil {
		return fmt.Sprintf("VariableDecl(%s %s = %s)", d.Type, d.Name, d.Initializer)
	}
	return fmt.Sprintf("VariableDecl(%s %s)", d.Type, d.Name)
}

// Return represents return [expr];
type Return struct {
	Expr Expr // may be nil
}

func (*Return) stmtNode() {}
func (r *Return) String() string {
	if r.Expr != nil {
		return fmt.Sprintf("Return(%s)", r.Expr)
	}
	return "Return()"
}

// If represents if/elif (cond) then [else elseBranch].
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt // may be nil; may itself be an *If for elif chains
}

func (*If) stmtNode() {}
func (i *If) String() string {
	if i.Else != nil {
		return fmt.Sprintf("If(%s, %s, %s)", i.Cond, i.Then, i.Else)
	}
	return fmt.Sprintf("If(%s, %s)", i.Cond, i.Then)
}

// While represents while (cond) body.
type While struct {
	Cond Expr
	Body Stmt
}

func (*While) stmtNode()        {}
func (w *While) String() string { return fmt.Sprintf("While(%s, %s)", w.Cond, w.Body) }

// For represents for (init; cond; incr) body, each clause optional.
type For struct {
	Init Stmt // may be nil
	Cond Expr // may be nil
	Incr Expr // may be nil
	Body Stmt
}

func (*For) stmtNode() {}
func (f *For) String() string {
	return fmt.Sprintf("For(%v; %v; %v, %s)", f.Init, f.Cond, f.Incr, f.Body)
}

// ExpressionStatement is an expression evaluated for its side effects.
type ExpressionStatement struct {
	Expr Expr
}

func (*ExpressionStatement) stmtNode()        {}
func (e *ExpressionStatement) String() string { return fmt.Sprintf("ExprStmt(%s)", e.Expr) }

// PrintStatement represents print(expr);
type PrintStatement struct {
	Expr Expr
}

func (*PrintStatement) stmtNode()        {}
func (p *PrintStatement) String() string { return fmt.Sprintf("Print(%s)", p.Expr) }

// Param is one (type, name) function parameter.
type Param struct {
	Type string
	Name string
}

// FunctionDecl represents [type] name(params) { body }.
type FunctionDecl struct {
	ReturnType string
	Name       string
	Params     []Param
	Body       *Block
}

func (f *FunctionDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = fmt.Sprintf("%s %s", p.Type, p.Name)
	}
	return fmt.Sprintf("FunctionDecl(%s %s(%s), %s)", f.ReturnType, f.Name, strings.Join(parts, ", "), f.Body)
}

// Program owns an ordered sequence of function declarations.
type Program struct {
	Functions []*FunctionDecl
}
