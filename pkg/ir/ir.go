// Package ir defines the flat, labeled intermediate representation lowered
// from the AST and consumed by the interpreter.
package ir

import (
	"fmt"
	"strings"
)

// Opcode is one member of the closed IR instruction set (§6.2).
type Opcode int

const (
	NOP Opcode = iota

	// Arithmetic
	ADD
	SUB
	MUL
	DIV
	MOD
	NEG
	CONCAT

	// Logical
	AND
	OR
	NOT

	// Comparison
	EQ
	NE
	LT
	GT
	LE
	GE

	// Control
	JMP
	JZ
	JNZ
	CALL
	RET
	LABEL

	// Memory
	LOAD
	STORE
	LOAD_GLOBAL
	STORE_GLOBAL

	// Literals
	LOAD_INT
	LOAD_FLOAT
	LOAD_STRING

	// I/O and builtins
	PRINT
	INPUT
	KEY_PRESSED
	SCREEN
	DRAW_PIXEL
	DRAW_RECT
	DRAW_LINE
	DRAW_CIRCLE
	CLEAR_SCREEN
	PRESENT
)

var opcodeNames = map[Opcode]string{
	NOP: "NOP", ADD: "ADD", SUB: "SUB", MUL: "MUL", DIV: "DIV", MOD: "MOD",
	NEG: "NEG", CONCAT: "CONCAT", AND: "AND", OR: "OR", NOT: "NOT",
	EQ: "EQ", NE: "NE", LT: "LT", GT: "GT", LE: "LE", GE: "GE",
	JMP: "JMP", JZ: "JZ", JNZ: "JNZ", CALL: "CALL", RET: "RET", LABEL: "LABEL",
	LOAD: "LOAD", STORE: "STORE", LOAD_GLOBAL: "LOAD_GLOBAL", STORE_GLOBAL: "STORE_GLOBAL",
	LOAD_INT: "LOAD_INT", LOAD_FLOAT: "LOAD_FLOAT", LOAD_STRING: "LOAD_STRING",
	PRINT: "PRINT", INPUT: "INPUT", KEY_PRESSED: "KEY_PRESSED", SCREEN: "SCREEN",
	DRAW_PIXEL: "DRAW_PIXEL", DRAW_RECT: "DRAW_RECT", DRAW_LINE: "DRAW_LINE",
	DRAW_CIRCLE: "DRAW_CIRCLE", CLEAR_SCREEN: "CLEAR_SCREEN", PRESENT: "PRESENT",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// noResult is the set of opcodes that never carry a result operand (§3).
var noResult = map[Opcode]bool{
	JMP: true, JZ: true, JNZ: true, RET: true, LABEL: true, NOP: true,
}

// HasResult reports whether instructions with this opcode carry a result.
func (op Opcode) HasResult() bool { return !noResult[op] }

// ValueKind is the five-way tag over an IR operand or result (§3), plus
// KindNone for an unset Value.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindTemp
	KindLocal
	KindGlobal
	KindConstant
	KindLabel
)

// Value is one operand or result: a temp, a local/global name, a literal
// constant's text, or a label reference.
type Value struct {
	Kind ValueKind
	Name string // Local/Global/Constant/Label text
	ID   int    // Temp id
}

func Temp(id int) Value        { return Value{Kind: KindTemp, ID: id} }
func Local(name string) Value  { return Value{Kind: KindLocal, Name: name} }
func Global(name string) Value { return Value{Kind: KindGlobal, Name: name} }
func Constant(text string) Value {
	return Value{Kind: KindConstant, Name: text}
}
func Label(name string) Value { return Value{Kind: KindLabel, Name: name} }

func (v Value) String() string {
	switch v.Kind {
	case KindTemp:
		return fmt.Sprintf("t%d", v.ID)
	case KindLocal:
		return "l_" + v.Name
	case KindGlobal:
		return "g_" + v.Name
	case KindConstant:
		return v.Name
	case KindLabel:
		return v.Name
	}
	return "<none>"
}

// IsZero reports whether v is the unset Value{}.
func (v Value) IsZero() bool { return v.Kind == KindNone }

// Instruction is one IR instruction: (opcode, operands, result?, label?, prompt?).
type Instruction struct {
	Op       Opcode
	Operands []Value
	Result   Value  // zero Value if Op.HasResult() is false
	Label    string // jump/call target, or the LABEL's own name
	Prompt   string // set only for INPUT with a literal string prompt
}

// String renders the debug textual form from §6.2: "OPCODE op1, op2 -> result".
func (in Instruction) String() string {
	if in.Op == LABEL {
		return fmt.Sprintf("LABEL %s:", in.Label)
	}
	var sb strings.Builder
	sb.WriteString(in.Op.String())
	sb.WriteByte(' ')
	if in.Label != "" {
		sb.WriteString(in.Label)
		if len(in.Operands) > 0 {
			sb.WriteString(", ")
		}
	}
	for i, o := range in.Operands {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(o.String())
	}
	if in.Op.HasResult() {
		sb.WriteString(" -> ")
		sb.WriteString(in.Result.String())
	}
	return sb.String()
}

// Param is one (type, name) function parameter, mirroring ast.Param.
type Param struct {
	Type string
	Name string
}

// Function is one lowered function: its instructions in issue order.
type Function struct {
	Name         string
	ReturnType   string
	Params       []Param
	Instructions []Instruction
}

// Program owns every lowered function.
type Program struct {
	Functions []*Function
}

// FindFunction returns the function named name, or nil if absent.
func (p *Program) FindFunction(name string) *Function {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}
