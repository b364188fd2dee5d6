package interp

import (
	"fmt"
	"strconv"

	"toylang/pkg/ir"
)

// parseStrictInt/parseStrictFloat parse a LOAD_INT/LOAD_FLOAT constant's
// text, which the lexer already guarantees is a clean numeral — unlike
// toInt32's stoi-style prefix parse, which handles arbitrary runtime
// string values.
func parseStrictInt(text string) (int32, error) {
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", text)
	}
	return int32(n), nil
}

func parseStrictFloat(text string) (float64, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float literal %q", text)
	}
	return f, nil
}

// arith applies the shared int32 coercion rule and then one of
// ADD/SUB/MUL/DIV/MOD (§4.5's numeric model: arithmetic never touches
// floats beyond truncating them going in).
func (m *Machine) arith(op ir.Opcode, a, b Value) (Value, error) {
	x, err := toInt32(a)
	if err != nil {
		return Value{}, err
	}
	y, err := toInt32(b)
	if err != nil {
		return Value{}, err
	}
	switch op {
	case ir.ADD:
		return Int(x + y), nil
	case ir.SUB:
		return Int(x - y), nil
	case ir.MUL:
		return Int(x * y), nil
	case ir.DIV:
		if y == 0 {
			return Value{}, fmt.Errorf("Division by zero")
		}
		return Int(x / y), nil
	case ir.MOD:
		if y == 0 {
			return Value{}, fmt.Errorf("Division by zero")
		}
		return Int(x % y), nil
	}
	return Value{}, fmt.Errorf("unreachable arithmetic opcode %s", op)
}

// compare implements LT/GT/LE/GE/EQ/NE: both-int compares natively,
// either-float promotes both to float64, both-string compares
// lexicographically, any other pairing is fatal (§4.5).
func (m *Machine) compare(op ir.Opcode, a, b Value) (Value, error) {
	switch classify(a, b) {
	case shapeBothInt:
		return Int(boolInt(intCompare(op, a.I, b.I))), nil
	case shapeNumeric:
		return Int(boolInt(floatCompare(op, asFloat(a), asFloat(b)))), nil
	case shapeBothString:
		return Int(boolInt(stringCompare(op, a.S, b.S))), nil
	default:
		return Value{}, fmt.Errorf("Invalid types for %s", op)
	}
}

func intCompare(op ir.Opcode, a, b int32) bool {
	switch op {
	case ir.LT:
		return a < b
	case ir.GT:
		return a > b
	case ir.LE:
		return a <= b
	case ir.GE:
		return a >= b
	case ir.EQ:
		return a == b
	case ir.NE:
		return a != b
	}
	return false
}

func floatCompare(op ir.Opcode, a, b float64) bool {
	switch op {
	case ir.LT:
		return a < b
	case ir.GT:
		return a > b
	case ir.LE:
		return a <= b
	case ir.GE:
		return a >= b
	case ir.EQ:
		return a == b
	case ir.NE:
		return a != b
	}
	return false
}

func stringCompare(op ir.Opcode, a, b string) bool {
	switch op {
	case ir.LT:
		return a < b
	case ir.GT:
		return a > b
	case ir.LE:
		return a <= b
	case ir.GE:
		return a >= b
	case ir.EQ:
		return a == b
	case ir.NE:
		return a != b
	}
	return false
}
