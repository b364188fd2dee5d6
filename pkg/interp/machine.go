// Package interp executes a lowered ir.Program the way §4.5 prescribes:
// a single instruction pointer stepping through the function named
// "main". Storage improves on the original's stringly-typed lookup per
// §9's own note ("should switch to integer temp IDs plus a dense array")
// without changing what a program observes: temporaries live in a dense
// slice indexed by numeric ID, locals and globals are interned through
// xxhash into a uint64-keyed map. A local and a global of the same name
// still land in different buckets, and two locals of the same name
// still alias — both exactly as the original's single stringly-keyed
// map behaved, since its keys already carried a kind-specific prefix.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"toylang/pkg/ir"
)

// Machine owns everything one interpretation of a program needs: the
// input/output streams, the raw-key reader, a screen factory, and the
// single graphics handle it may lazily construct.
type Machine struct {
	Stdin  *bufio.Reader
	Stdout io.Writer
	Keys   KeyReader

	NewScreen ScreenFactory
	Screen    Screen // nil until the first SCREEN instruction

	// Exit terminates the process the way CALL quit demands. Defaults to
	// os.Exit; tests substitute a recording stub so a quit() call doesn't
	// kill the test binary.
	Exit func(code int)
}

// NewMachine builds a Machine ready to run a program. newScreen may be nil
// for console-only programs that never call screen(...); a SCREEN
// instruction against a nil factory reports failure and continues, the
// same as the original's caught-exception path.
func NewMachine(stdin io.Reader, stdout io.Writer, keys KeyReader, newScreen ScreenFactory) *Machine {
	return &Machine{
		Stdin:     bufio.NewReader(stdin),
		Stdout:    stdout,
		Keys:      keys,
		NewScreen: newScreen,
		Exit:      os.Exit,
	}
}

// Close releases any owned graphics handle. Safe to call more than once
// and safe to call when no Screen was ever created.
func (m *Machine) Close() {
	if m.Screen != nil {
		m.Screen.Close()
		m.Screen = nil
	}
}

// Run executes prog's main function to completion, a RET, a quit() call,
// or a graphics window close request — whichever comes first. It returns
// the first fatal error encountered (division by zero, an invalid
// comparison, a failed numeric coercion), never a semantic-analysis
// concern; those are diagnosed earlier by pkg/sema.
func (m *Machine) Run(prog *ir.Program) error {
	fn := prog.FindFunction("main")
	if fn == nil {
		return fmt.Errorf("no main function defined")
	}

	labels := make(map[string]int, len(fn.Instructions))
	for i, in := range fn.Instructions {
		if in.Op == ir.LABEL {
			labels[in.Label] = i
		}
	}

	temps := newStore(len(fn.Instructions))
	ip := 0
	for ip < len(fn.Instructions) {
		next, err := m.step(fn.Instructions[ip], ip, temps, labels)
		if err != nil {
			return err
		}
		if next < 0 {
			return nil
		}
		ip = next
	}
	return nil
}

// store is one function invocation's temp/local/global namespace: a
// dense slice for numeric temp IDs, a hashed map for named locals and
// globals. Both default a missing key to the zero Value, matching a
// default-constructed variant on first read.
type store struct {
	temps []Value
	names map[uint64]Value
}

func newStore(sizeHint int) *store {
	return &store{names: make(map[uint64]Value, sizeHint)}
}

func nameKey(v ir.Value) uint64 {
	return xxhash.Sum64String(v.String())
}

func (s *store) read(v ir.Value) Value {
	switch v.Kind {
	case ir.KindTemp:
		if v.ID >= 0 && v.ID < len(s.temps) {
			return s.temps[v.ID]
		}
		return Value{}
	case ir.KindLocal, ir.KindGlobal:
		return s.names[nameKey(v)]
	}
	return Value{}
}

func (s *store) write(v ir.Value, val Value) {
	switch v.Kind {
	case ir.KindTemp:
		for v.ID >= len(s.temps) {
			s.temps = append(s.temps, Value{})
		}
		s.temps[v.ID] = val
	case ir.KindLocal, ir.KindGlobal:
		s.names[nameKey(v)] = val
	}
}

func (m *Machine) read(temps *store, v ir.Value) Value {
	return temps.read(v)
}

func (m *Machine) write(temps *store, v ir.Value, val Value) {
	temps.write(v, val)
}

// step executes one instruction and reports where execution continues:
// ip+1 normally, a label's index for a taken jump, or -1 to halt the
// loop (RET, a quit() that didn't already exit the process, or a closed
// graphics window).
func (m *Machine) step(in ir.Instruction, ip int, temps *store, labels map[string]int) (int, error) {
	switch in.Op {
	case ir.LOAD_INT:
		n, err := parseStrictInt(in.Operands[0].Name)
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, Int(n))

	case ir.LOAD_FLOAT:
		f, err := parseStrictFloat(in.Operands[0].Name)
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, Float(f))

	case ir.LOAD_STRING:
		m.write(temps, in.Result, Str(in.Operands[0].Name))

	case ir.ADD, ir.SUB, ir.MUL, ir.DIV, ir.MOD:
		result, err := m.arith(in.Op, m.read(temps, in.Operands[0]), m.read(temps, in.Operands[1]))
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, result)

	case ir.NEG:
		x, err := toInt32(m.read(temps, in.Operands[0]))
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, Int(-x))

	case ir.NOT:
		x, err := toInt32(m.read(temps, in.Operands[0]))
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, Int(boolInt(x == 0)))

	case ir.AND:
		x, err := toInt32(m.read(temps, in.Operands[0]))
		if err != nil {
			return 0, err
		}
		y, err := toInt32(m.read(temps, in.Operands[1]))
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, Int(boolInt(x != 0 && y != 0)))

	case ir.OR:
		x, err := toInt32(m.read(temps, in.Operands[0]))
		if err != nil {
			return 0, err
		}
		y, err := toInt32(m.read(temps, in.Operands[1]))
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, Int(boolInt(x != 0 || y != 0)))

	case ir.CONCAT:
		a := m.read(temps, in.Operands[0])
		b := m.read(temps, in.Operands[1])
		m.write(temps, in.Result, Str(concatString(a)+concatString(b)))

	case ir.EQ, ir.NE, ir.LT, ir.GT, ir.LE, ir.GE:
		result, err := m.compare(in.Op, m.read(temps, in.Operands[0]), m.read(temps, in.Operands[1]))
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, result)

	case ir.PRINT:
		fmt.Fprint(m.Stdout, printString(m.read(temps, in.Operands[0])))

	case ir.INPUT:
		if in.Prompt != "" {
			fmt.Fprint(m.Stdout, in.Prompt)
		}
		line, _ := m.Stdin.ReadString('\n')
		line = trimNewline(line)
		m.write(temps, in.Result, Str(line))

	case ir.KEY_PRESSED:
		b, err := m.Keys.ReadOne()
		if err != nil {
			return 0, err
		}
		m.write(temps, in.Result, Str(string(rune(b))))

	case ir.JMP:
		return labels[in.Label], nil

	case ir.JZ:
		cond, err := mustInt32(m.read(temps, in.Operands[0]))
		if err != nil {
			return 0, err
		}
		if cond == 0 {
			return labels[in.Label], nil
		}

	case ir.JNZ:
		cond, err := mustInt32(m.read(temps, in.Operands[0]))
		if err != nil {
			return 0, err
		}
		if cond != 0 {
			return labels[in.Label], nil
		}

	case ir.RET:
		return -1, nil

	case ir.LABEL, ir.NOP:
		// no-op

	case ir.LOAD:
		// Array access is parsed and lowered but has no storage semantics
		// beyond this indexed read (Non-goals): it always yields the zero
		// value, since nothing in this language can ever write an element.
		m.write(temps, in.Result, Value{})

	case ir.STORE:
		m.write(temps, in.Result, m.read(temps, in.Operands[0]))

	case ir.LOAD_GLOBAL:
		m.write(temps, in.Result, m.read(temps, in.Operands[0]))

	case ir.STORE_GLOBAL:
		m.write(temps, in.Result, m.read(temps, in.Operands[0]))

	case ir.SCREEN:
		m.execScreen(in, temps)

	case ir.DRAW_PIXEL:
		if m.Screen != nil && len(in.Operands) >= 5 {
			ops := m.intOperands(temps, in.Operands)
			m.Screen.DrawPixel(ops[0], ops[1], ops[2], ops[3], ops[4])
			m.write(temps, in.Result, Int(1))
		}

	case ir.DRAW_RECT:
		if m.Screen != nil && len(in.Operands) >= 8 {
			ops := m.intOperands(temps, in.Operands)
			m.Screen.DrawRect(ops[0], ops[1], ops[2], ops[3], ops[4], ops[5], ops[6], ops[7] != 0)
			m.write(temps, in.Result, Int(1))
		}

	case ir.DRAW_LINE:
		if m.Screen != nil && len(in.Operands) >= 7 {
			ops := m.intOperands(temps, in.Operands)
			m.Screen.DrawLine(ops[0], ops[1], ops[2], ops[3], ops[4], ops[5], ops[6])
			m.write(temps, in.Result, Int(1))
		}

	case ir.DRAW_CIRCLE:
		if m.Screen != nil && len(in.Operands) >= 7 {
			ops := m.intOperands(temps, in.Operands)
			m.Screen.DrawCircle(ops[0], ops[1], ops[2], ops[3], ops[4], ops[5], ops[6] != 0)
			m.write(temps, in.Result, Int(1))
		}

	case ir.CLEAR_SCREEN:
		if m.Screen != nil && len(in.Operands) >= 3 {
			ops := m.intOperands(temps, in.Operands)
			m.Screen.Clear(ops[0], ops[1], ops[2])
			m.write(temps, in.Result, Int(1))
		}

	case ir.PRESENT:
		if m.Screen != nil {
			m.Screen.HandleEvents()
			m.Screen.Present()
			if m.Screen.ShouldClose() {
				m.Close()
				return -1, nil
			}
		}
		m.write(temps, in.Result, Int(1))

	case ir.CALL:
		if halt := m.execCall(in, temps); halt {
			return -1, nil
		}
	}

	return ip + 1, nil
}

func (m *Machine) intOperands(temps *store, operands []ir.Value) []int32 {
	out := make([]int32, len(operands))
	for i, o := range operands {
		out[i] = toInt32Lenient(m.read(temps, o))
	}
	return out
}

func (m *Machine) execScreen(in ir.Instruction, temps *store) {
	if len(in.Operands) < 3 {
		return
	}
	width := toInt32Lenient(m.read(temps, in.Operands[0]))
	height := toInt32Lenient(m.read(temps, in.Operands[1]))
	title := graphicsString(m.read(temps, in.Operands[2]))

	m.Close()
	if m.NewScreen == nil {
		fmt.Fprintf(m.Stdout, "Failed to create graphics window: no graphics backend available\n")
		m.write(temps, in.Result, Int(1))
		return
	}
	scr, err := m.NewScreen(width, height, title)
	if err != nil {
		fmt.Fprintf(m.Stdout, "Failed to create graphics window: %v\n", err)
		m.write(temps, in.Result, Int(1))
		return
	}
	m.Screen = scr
	fmt.Fprint(m.Stdout, "\033[2J\033[1;1H")
	fmt.Fprintf(m.Stdout, "Graphics window created: %dx%d - %s\n", width, height, title)
	m.write(temps, in.Result, Int(1))
}

// execCall dispatches the three builtins that lower to a bare CALL
// (quit, isKeyDown, updateInput) plus the documented gap for every other
// name: only main ever runs, so a call to a user-defined function leaves
// its result temp unset rather than actually invoking anything (§9 open
// question 2).
func (m *Machine) execCall(in ir.Instruction, temps *store) (halt bool) {
	switch in.Label {
	case "quit":
		m.Close()
		m.Exit(0)
		return true

	case "isKeyDown":
		result := int32(0)
		if m.Screen != nil && len(in.Operands) > 0 {
			key := graphicsString(m.read(temps, in.Operands[0]))
			if m.Screen.IsKeyPressed(key) {
				result = 1
				fmt.Fprintf(m.Stdout, "Key detected: %s\n", key)
			}
		}
		m.write(temps, in.Result, Int(result))

	case "updateInput":
		if m.Screen != nil {
			m.Screen.HandleEvents()
		}
		m.write(temps, in.Result, Int(1))
	}
	return false
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
