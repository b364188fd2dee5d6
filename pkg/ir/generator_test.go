package ir

import (
	"testing"

	"toylang/pkg/lexer"
	"toylang/pkg/parser"
)

func generate(t *testing.T, src string) *Program {
	t.Helper()
	toks := lexer.Tokenize(src)
	prog, err := parser.Parse(toks, src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Generate(prog)
}

func countOps(fn *Function, want Opcode) int {
	n := 0
	for _, in := range fn.Instructions {
		if in.Op == want {
			n++
		}
	}
	return n
}

func TestIfLoweringHasEnoughLabelsAndJumps(t *testing.T) {
	prog := generate(t, `int main(){ if(x>0){print(1);} else {print(2);} return 0; }`)
	fn := prog.FindFunction("main")
	if countOps(fn, LABEL) < 2 {
		t.Fatalf("expected >=2 LABEL, got %d", countOps(fn, LABEL))
	}
	jumps := countOps(fn, JMP) + countOps(fn, JZ)
	if jumps < 2 {
		t.Fatalf("expected >=2 jumps, got %d", jumps)
	}
}

func TestWhileLoweringHasEnoughLabelsAndJumps(t *testing.T) {
	prog := generate(t, `int main(){ while(x<3){ x=x+1; } return 0; }`)
	fn := prog.FindFunction("main")
	if countOps(fn, LABEL) < 2 {
		t.Fatalf("expected >=2 LABEL, got %d", countOps(fn, LABEL))
	}
	jumps := countOps(fn, JMP) + countOps(fn, JZ)
	if jumps < 2 {
		t.Fatalf("expected >=2 jumps, got %d", jumps)
	}
}

func TestCallInstructionCarriesCalleeName(t *testing.T) {
	prog := generate(t, `int helper(){ return 1; } int main(){ return helper(); }`)
	fn := prog.FindFunction("main")
	found := false
	for _, in := range fn.Instructions {
		if in.Op == CALL {
			found = true
			if in.Label != "helper" {
				t.Fatalf("CALL label = %q, want helper", in.Label)
			}
		}
	}
	if !found {
		t.Fatal("no CALL instruction emitted")
	}
}

func TestTempIDsAreContiguousFromZero(t *testing.T) {
	prog := generate(t, `int main(){ int a=1; int b=2; print(a+b); return 0; }`)
	fn := prog.FindFunction("main")
	seen := map[int]bool{}
	max := -1
	for _, in := range fn.Instructions {
		if in.Result.Kind == KindTemp {
			seen[in.Result.ID] = true
			if in.Result.ID > max {
				max = in.Result.ID
			}
		}
	}
	for i := 0; i <= max; i++ {
		if !seen[i] {
			t.Fatalf("temp id %d missing from contiguous prefix (max=%d)", i, max)
		}
	}
}

func TestOrOrLowersToConcat(t *testing.T) {
	prog := generate(t, `int main(){ print(a || b); return 0; }`)
	fn := prog.FindFunction("main")
	for _, in := range fn.Instructions {
		if in.Op == OR {
			t.Fatal("|| must never lower to OR")
		}
	}
	if countOps(fn, CONCAT) == 0 {
		t.Fatal("|| must lower to CONCAT")
	}
}

func TestCommaLowersToConcat(t *testing.T) {
	prog := generate(t, `int main(){ print((a, b)); return 0; }`)
	fn := prog.FindFunction("main")
	if countOps(fn, CONCAT) == 0 {
		t.Fatal("comma must lower to CONCAT")
	}
}

func TestGraphicsBuiltinsEmitNamedOpcodes(t *testing.T) {
	prog := generate(t, `int main(){ drawPixel(1,2); clearScreen(); display(); return 0; }`)
	fn := prog.FindFunction("main")
	if countOps(fn, DRAW_PIXEL) != 1 || countOps(fn, CLEAR_SCREEN) != 1 || countOps(fn, PRESENT) != 1 {
		t.Fatalf("instructions = %+v", fn.Instructions)
	}
}

func TestQuitLowersToCallWithLabel(t *testing.T) {
	prog := generate(t, `int main(){ quit(); return 0; }`)
	fn := prog.FindFunction("main")
	found := false
	for _, in := range fn.Instructions {
		if in.Op == CALL && in.Label == "quit" {
			found = true
		}
	}
	if !found {
		t.Fatal("quit() must lower to CALL quit")
	}
}

func TestInputCallCarriesLiteralPrompt(t *testing.T) {
	prog := generate(t, `int main(){ string n = input("name: "); return 0; }`)
	fn := prog.FindFunction("main")
	found := false
	for _, in := range fn.Instructions {
		if in.Op == INPUT {
			found = true
			if in.Prompt != "name: " {
				t.Fatalf("prompt = %q", in.Prompt)
			}
		}
	}
	if !found {
		t.Fatal("no INPUT instruction emitted")
	}
}

func TestInputCallDropsNonLiteralPromptEntirely(t *testing.T) {
	prog := generate(t, `int main(){ int x = 1; string n = input(x = x + 1); return 0; }`)
	fn := prog.FindFunction("main")
	if countOps(fn, ADD) != 0 {
		t.Fatalf("non-literal prompt must not be evaluated at all: %+v", fn.Instructions)
	}
	found := false
	for _, in := range fn.Instructions {
		if in.Op == INPUT {
			found = true
			if in.Prompt != "" {
				t.Fatalf("prompt = %q, want empty", in.Prompt)
			}
		}
	}
	if !found {
		t.Fatal("no INPUT instruction emitted")
	}
}

func TestDivisionByZeroStillLowersCleanly(t *testing.T) {
	// IR generation performs no validation (§4.4); div-by-zero is a
	// runtime concern, not a lowering error.
	prog := generate(t, `int main(){ int a=1; int b=0; print(a/b); return 0; }`)
	fn := prog.FindFunction("main")
	if countOps(fn, DIV) != 1 {
		t.Fatalf("expected exactly one DIV, got %d", countOps(fn, DIV))
	}
}

func TestInstructionStringRendersArrow(t *testing.T) {
	in := Instruction{Op: ADD, Operands: []Value{Temp(0), Temp(1)}, Result: Temp(2)}
	if got, want := in.String(), "ADD t0, t1 -> t2"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestLabelInstructionStringHasNoArrow(t *testing.T) {
	in := Instruction{Op: LABEL, Label: "L0"}
	if got, want := in.String(), "LABEL L0:"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
