package parser

import (
	"testing"

	"toylang/pkg/ast"
	"toylang/pkg/lexer"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lexer.Tokenize(src)
	prog, err := Parse(toks, src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return prog
}

func TestParseFunctionCount(t *testing.T) {
	prog := parseSrc(t, `
		int add(int a, int b) { return a + b; }
		void main() { print(1); }
	`)
	if len(prog.Functions) != 2 {
		t.Fatalf("got %d functions, want 2", len(prog.Functions))
	}
}

func TestParseFunctionParamsAndReturn(t *testing.T) {
	prog := parseSrc(t, `int add(int a, int b){return a+b;}`)
	if len(prog.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "add" || fn.ReturnType != "int" {
		t.Fatalf("fn = %+v", fn)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Fatalf("params = %+v", fn.Params)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("body = %+v", fn.Body.Stmts)
	}
	ret, ok := fn.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.Return", fn.Body.Stmts[0])
	}
	bin, ok := ret.Expr.(*ast.BinaryOp)
	if !ok || bin.Op != lexer.PLUS {
		t.Fatalf("return expr = %+v", ret.Expr)
	}
	left, ok := bin.Left.(*ast.Identifier)
	if !ok || left.Name != "a" {
		t.Fatalf("left = %+v", bin.Left)
	}
	right, ok := bin.Right.(*ast.Identifier)
	if !ok || right.Name != "b" {
		t.Fatalf("right = %+v", bin.Right)
	}
}

func TestParseImplicitVoidReturnType(t *testing.T) {
	prog := parseSrc(t, `main() { }`)
	if prog.Functions[0].ReturnType != "void" {
		t.Fatalf("return type = %q, want void", prog.Functions[0].ReturnType)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	prog := parseSrc(t, `int main(){ a + b * c; }`)
	stmt := prog.Functions[0].Body.Stmts[0].(*ast.ExpressionStatement)
	top, ok := stmt.Expr.(*ast.BinaryOp)
	if !ok || top.Op != lexer.PLUS {
		t.Fatalf("top = %+v", stmt.Expr)
	}
	right, ok := top.Right.(*ast.BinaryOp)
	if !ok || right.Op != lexer.STAR {
		t.Fatalf("right = %+v", top.Right)
	}
}

func TestParseAssignmentIsExpressionStatementNotDecl(t *testing.T) {
	prog := parseSrc(t, `int main(){ x = 42; }`)
	stmt, ok := prog.Functions[0].Body.Stmts[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("stmt = %T, want *ast.ExpressionStatement", prog.Functions[0].Body.Stmts[0])
	}
	assign, ok := stmt.Expr.(*ast.Assignment)
	if !ok || assign.Name != "x" {
		t.Fatalf("expr = %+v", stmt.Expr)
	}
	lit, ok := assign.Value.(*ast.Literal)
	if !ok || lit.Text != "42" {
		t.Fatalf("value = %+v", assign.Value)
	}
}

func TestParseTypedVarDecl(t *testing.T) {
	prog := parseSrc(t, `int main(){ int x = 10; string n; }`)
	stmts := prog.Functions[0].Body.Stmts
	decl, ok := stmts[0].(*ast.VariableDecl)
	if !ok || decl.Type != "int" || decl.Name != "x" {
		t.Fatalf("decl = %+v", stmts[0])
	}
	decl2, ok := stmts[1].(*ast.VariableDecl)
	if !ok || decl2.Type != "string" || decl2.Initializer != nil {
		t.Fatalf("decl2 = %+v", stmts[1])
	}
}

func TestParseLetDecl(t *testing.T) {
	prog := parseSrc(t, `int main(){ let n: float = 1.5; }`)
	decl, ok := prog.Functions[0].Body.Stmts[0].(*ast.VariableDecl)
	if !ok || decl.Type != "float" || decl.Name != "n" {
		t.Fatalf("decl = %+v", prog.Functions[0].Body.Stmts[0])
	}
}

func TestParseIfElifElse(t *testing.T) {
	prog := parseSrc(t, `int main(){ if(x>5){print(1);} elif(x>0){print(2);} else {print(3);} }`)
	ifStmt, ok := prog.Functions[0].Body.Stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("stmt = %T", prog.Functions[0].Body.Stmts[0])
	}
	elif, ok := ifStmt.Else.(*ast.If)
	if !ok {
		t.Fatalf("else = %T, want *ast.If (elif chain)", ifStmt.Else)
	}
	if _, ok := elif.Else.(*ast.Block); !ok {
		t.Fatalf("elif.Else = %T, want *ast.Block", elif.Else)
	}
}

func TestParseWhile(t *testing.T) {
	prog := parseSrc(t, `int main(){ while(i<3){ print(i); i=i+1; } }`)
	w, ok := prog.Functions[0].Body.Stmts[0].(*ast.While)
	if !ok {
		t.Fatalf("stmt = %T", prog.Functions[0].Body.Stmts[0])
	}
	if len(w.Body.(*ast.Block).Stmts) != 2 {
		t.Fatalf("body = %+v", w.Body)
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parseSrc(t, `int main(){ for(int i=0;i<3;i=i+1){ print(i); } }`)
	f, ok := prog.Functions[0].Body.Stmts[0].(*ast.For)
	if !ok {
		t.Fatalf("stmt = %T", prog.Functions[0].Body.Stmts[0])
	}
	if _, ok := f.Init.(*ast.VariableDecl); !ok {
		t.Fatalf("init = %T", f.Init)
	}
	if f.Cond == nil || f.Incr == nil {
		t.Fatalf("cond/incr missing: %+v", f)
	}
}

func TestParsePrintStatement(t *testing.T) {
	prog := parseSrc(t, `int main(){ print("hi"); }`)
	p, ok := prog.Functions[0].Body.Stmts[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("stmt = %T", prog.Functions[0].Body.Stmts[0])
	}
	lit, ok := p.Expr.(*ast.Literal)
	if !ok || lit.Text != "hi" {
		t.Fatalf("expr = %+v", p.Expr)
	}
}

func TestParseBuiltinCalls(t *testing.T) {
	prog := parseSrc(t, `int main(){ drawPixel(1,2); clearScreen(); screen(320,240,"t"); }`)
	stmts := prog.Functions[0].Body.Stmts
	for i, want := range []string{"drawPixel", "clearScreen", "screen"} {
		es := stmts[i].(*ast.ExpressionStatement)
		call, ok := es.Expr.(*ast.FunctionCall)
		if !ok || call.Name != want {
			t.Fatalf("stmt %d = %+v, want call to %s", i, es.Expr, want)
		}
	}
}

func TestParseInputCall(t *testing.T) {
	prog := parseSrc(t, `int main(){ string n = input("name: "); }`)
	decl := prog.Functions[0].Body.Stmts[0].(*ast.VariableDecl)
	in, ok := decl.Initializer.(*ast.InputCall)
	if !ok {
		t.Fatalf("initializer = %T", decl.Initializer)
	}
	lit, ok := in.Prompt.(*ast.Literal)
	if !ok || lit.Text != "name: " {
		t.Fatalf("prompt = %+v", in.Prompt)
	}
}

func TestParseKeyPressedCall(t *testing.T) {
	prog := parseSrc(t, `int main(){ if(key_pressed()){ print(1); } }`)
	ifStmt := prog.Functions[0].Body.Stmts[0].(*ast.If)
	if _, ok := ifStmt.Cond.(*ast.KeyPressedCall); !ok {
		t.Fatalf("cond = %T", ifStmt.Cond)
	}
}

func TestParseKeyPressedCallWithPrompt(t *testing.T) {
	prog := parseSrc(t, `int main(){ if(key_pressed("press a key: ")){ print(1); } }`)
	ifStmt := prog.Functions[0].Body.Stmts[0].(*ast.If)
	kp, ok := ifStmt.Cond.(*ast.KeyPressedCall)
	if !ok {
		t.Fatalf("cond = %T", ifStmt.Cond)
	}
	lit, ok := kp.Prompt.(*ast.Literal)
	if !ok || lit.Text != "press a key: " {
		t.Fatalf("prompt = %+v", kp.Prompt)
	}
}

func TestParseAssignmentIllegalTarget(t *testing.T) {
	toks := lexer.Tokenize(`int main(){ 1 + 2 = 3; }`)
	if _, err := Parse(toks, ""); err == nil {
		t.Fatal("expected parse error for non-identifier assignment target")
	}
}

func TestParseCommaExpression(t *testing.T) {
	prog := parseSrc(t, `int main(){ a, b; }`)
	es := prog.Functions[0].Body.Stmts[0].(*ast.ExpressionStatement)
	bin, ok := es.Expr.(*ast.BinaryOp)
	if !ok || bin.Op != lexer.COMMA {
		t.Fatalf("expr = %+v", es.Expr)
	}
}

func TestParseArrayAccess(t *testing.T) {
	prog := parseSrc(t, `int main(){ x[0]; }`)
	es := prog.Functions[0].Body.Stmts[0].(*ast.ExpressionStatement)
	acc, ok := es.Expr.(*ast.ArrayAccess)
	if !ok {
		t.Fatalf("expr = %T", es.Expr)
	}
	base, ok := acc.Base.(*ast.Identifier)
	if !ok || base.Name != "x" {
		t.Fatalf("base = %+v", acc.Base)
	}
}

func TestParseUnexpectedTokenIsFatal(t *testing.T) {
	toks := lexer.Tokenize(`int main(){ ; }`)
	if _, err := Parse(toks, "int main(){ ; }"); err == nil {
		t.Fatal("expected parse error for lone ';' at expression position")
	}
}
