// Package parser builds an AST from a flat token slice via recursive
// descent with precedence climbing.
package parser

import (
	"fmt"
	"strings"

	"toylang/pkg/ast"
	"toylang/pkg/lexer"
)

// Grammar (design level):
//
//	Program      := { Function }
//	Function     := [Type] IDENT '(' [Params] ')' Block
//	Params       := Param { ',' Param }
//	Param        := Type IDENT
//	Block        := '{' { Statement } '}'
//	Statement    := Block | Return | If | While | For | VarDecl | Print | ExprStmt
//	Return       := 'return' [Expr] ';'
//	If           := ('if'|'elif') '(' Expr ')' Statement [ 'else' Statement | If ]
//	While        := 'while' '(' Expr ')' Statement
//	For          := 'for' '(' [ForInit] ';' [Expr] ';' [Expr] ')' Statement
//	VarDecl      := 'let' IDENT ':' Type '=' Expr ';'  |  Type IDENT ['=' Expr] ';'
//	Print        := 'print' '(' Expr ')' ';'
//	ExprStmt     := Expr ';'
//
// Expression precedence, lowest to highest: comma, assignment (right-assoc),
// logical-or, logical-and, equality, comparison, additive, multiplicative,
// unary, postfix, primary.
type Parser struct {
	tokens      []lexer.Token
	pos         int
	sourceLines []string
}

// New creates a Parser over tokens produced from rawSource (used for
// source-line snippets in error messages).
func New(tokens []lexer.Token, rawSource string) *Parser {
	// Statement and expression grammar never depend on NEWLINE; stripping it
	// here keeps every other method free of NEWLINE-skipping logic.
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != lexer.NEWLINE {
			filtered = append(filtered, t)
		}
	}
	return &Parser{tokens: filtered, sourceLines: strings.Split(rawSource, "\n")}
}

// Parse tokenizes-independent entry point: parses a full program.
func Parse(tokens []lexer.Token, rawSource string) (*ast.Program, error) {
	p := New(tokens, rawSource)
	return p.parseProgram()
}

func (p *Parser) fmtError(tok lexer.Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	lineIdx := tok.Line - 1
	snippet := "<source unavailable>"
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}
	return fmt.Errorf("line %d: %s\n  |> %s", tok.Line, msg, snippet)
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	if p.pos+offset >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos+offset]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, p.fmtError(tok, "expected %s, got %s (%q)", tt, tok.Type, tok.Lexeme)
	}
	return tok, nil
}

// typeKeyword reports whether tt is one of the built-in type keywords.
func typeKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.INT, lexer.FLOATKW, lexer.BOOL, lexer.VOID:
		return true
	}
	return false
}

func typeName(tt lexer.TokenType) string {
	switch tt {
	case lexer.INT:
		return "int"
	case lexer.FLOATKW:
		return "float"
	case lexer.BOOL:
		return "bool"
	case lexer.VOID:
		return "void"
	}
	return ""
}

// builtinName maps a builtin-call keyword to its canonical function name.
var builtinName = map[lexer.TokenType]string{
	lexer.SCREEN:       "screen",
	lexer.CLEAR_SCREEN: "clearScreen",
	lexer.DRAW_PIXEL:   "drawPixel",
	lexer.DRAW_RECT:    "drawRect",
	lexer.DRAW_LINE:    "drawLine",
	lexer.DRAW_CIRCLE:  "drawCircle",
	lexer.DISPLAY:      "display",
	lexer.QUIT:         "quit",
	lexer.IS_KEY_DOWN:  "isKeyDown",
	lexer.UPDATE_INPUT: "updateInput",
}

// ---- Program / function level ----

func (p *Parser) parseProgram() (*ast.Program, error) {
	var funcs []*ast.FunctionDecl
	for p.peek().Type != lexer.EOF {
		fn, err := p.parseFunctionDecl()
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, fn)
	}
	return &ast.Program{Functions: funcs}, nil
}

func (p *Parser) parseFunctionDecl() (*ast.FunctionDecl, error) {
	retType := "void"
	if typeKeyword(p.peek().Type) {
		retType = typeName(p.advance().Type)
	}

	nameTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var params []ast.Param
	if p.peek().Type != lexer.RPAREN {
		for {
			if !typeKeyword(p.peek().Type) {
				return nil, p.fmtError(p.peek(), "expected parameter type, got %s", p.peek().Type)
			}
			pt := typeName(p.advance().Type)
			nameTok, err := p.expect(lexer.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Type: pt, Name: nameTok.Lexeme})
			if p.peek().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{ReturnType: retType, Name: nameTok.Lexeme, Params: params, Body: body}, nil
}

// ---- Statements ----

func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.peek().Type != lexer.RBRACE && p.peek().Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts}, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.RETURN:
		p.advance()
		return p.parseReturn()
	case lexer.IF, lexer.ELIF:
		p.advance()
		return p.parseIf()
	case lexer.WHILE:
		p.advance()
		return p.parseWhile()
	case lexer.FOR:
		p.advance()
		return p.parseFor()
	case lexer.PRINT:
		p.advance()
		return p.parsePrint()
	case lexer.LET:
		p.advance()
		return p.parseLetDecl()
	case lexer.INT, lexer.FLOATKW, lexer.BOOL, lexer.VOID:
		return p.parseTypedDecl()
	case lexer.IDENTIFIER:
		// §4.2 disambiguation: IDENT IDENT is a variable declaration with a
		// user-spelled type name; anything else is an expression statement.
		if p.peekAt(1).Type == lexer.IDENTIFIER {
			return p.parseTypedDecl()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	if p.peek().Type == lexer.SEMICOLON {
		p.advance()
		return &ast.Return{}, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Stmt
	switch p.peek().Type {
	case lexer.ELIF:
		p.advance()
		elseBranch, err = p.parseIf()
		if err != nil {
			return nil, err
		}
	case lexer.ELSE:
		p.advance()
		elseBranch, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.If{Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var init ast.Stmt
	if p.peek().Type != lexer.SEMICOLON {
		var err error
		init, err = p.parseForInit()
		if err != nil {
			return nil, err
		}
	} else {
		p.advance()
	}

	var cond ast.Expr
	if p.peek().Type != lexer.SEMICOLON {
		var err error
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if p.peek().Type != lexer.RPAREN {
		var err error
		incr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.For{Init: init, Cond: cond, Incr: incr, Body: body}, nil
}

// parseForInit parses the init clause of a for loop, consuming its
// trailing semicolon. It may be a VarDecl or a bare expression statement.
func (p *Parser) parseForInit() (ast.Stmt, error) {
	switch p.peek().Type {
	case lexer.LET:
		p.advance()
		return p.parseLetDecl()
	case lexer.INT, lexer.FLOATKW, lexer.BOOL, lexer.VOID:
		return p.parseTypedDecl()
	case lexer.IDENTIFIER:
		if p.peekAt(1).Type == lexer.IDENTIFIER {
			return p.parseTypedDecl()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parsePrint() (ast.Stmt, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Expr: expr}, nil
}

// parseLetDecl parses  'let' IDENT ':' Type '=' Expr ';'
// The leading 'let' has already been consumed.
func (p *Parser) parseLetDecl() (ast.Stmt, error) {
	nameTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	if !typeKeyword(p.peek().Type) {
		return nil, p.fmtError(p.peek(), "expected type after ':', got %s", p.peek().Type)
	}
	ty := typeName(p.advance().Type)
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	init, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.VariableDecl{Name: nameTok.Lexeme, Type: ty, Initializer: init}, nil
}

// parseTypedDecl parses  Type IDENT ['=' Expr] ';'
// Type may be a keyword (int/float/bool/void) or a bare identifier used as
// a user-spelled type name, per the disambiguation rule in §4.2.
func (p *Parser) parseTypedDecl() (ast.Stmt, error) {
	var ty string
	if typeKeyword(p.peek().Type) {
		ty = typeName(p.advance().Type)
	} else {
		ty = p.advance().Lexeme
	}
	nameTok, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.peek().Type == lexer.ASSIGN {
		p.advance()
		init, err = p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.VariableDecl{Name: nameTok.Lexeme, Type: ty, Initializer: init}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr}, nil
}

// ---- Expressions ----

// parseExpression is the comma-precedence entry point: the lowest of all.
func (p *Parser) parseExpression() (ast.Expr, error) {
	expr, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.COMMA {
		op := p.advance().Type
		// Right-associative: recurse into parseExpression, not parseAssignExpr.
		right, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseAssignExpr handles '=' (right-associative), one level above comma.
// Function-call arguments are parsed at this precedence so that a bare
// comma inside them is left for the caller to treat as an argument
// separator rather than swallowed into a comma expression. Array indices
// are bracket-delimited and are parsed with parseExpression instead.
func (p *Parser) parseAssignExpr() (ast.Expr, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == lexer.ASSIGN {
		id, ok := left.(*ast.Identifier)
		if !ok {
			return nil, p.fmtError(p.peek(), "invalid assignment target")
		}
		p.advance()
		val, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Name: id.Name, Value: val}, nil
	}
	return left, nil
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.OR_OR {
		op := p.advance().Type
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.AND_AND {
		op := p.advance().Type
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.EQUALS || p.peek().Type == lexer.NOT_EQ {
		op := p.advance().Type
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	expr, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case lexer.LESS, lexer.GREATER, lexer.LESS_EQ, lexer.GREATER_EQ:
			op := p.advance().Type
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			expr = &ast.BinaryOp{Op: op, Left: expr, Right: right}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == lexer.PLUS || p.peek().Type == lexer.MINUS {
		op := p.advance().Type
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryOp{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case lexer.STAR, lexer.SLASH, lexer.PERCENT:
			op := p.advance().Type
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			expr = &ast.BinaryOp{Op: op, Left: expr, Right: right}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.peek().Type == lexer.MINUS || p.peek().Type == lexer.BANG {
		op := p.advance().Type
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: op, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Type {
		case lexer.LBRACKET:
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			expr = &ast.ArrayAccess{Base: expr, Index: index}
		case lexer.LPAREN:
			id, ok := expr.(*ast.Identifier)
			if !ok {
				return nil, p.fmtError(p.peek(), "expected function name before '('")
			}
			p.advance()
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.FunctionCall{Name: id.Name, Args: args}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseCallArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.peek().Type != lexer.RPAREN {
		for {
			arg, err := p.parseAssignExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()

	if name, ok := builtinName[tok.Type]; ok {
		p.advance()
		var args []ast.Expr
		if p.peek().Type == lexer.LPAREN {
			p.advance()
			var err error
			args, err = p.parseCallArgs()
			if err != nil {
				return nil, err
			}
		}
		return &ast.FunctionCall{Name: name, Args: args}, nil
	}

	switch tok.Type {
	case lexer.INTEGER, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.Literal{Kind: tok.Type, Text: tok.Lexeme}, nil

	case lexer.IDENTIFIER:
		p.advance()
		return &ast.Identifier{Name: tok.Lexeme}, nil

	case lexer.INPUT:
		p.advance()
		var prompt ast.Expr
		if p.peek().Type == lexer.LPAREN {
			p.advance()
			if p.peek().Type != lexer.RPAREN {
				var err error
				prompt, err = p.parseAssignExpr()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
		}
		return &ast.InputCall{Prompt: prompt}, nil

	case lexer.KEY_PRESSED:
		p.advance()
		var prompt ast.Expr
		if p.peek().Type == lexer.LPAREN {
			p.advance()
			if p.peek().Type != lexer.RPAREN {
				var err error
				prompt, err = p.parseAssignExpr()
				if err != nil {
					return nil, err
				}
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
		}
		return &ast.KeyPressedCall{Prompt: prompt}, nil

	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	default:
		return nil, p.fmtError(tok, "expected expression, got %s (%q)", tok.Type, tok.Lexeme)
	}
}
