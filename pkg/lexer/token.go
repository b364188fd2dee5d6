package lexer

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input
	NEWLINE

	// Literals
	IDENTIFIER
	INTEGER
	FLOAT
	STRING

	// Keywords
	IF
	ELIF
	ELSE
	WHILE
	FOR
	RETURN
	PRINT
	INT
	FLOATKW
	BOOL
	VOID
	LET
	TRUE
	FALSE
	INPUT
	KEY_PRESSED
	SCREEN
	DRAW_PIXEL
	DRAW_RECT
	DRAW_LINE
	DRAW_CIRCLE
	CLEAR_SCREEN
	DISPLAY
	QUIT
	IS_KEY_DOWN
	UPDATE_INPUT

	// Delimiters
	LBRACE
	RBRACE
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	SEMICOLON
	COMMA
	COLON

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	BANG    // !
	AND_AND // &&
	OR_OR   // ||

	ASSIGN
	EQUALS
	NOT_EQ
	LESS
	GREATER
	LESS_EQ
	GREATER_EQ

	UNKNOWN
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"if":           IF,
	"elif":         ELIF,
	"else":         ELSE,
	"while":        WHILE,
	"for":          FOR,
	"return":       RETURN,
	"print":        PRINT,
	"int":          INT,
	"float":        FLOATKW,
	"bool":         BOOL,
	"void":         VOID,
	"let":          LET,
	"true":         TRUE,
	"false":        FALSE,
	"input":        INPUT,
	"key_pressed":  KEY_PRESSED,
	"screen":       SCREEN,
	"drawPixel":    DRAW_PIXEL,
	"drawRect":     DRAW_RECT,
	"drawLine":     DRAW_LINE,
	"drawCircle":   DRAW_CIRCLE,
	"clearScreen":  CLEAR_SCREEN,
	"display":      DISPLAY,
	"quit":         QUIT,
	"isKeyDown":    IS_KEY_DOWN,
	"updateInput":  UPDATE_INPUT,
}

var tokenNames = map[TokenType]string{
	EOF:          "EOF",
	NEWLINE:      "NEWLINE",
	IDENTIFIER:   "IDENTIFIER",
	INTEGER:      "INTEGER",
	FLOAT:        "FLOAT",
	STRING:       "STRING",
	IF:           "IF",
	ELIF:         "ELIF",
	ELSE:         "ELSE",
	WHILE:        "WHILE",
	FOR:          "FOR",
	RETURN:       "RETURN",
	PRINT:        "PRINT",
	INT:          "INT",
	FLOATKW:      "FLOATKW",
	BOOL:         "BOOL",
	VOID:         "VOID",
	LET:          "LET",
	TRUE:         "TRUE",
	FALSE:        "FALSE",
	INPUT:        "INPUT",
	KEY_PRESSED:  "KEY_PRESSED",
	SCREEN:       "SCREEN",
	DRAW_PIXEL:   "DRAW_PIXEL",
	DRAW_RECT:    "DRAW_RECT",
	DRAW_LINE:    "DRAW_LINE",
	DRAW_CIRCLE:  "DRAW_CIRCLE",
	CLEAR_SCREEN: "CLEAR_SCREEN",
	DISPLAY:      "DISPLAY",
	QUIT:         "QUIT",
	IS_KEY_DOWN:  "IS_KEY_DOWN",
	UPDATE_INPUT: "UPDATE_INPUT",
	LBRACE:       "LBRACE",
	RBRACE:       "RBRACE",
	LPAREN:       "LPAREN",
	RPAREN:       "RPAREN",
	LBRACKET:     "LBRACKET",
	RBRACKET:     "RBRACKET",
	SEMICOLON:    "SEMICOLON",
	COMMA:        "COMMA",
	COLON:        "COLON",
	PLUS:         "PLUS",
	MINUS:        "MINUS",
	STAR:         "STAR",
	SLASH:        "SLASH",
	PERCENT:      "PERCENT",
	BANG:         "BANG",
	AND_AND:      "AND_AND",
	OR_OR:        "OR_OR",
	ASSIGN:       "ASSIGN",
	EQUALS:       "EQUALS",
	NOT_EQ:       "NOT_EQ",
	LESS:         "LESS",
	GREATER:      "GREATER",
	LESS_EQ:      "LESS_EQ",
	GREATER_EQ:   "GREATER_EQ",
	UNKNOWN:      "UNKNOWN",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%-12s %-14q line %d col %d", t.Type, t.Lexeme, t.Line, t.Column)
}
