package parser

import "github.com/antonromanov1/ctl/internal/ast"

// TokenType classifies a scanned token.
type TokenType int

const (
	Illegal TokenType = iota
	Eof

	Integer
	Identifier

	// keywords
	Fn
	Let
	Mut
	If
	Else
	While
	Break
	Continue
	Return
	True
	False
	I64Type

	// punctuation
	LParen
	RParen
	LBrace
	RBrace
	Comma
	Colon
	Semicolon
	Arrow
	Assign

	// operators
	Plus
	Minus
	Star
	Slash
	Percent
	Shl
	Shr
	Lt
	Gt
	Le
	Ge
	EqEq
	NotEq
)

var tokenNames = map[TokenType]string{
	Illegal:    "illegal",
	Eof:        "eof",
	Integer:    "integer",
	Identifier: "identifier",
	Fn:         "'fn'",
	Let:        "'let'",
	Mut:        "'mut'",
	If:         "'if'",
	Else:       "'else'",
	While:      "'while'",
	Break:      "'break'",
	Continue:   "'continue'",
	Return:     "'return'",
	True:       "'true'",
	False:      "'false'",
	I64Type:    "'i64'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	Comma:      "','",
	Colon:      "':'",
	Semicolon:  "';'",
	Arrow:      "'->'",
	Assign:     "'='",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Percent:    "'%'",
	Shl:        "'<<'",
	Shr:        "'>>'",
	Lt:         "'<'",
	Gt:         "'>'",
	Le:         "'<='",
	Ge:         "'>='",
	EqEq:       "'=='",
	NotEq:      "'!='",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token is one lexical unit. IntValue is only meaningful when Type is
// Integer; Lexeme holds the raw identifier text when Type is Identifier.
type Token struct {
	Type     TokenType
	Lexeme   string
	IntValue int64
	Pos      ast.Position
}
