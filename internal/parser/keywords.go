package parser

var keywords = map[string]TokenType{
	"fn":       Fn,
	"let":      Let,
	"mut":      Mut,
	"if":       If,
	"else":     Else,
	"while":    While,
	"break":    Break,
	"continue": Continue,
	"return":   Return,
	"true":     True,
	"false":    False,
	"i64":      I64Type,
}

func lookupIdent(lexeme string) TokenType {
	if tt, ok := keywords[lexeme]; ok {
		return tt
	}
	return Identifier
}
