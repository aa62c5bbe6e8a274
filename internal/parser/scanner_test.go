package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanOK(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := NewScanner(src).Scan()
	require.Nil(t, err)
	return tokens
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanKeywordsAndPunctuation(t *testing.T) {
	tokens := scanOK(t, "fn main(p: i64) -> i64 { return p; }")
	assert.Equal(t, []TokenType{
		Fn, Identifier, LParen, Identifier, Colon, I64Type, RParen,
		Arrow, I64Type, LBrace, Return, Identifier, Semicolon, RBrace, Eof,
	}, tokenTypes(tokens))
}

func TestScanTwoCharSymbolsBeforeOneChar(t *testing.T) {
	tokens := scanOK(t, "<= >= == != << >> ->")
	assert.Equal(t, []TokenType{Le, Ge, EqEq, NotEq, Shl, Shr, Arrow, Eof}, tokenTypes(tokens))
}

func TestScanSkipsLineCommentsAndWhitespace(t *testing.T) {
	tokens := scanOK(t, "let // comment\n  mut")
	assert.Equal(t, []TokenType{Let, Mut, Eof}, tokenTypes(tokens))
}

func TestScanIntegerLiteral(t *testing.T) {
	tokens := scanOK(t, "12345")
	require.Len(t, tokens, 2)
	assert.Equal(t, Integer, tokens[0].Type)
	assert.EqualValues(t, 12345, tokens[0].IntValue)
}

func TestScanIntegerOverflow(t *testing.T) {
	_, err := NewScanner("99999999999999999999").Scan()
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "overflows")
}

func TestScanUnexpectedCharacter(t *testing.T) {
	_, err := NewScanner("fn main() { @ }").Scan()
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "unexpected mark '@'")
}

func TestScanEndsInEof(t *testing.T) {
	tokens := scanOK(t, "")
	require.Len(t, tokens, 1)
	assert.Equal(t, Eof, tokens[0].Type)
}
