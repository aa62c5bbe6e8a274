package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonromanov1/ctl/internal/ast"
	"github.com/antonromanov1/ctl/internal/parser"
)

func TestFormatIncludesCodeMessageLocationAndCaret(t *testing.T) {
	source := "fn main() {\n\treturn x;\n}\n"
	r := NewReporter("test.ctl", source)

	ce := CompilerError{
		Level:   LevelSemantic,
		Code:    CodeUndeclaredVariable,
		Message: "undeclared variable 'x'",
		Pos:     ast.Position{Line: 2, Column: 9},
	}

	out := r.Format(ce)
	assert.Contains(t, out, CodeUndeclaredVariable)
	assert.Contains(t, out, "undeclared variable 'x'")
	assert.Contains(t, out, "test.ctl:2:9")
	assert.Contains(t, out, "return x;")
	assert.Contains(t, out, "^")
}

func TestFormatToleratesOutOfRangeLine(t *testing.T) {
	r := NewReporter("test.ctl", "fn main() {}\n")
	ce := CompilerError{Level: LevelIO, Code: CodeIO, Message: "boom", Pos: ast.Position{Line: 99, Column: 1}}

	out := r.Format(ce)
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "test.ctl:99:1")
}

func TestFromScanErrorMapsToLexicalCode(t *testing.T) {
	_, scanErr := parser.NewScanner("fn main() { @ }").Scan()
	require.NotNil(t, scanErr)

	ce := FromScanError(scanErr)
	assert.Equal(t, LevelLexical, ce.Level)
	assert.Equal(t, CodeLexical, ce.Code)
	assert.Equal(t, scanErr.Message, ce.Message)
}

func TestFromParseErrorMapsToSyntaxCode(t *testing.T) {
	_, err := parser.ParseSource("fn main() -> i64 { return x; }")
	require.NotNil(t, err)
	parseErr, ok := err.(*parser.ParseError)
	require.True(t, ok)

	ce := FromParseError(parseErr)
	assert.Equal(t, LevelSyntactic, ce.Level)
	assert.Equal(t, CodeSyntax, ce.Code)
	assert.Contains(t, ce.Message, "undeclared variable")
}
