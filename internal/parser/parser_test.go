package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonromanov1/ctl/internal/ast"
)

func parseOK(t *testing.T, src string) []*ast.Function {
	t.Helper()
	functions, err := ParseSource(src)
	require.Nil(t, err, "unexpected parse error: %v", err)
	return functions
}

func TestParseEmptyFunction(t *testing.T) {
	functions := parseOK(t, "fn main() {}")
	require.Len(t, functions, 1)
	assert.Equal(t, "main", functions[0].Name)
	assert.False(t, functions[0].HasReturnType)
	assert.Empty(t, functions[0].Body)
}

func TestParseParamsAndReturn(t *testing.T) {
	functions := parseOK(t, "fn main(p: i64) -> i64 { return p; }")
	fn := functions[0]
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "p", fn.Params[0].Name)
	assert.True(t, fn.HasReturnType)
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	ident, ok := ret.Expr.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "p", ident.Name)
}

func TestParseLetsPrecedeOtherStatements(t *testing.T) {
	functions := parseOK(t, `fn main(p: i64) -> i64 {
		let mut local: i64 = 1;
		return p + local;
	}`)
	fn := functions[0]
	require.Len(t, fn.Body, 2)
	_, isLet := fn.Body[0].(*ast.LetStmt)
	assert.True(t, isLet)
	_, isReturn := fn.Body[1].(*ast.ReturnStmt)
	assert.True(t, isReturn)
}

func TestParseRejectsUndeclaredVariable(t *testing.T) {
	_, err := ParseSource("fn main() -> i64 { return x; }")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "undeclared variable")
}

func TestParseRejectsBareReturnInValueFunction(t *testing.T) {
	_, err := ParseSource("fn main() -> i64 { return; }")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "function declared to return a value")
}

func TestParseRejectsReturnValueInVoidFunction(t *testing.T) {
	_, err := ParseSource("fn main() { return 1; }")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "void function")
}

func TestParseCallArityAgainstFunctionsParsedSoFar(t *testing.T) {
	_, err := ParseSource(`
		fn a() {}
		fn b() { a(1); }
	`)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "expects 0 argument")
}

func TestParseSelfRecursiveCallIsUndefined(t *testing.T) {
	// The function being parsed is not yet in the function table, so a
	// call to itself is rejected: arity checks only see functions whose
	// parsing has already completed.
	_, err := ParseSource("fn f() { f(); }")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "no function named 'f' defined")
}

func TestParseBuiltinPrintArity(t *testing.T) {
	_, err := ParseSource("fn main() { print(1, 2); }")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "'print' expects 1 argument")
}

func TestParsePrintSingleArg(t *testing.T) {
	functions := parseOK(t, "fn main(p: i64) { print(p); }")
	require.Len(t, functions[0].Body, 1)
	_, ok := functions[0].Body[0].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseRelationalOperatorsLeftAssociative(t *testing.T) {
	functions := parseOK(t, "fn main(a: i64, b: i64, c: i64) -> i64 { return a < b < c; }")
	ret := functions[0].Body[0].(*ast.ReturnStmt)
	top, ok := ret.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpLt, top.Op)
	left, ok := top.Left.(*ast.BinaryExpr)
	require.True(t, ok, "left-associative parse should nest on the left")
	assert.Equal(t, ast.OpLt, left.Op)
}

func TestParseIfElse(t *testing.T) {
	functions := parseOK(t, `fn main(p: i64) -> i64 {
		if (p == 0) { return 0; } else { return 1; }
	}`)
	ifStmt, ok := functions[0].Body[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseWhileWithBreak(t *testing.T) {
	functions := parseOK(t, `fn main() {
		let mut a: i64 = 0;
		while (a == 1) {
			a = a + 1;
			if (a == 4) { break; }
		}
	}`)
	whileStmt, ok := functions[0].Body[1].(*ast.WhileStmt)
	require.True(t, ok)
	block, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)
}

func TestParseDuplicateLocalRejected(t *testing.T) {
	_, err := ParseSource(`fn main() {
		let mut a: i64 = 1;
		let mut a: i64 = 2;
	}`)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "already declared")
}

func TestParseDuplicateParamRejected(t *testing.T) {
	_, err := ParseSource("fn main(a: i64, a: i64) {}")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "duplicate parameter")
}

func TestParseMissingTokenAborts(t *testing.T) {
	_, err := ParseSource("fn main( {}")
	require.NotNil(t, err)
}
