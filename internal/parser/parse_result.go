package parser

import "github.com/antonromanov1/ctl/internal/ast"

// ParseError is the single error shape for both syntactic failures
// ("expected X but got Y") and the semantic checks woven into parsing
// (undeclared identifier, arity mismatch, return/void mismatch). The
// parser aborts on the first one; there is no recovery.
type ParseError struct {
	Message string
	Pos     ast.Position
}

func (e *ParseError) Error() string { return e.Message }
