// Package parser implements the recursive-descent front end: a hand-rolled
// scanner followed by a parser that walks an explicit token cursor and
// weaves scope, arity, and return-consistency validation directly into
// the grammar functions rather than running a separate semantic pass.
package parser

import (
	"github.com/antonromanov1/ctl/internal/ast"
)

// builtinPrintArity is the arity of the one built-in callable without a
// user definition.
const builtinPrintArity = 1

// Parser walks tokens left to right with no backtracking. funcs records
// the arity of every function definition parsed so far (but never the
// one currently being parsed), so a function cannot call itself or a
// forward-declared sibling.
type Parser struct {
	tokens []Token
	cur    int

	funcs        map[string]int
	curVariables map[string]bool
	returnType   bool
}

// NewParser builds a Parser over an already-scanned token stream.
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens: tokens,
		funcs:  make(map[string]int),
	}
}

// ParseProgram parses zero or more function definitions until end of
// stream, returning the first error encountered.
func (p *Parser) ParseProgram() ([]*ast.Function, *ParseError) {
	var functions []*ast.Function
	for !p.isAtEnd() {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
		p.funcs[fn.Name] = len(fn.Params)
	}
	return functions, nil
}

// ParseSource scans and parses src in one call, for callers (the CLI,
// the language server) that only have raw text. The returned error is
// either a *ScanError or a *ParseError.
func ParseSource(src string) ([]*ast.Function, error) {
	tokens, scanErr := NewScanner(src).Scan()
	if scanErr != nil {
		return nil, scanErr
	}

	functions, parseErr := NewParser(tokens).ParseProgram()
	if parseErr != nil {
		return nil, parseErr
	}
	return functions, nil
}
