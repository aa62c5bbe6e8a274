package parser

import (
	"fmt"

	"github.com/antonromanov1/ctl/internal/ast"
)

func (p *Parser) parseFunction() (*ast.Function, *ParseError) {
	fnTok, err := p.consume(Fn, "expected 'fn'")
	if err != nil {
		return nil, err
	}

	nameTok, err := p.consumeIdent("expected function name")
	if err != nil {
		return nil, err
	}

	p.curVariables = make(map[string]bool)
	p.returnType = false

	if _, err := p.consume(LParen, "expected '(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	if p.match(Arrow) {
		if err := p.consumeType("expected return type after '->'"); err != nil {
			return nil, err
		}
		p.returnType = true
	}

	if _, err := p.consume(LBrace, "expected '{' before function body"); err != nil {
		return nil, err
	}

	body, err := p.parseFunctionBody()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(RBrace, "expected '}' after function body"); err != nil {
		return nil, err
	}

	return &ast.Function{
		Name:          nameTok.Lexeme,
		Params:        params,
		Body:          body,
		HasReturnType: p.returnType,
		Pos:           fnTok.Pos,
	}, nil
}

func (p *Parser) parseParams() ([]*ast.FunctionParam, *ParseError) {
	var params []*ast.FunctionParam
	if p.check(RParen) {
		return params, nil
	}
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.match(Comma) {
			break
		}
	}
	return params, nil
}

func (p *Parser) parseParam() (*ast.FunctionParam, *ParseError) {
	nameTok, err := p.consumeIdent("expected parameter name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Colon, "expected ':' after parameter name"); err != nil {
		return nil, err
	}
	if err := p.consumeType("expected parameter type"); err != nil {
		return nil, err
	}

	if p.curVariables[nameTok.Lexeme] {
		return nil, &ParseError{
			Message: fmt.Sprintf("duplicate parameter '%s'", nameTok.Lexeme),
			Pos:     nameTok.Pos,
		}
	}
	p.curVariables[nameTok.Lexeme] = true

	return &ast.FunctionParam{Name: nameTok.Lexeme, Pos: nameTok.Pos}, nil
}

// parseFunctionBody parses the dedicated let-prelude, then the general
// statement stream; this mechanically enforces that every Let precedes
// every other statement in a function body.
func (p *Parser) parseFunctionBody() ([]ast.Stmt, *ParseError) {
	var body []ast.Stmt

	for p.check(Let) {
		letStmt, err := p.parseLet()
		if err != nil {
			return nil, err
		}
		body = append(body, letStmt)
	}

	for !p.check(RBrace) && !p.isAtEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	return body, nil
}

func (p *Parser) parseLet() (*ast.LetStmt, *ParseError) {
	letTok, err := p.consume(Let, "expected 'let'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Mut, "expected 'mut' after 'let'"); err != nil {
		return nil, err
	}
	nameTok, err := p.consumeIdent("expected local name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Colon, "expected ':' after local name"); err != nil {
		return nil, err
	}
	if err := p.consumeType("expected local type"); err != nil {
		return nil, err
	}
	if _, err := p.consume(Assign, "expected '=' in let statement"); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(Semicolon, "expected ';' after let statement"); err != nil {
		return nil, err
	}

	if p.curVariables[nameTok.Lexeme] {
		return nil, &ParseError{
			Message: fmt.Sprintf("local '%s' already declared", nameTok.Lexeme),
			Pos:     nameTok.Pos,
		}
	}
	p.curVariables[nameTok.Lexeme] = true

	return &ast.LetStmt{Name: nameTok.Lexeme, Expr: value, Pos: letTok.Pos}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, *ParseError) {
	switch {
	case p.check(Return):
		return p.parseReturn()
	case p.check(If):
		return p.parseIf()
	case p.check(While):
		return p.parseWhile()
	case p.check(Break):
		tok := p.advance()
		if _, err := p.consume(Semicolon, "expected ';' after 'break'"); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{Pos: tok.Pos}, nil
	case p.check(Continue):
		tok := p.advance()
		if _, err := p.consume(Semicolon, "expected ';' after 'continue'"); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{Pos: tok.Pos}, nil
	case p.check(LBrace):
		return p.parseBlock()
	case p.check(Identifier):
		return p.parseAssignOrCallStmt()
	default:
		return nil, p.errorAtCurrent("expected a statement")
	}
}

func (p *Parser) parseBlock() (*ast.BlockStmt, *ParseError) {
	openTok, err := p.consume(LBrace, "expected '{'")
	if err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.check(RBrace) && !p.isAtEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(RBrace, "expected '}'"); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Stmts: stmts, Pos: openTok.Pos}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, *ParseError) {
	tok, err := p.consume(Return, "expected 'return'")
	if err != nil {
		return nil, err
	}

	if p.match(Semicolon) {
		if p.returnType {
			return nil, &ParseError{
				Message: "bare 'return;' in a function declared to return a value",
				Pos:     tok.Pos,
			}
		}
		return &ast.ReturnVoidStmt{Pos: tok.Pos}, nil
	}

	if !p.returnType {
		return nil, &ParseError{
			Message: "'return' with a value in a void function",
			Pos:     tok.Pos,
		}
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "expected ';' after return value"); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: value, Pos: tok.Pos}, nil
}

func (p *Parser) parseIf() (ast.Stmt, *ParseError) {
	tok, err := p.consume(If, "expected 'if'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(LParen, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RParen, "expected ')' after if condition"); err != nil {
		return nil, err
	}

	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Stmt
	if p.match(Else) {
		elseStmt, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Pos: tok.Pos}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, *ParseError) {
	tok, err := p.consume(While, "expected 'while'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(LParen, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RParen, "expected ')' after while condition"); err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Cond: cond, Body: body, Pos: tok.Pos}, nil
}

// parseAssignOrCallStmt disambiguates `Id = expr;` from `Id(args);` by a
// single token of lookahead, validating the identifier against the live
// variable set (for assignment) or the function table (for a call)
// before committing to either shape.
func (p *Parser) parseAssignOrCallStmt() (ast.Stmt, *ParseError) {
	nameTok := p.advance()

	if p.check(LParen) {
		call, err := p.finishCall(nameTok)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(Semicolon, "expected ';' after call"); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: call, Pos: nameTok.Pos}, nil
	}

	if !p.curVariables[nameTok.Lexeme] {
		return nil, &ParseError{
			Message: fmt.Sprintf("undeclared variable '%s'", nameTok.Lexeme),
			Pos:     nameTok.Pos,
		}
	}

	if _, err := p.consume(Assign, "expected '=' or '(' after identifier"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "expected ';' after assignment"); err != nil {
		return nil, err
	}

	return &ast.AssignStmt{Name: nameTok.Lexeme, Expr: value, Pos: nameTok.Pos}, nil
}

// finishCall parses the `(args?)` suffix of a call whose name token has
// already been consumed, checking arity against functions parsed so far
// plus the built-in print.
func (p *Parser) finishCall(nameTok Token) (*ast.CallExpr, *ParseError) {
	if _, err := p.consume(LParen, "expected '(' in call"); err != nil {
		return nil, err
	}

	var args []ast.Expr
	if !p.check(RParen) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(Comma) {
				break
			}
		}
	}

	if _, err := p.consume(RParen, "expected ')' after call arguments"); err != nil {
		return nil, err
	}

	if err := p.checkCall(nameTok, len(args)); err != nil {
		return nil, err
	}

	return &ast.CallExpr{Name: nameTok.Lexeme, Args: args, Pos: nameTok.Pos}, nil
}

func (p *Parser) checkCall(nameTok Token, argc int) *ParseError {
	if arity, ok := p.funcs[nameTok.Lexeme]; ok {
		if arity != argc {
			return &ParseError{
				Message: fmt.Sprintf("function '%s' expects %d argument(s), got %d", nameTok.Lexeme, arity, argc),
				Pos:     nameTok.Pos,
			}
		}
		return nil
	}

	if nameTok.Lexeme == "print" {
		if argc != builtinPrintArity {
			return &ParseError{
				Message: fmt.Sprintf("'print' expects %d argument, got %d", builtinPrintArity, argc),
				Pos:     nameTok.Pos,
			}
		}
		return nil
	}

	return &ParseError{
		Message: fmt.Sprintf("no function named '%s' defined", nameTok.Lexeme),
		Pos:     nameTok.Pos,
	}
}
