package parser

import (
	"fmt"

	"github.com/antonromanov1/ctl/internal/ast"
)

// The expression grammar is layered by precedence, one function per
// level, each left-folding its own operator set over calls to the next
// level down. `relation` is written the same way as every other level:
// left-associative (see DESIGN.md's Open-question decisions).
func (p *Parser) parseExpr() (ast.Expr, *ParseError) {
	return p.parseEqual()
}

func (p *Parser) parseEqual() (ast.Expr, *ParseError) {
	left, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch {
		case p.check(EqEq):
			op = ast.OpEq
		case p.check(NotEq):
			op = ast.OpNe
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.parseRelation()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: tok.Pos}
	}
}

func (p *Parser) parseRelation() (ast.Expr, *ParseError) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch {
		case p.check(Lt):
			op = ast.OpLt
		case p.check(Gt):
			op = ast.OpGt
		case p.check(Le):
			op = ast.OpLe
		case p.check(Ge):
			op = ast.OpGe
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: tok.Pos}
	}
}

func (p *Parser) parseShift() (ast.Expr, *ParseError) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch {
		case p.check(Shl):
			op = ast.OpShl
		case p.check(Shr):
			op = ast.OpShr
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: tok.Pos}
	}
}

func (p *Parser) parseAddSub() (ast.Expr, *ParseError) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch {
		case p.check(Plus):
			op = ast.OpAdd
		case p.check(Minus):
			op = ast.OpSub
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: tok.Pos}
	}
}

func (p *Parser) parseMulDiv() (ast.Expr, *ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch {
		case p.check(Star):
			op = ast.OpMul
		case p.check(Slash):
			op = ast.OpDiv
		case p.check(Percent):
			op = ast.OpMod
		default:
			return left, nil
		}
		tok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Pos: tok.Pos}
	}
}

func (p *Parser) parseUnary() (ast.Expr, *ParseError) {
	if p.check(Minus) {
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Value: operand, Pos: tok.Pos}, nil
	}
	return p.parseTerm()
}

func (p *Parser) parseTerm() (ast.Expr, *ParseError) {
	tok := p.peek()
	switch tok.Type {
	case LParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return inner, nil

	case Integer:
		p.advance()
		return &ast.IntLiteral{Value: tok.IntValue, Pos: tok.Pos}, nil

	case True:
		p.advance()
		return &ast.BoolLiteral{Value: true, Pos: tok.Pos}, nil

	case False:
		p.advance()
		return &ast.BoolLiteral{Value: false, Pos: tok.Pos}, nil

	case Identifier:
		p.advance()
		if p.check(LParen) {
			call, err := p.finishCall(tok)
			if err != nil {
				return nil, err
			}
			call.IsSubexpression = true
			return call, nil
		}
		if !p.curVariables[tok.Lexeme] {
			return nil, &ParseError{
				Message: fmt.Sprintf("undeclared variable '%s'", tok.Lexeme),
				Pos:     tok.Pos,
			}
		}
		return &ast.Ident{Name: tok.Lexeme, Pos: tok.Pos}, nil

	default:
		return nil, p.errorAtCurrent("expected an expression")
	}
}
