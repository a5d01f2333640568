package parser

import (
	"github.com/aslang-lang/aslang/internal/ast"
	"github.com/aslang-lang/aslang/internal/lexer"
	"github.com/aslang-lang/aslang/internal/position"
)

// parseExpression parses expressions using Pratt parsing with the
// precedence and associativity tables from precedence.go. The cursor
// must sit on the first token of the expression; it is left on the
// last token consumed.
func (p *Parser) parseExpression(precedence Precedence) ast.Expression {
	left := p.parsePrefixExpression()
	if left == nil {
		return nil
	}

	for p.shouldContinueParsing(precedence) {
		p.advance()
		left = p.parseBinaryExpression(left)
		if left == nil {
			return nil
		}
	}

	return left
}

// parseBinaryExpression parses the infix operator at the cursor and its
// right operand
func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	op := binaryOps[p.cur().Type]
	precedence := p.currentPrecedence()

	p.advance()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}

	return &ast.BinaryExpression{
		Span:     position.SpanBetween(left.GetSpan(), right.GetSpan()),
		Operator: op,
		Left:     left,
		Right:    right,
	}
}

// parsePrefixExpression parses a primary expression
func (p *Parser) parsePrefixExpression() ast.Expression {
	switch p.cur().Type {
	case lexer.TokenName:
		return p.parseNameExpression()
	case lexer.TokenNumber:
		return p.parseNumberLiteral()
	case lexer.TokenString:
		return p.parseStringLiteral()
	case lexer.TokenLParen:
		return p.parseParenExpression()
	case lexer.TokenLSquare:
		return p.parseListLiteral()
	case lexer.TokenArray:
		return p.parseArrayLiteral()
	case lexer.TokenInc:
		return p.parseIncExpression()
	case lexer.TokenDec:
		return p.parseDecExpression()
	default:
		p.fail(p.cur(), "expression")
		return nil
	}
}

// parseNameExpression parses a name reference, or an array access when
// the name is followed by one or two bracketed index groups
func (p *Parser) parseNameExpression() ast.Expression {
	name := p.parseIdentifier()

	if !p.peekTokenIs(lexer.TokenLSquare) {
		return name
	}

	p.advance() // onto '['
	p.advance()
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenRSquare, "']'") {
		return nil
	}

	if !p.peekTokenIs(lexer.TokenLSquare) {
		return &ast.ArrayAccess1D{
			Span:  position.SpanBetween(name.Span, p.cur().Span),
			Name:  name,
			Index: index,
		}
	}

	p.advance() // onto second '['
	p.advance()
	col := p.parseExpression(LOWEST)
	if col == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenRSquare, "']'") {
		return nil
	}

	return &ast.ArrayAccess2D{
		Span: position.SpanBetween(name.Span, p.cur().Span),
		Name: name,
		Row:  index,
		Col:  col,
	}
}

// parseIdentifier builds an identifier node from the current token
func (p *Parser) parseIdentifier() *ast.Identifier {
	tok := p.cur()
	return &ast.Identifier{Span: tok.Span, Value: tok.Literal}
}

// parseNumberLiteral builds a number node. The literal text is carried
// verbatim; the front end never converts it to a numeric value.
func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.cur()
	return &ast.NumberLiteral{Span: tok.Span, Literal: tok.Literal}
}

// parseStringLiteral builds a string node from the current token
func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cur()
	return &ast.StringLiteral{Span: tok.Span, Value: tok.Literal}
}

// parseParenExpression parses "( expr )" and keeps the grouping node so
// the printer can reproduce the parentheses
func (p *Parser) parseParenExpression() ast.Expression {
	start := p.cur().Span

	p.advance()
	inner := p.parseExpression(LOWEST)
	if inner == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenRParen, "')'") {
		return nil
	}

	return &ast.ParenExpression{
		Span:  position.SpanBetween(start, p.cur().Span),
		Inner: inner,
	}
}

// parseListLiteral parses "[ expr, expr, ... ]" with one or more
// elements
func (p *Parser) parseListLiteral() ast.Expression {
	start := p.cur().Span

	p.advance()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	elements := []ast.Expression{first}

	for p.peekTokenIs(lexer.TokenComma) {
		p.advance() // onto ','
		p.advance()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)
	}

	if !p.expectPeek(lexer.TokenRSquare, "']'") {
		return nil
	}

	return &ast.ListLiteral{
		Span:     position.SpanBetween(start, p.cur().Span),
		Elements: elements,
	}
}

// parseArrayLiteral parses "array[size]" or "array[rows][cols]"
func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.cur().Span

	if !p.expectPeek(lexer.TokenLSquare, "'['") {
		return nil
	}
	p.advance()
	size := p.parseExpression(LOWEST)
	if size == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenRSquare, "']'") {
		return nil
	}

	if !p.peekTokenIs(lexer.TokenLSquare) {
		return &ast.ArrayLiteral1D{
			Span: position.SpanBetween(start, p.cur().Span),
			Size: size,
		}
	}

	p.advance() // onto second '['
	p.advance()
	cols := p.parseExpression(LOWEST)
	if cols == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenRSquare, "']'") {
		return nil
	}

	return &ast.ArrayLiteral2D{
		Span: position.SpanBetween(start, p.cur().Span),
		Rows: size,
		Cols: cols,
	}
}

// parseIncExpression parses "++NAME". The operand is a bare name.
func (p *Parser) parseIncExpression() ast.Expression {
	start := p.cur().Span

	if !p.expectPeek(lexer.TokenName, "name") {
		return nil
	}
	name := p.parseIdentifier()

	return &ast.IncExpression{
		Span: position.SpanBetween(start, name.Span),
		Name: name,
	}
}

// parseDecExpression parses "--NAME"
func (p *Parser) parseDecExpression() ast.Expression {
	start := p.cur().Span

	if !p.expectPeek(lexer.TokenName, "name") {
		return nil
	}
	name := p.parseIdentifier()

	return &ast.DecExpression{
		Span: position.SpanBetween(start, name.Span),
		Name: name,
	}
}
