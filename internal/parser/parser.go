// Package parser implements the aslang parser: a recursive descent
// statement layer over a Pratt expression core, producing the ast
// package's tree. Parsing is fail-fast: the first syntax error aborts
// and is returned as a *SyntaxError; there is no recovery and no
// multi-error collection.
package parser

import (
	"fmt"

	"github.com/aslang-lang/aslang/internal/ast"
	"github.com/aslang-lang/aslang/internal/lexer"
	"github.com/aslang-lang/aslang/internal/position"
)

// SyntaxError describes the first syntax error the parser hit
type SyntaxError struct {
	Pos      position.Position // where the offending token starts
	Found    lexer.Token       // the token that did not fit
	Expected string            // what the grammar required instead
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: expected %s, found %s", e.Pos, e.Expected, describeToken(e.Found))
}

// describeToken renders a token for error messages
func describeToken(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenString:
		return fmt.Sprintf("%q", tok.Literal)
	default:
		return "'" + tok.Literal + "'"
	}
}

// Parser consumes an eagerly scanned token buffer. The buffer form
// gives the statement layer arbitrary lookahead for the arrow
// disambiguation without backtracking.
type Parser struct {
	tokens []lexer.Token
	pos    int
	err    *SyntaxError
}

// New creates a parser over a token buffer. The buffer is normalized to
// end with an EOF token; the cursor logic relies on that sentinel.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokenEOF {
		tokens = append(tokens, lexer.Token{Type: lexer.TokenEOF})
	}
	return &Parser{tokens: tokens}
}

// ParseSource scans and parses a source string
func ParseSource(src string) (*ast.Program, error) {
	return ParseFile("", src)
}

// ParseFile scans and parses a source string, attributing positions to
// filename. Lexical errors surface as *lexer.LexError, syntax errors as
// *SyntaxError.
func ParseFile(filename, src string) (*ast.Program, error) {
	tokens, err := lexer.NewWithFilename(src, filename).Tokenize()
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}

// Parse consumes the whole token buffer and returns the program. The
// statement list may be empty; anything short of EOF must parse.
func (p *Parser) Parse() (*ast.Program, error) {
	start := p.cur().Span

	program := &ast.Program{}
	for !p.curTokenIs(lexer.TokenEOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil, p.err
		}
		program.Statements = append(program.Statements, stmt)
		p.advance()
	}

	program.Span = position.SpanBetween(start, p.cur().Span)
	return program, nil
}

// ====== Cursor helpers ======

// cur returns the current token
func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

// peek returns the token after the current one
func (p *Parser) peek() lexer.Token {
	return p.at(1)
}

// at returns the token offset positions after the current one, clamped
// to the trailing EOF
func (p *Parser) at(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

// advance moves the cursor one token forward, stopping at EOF
func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// curTokenIs checks the current token type
func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.cur().Type == t
}

// peekTokenIs checks the peek token type
func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peek().Type == t
}

// expectPeek advances onto the peek token if it has the wanted type,
// and records a syntax error otherwise
func (p *Parser) expectPeek(t lexer.TokenType, expected string) bool {
	if p.peekTokenIs(t) {
		p.advance()
		return true
	}
	p.fail(p.peek(), expected)
	return false
}

// fail records the first syntax error. Later failures during unwinding
// are dropped; the parse is already dead.
func (p *Parser) fail(found lexer.Token, expected string) {
	if p.err == nil {
		p.err = &SyntaxError{Pos: found.Pos(), Found: found, Expected: expected}
	}
}

// matchBracket scans the token buffer from the '[' at the given offset
// to its matching ']', counting nesting depth. It returns the offset
// just past the matching ']', or -1 when the group never closes.
func (p *Parser) matchBracket(start int) int {
	depth := 0
	for i := start; ; i++ {
		switch p.at(i).Type {
		case lexer.TokenLSquare:
			depth++
		case lexer.TokenRSquare:
			depth--
			if depth == 0 {
				return i + 1
			}
		case lexer.TokenEOF:
			return -1
		}
	}
}

// ====== Statements ======

// parseStatement dispatches on the leading token. The cursor must sit
// on the first token of the statement; it is left on the last token
// consumed.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.TokenPrint:
		return p.parsePrintStatement()
	case lexer.TokenInput:
		return p.parseInputStatement()
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenPass:
		return &ast.PassStatement{Span: p.cur().Span}
	case lexer.TokenBreak:
		return &ast.BreakStatement{Span: p.cur().Span}
	case lexer.TokenName:
		return p.parseNameStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parsePrintStatement parses "print statement". The operand is a full
// statement, so "print x -> 5" nests the assignment under the print.
func (p *Parser) parsePrintStatement() ast.Statement {
	start := p.cur().Span

	p.advance()
	target := p.parseStatement()
	if target == nil {
		return nil
	}

	return &ast.PrintStatement{
		Span:   position.SpanBetween(start, target.GetSpan()),
		Target: target,
	}
}

// parseInputStatement parses "input statement"
func (p *Parser) parseInputStatement() ast.Statement {
	start := p.cur().Span

	p.advance()
	target := p.parseStatement()
	if target == nil {
		return nil
	}

	return &ast.InputStatement{
		Span:   position.SpanBetween(start, target.GetSpan()),
		Target: target,
	}
}

// parseIfStatement parses "if expr { ... }" with an optional single
// elif clause and an optional else clause. A clause belongs to the if
// only when its keyword immediately follows the preceding '}'.
func (p *Parser) parseIfStatement() ast.Statement {
	start := p.cur().Span

	p.advance()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenLBrac, "'{'") {
		return nil
	}
	then := p.parseBlockStatement()
	if then == nil {
		return nil
	}

	stmt := &ast.IfStatement{Cond: cond, Then: then}

	if p.peekTokenIs(lexer.TokenElif) {
		p.advance() // onto 'elif'
		p.advance()
		elifCond := p.parseExpression(LOWEST)
		if elifCond == nil {
			return nil
		}
		if !p.expectPeek(lexer.TokenLBrac, "'{'") {
			return nil
		}
		elifBody := p.parseBlockStatement()
		if elifBody == nil {
			return nil
		}
		stmt.ElifCond = elifCond
		stmt.ElifBody = elifBody
	}

	if p.peekTokenIs(lexer.TokenElse) {
		p.advance() // onto 'else'
		if !p.expectPeek(lexer.TokenLBrac, "'{'") {
			return nil
		}
		elseBody := p.parseBlockStatement()
		if elseBody == nil {
			return nil
		}
		stmt.Else = elseBody
	}

	stmt.Span = position.SpanBetween(start, p.cur().Span)
	return stmt
}

// parseWhileStatement parses "while expr do { ... }"
func (p *Parser) parseWhileStatement() ast.Statement {
	start := p.cur().Span

	p.advance()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenDo, "'do'") {
		return nil
	}
	if !p.expectPeek(lexer.TokenLBrac, "'{'") {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}

	return &ast.WhileStatement{
		Span: position.SpanBetween(start, p.cur().Span),
		Cond: cond,
		Body: body,
	}
}

// parseBlockStatement parses "{ statement... }" with one or more
// statements. The cursor must sit on the '{'; it is left on the '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.cur().Span

	p.advance()
	if p.curTokenIs(lexer.TokenRBrac) {
		p.fail(p.cur(), "statement")
		return nil
	}

	block := &ast.BlockStatement{}
	for !p.curTokenIs(lexer.TokenRBrac) && !p.curTokenIs(lexer.TokenEOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.advance()
	}

	if p.curTokenIs(lexer.TokenEOF) {
		p.fail(p.cur(), "'}'")
		return nil
	}

	block.Span = position.SpanBetween(start, p.cur().Span)
	return block
}

// parseNameStatement disambiguates the statement forms that start with
// a name: plain assignment, element assignment into one or two index
// groups, or an expression statement. The decision is made by scanning
// ahead over the token buffer; nothing is consumed until the form is
// known.
func (p *Parser) parseNameStatement() ast.Statement {
	if p.peekTokenIs(lexer.TokenArrow) {
		return p.parseAssignStatement()
	}

	if p.peekTokenIs(lexer.TokenLSquare) {
		if after := p.matchBracket(1); after > 0 {
			switch p.at(after).Type {
			case lexer.TokenArrow:
				return p.parseArrayAssign1D()
			case lexer.TokenLSquare:
				if after2 := p.matchBracket(after); after2 > 0 && p.at(after2).Type == lexer.TokenArrow {
					return p.parseArrayAssign2D()
				}
			}
		}
	}

	return p.parseExpressionStatement()
}

// parseAssignStatement parses "NAME -> statement". The value side is a
// full statement: "x -> y -> 5" chains right and "x -> print 5" nests
// the print under the assignment.
func (p *Parser) parseAssignStatement() ast.Statement {
	name := p.parseIdentifier()

	p.advance() // onto '->'
	p.advance()
	value := p.parseStatement()
	if value == nil {
		return nil
	}

	return &ast.AssignStatement{
		Span:  position.SpanBetween(name.Span, value.GetSpan()),
		Name:  name,
		Value: value,
	}
}

// parseArrayAssign1D parses "NAME[expr] -> expr". Unlike plain
// assignment the value side is an expression.
func (p *Parser) parseArrayAssign1D() ast.Statement {
	name := p.parseIdentifier()

	p.advance() // onto '['
	p.advance()
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenRSquare, "']'") {
		return nil
	}
	if !p.expectPeek(lexer.TokenArrow, "'->'") {
		return nil
	}
	p.advance()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	return &ast.ArrayAssign1D{
		Span:  position.SpanBetween(name.Span, value.GetSpan()),
		Name:  name,
		Index: index,
		Value: value,
	}
}

// parseArrayAssign2D parses "NAME[expr][expr] -> expr"
func (p *Parser) parseArrayAssign2D() ast.Statement {
	name := p.parseIdentifier()

	p.advance() // onto first '['
	p.advance()
	row := p.parseExpression(LOWEST)
	if row == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenRSquare, "']'") {
		return nil
	}
	if !p.expectPeek(lexer.TokenLSquare, "'['") {
		return nil
	}
	p.advance()
	col := p.parseExpression(LOWEST)
	if col == nil {
		return nil
	}
	if !p.expectPeek(lexer.TokenRSquare, "']'") {
		return nil
	}
	if !p.expectPeek(lexer.TokenArrow, "'->'") {
		return nil
	}
	p.advance()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}

	return &ast.ArrayAssign2D{
		Span:  position.SpanBetween(name.Span, value.GetSpan()),
		Name:  name,
		Row:   row,
		Col:   col,
		Value: value,
	}
}

// parseExpressionStatement parses a bare expression in statement
// position
func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	return &ast.ExpressionStatement{
		Span:       expr.GetSpan(),
		Expression: expr,
	}
}
