package parser

import (
	"github.com/aslang-lang/aslang/internal/ast"
	"github.com/aslang-lang/aslang/internal/lexer"
)

// Precedence levels for operators, lowest to highest. The ladder follows
// the language grammar: modulo binds tighter than power, and power is
// left-associative.
type Precedence int

const (
	_ Precedence = iota
	LOWEST
	INDEX      // : (right associative)
	LOGICAL    // or, and
	COMPARISON // == != < <= > >=
	SUM        // + -
	PRODUCT    // * /
	POWER      // ^
	MODULO     // %
	PREFIX     // ++X --X (bind atomically with their name)
)

// Associativity controls how operators of equal precedence group
type Associativity int

const (
	LeftAssociative Associativity = iota
	RightAssociative
)

// precedences maps token types to their precedence levels. Statement
// keywords never appear here: print, input and the other statement
// forms are dispatched before expression parsing starts.
var precedences = map[lexer.TokenType]Precedence{
	lexer.TokenColon: INDEX,

	lexer.TokenOr:  LOGICAL,
	lexer.TokenAnd: LOGICAL,

	lexer.TokenEq:  COMPARISON,
	lexer.TokenNe:  COMPARISON,
	lexer.TokenLt:  COMPARISON,
	lexer.TokenLte: COMPARISON,
	lexer.TokenGt:  COMPARISON,
	lexer.TokenGte: COMPARISON,

	lexer.TokenPlus:  SUM,
	lexer.TokenMinus: SUM,

	lexer.TokenTimes:  PRODUCT,
	lexer.TokenDivide: PRODUCT,

	lexer.TokenPow: POWER,

	lexer.TokenMod: MODULO,
}

// operatorAssociativity maps precedence levels to their associativity
var operatorAssociativity = map[Precedence]Associativity{
	INDEX:      RightAssociative,
	LOGICAL:    LeftAssociative,
	COMPARISON: LeftAssociative,
	SUM:        LeftAssociative,
	PRODUCT:    LeftAssociative,
	POWER:      LeftAssociative, // 2 ^ 3 ^ 4 groups as (2 ^ 3) ^ 4
	MODULO:     LeftAssociative,
}

// binaryOps maps operator tokens to their AST operator tags
var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.TokenPlus:   ast.OpAdd,
	lexer.TokenMinus:  ast.OpSub,
	lexer.TokenTimes:  ast.OpMul,
	lexer.TokenDivide: ast.OpDiv,
	lexer.TokenMod:    ast.OpMod,
	lexer.TokenPow:    ast.OpPow,
	lexer.TokenEq:     ast.OpEq,
	lexer.TokenNe:     ast.OpNe,
	lexer.TokenLt:     ast.OpLt,
	lexer.TokenLte:    ast.OpLte,
	lexer.TokenGt:     ast.OpGt,
	lexer.TokenGte:    ast.OpGte,
	lexer.TokenAnd:    ast.OpAnd,
	lexer.TokenOr:     ast.OpOr,
	lexer.TokenColon:  ast.OpIndex,
}

// peekPrecedence returns the precedence of the peek token
func (p *Parser) peekPrecedence() Precedence {
	if prec, ok := precedences[p.peek().Type]; ok {
		return prec
	}
	return LOWEST
}

// currentPrecedence returns the precedence of the current token
func (p *Parser) currentPrecedence() Precedence {
	if prec, ok := precedences[p.cur().Type]; ok {
		return prec
	}
	return LOWEST
}

// shouldContinueParsing determines whether the infix loop should absorb
// the peek operator, given the minimum precedence of the current climb
func (p *Parser) shouldContinueParsing(precedence Precedence) bool {
	peekPrec := p.peekPrecedence()

	if precedence > peekPrec {
		return false
	}

	if precedence == peekPrec {
		assoc, ok := operatorAssociativity[peekPrec]
		if !ok {
			return false
		}
		return assoc == RightAssociative
	}

	return precedence < peekPrec
}
