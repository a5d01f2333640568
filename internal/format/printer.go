// Package format renders aslang ASTs back to canonical source text.
// The printer is the inverse of the parser up to layout: formatting a
// parse result and parsing it again yields a structurally identical
// tree. Explicit grouping survives as parenthesized nodes, so the
// printer never has to invent parentheses.
package format

import (
	"strings"

	"github.com/aslang-lang/aslang/internal/ast"
	"github.com/aslang-lang/aslang/internal/parser"
)

// Options controls the canonical style
type Options struct {
	// IndentSize specifies the number of spaces for indentation
	IndentSize int
	// PreferTabs uses tabs instead of spaces for indentation
	PreferTabs bool
	// SpaceAroundOperators adds spaces around binary operators
	SpaceAroundOperators bool
}

// DefaultOptions returns the default canonical style
func DefaultOptions() Options {
	return Options{
		IndentSize:           4,
		PreferTabs:           false,
		SpaceAroundOperators: true,
	}
}

// Printer renders AST nodes as canonical source
type Printer struct {
	options Options
	indent  int
	buffer  strings.Builder
}

// NewPrinter creates a printer with the given options
func NewPrinter(options Options) *Printer {
	return &Printer{options: options}
}

// Format renders a program in the default canonical style
func Format(program *ast.Program) string {
	return NewPrinter(DefaultOptions()).Program(program)
}

// Source parses src and renders it in canonical form. Positions in
// errors are attributed to filename.
func Source(filename string, src []byte, options Options) ([]byte, error) {
	program, err := parser.ParseFile(filename, string(src))
	if err != nil {
		return nil, err
	}
	return []byte(NewPrinter(options).Program(program)), nil
}

// Program renders a whole program, one statement per line, with a
// single trailing newline. The empty program renders as the empty
// string.
func (p *Printer) Program(program *ast.Program) string {
	p.buffer.Reset()
	p.indent = 0

	if program == nil || len(program.Statements) == 0 {
		return ""
	}

	for _, stmt := range program.Statements {
		p.writeIndent()
		p.printStatement(stmt)
		p.buffer.WriteString("\n")
	}

	return p.buffer.String()
}

// printStatement renders a statement starting at the current buffer
// position. Statements containing blocks span multiple lines; the
// trailing newline is the caller's job.
func (p *Printer) printStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.PrintStatement:
		p.buffer.WriteString("print ")
		p.printStatement(s.Target)
	case *ast.InputStatement:
		p.buffer.WriteString("input ")
		p.printStatement(s.Target)
	case *ast.AssignStatement:
		p.buffer.WriteString(s.Name.Value)
		p.buffer.WriteString(" -> ")
		p.printStatement(s.Value)
	case *ast.ArrayAssign1D:
		p.buffer.WriteString(s.Name.Value)
		p.buffer.WriteString("[")
		p.printExpression(s.Index)
		p.buffer.WriteString("] -> ")
		p.printExpression(s.Value)
	case *ast.ArrayAssign2D:
		p.buffer.WriteString(s.Name.Value)
		p.buffer.WriteString("[")
		p.printExpression(s.Row)
		p.buffer.WriteString("][")
		p.printExpression(s.Col)
		p.buffer.WriteString("] -> ")
		p.printExpression(s.Value)
	case *ast.ExpressionStatement:
		p.printExpression(s.Expression)
	case *ast.IfStatement:
		p.buffer.WriteString("if ")
		p.printExpression(s.Cond)
		p.buffer.WriteString(" ")
		p.printBlock(s.Then)
		if s.ElifCond != nil {
			p.buffer.WriteString(" elif ")
			p.printExpression(s.ElifCond)
			p.buffer.WriteString(" ")
			p.printBlock(s.ElifBody)
		}
		if s.Else != nil {
			p.buffer.WriteString(" else ")
			p.printBlock(s.Else)
		}
	case *ast.WhileStatement:
		p.buffer.WriteString("while ")
		p.printExpression(s.Cond)
		p.buffer.WriteString(" do ")
		p.printBlock(s.Body)
	case *ast.PassStatement:
		p.buffer.WriteString("pass")
	case *ast.BreakStatement:
		p.buffer.WriteString("break")
	}
}

// printBlock renders "{", the indented statements, and a closing "}"
// on its own line at the current indent
func (p *Printer) printBlock(block *ast.BlockStatement) {
	p.buffer.WriteString("{\n")
	p.indent++
	for _, stmt := range block.Statements {
		p.writeIndent()
		p.printStatement(stmt)
		p.buffer.WriteString("\n")
	}
	p.indent--
	p.writeIndent()
	p.buffer.WriteString("}")
}

// printExpression renders an expression
func (p *Printer) printExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.buffer.WriteString(e.Value)
	case *ast.NumberLiteral:
		p.buffer.WriteString(e.Literal)
	case *ast.StringLiteral:
		p.buffer.WriteString(`"`)
		p.buffer.WriteString(e.Value)
		p.buffer.WriteString(`"`)
	case *ast.ParenExpression:
		p.buffer.WriteString("(")
		p.printExpression(e.Inner)
		p.buffer.WriteString(")")
	case *ast.ListLiteral:
		p.buffer.WriteString("[")
		for i, elem := range e.Elements {
			if i > 0 {
				p.buffer.WriteString(", ")
			}
			p.printExpression(elem)
		}
		p.buffer.WriteString("]")
	case *ast.ArrayLiteral1D:
		p.buffer.WriteString("array[")
		p.printExpression(e.Size)
		p.buffer.WriteString("]")
	case *ast.ArrayLiteral2D:
		p.buffer.WriteString("array[")
		p.printExpression(e.Rows)
		p.buffer.WriteString("][")
		p.printExpression(e.Cols)
		p.buffer.WriteString("]")
	case *ast.ArrayAccess1D:
		p.buffer.WriteString(e.Name.Value)
		p.buffer.WriteString("[")
		p.printExpression(e.Index)
		p.buffer.WriteString("]")
	case *ast.ArrayAccess2D:
		p.buffer.WriteString(e.Name.Value)
		p.buffer.WriteString("[")
		p.printExpression(e.Row)
		p.buffer.WriteString("][")
		p.printExpression(e.Col)
		p.buffer.WriteString("]")
	case *ast.BinaryExpression:
		p.printBinary(e)
	case *ast.IncExpression:
		p.buffer.WriteString("++")
		p.buffer.WriteString(e.Name.Value)
	case *ast.DecExpression:
		p.buffer.WriteString("--")
		p.buffer.WriteString(e.Name.Value)
	}
}

// printBinary renders a binary expression. Spacing follows the
// options, except where collapsing it would change the token stream:
// keyword operators need separating spaces, and ++/-- on the right of
// + or - would fuse into the wrong operator.
func (p *Printer) printBinary(e *ast.BinaryExpression) {
	spaced := p.options.SpaceAroundOperators
	switch {
	case e.Operator == ast.OpAnd || e.Operator == ast.OpOr:
		spaced = true
	case e.Operator == ast.OpAdd:
		if leadingToken(e.Right) == "++" {
			spaced = true
		}
	case e.Operator == ast.OpSub:
		if leadingToken(e.Right) == "--" {
			spaced = true
		}
	}

	p.printExpression(e.Left)
	if spaced {
		p.buffer.WriteString(" ")
		p.buffer.WriteString(e.Operator.String())
		p.buffer.WriteString(" ")
	} else {
		p.buffer.WriteString(e.Operator.String())
	}
	p.printExpression(e.Right)
}

// leadingToken returns "++" or "--" when that is the first token the
// rendered form of expr produces, and "" otherwise. A prefix operator
// can sit arbitrarily deep as the leftmost leaf of a binary chain, and
// fusing it against a preceding + or - would change the token stream.
func leadingToken(expr ast.Expression) string {
	for {
		switch e := expr.(type) {
		case *ast.BinaryExpression:
			expr = e.Left
		case *ast.IncExpression:
			return "++"
		case *ast.DecExpression:
			return "--"
		default:
			return ""
		}
	}
}

// writeIndent writes the indentation for the current nesting level
func (p *Printer) writeIndent() {
	if p.options.PreferTabs {
		p.buffer.WriteString(strings.Repeat("\t", p.indent))
	} else {
		p.buffer.WriteString(strings.Repeat(" ", p.indent*p.options.IndentSize))
	}
}
