// Package ast defines the abstract syntax tree for the aslang language.
// The tree is a closed set of node types: one struct per grammar
// production, strongly typed children, immutable after construction.
// Every node carries the source span it was parsed from.
package ast

import (
	"fmt"
	"strings"

	"github.com/aslang-lang/aslang/internal/position"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span for this node
	GetSpan() position.Span
	// String returns a compact, fully parenthesized rendering of the node
	String() string
	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}
}

// Statement represents all statement nodes
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// ====== Program ======

// Program represents the root of the AST. The statement list is ordered
// and may be empty.
type Program struct {
	Span       position.Span
	Statements []Statement
}

func (p *Program) GetSpan() position.Span { return p.Span }
func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, stmt := range p.Statements {
		parts[i] = stmt.String()
	}
	return strings.Join(parts, "\n")
}
func (p *Program) Accept(visitor Visitor) interface{} { return visitor.VisitProgram(p) }

// ====== Statements ======

// BlockStatement represents a brace-delimited statement list. Blocks
// hold one or more statements; the empty block is not representable.
type BlockStatement struct {
	Span       position.Span
	Statements []Statement
}

func (b *BlockStatement) GetSpan() position.Span { return b.Span }
func (b *BlockStatement) String() string {
	parts := make([]string, len(b.Statements))
	for i, stmt := range b.Statements {
		parts[i] = stmt.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
func (b *BlockStatement) Accept(visitor Visitor) interface{} { return visitor.VisitBlockStatement(b) }
func (b *BlockStatement) statementNode()                     {}

// PrintStatement represents a print statement. The operand is a full
// statement, so forms like "print x -> 5" parse with the assignment
// nested under the print.
type PrintStatement struct {
	Span   position.Span
	Target Statement
}

func (p *PrintStatement) GetSpan() position.Span             { return p.Span }
func (p *PrintStatement) String() string                     { return "print " + p.Target.String() }
func (p *PrintStatement) Accept(visitor Visitor) interface{} { return visitor.VisitPrintStatement(p) }
func (p *PrintStatement) statementNode()                     {}

// InputStatement represents an input statement. Like print, the operand
// is a full statement.
type InputStatement struct {
	Span   position.Span
	Target Statement
}

func (i *InputStatement) GetSpan() position.Span             { return i.Span }
func (i *InputStatement) String() string                     { return "input " + i.Target.String() }
func (i *InputStatement) Accept(visitor Visitor) interface{} { return visitor.VisitInputStatement(i) }
func (i *InputStatement) statementNode()                     {}

// ExpressionStatement represents an expression used as a statement
type ExpressionStatement struct {
	Span       position.Span
	Expression Expression
}

func (e *ExpressionStatement) GetSpan() position.Span { return e.Span }
func (e *ExpressionStatement) String() string         { return e.Expression.String() }
func (e *ExpressionStatement) Accept(visitor Visitor) interface{} {
	return visitor.VisitExpressionStatement(e)
}
func (e *ExpressionStatement) statementNode() {}

// AssignStatement represents "NAME -> value". The value is a full
// statement: "x -> y -> 5" chains right, "x -> print 5" nests the print
// under the assignment.
type AssignStatement struct {
	Span  position.Span
	Name  *Identifier
	Value Statement
}

func (a *AssignStatement) GetSpan() position.Span { return a.Span }
func (a *AssignStatement) String() string {
	return fmt.Sprintf("%s -> %s", a.Name.Value, a.Value.String())
}
func (a *AssignStatement) Accept(visitor Visitor) interface{} { return visitor.VisitAssignStatement(a) }
func (a *AssignStatement) statementNode()                     {}

// ArrayAssign1D represents "NAME[index] -> value". Unlike plain
// assignment the value is an expression, not a statement.
type ArrayAssign1D struct {
	Span  position.Span
	Name  *Identifier
	Index Expression
	Value Expression
}

func (a *ArrayAssign1D) GetSpan() position.Span { return a.Span }
func (a *ArrayAssign1D) String() string {
	return fmt.Sprintf("%s[%s] -> %s", a.Name.Value, a.Index.String(), a.Value.String())
}
func (a *ArrayAssign1D) Accept(visitor Visitor) interface{} { return visitor.VisitArrayAssign1D(a) }
func (a *ArrayAssign1D) statementNode()                     {}

// ArrayAssign2D represents "NAME[row][col] -> value"
type ArrayAssign2D struct {
	Span  position.Span
	Name  *Identifier
	Row   Expression
	Col   Expression
	Value Expression
}

func (a *ArrayAssign2D) GetSpan() position.Span { return a.Span }
func (a *ArrayAssign2D) String() string {
	return fmt.Sprintf("%s[%s][%s] -> %s", a.Name.Value, a.Row.String(), a.Col.String(), a.Value.String())
}
func (a *ArrayAssign2D) Accept(visitor Visitor) interface{} { return visitor.VisitArrayAssign2D(a) }
func (a *ArrayAssign2D) statementNode()                     {}

// IfStatement represents an if statement with at most one elif clause
// and an optional else clause. ElifCond/ElifBody are set together or
// both nil; Else is nil when absent.
type IfStatement struct {
	Span     position.Span
	Cond     Expression
	Then     *BlockStatement
	ElifCond Expression
	ElifBody *BlockStatement
	Else     *BlockStatement
}

func (i *IfStatement) GetSpan() position.Span { return i.Span }
func (i *IfStatement) String() string {
	var sb strings.Builder
	sb.WriteString("if ")
	sb.WriteString(i.Cond.String())
	sb.WriteString(" ")
	sb.WriteString(i.Then.String())
	if i.ElifCond != nil {
		sb.WriteString(" elif ")
		sb.WriteString(i.ElifCond.String())
		sb.WriteString(" ")
		sb.WriteString(i.ElifBody.String())
	}
	if i.Else != nil {
		sb.WriteString(" else ")
		sb.WriteString(i.Else.String())
	}
	return sb.String()
}
func (i *IfStatement) Accept(visitor Visitor) interface{} { return visitor.VisitIfStatement(i) }
func (i *IfStatement) statementNode()                     {}

// WhileStatement represents "while cond do { ... }"
type WhileStatement struct {
	Span position.Span
	Cond Expression
	Body *BlockStatement
}

func (w *WhileStatement) GetSpan() position.Span { return w.Span }
func (w *WhileStatement) String() string {
	return "while " + w.Cond.String() + " do " + w.Body.String()
}
func (w *WhileStatement) Accept(visitor Visitor) interface{} { return visitor.VisitWhileStatement(w) }
func (w *WhileStatement) statementNode()                     {}

// PassStatement represents the no-op "pass" statement
type PassStatement struct {
	Span position.Span
}

func (p *PassStatement) GetSpan() position.Span             { return p.Span }
func (p *PassStatement) String() string                     { return "pass" }
func (p *PassStatement) Accept(visitor Visitor) interface{} { return visitor.VisitPassStatement(p) }
func (p *PassStatement) statementNode()                     {}

// BreakStatement represents the "break" statement
type BreakStatement struct {
	Span position.Span
}

func (b *BreakStatement) GetSpan() position.Span             { return b.Span }
func (b *BreakStatement) String() string                     { return "break" }
func (b *BreakStatement) Accept(visitor Visitor) interface{} { return visitor.VisitBreakStatement(b) }
func (b *BreakStatement) statementNode()                     {}

// ====== Expressions ======

// Identifier represents a name reference
type Identifier struct {
	Span  position.Span
	Value string
}

func (i *Identifier) GetSpan() position.Span             { return i.Span }
func (i *Identifier) String() string                     { return i.Value }
func (i *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(i) }
func (i *Identifier) expressionNode()                    {}

// NumberLiteral represents a numeric literal. The literal text is kept
// verbatim from the source; no numeric conversion happens in the front
// end.
type NumberLiteral struct {
	Span    position.Span
	Literal string
}

func (n *NumberLiteral) GetSpan() position.Span             { return n.Span }
func (n *NumberLiteral) String() string                     { return n.Literal }
func (n *NumberLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitNumberLiteral(n) }
func (n *NumberLiteral) expressionNode()                    {}

// StringLiteral represents a double-quoted string literal. Value holds
// the raw content between the quotes; the language has no escapes.
type StringLiteral struct {
	Span  position.Span
	Value string
}

func (s *StringLiteral) GetSpan() position.Span             { return s.Span }
func (s *StringLiteral) String() string                     { return `"` + s.Value + `"` }
func (s *StringLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitStringLiteral(s) }
func (s *StringLiteral) expressionNode()                    {}

// ParenExpression represents explicit parenthesized grouping. The node
// is preserved so the printer can re-emit the parentheses the source
// had.
type ParenExpression struct {
	Span  position.Span
	Inner Expression
}

func (p *ParenExpression) GetSpan() position.Span { return p.Span }
func (p *ParenExpression) String() string         { return "(" + p.Inner.String() + ")" }
func (p *ParenExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitParenExpression(p)
}
func (p *ParenExpression) expressionNode() {}

// ListLiteral represents "[e, e, ...]" with one or more elements
type ListLiteral struct {
	Span     position.Span
	Elements []Expression
}

func (l *ListLiteral) GetSpan() position.Span { return l.Span }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *ListLiteral) Accept(visitor Visitor) interface{} { return visitor.VisitListLiteral(l) }
func (l *ListLiteral) expressionNode()                    {}

// ArrayLiteral1D represents "array[size]"
type ArrayLiteral1D struct {
	Span position.Span
	Size Expression
}

func (a *ArrayLiteral1D) GetSpan() position.Span             { return a.Span }
func (a *ArrayLiteral1D) String() string                     { return "array[" + a.Size.String() + "]" }
func (a *ArrayLiteral1D) Accept(visitor Visitor) interface{} { return visitor.VisitArrayLiteral1D(a) }
func (a *ArrayLiteral1D) expressionNode()                    {}

// ArrayLiteral2D represents "array[rows][cols]"
type ArrayLiteral2D struct {
	Span position.Span
	Rows Expression
	Cols Expression
}

func (a *ArrayLiteral2D) GetSpan() position.Span { return a.Span }
func (a *ArrayLiteral2D) String() string {
	return "array[" + a.Rows.String() + "][" + a.Cols.String() + "]"
}
func (a *ArrayLiteral2D) Accept(visitor Visitor) interface{} { return visitor.VisitArrayLiteral2D(a) }
func (a *ArrayLiteral2D) expressionNode()                    {}

// ArrayAccess1D represents "NAME[index]" in expression position
type ArrayAccess1D struct {
	Span  position.Span
	Name  *Identifier
	Index Expression
}

func (a *ArrayAccess1D) GetSpan() position.Span             { return a.Span }
func (a *ArrayAccess1D) String() string                     { return a.Name.Value + "[" + a.Index.String() + "]" }
func (a *ArrayAccess1D) Accept(visitor Visitor) interface{} { return visitor.VisitArrayAccess1D(a) }
func (a *ArrayAccess1D) expressionNode()                    {}

// ArrayAccess2D represents "NAME[row][col]" in expression position
type ArrayAccess2D struct {
	Span position.Span
	Name *Identifier
	Row  Expression
	Col  Expression
}

func (a *ArrayAccess2D) GetSpan() position.Span { return a.Span }
func (a *ArrayAccess2D) String() string {
	return a.Name.Value + "[" + a.Row.String() + "][" + a.Col.String() + "]"
}
func (a *ArrayAccess2D) Accept(visitor Visitor) interface{} { return visitor.VisitArrayAccess2D(a) }
func (a *ArrayAccess2D) expressionNode()                    {}

// BinaryOp identifies a binary operator
type BinaryOp int

// Binary operators
const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNe
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpIndex
)

// opNames provides source representations for binary operators
var opNames = map[BinaryOp]string{
	OpAdd:   "+",
	OpSub:   "-",
	OpMul:   "*",
	OpDiv:   "/",
	OpMod:   "%",
	OpPow:   "^",
	OpEq:    "==",
	OpNe:    "!=",
	OpLt:    "<",
	OpLte:   "<=",
	OpGt:    ">",
	OpGte:   ">=",
	OpAnd:   "and",
	OpOr:    "or",
	OpIndex: ":",
}

// String returns the source representation of the operator
func (op BinaryOp) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(op))
}

// BinaryExpression represents a binary operation. OpIndex is the ":"
// operator, a plain right-associative binary with no slicing semantics
// attached in the front end.
type BinaryExpression struct {
	Span     position.Span
	Operator BinaryOp
	Left     Expression
	Right    Expression
}

func (b *BinaryExpression) GetSpan() position.Span { return b.Span }
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}
func (b *BinaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryExpression(b)
}
func (b *BinaryExpression) expressionNode() {}

// IncExpression represents "++NAME". The target is a bare name; the
// increment order relative to the enclosing expression is left to the
// evaluator.
type IncExpression struct {
	Span position.Span
	Name *Identifier
}

func (i *IncExpression) GetSpan() position.Span             { return i.Span }
func (i *IncExpression) String() string                     { return "++" + i.Name.Value }
func (i *IncExpression) Accept(visitor Visitor) interface{} { return visitor.VisitIncExpression(i) }
func (i *IncExpression) expressionNode()                    {}

// DecExpression represents "--NAME"
type DecExpression struct {
	Span position.Span
	Name *Identifier
}

func (d *DecExpression) GetSpan() position.Span             { return d.Span }
func (d *DecExpression) String() string                     { return "--" + d.Name.Value }
func (d *DecExpression) Accept(visitor Visitor) interface{} { return visitor.VisitDecExpression(d) }
func (d *DecExpression) expressionNode()                    {}
