// Package ast - visitor pattern and traversal helpers for the aslang AST.
package ast

// Visitor dispatches on the concrete node type. Analysis passes implement
// this interface; embed BaseVisitor to only override the cases you need.
type Visitor interface {
	// Program and structure visitors.
	VisitProgram(node *Program) interface{}
	VisitBlockStatement(node *BlockStatement) interface{}

	// Statement visitors.
	VisitPrintStatement(node *PrintStatement) interface{}
	VisitInputStatement(node *InputStatement) interface{}
	VisitExpressionStatement(node *ExpressionStatement) interface{}
	VisitAssignStatement(node *AssignStatement) interface{}
	VisitArrayAssign1D(node *ArrayAssign1D) interface{}
	VisitArrayAssign2D(node *ArrayAssign2D) interface{}
	VisitIfStatement(node *IfStatement) interface{}
	VisitWhileStatement(node *WhileStatement) interface{}
	VisitPassStatement(node *PassStatement) interface{}
	VisitBreakStatement(node *BreakStatement) interface{}

	// Expression visitors.
	VisitIdentifier(node *Identifier) interface{}
	VisitNumberLiteral(node *NumberLiteral) interface{}
	VisitStringLiteral(node *StringLiteral) interface{}
	VisitParenExpression(node *ParenExpression) interface{}
	VisitListLiteral(node *ListLiteral) interface{}
	VisitArrayLiteral1D(node *ArrayLiteral1D) interface{}
	VisitArrayLiteral2D(node *ArrayLiteral2D) interface{}
	VisitArrayAccess1D(node *ArrayAccess1D) interface{}
	VisitArrayAccess2D(node *ArrayAccess2D) interface{}
	VisitBinaryExpression(node *BinaryExpression) interface{}
	VisitIncExpression(node *IncExpression) interface{}
	VisitDecExpression(node *DecExpression) interface{}
}

// BaseVisitor provides no-op implementations of every Visitor method.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitProgram(node *Program) interface{}                         { return nil }
func (v *BaseVisitor) VisitBlockStatement(node *BlockStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitPrintStatement(node *PrintStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitInputStatement(node *InputStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitExpressionStatement(node *ExpressionStatement) interface{} { return nil }
func (v *BaseVisitor) VisitAssignStatement(node *AssignStatement) interface{}         { return nil }
func (v *BaseVisitor) VisitArrayAssign1D(node *ArrayAssign1D) interface{}             { return nil }
func (v *BaseVisitor) VisitArrayAssign2D(node *ArrayAssign2D) interface{}             { return nil }
func (v *BaseVisitor) VisitIfStatement(node *IfStatement) interface{}                 { return nil }
func (v *BaseVisitor) VisitWhileStatement(node *WhileStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitPassStatement(node *PassStatement) interface{}             { return nil }
func (v *BaseVisitor) VisitBreakStatement(node *BreakStatement) interface{}           { return nil }
func (v *BaseVisitor) VisitIdentifier(node *Identifier) interface{}                   { return nil }
func (v *BaseVisitor) VisitNumberLiteral(node *NumberLiteral) interface{}             { return nil }
func (v *BaseVisitor) VisitStringLiteral(node *StringLiteral) interface{}             { return nil }
func (v *BaseVisitor) VisitParenExpression(node *ParenExpression) interface{}         { return nil }
func (v *BaseVisitor) VisitListLiteral(node *ListLiteral) interface{}                 { return nil }
func (v *BaseVisitor) VisitArrayLiteral1D(node *ArrayLiteral1D) interface{}           { return nil }
func (v *BaseVisitor) VisitArrayLiteral2D(node *ArrayLiteral2D) interface{}           { return nil }
func (v *BaseVisitor) VisitArrayAccess1D(node *ArrayAccess1D) interface{}             { return nil }
func (v *BaseVisitor) VisitArrayAccess2D(node *ArrayAccess2D) interface{}             { return nil }
func (v *BaseVisitor) VisitBinaryExpression(node *BinaryExpression) interface{}       { return nil }
func (v *BaseVisitor) VisitIncExpression(node *IncExpression) interface{}             { return nil }
func (v *BaseVisitor) VisitDecExpression(node *DecExpression) interface{}             { return nil }

// Walk traverses the tree rooted at node in depth-first preorder,
// calling fn for each node. If fn returns false the children of that
// node are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}
	case *BlockStatement:
		for _, stmt := range n.Statements {
			Walk(stmt, fn)
		}
	case *PrintStatement:
		Walk(n.Target, fn)
	case *InputStatement:
		Walk(n.Target, fn)
	case *ExpressionStatement:
		Walk(n.Expression, fn)
	case *AssignStatement:
		Walk(n.Name, fn)
		Walk(n.Value, fn)
	case *ArrayAssign1D:
		Walk(n.Name, fn)
		Walk(n.Index, fn)
		Walk(n.Value, fn)
	case *ArrayAssign2D:
		Walk(n.Name, fn)
		Walk(n.Row, fn)
		Walk(n.Col, fn)
		Walk(n.Value, fn)
	case *IfStatement:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		if n.ElifCond != nil {
			Walk(n.ElifCond, fn)
			Walk(n.ElifBody, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}
	case *WhileStatement:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)
	case *PassStatement, *BreakStatement:
		// leaves
	case *Identifier, *NumberLiteral, *StringLiteral:
		// leaves
	case *ParenExpression:
		Walk(n.Inner, fn)
	case *ListLiteral:
		for _, e := range n.Elements {
			Walk(e, fn)
		}
	case *ArrayLiteral1D:
		Walk(n.Size, fn)
	case *ArrayLiteral2D:
		Walk(n.Rows, fn)
		Walk(n.Cols, fn)
	case *ArrayAccess1D:
		Walk(n.Name, fn)
		Walk(n.Index, fn)
	case *ArrayAccess2D:
		Walk(n.Name, fn)
		Walk(n.Row, fn)
		Walk(n.Col, fn)
	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *IncExpression:
		Walk(n.Name, fn)
	case *DecExpression:
		Walk(n.Name, fn)
	}
}
