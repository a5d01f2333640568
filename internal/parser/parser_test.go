package parser

import (
	"errors"
	"testing"

	"github.com/aslang-lang/aslang/internal/ast"
	"github.com/aslang-lang/aslang/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()

	program, err := ParseSource(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return program
}

func TestEmptyProgram(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty source", ""},
		{"whitespace only", "  \n\t\n"},
		{"comment only", "// nothing here\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := parseProgram(t, tt.input)
			if len(program.Statements) != 0 {
				t.Errorf("expected empty program, got %d statements", len(program.Statements))
			}
		})
	}
}

func TestAssignStatement(t *testing.T) {
	program := parseProgram(t, "x -> 5")
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}

	assign, ok := program.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %T", program.Statements[0])
	}
	if assign.Name.Value != "x" {
		t.Errorf("name wrong. expected=%q, got=%q", "x", assign.Name.Value)
	}

	value, ok := assign.Value.(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement value, got %T", assign.Value)
	}
	num, ok := value.Expression.(*ast.NumberLiteral)
	if !ok || num.Literal != "5" {
		t.Errorf("value wrong. got=%s", value.Expression)
	}
}

func TestAssignChainsRight(t *testing.T) {
	program := parseProgram(t, "x -> y -> 5")

	outer, ok := program.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected AssignStatement, got %T", program.Statements[0])
	}
	if outer.Name.Value != "x" {
		t.Errorf("outer name wrong. got=%q", outer.Name.Value)
	}

	inner, ok := outer.Value.(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected nested AssignStatement, got %T", outer.Value)
	}
	if inner.Name.Value != "y" {
		t.Errorf("inner name wrong. got=%q", inner.Name.Value)
	}
}

// Assignment and print take full statements as operands, so the two
// keywords nest in either order.
func TestStatementOperandNesting(t *testing.T) {
	t.Run("assign nests print", func(t *testing.T) {
		program := parseProgram(t, "x -> print 5")

		assign, ok := program.Statements[0].(*ast.AssignStatement)
		if !ok {
			t.Fatalf("expected AssignStatement, got %T", program.Statements[0])
		}
		if _, ok := assign.Value.(*ast.PrintStatement); !ok {
			t.Fatalf("expected PrintStatement value, got %T", assign.Value)
		}
	})

	t.Run("print nests assign", func(t *testing.T) {
		program := parseProgram(t, "print x -> 5")

		print, ok := program.Statements[0].(*ast.PrintStatement)
		if !ok {
			t.Fatalf("expected PrintStatement, got %T", program.Statements[0])
		}
		if _, ok := print.Target.(*ast.AssignStatement); !ok {
			t.Fatalf("expected AssignStatement target, got %T", print.Target)
		}
	})

	t.Run("input nests assign", func(t *testing.T) {
		program := parseProgram(t, "input x -> 0")

		in, ok := program.Statements[0].(*ast.InputStatement)
		if !ok {
			t.Fatalf("expected InputStatement, got %T", program.Statements[0])
		}
		if _, ok := in.Target.(*ast.AssignStatement); !ok {
			t.Fatalf("expected AssignStatement target, got %T", in.Target)
		}
	})
}

func TestPrintStatement(t *testing.T) {
	program := parseProgram(t, `print "Hello, World!"`)

	print, ok := program.Statements[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("expected PrintStatement, got %T", program.Statements[0])
	}

	target, ok := print.Target.(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement target, got %T", print.Target)
	}
	str, ok := target.Expression.(*ast.StringLiteral)
	if !ok || str.Value != "Hello, World!" {
		t.Errorf("target wrong. got=%s", target.Expression)
	}
}

func TestIfStatementForms(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hasElif bool
		hasElse bool
	}{
		{"if only", "if x { pass }", false, false},
		{"if else", "if x { pass } else { break }", false, true},
		{"if elif", "if x { pass } elif y { break }", true, false},
		{"if elif else", "if x { pass } elif y { pass } else { break }", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := parseProgram(t, tt.input)
			if len(program.Statements) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(program.Statements))
			}

			stmt, ok := program.Statements[0].(*ast.IfStatement)
			if !ok {
				t.Fatalf("expected IfStatement, got %T", program.Statements[0])
			}

			if got := stmt.ElifCond != nil; got != tt.hasElif {
				t.Errorf("elif presence wrong. expected=%v, got=%v", tt.hasElif, got)
			}
			if got := stmt.ElifBody != nil; got != tt.hasElif {
				t.Errorf("elif body presence wrong. expected=%v, got=%v", tt.hasElif, got)
			}
			if got := stmt.Else != nil; got != tt.hasElse {
				t.Errorf("else presence wrong. expected=%v, got=%v", tt.hasElse, got)
			}
		})
	}
}

// An else after an inner if binds to the inner if: clauses attach to
// the if whose '}' they immediately follow.
func TestDanglingElseBindsInner(t *testing.T) {
	program := parseProgram(t, "if a { if b { pass } else { break } }")

	outer, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %T", program.Statements[0])
	}
	if outer.Else != nil {
		t.Error("outer if should have no else")
	}
	if len(outer.Then.Statements) != 1 {
		t.Fatalf("expected 1 statement in outer body, got %d", len(outer.Then.Statements))
	}

	inner, ok := outer.Then.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected inner IfStatement, got %T", outer.Then.Statements[0])
	}
	if inner.Else == nil {
		t.Error("inner if should own the else")
	}
}

func TestWhileStatement(t *testing.T) {
	program := parseProgram(t, "while i < 10 do { ++i }")

	while, ok := program.Statements[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("expected WhileStatement, got %T", program.Statements[0])
	}
	if got := while.Cond.String(); got != "(i < 10)" {
		t.Errorf("condition wrong. expected=%q, got=%q", "(i < 10)", got)
	}
	if len(while.Body.Statements) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(while.Body.Statements))
	}
}

func TestPassAndBreak(t *testing.T) {
	program := parseProgram(t, "while x do { pass\nbreak }")

	while := program.Statements[0].(*ast.WhileStatement)
	if len(while.Body.Statements) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(while.Body.Statements))
	}
	if _, ok := while.Body.Statements[0].(*ast.PassStatement); !ok {
		t.Errorf("expected PassStatement, got %T", while.Body.Statements[0])
	}
	if _, ok := while.Body.Statements[1].(*ast.BreakStatement); !ok {
		t.Errorf("expected BreakStatement, got %T", while.Body.Statements[1])
	}
}

func TestArrayAssignments(t *testing.T) {
	t.Run("1d", func(t *testing.T) {
		program := parseProgram(t, "arr[2] -> 9")

		assign, ok := program.Statements[0].(*ast.ArrayAssign1D)
		if !ok {
			t.Fatalf("expected ArrayAssign1D, got %T", program.Statements[0])
		}
		if assign.Name.Value != "arr" {
			t.Errorf("name wrong. got=%q", assign.Name.Value)
		}
		if got := assign.Index.String(); got != "2" {
			t.Errorf("index wrong. got=%q", got)
		}
		if got := assign.Value.String(); got != "9" {
			t.Errorf("value wrong. got=%q", got)
		}
	})

	t.Run("2d", func(t *testing.T) {
		program := parseProgram(t, "grid[i][j] -> v + 1")

		assign, ok := program.Statements[0].(*ast.ArrayAssign2D)
		if !ok {
			t.Fatalf("expected ArrayAssign2D, got %T", program.Statements[0])
		}
		if got := assign.Row.String(); got != "i" {
			t.Errorf("row wrong. got=%q", got)
		}
		if got := assign.Col.String(); got != "j" {
			t.Errorf("col wrong. got=%q", got)
		}
		if got := assign.Value.String(); got != "(v + 1)" {
			t.Errorf("value wrong. got=%q", got)
		}
	})

	t.Run("computed index", func(t *testing.T) {
		program := parseProgram(t, "arr[a + 1] -> b * 2")

		assign := program.Statements[0].(*ast.ArrayAssign1D)
		if got := assign.Index.String(); got != "(a + 1)" {
			t.Errorf("index wrong. got=%q", got)
		}
		if got := assign.Value.String(); got != "(b * 2)" {
			t.Errorf("value wrong. got=%q", got)
		}
	})

	t.Run("nested access in index", func(t *testing.T) {
		program := parseProgram(t, "m[a[0]] -> 1")

		assign, ok := program.Statements[0].(*ast.ArrayAssign1D)
		if !ok {
			t.Fatalf("expected ArrayAssign1D, got %T", program.Statements[0])
		}
		if _, ok := assign.Index.(*ast.ArrayAccess1D); !ok {
			t.Errorf("expected ArrayAccess1D index, got %T", assign.Index)
		}
	})

	t.Run("access without arrow stays an expression", func(t *testing.T) {
		program := parseProgram(t, "arr[2]")

		stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
		if !ok {
			t.Fatalf("expected ExpressionStatement, got %T", program.Statements[0])
		}
		if _, ok := stmt.Expression.(*ast.ArrayAccess1D); !ok {
			t.Errorf("expected ArrayAccess1D, got %T", stmt.Expression)
		}
	})

	t.Run("2d access without arrow stays an expression", func(t *testing.T) {
		program := parseProgram(t, "a[1][2]")

		stmt := program.Statements[0].(*ast.ExpressionStatement)
		access, ok := stmt.Expression.(*ast.ArrayAccess2D)
		if !ok {
			t.Fatalf("expected ArrayAccess2D, got %T", stmt.Expression)
		}
		if got := access.String(); got != "a[1][2]" {
			t.Errorf("access wrong. got=%q", got)
		}
	})
}

func TestStatementOrder(t *testing.T) {
	program := parseProgram(t, `
x -> 1
y -> 2
print x + y
`)

	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}

	expected := []string{"x -> 1", "y -> 2", "print (x + y)"}
	for i, want := range expected {
		if got := program.Statements[i].String(); got != want {
			t.Errorf("statements[%d] wrong. expected=%q, got=%q", i, want, got)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"missing closing brace", "if x { pass", "'}'"},
		{"empty block", "if x { }", "statement"},
		{"missing do", "while x { pass }", "'do'"},
		{"missing block open", "if x pass }", "'{'"},
		{"dangling arrow", "x ->", "expression"},
		{"unclosed paren", "(1 + 2", "')'"},
		{"empty parens", "()", "expression"},
		{"empty list", "[]", "expression"},
		{"trailing comma", "[1, ]", "expression"},
		{"increment needs a name", "++5", "name"},
		{"bare array keyword", "array", "'['"},
		{"dangling operator", "1 +", "expression"},
		{"orphan elif", "elif x { pass }", "expression"},
		{"orphan else", "else { pass }", "expression"},
		{"gap inside index", "a[1 2] -> 3", "']'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := ParseSource(tt.input)
			if err == nil {
				t.Fatalf("expected error, got program %s", program)
			}
			if program != nil {
				t.Error("expected nil program on error")
			}

			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if synErr.Expected != tt.expected {
				t.Errorf("expected field wrong. expected=%q, got=%q", tt.expected, synErr.Expected)
			}
		})
	}
}

func TestMissingBraceReportsEndOfInput(t *testing.T) {
	_, err := ParseFile("loop.as", "if x { pass")

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if synErr.Found.Type != lexer.TokenEOF {
		t.Errorf("found token wrong. got=%q", synErr.Found.Type)
	}
	if synErr.Pos.Line != 1 || synErr.Pos.Column != 12 {
		t.Errorf("position wrong. got=%s", synErr.Pos)
	}

	msg := err.Error()
	want := "syntax error at loop.as:1:12: expected '}', found end of input"
	if msg != want {
		t.Errorf("message wrong.\nexpected=%q\ngot=%q", want, msg)
	}
}

func TestLexErrorPropagation(t *testing.T) {
	_, err := ParseSource("x = 5")
	if err == nil {
		t.Fatal("expected error")
	}

	var lexErr *lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.LexError, got %T", err)
	}
}

func TestParseFromTokenBuffer(t *testing.T) {
	tokens, err := lexer.New("x -> 1").Tokenize()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	program, err := New(tokens).Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(program.Statements) != 1 {
		t.Errorf("expected 1 statement, got %d", len(program.Statements))
	}

	// New normalizes a missing EOF sentinel.
	program, err = New(nil).Parse()
	if err != nil {
		t.Fatalf("unexpected error on empty buffer: %v", err)
	}
	if len(program.Statements) != 0 {
		t.Errorf("expected empty program, got %d statements", len(program.Statements))
	}
}

func TestStatementSpans(t *testing.T) {
	program := parseProgram(t, "while i < 3 do {\n\tprint i\n}")

	while := program.Statements[0].(*ast.WhileStatement)
	span := while.GetSpan()
	if span.Start.Line != 1 || span.Start.Column != 1 {
		t.Errorf("start wrong. got=%s", span.Start)
	}
	if span.End.Line != 3 {
		t.Errorf("end line wrong. got=%d", span.End.Line)
	}

	inner := while.Body.Statements[0].GetSpan()
	if inner.Start.Line != 2 {
		t.Errorf("inner start line wrong. got=%d", inner.Start.Line)
	}
}
