package position

import (
	"testing"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		pos      Position
		isValid  bool
	}{
		{
			name: "Valid position with filename",
			pos: Position{
				Filename: "test.as",
				Line:     10,
				Column:   5,
				Offset:   100,
			},
			isValid:  true,
			expected: "test.as:10:5",
		},
		{
			name: "Valid position without filename",
			pos: Position{
				Line:   3,
				Column: 1,
				Offset: 12,
			},
			isValid:  true,
			expected: "3:1",
		},
		{
			name: "Filename reduced to base",
			pos: Position{
				Filename: "examples/loops/countdown.as",
				Line:     2,
				Column:   7,
				Offset:   20,
			},
			isValid:  true,
			expected: "countdown.as:2:7",
		},
		{
			name:     "Zero position is invalid",
			pos:      Position{},
			isValid:  false,
			expected: "0:0",
		},
		{
			name: "Negative offset is invalid",
			pos: Position{
				Line:   1,
				Column: 1,
				Offset: -1,
			},
			isValid:  false,
			expected: "1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.isValid {
				t.Errorf("IsValid() = %v, want %v", got, tt.isValid)
			}
			if got := tt.pos.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPositionOrdering(t *testing.T) {
	pos1 := Position{Filename: "test.as", Line: 1, Column: 5, Offset: 4}
	pos2 := Position{Filename: "test.as", Line: 1, Column: 10, Offset: 9}

	if !pos1.Before(pos2) {
		t.Error("pos1 should be before pos2")
	}
	if pos2.Before(pos1) {
		t.Error("pos2 should not be before pos1")
	}
	if !pos2.After(pos1) {
		t.Error("pos2 should be after pos1")
	}
	if pos1.After(pos2) {
		t.Error("pos1 should not be after pos2")
	}
	if pos1.Before(pos1) || pos1.After(pos1) {
		t.Error("a position is neither before nor after itself")
	}
}

func TestSpanString(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		span     Span
	}{
		{
			name: "Single-line span with filename",
			span: Span{
				Start: Position{Filename: "test.as", Line: 1, Column: 5, Offset: 4},
				End:   Position{Filename: "test.as", Line: 1, Column: 10, Offset: 9},
			},
			expected: "test.as:1:5-10",
		},
		{
			name: "Multi-line span with filename",
			span: Span{
				Start: Position{Filename: "test.as", Line: 1, Column: 5, Offset: 4},
				End:   Position{Filename: "test.as", Line: 3, Column: 2, Offset: 20},
			},
			expected: "test.as:1:5-3:2",
		},
		{
			name: "Single-line span without filename",
			span: Span{
				Start: Position{Line: 2, Column: 1, Offset: 10},
				End:   Position{Line: 2, Column: 6, Offset: 15},
			},
			expected: "2:1-6",
		},
		{
			name: "Multi-line span without filename",
			span: Span{
				Start: Position{Line: 1, Column: 1, Offset: 0},
				End:   Position{Line: 4, Column: 2, Offset: 30},
			},
			expected: "1:1-4:2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSpanValidity(t *testing.T) {
	valid := Span{
		Start: Position{Filename: "test.as", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "test.as", Line: 1, Column: 5, Offset: 4},
	}
	if !valid.IsValid() {
		t.Error("span should be valid")
	}

	backwards := Span{
		Start: Position{Filename: "test.as", Line: 1, Column: 5, Offset: 4},
		End:   Position{Filename: "test.as", Line: 1, Column: 1, Offset: 0},
	}
	if backwards.IsValid() {
		t.Error("backwards span should be invalid")
	}

	crossFile := Span{
		Start: Position{Filename: "a.as", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "b.as", Line: 1, Column: 5, Offset: 4},
	}
	if crossFile.IsValid() {
		t.Error("cross-file span should be invalid")
	}
}

func TestSpanContains(t *testing.T) {
	span := Span{
		Start: Position{Filename: "test.as", Line: 1, Column: 5, Offset: 4},
		End:   Position{Filename: "test.as", Line: 1, Column: 10, Offset: 9},
	}

	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{
			"position inside span",
			Position{Filename: "test.as", Line: 1, Column: 7, Offset: 6},
			true,
		},
		{
			"start is inclusive",
			Position{Filename: "test.as", Line: 1, Column: 5, Offset: 4},
			true,
		},
		{
			"end is exclusive",
			Position{Filename: "test.as", Line: 1, Column: 10, Offset: 9},
			false,
		},
		{
			"position before span",
			Position{Filename: "test.as", Line: 1, Column: 1, Offset: 0},
			false,
		},
		{
			"position in other file",
			Position{Filename: "other.as", Line: 1, Column: 7, Offset: 6},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := span.Contains(tt.pos); got != tt.expected {
				t.Errorf("Contains(%v) = %v, want %v", tt.pos, got, tt.expected)
			}
		})
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{
		Start: Position{Filename: "test.as", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "test.as", Line: 1, Column: 5, Offset: 4},
	}
	b := Span{
		Start: Position{Filename: "test.as", Line: 1, Column: 8, Offset: 7},
		End:   Position{Filename: "test.as", Line: 2, Column: 3, Offset: 15},
	}

	union := a.Union(b)
	if union.Start != a.Start {
		t.Errorf("union start = %v, want %v", union.Start, a.Start)
	}
	if union.End != b.End {
		t.Errorf("union end = %v, want %v", union.End, b.End)
	}

	// Union is symmetric.
	if got := b.Union(a); got != union {
		t.Errorf("union should be symmetric: %v vs %v", got, union)
	}

	// Union with an invalid span returns the valid one.
	if got := a.Union(Span{}); got != a {
		t.Errorf("union with invalid span = %v, want %v", got, a)
	}
	if got := (Span{}).Union(b); got != b {
		t.Errorf("union with invalid receiver = %v, want %v", got, b)
	}
}

func TestSpanBetween(t *testing.T) {
	first := Span{
		Start: Position{Filename: "test.as", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "test.as", Line: 1, Column: 3, Offset: 2},
	}
	last := Span{
		Start: Position{Filename: "test.as", Line: 3, Column: 1, Offset: 10},
		End:   Position{Filename: "test.as", Line: 3, Column: 2, Offset: 11},
	}

	span := SpanBetween(first, last)
	if span.Start != first.Start {
		t.Errorf("start = %v, want %v", span.Start, first.Start)
	}
	if span.End != last.End {
		t.Errorf("end = %v, want %v", span.End, last.End)
	}
}

func TestSpanLength(t *testing.T) {
	span := Span{
		Start: Position{Filename: "test.as", Line: 1, Column: 1, Offset: 3},
		End:   Position{Filename: "test.as", Line: 1, Column: 8, Offset: 10},
	}
	if got := span.Length(); got != 7 {
		t.Errorf("Length() = %d, want 7", got)
	}
	if got := (Span{}).Length(); got != 0 {
		t.Errorf("invalid span Length() = %d, want 0", got)
	}
}

func TestSourceFile(t *testing.T) {
	content := "x -> 1\nprint x\n"
	file := NewSourceFile("test.as", content)

	if got := file.GetLine(1); got != "x -> 1" {
		t.Errorf("GetLine(1) = %q, want %q", got, "x -> 1")
	}
	if got := file.GetLine(2); got != "print x" {
		t.Errorf("GetLine(2) = %q, want %q", got, "print x")
	}
	if got := file.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
	if got := file.GetLine(99); got != "" {
		t.Errorf("GetLine(99) = %q, want empty", got)
	}
}

func TestSourceFileSpanText(t *testing.T) {
	content := "x -> 1\nprint x\n"
	file := NewSourceFile("test.as", content)

	span := Span{
		Start: Position{Filename: "test.as", Line: 2, Column: 1, Offset: 7},
		End:   Position{Filename: "test.as", Line: 2, Column: 6, Offset: 12},
	}
	if got := file.GetSpanText(span); got != "print" {
		t.Errorf("GetSpanText = %q, want %q", got, "print")
	}

	wrongFile := Span{
		Start: Position{Filename: "other.as", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "other.as", Line: 1, Column: 2, Offset: 1},
	}
	if got := file.GetSpanText(wrongFile); got != "" {
		t.Errorf("GetSpanText for wrong file = %q, want empty", got)
	}

	outOfRange := Span{
		Start: Position{Filename: "test.as", Line: 9, Column: 1, Offset: 100},
		End:   Position{Filename: "test.as", Line: 9, Column: 5, Offset: 104},
	}
	if got := file.GetSpanText(outOfRange); got != "" {
		t.Errorf("GetSpanText out of range = %q, want empty", got)
	}
}
