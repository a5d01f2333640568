// Caret rendering for diagnostics: the offending source line with a
// run of ^ characters under the span, gutter-numbered like compiler
// output.
package position

import (
	"fmt"
	"strings"
)

// Highlight renders the lines a span covers with caret markers
// underneath. Invalid spans and spans outside the file render as the
// empty string; the caller falls back to the bare error message.
func (sf *SourceFile) Highlight(span Span) string {
	if !span.IsValid() || span.Start.Filename != sf.Filename {
		return ""
	}
	if span.Start.Line < 1 || span.Start.Line > len(sf.Lines) {
		return ""
	}

	endLine := span.End.Line
	if endLine > len(sf.Lines) {
		endLine = len(sf.Lines)
	}

	var b strings.Builder
	for lineNum := span.Start.Line; lineNum <= endLine; lineNum++ {
		line := sf.GetLine(lineNum)
		fmt.Fprintf(&b, "%4d | %s\n", lineNum, line)

		startCol, endCol := 1, len([]rune(line))+1
		if lineNum == span.Start.Line {
			startCol = span.Start.Column
		}
		if lineNum == span.End.Line {
			endCol = span.End.Column
		}
		b.WriteString("     | ")
		writeCarets(&b, line, startCol, endCol)
		b.WriteString("\n")
	}

	return b.String()
}

// HighlightAt renders a single-character caret at a position, the shape
// lexical and syntax errors carry.
func (sf *SourceFile) HighlightAt(pos Position) string {
	return sf.Highlight(Span{
		Start: pos,
		End: Position{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column + 1,
			Offset:   pos.Offset + 1,
		},
	})
}

// writeCarets pads up to startCol (preserving tabs so the carets line
// up with tab-indented source) and writes ^ through endCol, always at
// least one.
func writeCarets(b *strings.Builder, line string, startCol, endCol int) {
	runes := []rune(line)

	for i := 1; i < startCol; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}

	n := endCol - startCol
	if n < 1 {
		n = 1
	}
	b.WriteString(strings.Repeat("^", n))
}
