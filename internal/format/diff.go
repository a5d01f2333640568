package format

import (
	"fmt"
	"strings"
)

// editKind classifies a line in the edit script between the original
// and formatted text
type editKind int

const (
	editEqual editKind = iota
	editDelete
	editInsert
)

type edit struct {
	kind editKind
	text string
}

// hunk is a contiguous run of edits with its unified-diff header data
type hunk struct {
	origStart, origCount int
	newStart, newCount   int
	edits                []edit
}

// diffContext is the number of unchanged lines shown around a change
const diffContext = 3

// Diff renders a unified diff between the original source and its
// formatted form. It returns the empty string when the two are
// identical.
func Diff(filename, original, formatted string) string {
	if original == formatted {
		return ""
	}

	edits := computeEdits(splitLines(original), splitLines(formatted))
	hunks := groupHunks(edits, diffContext)
	if len(hunks) == 0 {
		return ""
	}

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\t(original)\n", filename)
	fmt.Fprintf(&out, "+++ %s\t(formatted)\n", filename)

	for _, h := range hunks {
		fmt.Fprintf(&out, "@@ -%d,%d +%d,%d @@\n", h.origStart, h.origCount, h.newStart, h.newCount)
		for _, e := range h.edits {
			switch e.kind {
			case editEqual:
				out.WriteString(" ")
			case editDelete:
				out.WriteString("-")
			case editInsert:
				out.WriteString("+")
			}
			out.WriteString(e.text)
			out.WriteString("\n")
		}
	}

	return out.String()
}

// splitLines splits text into lines without trailing newline artifacts
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// computeEdits produces an edit script from original to modified using
// a greedy line walk. The script is not always minimal, but it is
// always a valid diff, which is all the preview needs.
func computeEdits(original, modified []string) []edit {
	var edits []edit

	i, j := 0, 0
	for i < len(original) && j < len(modified) {
		switch {
		case original[i] == modified[j]:
			edits = append(edits, edit{editEqual, original[i]})
			i++
			j++
		case j+1 < len(modified) && original[i] == modified[j+1]:
			edits = append(edits, edit{editInsert, modified[j]})
			j++
		case i+1 < len(original) && original[i+1] == modified[j]:
			edits = append(edits, edit{editDelete, original[i]})
			i++
		default:
			edits = append(edits, edit{editDelete, original[i]}, edit{editInsert, modified[j]})
			i++
			j++
		}
	}
	for ; i < len(original); i++ {
		edits = append(edits, edit{editDelete, original[i]})
	}
	for ; j < len(modified); j++ {
		edits = append(edits, edit{editInsert, modified[j]})
	}

	return edits
}

// groupHunks splits the edit script into hunks, keeping up to context
// unchanged lines on each side of a change and merging changes whose
// gap fits within twice the context
func groupHunks(edits []edit, context int) []hunk {
	var changed []int
	for idx, e := range edits {
		if e.kind != editEqual {
			changed = append(changed, idx)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	// Line numbers in effect just before each edit index.
	origAt := make([]int, len(edits)+1)
	newAt := make([]int, len(edits)+1)
	o, n := 1, 1
	for idx, e := range edits {
		origAt[idx] = o
		newAt[idx] = n
		switch e.kind {
		case editEqual:
			o++
			n++
		case editDelete:
			o++
		case editInsert:
			n++
		}
	}
	origAt[len(edits)] = o
	newAt[len(edits)] = n

	var hunks []hunk
	flush := func(from, to int) {
		lo := max(0, from-context)
		hi := min(len(edits)-1, to+context)

		h := hunk{origStart: origAt[lo], newStart: newAt[lo]}
		for idx := lo; idx <= hi; idx++ {
			h.edits = append(h.edits, edits[idx])
			switch edits[idx].kind {
			case editEqual:
				h.origCount++
				h.newCount++
			case editDelete:
				h.origCount++
			case editInsert:
				h.newCount++
			}
		}
		hunks = append(hunks, h)
	}

	start, last := changed[0], changed[0]
	for _, idx := range changed[1:] {
		if idx-last > 2*context {
			flush(start, last)
			start = idx
		}
		last = idx
	}
	flush(start, last)

	return hunks
}
