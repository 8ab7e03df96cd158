package render

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RowKind says how one line of a split diff changed.
type RowKind string

const (
	RowEqual   RowKind = "equal"
	RowRemoved RowKind = "removed"
	RowAdded   RowKind = "added"
	RowChanged RowKind = "changed"
)

// DiffRow is one line of a side-by-side diff. A zero line number means the
// side has no line in this row.
type DiffRow struct {
	Kind    RowKind `json:"kind"`
	OldLine int     `json:"oldLine,omitempty"`
	NewLine int     `json:"newLine,omitempty"`
	Old     string  `json:"old"`
	New     string  `json:"new"`
}

// DiffResult holds the rows of a split diff plus change counts.
type DiffResult struct {
	Rows      []DiffRow `json:"rows"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}

// reports whether the two inputs differ at all
func (d DiffResult) Changed() bool {
	return d.Additions > 0 || d.Deletions > 0
}

// Diff computes a line-based split diff between the submitted code and the
// corrected code. A removal directly followed by an insertion is paired
// into changed rows.
func Diff(oldCode, newCode string) DiffResult {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(withNewline(oldCode), withNewline(newCode))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var result DiffResult
	oldNo, newNo := 0, 0

	for i := 0; i < len(diffs); i++ {
		d := diffs[i]

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for _, line := range splitLines(d.Text) {
				oldNo++
				newNo++
				result.Rows = append(result.Rows, DiffRow{
					Kind: RowEqual, OldLine: oldNo, NewLine: newNo, Old: line, New: line,
				})
			}

		case diffmatchpatch.DiffDelete:
			removed := splitLines(d.Text)

			var added []string
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				added = splitLines(diffs[i+1].Text)
				i++
			}

			result.Deletions += len(removed)
			result.Additions += len(added)

			for j := 0; j < len(removed) || j < len(added); j++ {
				row := DiffRow{}

				if j < len(removed) {
					oldNo++
					row.OldLine = oldNo
					row.Old = removed[j]
				}

				if j < len(added) {
					newNo++
					row.NewLine = newNo
					row.New = added[j]
				}

				switch {
				case row.OldLine != 0 && row.NewLine != 0:
					row.Kind = RowChanged
				case row.OldLine != 0:
					row.Kind = RowRemoved
				default:
					row.Kind = RowAdded
				}

				result.Rows = append(result.Rows, row)
			}

		case diffmatchpatch.DiffInsert:
			for _, line := range splitLines(d.Text) {
				newNo++
				result.Additions++
				result.Rows = append(result.Rows, DiffRow{
					Kind: RowAdded, NewLine: newNo, New: line,
				})
			}
		}
	}

	return result
}

// UnifiedText renders the diff as "- "/"+ "/"  " prefixed lines.
func (d DiffResult) UnifiedText() string {
	var b strings.Builder

	for _, row := range d.Rows {
		switch row.Kind {
		case RowEqual:
			fmt.Fprintf(&b, "  %s\n", row.Old)
		case RowRemoved:
			fmt.Fprintf(&b, "- %s\n", row.Old)
		case RowAdded:
			fmt.Fprintf(&b, "+ %s\n", row.New)
		case RowChanged:
			fmt.Fprintf(&b, "- %s\n", row.Old)
			fmt.Fprintf(&b, "+ %s\n", row.New)
		}
	}

	return b.String()
}

// returns a one-line "+N -M" summary
func (d DiffResult) Stats() string {
	return fmt.Sprintf("+%d -%d", d.Additions, d.Deletions)
}

// line mode treats "x" and "x\n" as different lines, so both sides are
// normalised to end in a newline
func withNewline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
