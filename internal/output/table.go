package output

import (
	"fmt"
	"strings"
)

// Table is a simple styled table renderer.
type Table struct {
	headers []string
	rows    [][]string
	styles  [][]string // rendered cell text, parallel to rows
	widths  []int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{headers: headers, widths: widths}
}

// AddRow adds a row of plain values to the table.
func (t *Table) AddRow(values ...string) {
	t.AddStyledRow(values, values)
}

// AddStyledRow adds a row where rendered may carry ANSI styling while plain
// is used for width accounting.
func (t *Table) AddStyledRow(plain, rendered []string) {
	row := make([]string, len(t.headers))
	styled := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(plain) {
			row[i] = plain[i]
		}
		if i < len(rendered) {
			styled[i] = rendered[i]
		} else {
			styled[i] = row[i]
		}
		if len(row[i]) > t.widths[i] {
			t.widths[i] = len(row[i])
		}
	}
	t.rows = append(t.rows, row)
	t.styles = append(t.styles, styled)
}

// Render returns the formatted table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder

	for i, h := range t.headers {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleHeader.Render(pad(h, t.widths[i])))
	}
	sb.WriteString("\n")

	for i, w := range t.widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(StyleMuted.Render(strings.Repeat("─", w)))
	}
	sb.WriteString("\n")

	for r, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			styled := t.styles[r][i]
			sb.WriteString(styled + strings.Repeat(" ", t.widths[i]-len(cell)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Print writes the table to stdout.
func (t *Table) Print() {
	fmt.Print(t.Render())
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	return fmt.Sprintf("\n %s\n %s", StyleHeader.Render(title), StyleMuted.Render(strings.Repeat("─", 66)))
}

// pad right-pads a string to the given width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
