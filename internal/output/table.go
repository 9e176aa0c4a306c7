package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table collects rows for a borderless, column-aligned listing such as the
// targets section of `fyg info` or `fyg config show`.
type Table struct {
	headers []string
	rows    [][]string
	// statusCol is the column whose cells are styled with StatusStyle, or -1.
	statusCol int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, statusCol: -1}
}

// Row appends a row. Missing trailing cells render empty.
func (t *Table) Row(cells ...string) *Table {
	for len(cells) < len(t.headers) {
		cells = append(cells, "")
	}
	t.rows = append(t.rows, cells)
	return t
}

// StatusColumn marks column col as holding status words.
func (t *Table) StatusColumn(col int) *Table {
	t.statusCol = col
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *Table) String() string {
	header := GetStyles().Header
	cell := lipgloss.NewStyle().PaddingRight(2)

	tbl := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header.PaddingRight(2)
			case col == 0:
				return StyleNoun.PaddingRight(2)
			case col == t.statusCol && row >= 0 && row < len(t.rows) && col < len(t.rows[row]):
				return StatusStyle(t.rows[row][col]).PaddingRight(2)
			default:
				return cell
			}
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}
	return tbl.String()
}
