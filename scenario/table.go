// Package scenario implements the scenario table model: a row-oriented
// tabular file whose header names exactly one source-language column,
// followed by zero or more target-language columns.
//
// Rows may be shorter than the header. Missing trailing cells read as
// empty strings and are materialized on write, never treated as an error.
// Row order is the unit of alignment: row i's source cell corresponds to
// row i's translated cell for every language.
package scenario

// Table is an in-memory scenario table. Header is record 0 of the file;
// Rows are records 1..N in file order.
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the cell at (row, col), or "" when the row is shorter
// than col+1 or the indices are out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// SetCell assigns value to the cell at (row, col), extending the row
// with empty cells as needed to reach col.
func (t *Table) SetCell(row, col int, value string) {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}

// RowCount returns the number of data rows (the header is not counted).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Column returns the values of one column across all data rows, in row
// order, reading missing cells as "".
func (t *Table) Column(col int) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, col)
	}
	return out
}
