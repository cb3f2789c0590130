package matching

import "fmt"

// Table is an in-memory tabular dataset: an ordered list of column names and
// the rows read under them. Columns beyond the ones the matcher recognizes
// are carried opaquely and reappear unchanged in the output.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Record
}

// Record is a single row of a table, cell order matching the table columns.
type Record struct {
	table *Table
	cells []string
}

// NewTable creates an empty table with the given column order.
func NewTable(columns []string) *Table {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		index[name] = i
	}
	return &Table{
		columns: columns,
		index:   index,
	}
}

// Columns returns the column names in their original order.
func (t *Table) Columns() []string {
	return t.columns
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AppendRow adds a row to the table. Short rows are padded with empty cells
// to the column count, long rows are truncated to it.
func (t *Table) AppendRow(cells []string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, Record{table: t, cells: row})
}

// Rows returns the table rows in input order.
func (t *Table) Rows() []Record {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// RequireColumns returns an error naming the first missing column, so a
// misconfigured column override fails before any matching happens.
func (t *Table) RequireColumns(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return fmt.Errorf("column %q not found (existing columns: %v)", name, t.columns)
		}
	}
	return nil
}

// Get returns the cell under the named column, or an empty string when the
// table has no such column.
func (r Record) Get(name string) string {
	idx, ok := r.table.index[name]
	if !ok {
		return ""
	}
	return r.cells[idx]
}

// Cells returns the row cells in column order.
func (r Record) Cells() []string {
	return r.cells
}
