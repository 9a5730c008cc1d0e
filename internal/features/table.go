package features

import (
	"math"
	"time"
)

// Table is a timestamp-indexed feature table. Columns are aligned with
// Times; cells absent for a timestamp hold NaN.
type Table struct {
	Times   []time.Time
	columns map[string][]float64
	order   []string
}

// NewTable creates an empty table over the given sorted timestamps.
func NewTable(times []time.Time) *Table {
	return &Table{
		Times:   times,
		columns: make(map[string][]float64),
	}
}

// IsEmpty reports whether the table has no rows or no columns.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Times) == 0 || len(t.order) == 0
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Times)
}

// Columns returns column names in insertion order.
func (t *Table) Columns() []string {
	return t.order
}

// Column returns the values of a named column.
func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.columns[name]
	return col, ok
}

// SetColumn adds or replaces a column. The slice length must match the row count.
func (t *Table) SetColumn(name string, values []float64) {
	if _, exists := t.columns[name]; !exists {
		t.order = append(t.order, name)
	}
	t.columns[name] = values
}

// At returns the cell value for a column at a row, NaN when the column is
// missing.
func (t *Table) At(name string, row int) float64 {
	col, ok := t.columns[name]
	if !ok || row < 0 || row >= len(col) {
		return math.NaN()
	}
	return col[row]
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
