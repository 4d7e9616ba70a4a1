package tabular

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Frame is a table of rows under named columns. Cells hold nil, bool,
// int64, float64, string or any other value a format can carry.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// NewFrame builds a Frame and normalizes numeric cells (Go int kinds become
// int64, float32 becomes float64) so frames compare equal after a round trip.
func NewFrame(columns []string, rows ...[]any) *Frame {
	f := &Frame{Columns: append([]string(nil), columns...), Rows: make([][]any, len(rows))}
	for i, row := range rows {
		f.Rows[i] = normalizeRow(row)
	}
	return f
}

// FromColumns builds a Frame from column-major data. Columns must have equal
// lengths.
func FromColumns(columns []string, data map[string][]any) (*Frame, error) {
	n := -1
	for _, c := range columns {
		vals, ok := data[c]
		if !ok {
			return nil, fmt.Errorf("tabular: no data for column %q", c)
		}
		if n >= 0 && len(vals) != n {
			return nil, fmt.Errorf("tabular: column %q has %d values, expected %d", c, len(vals), n)
		}
		n = len(vals)
	}
	if n < 0 {
		n = 0
	}
	rows := make([][]any, n)
	for i := range rows {
		row := make([]any, len(columns))
		for j, c := range columns {
			row[j] = data[c][i]
		}
		rows[i] = row
	}
	return NewFrame(columns, rows...), nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Rows) }

// Column returns the values of the named column.
func (f *Frame) Column(name string) ([]any, bool) {
	idx := f.index(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// Select returns a new Frame holding only the named columns, in that order.
func (f *Frame) Select(columns ...string) (*Frame, error) {
	idx := make([]int, len(columns))
	for i, c := range columns {
		idx[i] = f.index(c)
		if idx[i] < 0 {
			return nil, fmt.Errorf("tabular: unknown column %q", c)
		}
	}
	rows := make([][]any, len(f.Rows))
	for i, row := range f.Rows {
		out := make([]any, len(idx))
		for j, k := range idx {
			out[j] = row[k]
		}
		rows[i] = out
	}
	return &Frame{Columns: append([]string(nil), columns...), Rows: rows}, nil
}

// Validate checks that column names are unique and non-empty and that every
// row has one cell per column.
func (f *Frame) Validate() error {
	seen := make(map[string]bool, len(f.Columns))
	for _, c := range f.Columns {
		if c == "" {
			return fmt.Errorf("tabular: empty column name")
		}
		if seen[c] {
			return fmt.Errorf("tabular: duplicate column %q", c)
		}
		seen[c] = true
	}
	for i, row := range f.Rows {
		if len(row) != len(f.Columns) {
			return fmt.Errorf("tabular: row %d has %d cells, expected %d", i, len(row), len(f.Columns))
		}
	}
	return nil
}

// Equal reports whether both frames hold the same columns and cells.
func (f *Frame) Equal(o *Frame) bool {
	if f == nil || o == nil {
		return f == o
	}
	if len(f.Columns) != len(o.Columns) || len(f.Rows) != len(o.Rows) {
		return false
	}
	for i := range f.Columns {
		if f.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for i := range f.Rows {
		if !reflect.DeepEqual(normalizeRow(f.Rows[i]), normalizeRow(o.Rows[i])) {
			return false
		}
	}
	return true
}

// String renders the frame as an aligned text table for debugging.
func (f *Frame) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(f.Columns, "\t"))
	for _, row := range f.Rows {
		b.WriteByte('\n')
		for j, v := range row {
			if j > 0 {
				b.WriteByte('\t')
			}
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

func (f *Frame) index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func normalizeRow(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = Normalize(v)
	}
	return out
}

// Normalize maps decoded or user-supplied scalars onto the canonical cell
// types: all signed and unsigned integers that fit become int64, float32
// becomes float64 and json.Number becomes int64 or float64.
func Normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return uintToInt(n)
	case float32:
		return float64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if fl, err := n.Float64(); err == nil {
			return fl
		}
		return n.String()
	}
	return v
}

func uintToInt(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return u
}
