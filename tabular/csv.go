package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

func readTSV(r io.Reader, opts Options) (*Frame, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = '\t'
	}
	return readCSV(r, opts)
}

func writeTSV(w io.Writer, f *Frame, opts Options) error {
	if opts.Delimiter == 0 {
		opts.Delimiter = '\t'
	}
	return writeCSV(w, f, opts)
}

func readCSV(r io.Reader, opts Options) (*Frame, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular: read csv: %w", err)
	}
	if len(records) == 0 {
		return &Frame{}, nil
	}

	var columns []string
	if opts.header() {
		columns, records = records[0], records[1:]
	} else {
		columns = make([]string, len(records[0]))
		for i := range columns {
			columns[i] = strconv.Itoa(i)
		}
	}

	rows := make([][]any, len(records))
	for i, rec := range records {
		row := make([]any, len(rec))
		for j, cell := range rec {
			row[j] = inferCell(cell)
		}
		rows[i] = row
	}
	return &Frame{Columns: columns, Rows: rows}, nil
}

func writeCSV(w io.Writer, f *Frame, opts Options) error {
	if err := f.Validate(); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	if opts.header() {
		if err := cw.Write(f.Columns); err != nil {
			return fmt.Errorf("tabular: write csv: %w", err)
		}
	}
	rec := make([]string, len(f.Columns))
	for _, row := range f.Rows {
		for j, v := range row {
			rec[j] = formatCell(v)
		}
		if len(rec) == 1 && rec[0] == "" {
			// A lone empty field is a blank line, which readers skip.
			if err := writeQuotedEmpty(cw, w); err != nil {
				return fmt.Errorf("tabular: write csv: %w", err)
			}
			continue
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("tabular: write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeQuotedEmpty(cw *csv.Writer, w io.Writer) error {
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"\"\n")
	return err
}

// inferCell recovers a typed value from a delimited-text cell. Empty cells
// are missing values.
func inferCell(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if looksNumeric(s) {
		if fl, err := strconv.ParseFloat(s, 64); err == nil {
			return fl
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}

func looksNumeric(s string) bool {
	for _, c := range s {
		if c >= '0' && c <= '9' {
			return true
		}
	}
	return false
}

// formatCell renders a cell so that inferCell maps it back to the same type.
// Integral floats keep a trailing ".0".
func formatCell(v any) string {
	switch x := Normalize(v).(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !math.IsInf(x, 0) && !math.IsNaN(x) && !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(x)
	}
}
