// Package dataset loads the numeric tables that feed the plots: model
// output grids and observation series stored as CSV or XLSX.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnknownColumn is returned by Column for a name not in the header.
var ErrUnknownColumn = errors.New("unknown column")

// ErrEmpty indicates a file with no data rows.
var ErrEmpty = errors.New("no data rows")

// CellError reports a cell that could not be read as a number.
// Row and Col count from 1, as spreadsheets do.
type CellError struct {
	Row, Col int
	Value    string
}

func (e *CellError) Error() string {
	cell, err := excelize.CoordinatesToCellName(e.Col, e.Row)
	if err != nil {
		cell = fmt.Sprintf("row %d column %d", e.Row, e.Col)
	}
	return fmt.Sprintf("cell %s: %q is not a number", cell, e.Value)
}

// Table is a rectangular grid of floats with optional column names.
// Blank cells read as NaN.
type Table struct {
	names []string
	rows  [][]float64
}

// Names returns the column names. Tables without a header row get
// "col1", "col2", ...
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Grid returns the data rows, row-major.
func (t *Table) Grid() [][]float64 {
	return t.rows
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]float64, error) {
	for c, n := range t.names {
		if n == name {
			col := make([]float64, len(t.rows))
			for r, row := range t.rows {
				col[r] = row[c]
			}
			return col, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownColumn, name)
}

// Load reads a CSV or XLSX file. The format is taken from the file header,
// not the extension.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// zip local file header, the container of every XLSX workbook
var zipMagic = []byte("PK\x03\x04")

// Parse decodes data as XLSX when it starts with a zip header, otherwise
// as CSV.
func Parse(data []byte) (*Table, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return readXLSX(data)
	}
	return readCSV(data)
}

func readCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRecords(records)
}

// readXLSX reads the first sheet of a workbook.
func readXLSX(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return fromRecords(rows)
}

// fromRecords converts string cells to a Table. The first record is a header
// when any of its cells is not numeric. Short rows, as excelize returns for
// trailing blanks, are padded with NaN.
func fromRecords(records [][]string) (*Table, error) {
	for len(records) > 0 && blank(records[len(records)-1]) {
		records = records[:len(records)-1]
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	var names []string
	first := 0
	if isHeader(records[0]) {
		for _, n := range records[0] {
			names = append(names, strings.TrimSpace(n))
		}
		first = 1
	}
	width := len(names)
	for _, rec := range records[first:] {
		width = max(width, len(rec))
	}
	if len(records) == first || width == 0 {
		return nil, ErrEmpty
	}
	for c := len(names); c < width; c++ {
		names = append(names, "col"+strconv.Itoa(c+1))
	}

	t := &Table{names: names}
	for i, rec := range records[first:] {
		row := make([]float64, width)
		for c := range row {
			row[c] = math.NaN()
			if c >= len(rec) {
				continue
			}
			s := strings.TrimSpace(rec[c])
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &CellError{Row: first + i + 1, Col: c + 1, Value: rec[c]}
			}
			row[c] = v
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func isHeader(rec []string) bool {
	for _, s := range rec {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return true
		}
	}
	return false
}

func blank(rec []string) bool {
	for _, s := range rec {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
