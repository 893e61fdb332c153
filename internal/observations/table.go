// Package observations reads the input sheet and aggregates its value
// columns to region level.
package observations

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned for a sheet without a header row.
var ErrEmptySheet = errors.New("sheet has no header row")

// Table is a sheet as read: a header row and string cells. Every row has
// as many cells as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadSheet reads one sheet of a workbook. Files with a .csv extension are
// read as comma-separated text and the sheet name is ignored.
func ReadSheet(path, sheet string) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, err = readCSV(path)
	} else {
		records, err = readWorkbook(path, sheet)
	}
	if err != nil {
		return nil, err
	}
	return newTable(records)
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func newTable(records [][]string) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmptySheet
	}
	t := &Table{Header: records[0]}
	width := len(t.Header)
	for _, record := range records[1:] {
		row := make([]string, width)
		copy(row, record)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Index returns the position of a column, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Has reports whether the header contains name.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// TrimColumn strips surrounding whitespace from every cell of a column.
func (t *Table) TrimColumn(name string) {
	i := t.Index(name)
	if i < 0 {
		return
	}
	for _, row := range t.Rows {
		row[i] = strings.TrimSpace(row[i])
	}
}

// Strings returns the cells of a column.
func (t *Table) Strings(name string) []string {
	i := t.Index(name)
	out := make([]string, len(t.Rows))
	if i < 0 {
		return out
	}
	for r, row := range t.Rows {
		out[r] = row[i]
	}
	return out
}

// Numeric returns a column coerced to numbers. Cells that do not parse are
// NaN.
func (t *Table) Numeric(name string) []float64 {
	cells := t.Strings(name)
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = ParseNumber(c)
	}
	return out
}

// ParseNumber converts a cell to a float, NaN when it is not numeric.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// FilterYear keeps the rows whose year column equals year.
func (t *Table) FilterYear(col string, year int) *Table {
	out := &Table{Header: t.Header}
	for i, v := range t.Numeric(col) {
		if v == float64(year) {
			out.Rows = append(out.Rows, t.Rows[i])
		}
	}
	return out
}
