// Package report writes the optional summary workbook listing the
// aggregated values behind every rendered map.
package report

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/sekarsister/choropleth/internal/colorscale"
	"github.com/sekarsister/choropleth/internal/render"
)

// IndexSheet is the name of the overview sheet.
const IndexSheet = "Summary"

const maxSheetName = 31

// Entry describes one rendered map.
type Entry struct {
	File    string
	Column  string
	Year    int
	HasYear bool
	Level   string

	// Keys are the drawn regions in order; Values holds NaN for regions
	// without data.
	Keys   []string
	Values map[string]float64

	Lo, Hi float64
}

// Summary collects entries and saves them as one workbook.
type Summary struct {
	entries []Entry
}

// Add records a rendered map.
func (s *Summary) Add(e Entry) {
	s.entries = append(s.entries, e)
}

// Len reports the number of recorded maps.
func (s *Summary) Len() int { return len(s.entries) }

// Save writes the workbook to path.
func (s *Summary) Save(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", IndexSheet); err != nil {
		return fmt.Errorf("rename index sheet: %w", err)
	}

	headers := []string{"File", "Column", "Year", "Level", "Regions", "With data", "Min", "Max", "Lo", "Hi", "Sheet"}
	for i, header := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(IndexSheet, col+"1", header)
		f.SetColWidth(IndexSheet, col, col, 18)
	}

	used := map[string]bool{strings.ToLower(IndexSheet): true}
	for i, e := range s.entries {
		row := i + 2
		sheet := uniqueSheetName(strings.TrimSuffix(filepath.Base(e.File), filepath.Ext(e.File)), used)

		finite := colorscale.Finite(lookup(e.Keys, e.Values))
		f.SetCellValue(IndexSheet, fmt.Sprintf("A%d", row), filepath.Base(e.File))
		f.SetCellValue(IndexSheet, fmt.Sprintf("B%d", row), e.Column)
		if e.HasYear {
			f.SetCellValue(IndexSheet, fmt.Sprintf("C%d", row), e.Year)
		}
		f.SetCellValue(IndexSheet, fmt.Sprintf("D%d", row), e.Level)
		f.SetCellValue(IndexSheet, fmt.Sprintf("E%d", row), len(e.Keys))
		f.SetCellValue(IndexSheet, fmt.Sprintf("F%d", row), len(finite))
		if len(finite) > 0 {
			f.SetCellValue(IndexSheet, fmt.Sprintf("G%d", row), floats.Min(finite))
			f.SetCellValue(IndexSheet, fmt.Sprintf("H%d", row), floats.Max(finite))
		}
		f.SetCellValue(IndexSheet, fmt.Sprintf("I%d", row), e.Lo)
		f.SetCellValue(IndexSheet, fmt.Sprintf("J%d", row), e.Hi)
		f.SetCellValue(IndexSheet, fmt.Sprintf("K%d", row), sheet)

		if err := writeValues(f, sheet, e); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save summary workbook: %w", err)
	}
	return nil
}

func writeValues(f *excelize.File, sheet string, e Entry) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %q: %w", sheet, err)
	}
	f.SetCellValue(sheet, "A1", "Region")
	f.SetCellValue(sheet, "B1", "Value")
	f.SetCellValue(sheet, "C1", "Formatted")
	f.SetColWidth(sheet, "A", "C", 18)

	for i, key := range e.Keys {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), key)
		v, ok := e.Values[key]
		if !ok || math.IsNaN(v) {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "no data")
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), v)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), render.FormatNumber(v))
	}
	return nil
}

func lookup(keys []string, values map[string]float64) []float64 {
	out := make([]float64, 0, len(keys))
	for _, k := range keys {
		if v, ok := values[k]; ok {
			out = append(out, v)
		}
	}
	return out
}

// uniqueSheetName makes name a valid, unused worksheet name.
func uniqueSheetName(name string, used map[string]bool) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Map"
	}

	candidate := truncate(name, maxSheetName)
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		candidate = truncate(name, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
