package observations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrNoRegionColumn is returned when the sheet has no usable region column.
	ErrNoRegionColumn = errors.New("could not detect region columns (looked for 'Main regions' / 'Regions (t)' / 'Region')")

	// ErrNoYearColumn is returned when years are requested but the sheet has
	// no year column.
	ErrNoYearColumn = errors.New("years were requested, but no year column ('t'/'Year'/'year') was found in the sheet")
)

var (
	yearCandidates = []string{"t", "Year", "year"}
	mainCandidates = []string{"Main regions", "Main Regions", "Main region", "Main Region"}
	subCandidates  = []string{"Regions (t)", "Regions", "Region", "Subregions", "Subregion", "Regions(t)"}
)

// RegionColumns names the main-region and subregion columns of a sheet.
// Either may be empty.
type RegionColumns struct {
	Main string
	Sub  string
}

// DetectYearColumn returns the first known year header present, or "".
func DetectYearColumn(t *Table) string {
	return firstPresent(t, yearCandidates)
}

// ResolveRegionColumns validates explicitly named region columns. When
// neither is given, the columns are detected from well-known headers,
// falling back to any header mentioning "region" as the subregion column.
func ResolveRegionColumns(t *Table, main, sub string) (RegionColumns, error) {
	if main != "" || sub != "" {
		for _, name := range []string{main, sub} {
			if name != "" && !t.Has(name) {
				return RegionColumns{}, fmt.Errorf("region column %q not found in sheet", name)
			}
		}
		return RegionColumns{Main: main, Sub: sub}, nil
	}

	cols := RegionColumns{
		Main: firstPresent(t, mainCandidates),
		Sub:  firstPresent(t, subCandidates),
	}
	if cols.Main == "" && cols.Sub == "" {
		for _, h := range t.Header {
			if strings.Contains(strings.ToLower(h), "region") {
				cols.Sub = h
				break
			}
		}
	}
	if cols.Main == "" && cols.Sub == "" {
		return RegionColumns{}, ErrNoRegionColumn
	}
	return cols, nil
}

func firstPresent(t *Table, candidates []string) string {
	for _, c := range candidates {
		if t.Has(c) {
			return c
		}
	}
	return ""
}

// ExpandColumns resolves value-column arguments against the header.
// Arguments with glob metacharacters expand to every matching header in
// header order; plain names and exact header names pass through unchanged,
// present or not.
// Patterns that match nothing are returned separately.
func ExpandColumns(t *Table, args []string) (cols, unmatched []string, err error) {
	for _, arg := range args {
		if t.Has(arg) || !strings.ContainsAny(arg, "*?[{") {
			cols = append(cols, arg)
			continue
		}
		g, err := glob.Compile(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid column pattern %q: %w", arg, err)
		}
		n := len(cols)
		for _, h := range t.Header {
			if g.Match(h) {
				cols = append(cols, h)
			}
		}
		if len(cols) == n {
			unmatched = append(unmatched, arg)
		}
	}
	return cols, unmatched, nil
}
