// Package regions holds the lookup tables that group countries into
// subregions and subregions into main regions.
package regions

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Subregion is one row of the lookup table.
type Subregion struct {
	Code      string   `yaml:"code"`
	Main      string   `yaml:"main"`
	Countries []string `yaml:"countries"`
}

// Tables maps subregion codes to main-region codes and to member countries.
// Subregions keep their declaration order so every derived listing is
// deterministic.
type Tables struct {
	subregions []Subregion
	index      map[string]int
}

// ErrInvalidTables is returned when a table file is inconsistent.
var ErrInvalidTables = errors.New("invalid region tables")

// New validates the rows and builds the lookup indexes.
func New(rows []Subregion) (*Tables, error) {
	t := &Tables{
		subregions: make([]Subregion, 0, len(rows)),
		index:      make(map[string]int, len(rows)),
	}
	for i, row := range rows {
		row.Code = strings.TrimSpace(row.Code)
		row.Main = strings.TrimSpace(row.Main)
		if row.Code == "" {
			return nil, fmt.Errorf("%w: row %d has no code", ErrInvalidTables, i+1)
		}
		if row.Main == "" {
			return nil, fmt.Errorf("%w: subregion %q has no main region", ErrInvalidTables, row.Code)
		}
		if _, dup := t.index[row.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate subregion %q", ErrInvalidTables, row.Code)
		}
		row.Countries = append([]string(nil), row.Countries...)
		t.index[row.Code] = len(t.subregions)
		t.subregions = append(t.subregions, row)
	}
	if len(t.subregions) == 0 {
		return nil, fmt.Errorf("%w: no subregions", ErrInvalidTables)
	}
	return t, nil
}

type tableFile struct {
	Subregions []Subregion `yaml:"subregions"`
}

// LoadFile reads replacement tables from a YAML file of the form
//
//	subregions:
//	  - code: Brazil
//	    main: LAM
//	    countries: [Brazil]
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region tables: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse region tables %s: %w", path, err)
	}
	return New(f.Subregions)
}

// WriteYAML writes the tables in the format read by LoadFile.
func (t *Tables) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tableFile{Subregions: t.subregions}); err != nil {
		return fmt.Errorf("encode region tables: %w", err)
	}
	return enc.Close()
}

// Subregions returns the subregion codes in table order.
func (t *Tables) Subregions() []string {
	return lo.Map(t.subregions, func(s Subregion, _ int) string { return s.Code })
}

// MainRegions returns the main-region codes in order of first appearance.
func (t *Tables) MainRegions() []string {
	return lo.Uniq(lo.Map(t.subregions, func(s Subregion, _ int) string { return s.Main }))
}

// MainOf returns the main region a subregion belongs to.
func (t *Tables) MainOf(code string) (string, bool) {
	i, ok := t.index[code]
	if !ok {
		return "", false
	}
	return t.subregions[i].Main, true
}

// Countries returns the member countries of a subregion.
func (t *Tables) Countries(code string) []string {
	i, ok := t.index[code]
	if !ok {
		return nil
	}
	return t.subregions[i].Countries
}

// MainToSubregions inverts the subregion to main-region mapping.
func (t *Tables) MainToSubregions() map[string][]string {
	out := make(map[string][]string)
	for _, s := range t.subregions {
		out[s.Main] = append(out[s.Main], s.Code)
	}
	return out
}

// MainRegionCountries returns the countries of every subregion under main.
func (t *Tables) MainRegionCountries(main string) []string {
	var countries []string
	for _, s := range t.subregions {
		if s.Main == main {
			countries = append(countries, s.Countries...)
		}
	}
	return countries
}

// Suggest returns the known subregion code closest to code, or "" when
// nothing is reasonably similar.
func (t *Tables) Suggest(code string) string {
	return closest(code, t.Subregions())
}

// SuggestMain is Suggest over the main-region codes.
func (t *Tables) SuggestMain(code string) string {
	return closest(code, t.MainRegions())
}

// DescribeUnmapped formats unmapped subregion codes for a warning, sorted,
// with a suggestion appended where one exists.
func (t *Tables) DescribeUnmapped(codes []string) []string {
	return describe(codes, t.Suggest)
}

// DescribeUnmappedMain is DescribeUnmapped for main-region codes.
func (t *Tables) DescribeUnmappedMain(codes []string) []string {
	return describe(codes, t.SuggestMain)
}

func closest(code string, candidates []string) string {
	best, bestScore := "", 0.6
	for _, c := range candidates {
		score := levenshtein.Match(strings.ToLower(code), strings.ToLower(c), nil)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

func describe(codes []string, suggest func(string) string) []string {
	codes = lo.Uniq(codes)
	sort.Strings(codes)
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if s := suggest(c); s != "" {
			out = append(out, fmt.Sprintf("%q (did you mean %q?)", c, s))
			continue
		}
		out = append(out, fmt.Sprintf("%q", c))
	}
	return out
}
