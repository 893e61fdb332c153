package observations

import (
	"math"

	"github.com/sekarsister/choropleth/internal/regions"
)

// Level is the region granularity of an aggregate.
type Level int

const (
	MainRegions Level = iota
	Subregions
)

func (l Level) String() string {
	if l == MainRegions {
		return "main regions"
	}
	return "subregions"
}

// Aggregate is a value column summed per region key. Keys keep their
// first-seen order.
type Aggregate struct {
	Keys   []string
	Values map[string]float64

	// Unmapped lists region labels that could not be translated to the
	// requested level; their rows were dropped.
	Unmapped []string
}

func newAggregate() *Aggregate {
	return &Aggregate{Values: make(map[string]float64)}
}

// add sums v into key, skipping missing values. A key seen only with
// missing values still sums to zero.
func (a *Aggregate) add(key string, v float64) {
	if _, ok := a.Values[key]; !ok {
		a.Keys = append(a.Keys, key)
		a.Values[key] = 0
	}
	if !math.IsNaN(v) {
		a.Values[key] += v
	}
}

// Value returns the aggregate for key.
func (a *Aggregate) Value(key string) (float64, bool) {
	v, ok := a.Values[key]
	return v, ok
}

// AggregateColumn sums a value column to the requested level:
//
//   - main level from a main-region column, or from a subregion column
//     rolled up through the tables (unmapped subregions are dropped);
//   - subregion level from a subregion column, or from a main-region
//     column whose totals are replicated unchanged to each subregion.
//
// Rows with an empty region label are ignored.
func AggregateColumn(t *Table, value string, cols RegionColumns, level Level, tables *regions.Tables) (*Aggregate, error) {
	vals := t.Numeric(value)

	switch {
	case level == MainRegions && cols.Main != "":
		return groupSum(t.Strings(cols.Main), vals), nil

	case level == MainRegions && cols.Sub != "":
		agg := newAggregate()
		for i, sub := range t.Strings(cols.Sub) {
			if sub == "" {
				continue
			}
			main, ok := tables.MainOf(sub)
			if !ok {
				agg.Unmapped = append(agg.Unmapped, sub)
				continue
			}
			agg.add(main, vals[i])
		}
		return agg, nil

	case level == Subregions && cols.Sub != "":
		return groupSum(t.Strings(cols.Sub), vals), nil

	case level == Subregions && cols.Main != "":
		totals := groupSum(t.Strings(cols.Main), vals)
		inv := tables.MainToSubregions()
		agg := newAggregate()
		for _, main := range totals.Keys {
			subs, ok := inv[main]
			if !ok {
				agg.Unmapped = append(agg.Unmapped, main)
				continue
			}
			for _, sub := range subs {
				agg.add(sub, totals.Values[main])
			}
		}
		return agg, nil
	}

	return nil, ErrNoRegionColumn
}

func groupSum(keys []string, vals []float64) *Aggregate {
	agg := newAggregate()
	for i, k := range keys {
		if k == "" {
			continue
		}
		agg.add(k, vals[i])
	}
	return agg
}
