// Package choropleth drives one rendering run: it reads the observation
// sheet, aggregates each value column per year, joins the totals to region
// polygons and writes one map per column and year.
package choropleth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/samber/lo"

	"github.com/sekarsister/choropleth/internal/basemap"
	"github.com/sekarsister/choropleth/internal/colorscale"
	"github.com/sekarsister/choropleth/internal/observations"
	"github.com/sekarsister/choropleth/internal/regions"
	"github.com/sekarsister/choropleth/internal/render"
	"github.com/sekarsister/choropleth/internal/report"
)

// SummaryFile is the workbook name written when Options.Summary is set.
const SummaryFile = "summary.xlsx"

// ErrNoColumns is returned when no value column was requested.
var ErrNoColumns = errors.New("at least one value column is required")

// Options are the inputs of a run.
type Options struct {
	Input   string
	Sheet   string
	Columns []string
	OutDir  string

	// MainRegions selects main-region maps; otherwise subregions are drawn.
	MainRegions bool

	// Years filters the sheet; empty draws every row at once.
	Years []int

	// MainCol and SubCol name the region columns explicitly.
	MainCol string
	SubCol  string

	Summary bool
}

// WorldLoader provides the country basemap.
type WorldLoader interface {
	Load(ctx context.Context) (*basemap.World, error)
}

// Deps are the collaborators of a run.
type Deps struct {
	Tables   *regions.Tables
	Basemap  WorldLoader
	Renderer *render.Renderer
	Logger   *slog.Logger
}

// Skip records a column or year that produced no map.
type Skip struct {
	Column  string
	Year    int
	HasYear bool
	Reason  string
}

// Result lists what a run produced.
type Result struct {
	Written []string
	Skipped []Skip

	// Summary is the summary workbook path, if one was written.
	Summary string
}

type job struct {
	year    int
	hasYear bool
}

// Run executes the pipeline. Structural problems (unreadable input, no
// region column, no basemap) abort the run; per-column and per-year
// problems are logged and recorded in the result.
func Run(ctx context.Context, opts Options, deps Deps) (*Result, error) {
	log := deps.Logger
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	tbl, err := observations.ReadSheet(opts.Input, opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	cols, err := observations.ResolveRegionColumns(tbl, opts.MainCol, opts.SubCol)
	if err != nil {
		return nil, err
	}
	yearCol := observations.DetectYearColumn(tbl)
	if len(opts.Years) > 0 && yearCol == "" {
		return nil, observations.ErrNoYearColumn
	}
	if cols.Main != "" {
		tbl.TrimColumn(cols.Main)
	}
	if cols.Sub != "" {
		tbl.TrimColumn(cols.Sub)
	}
	log.Debug("sheet loaded", "rows", len(tbl.Rows), "main_col", cols.Main, "sub_col", cols.Sub, "year_col", yearCol)

	res := &Result{}

	valueCols, unmatched, err := observations.ExpandColumns(tbl, opts.Columns)
	if err != nil {
		return nil, err
	}
	for _, pattern := range unmatched {
		log.Warn("column pattern matched nothing; skipping", "pattern", pattern)
		res.Skipped = append(res.Skipped, Skip{Column: pattern, Reason: "pattern matched no column"})
	}

	world, err := deps.Basemap.Load(ctx)
	if err != nil {
		return nil, err
	}
	level := observations.Subregions
	buildPolygons := basemap.SubregionPolygons
	if opts.MainRegions {
		level = observations.MainRegions
		buildPolygons = basemap.MainRegionPolygons
	}
	polys, err := buildPolygons(world, deps.Tables, log)
	if err != nil {
		return nil, err
	}
	countries := lo.Map(world.Countries, func(c basemap.Country, _ int) orb.MultiPolygon {
		return c.Geometry
	})
	log.Info("region polygons built", "level", level.String(), "regions", len(polys), "basemap", world.Source)

	jobs := []job{{}}
	if len(opts.Years) > 0 {
		jobs = lo.Map(opts.Years, func(y int, _ int) job { return job{year: y, hasYear: true} })
	}

	var summary report.Summary
	for _, j := range jobs {
		data := tbl
		if j.hasYear {
			data = tbl.FilterYear(yearCol, j.year)
			if len(data.Rows) == 0 {
				log.Warn("no rows for year; skipping", "year", j.year, "year_col", yearCol)
				res.Skipped = append(res.Skipped, Skip{Year: j.year, HasYear: true, Reason: "no rows for year"})
				continue
			}
		}

		for _, col := range valueCols {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			skip := func(reason string) {
				log.Warn("skipping column", "column", col, "year", j.year, "reason", reason)
				res.Skipped = append(res.Skipped, Skip{Column: col, Year: j.year, HasYear: j.hasYear, Reason: reason})
			}
			if !data.Has(col) {
				skip("column not found")
				continue
			}

			agg, err := observations.AggregateColumn(data, col, cols, level, deps.Tables)
			if err != nil {
				return res, fmt.Errorf("aggregate %q: %w", col, err)
			}
			if len(agg.Unmapped) > 0 {
				describe := deps.Tables.DescribeUnmapped
				if level == observations.Subregions && cols.Sub == "" {
					// Replicated from the main-region column.
					describe = deps.Tables.DescribeUnmappedMain
				}
				log.Warn("dropping rows with unmapped regions", "column", col, "unmapped", describe(agg.Unmapped))
			}

			m, values := join(polys, agg)
			low, high, ok := colorscale.RobustBounds(lo.Values(values))
			if !ok {
				skip("no finite values")
				continue
			}
			m.Countries = countries
			m.Label = render.Label(col, j.year, j.hasYear)
			m.Lo, m.Hi = low, high

			path := render.OutputPath(opts.OutDir, col, j.year, j.hasYear)
			if err := deps.Renderer.WriteFile(m, path); err != nil {
				return res, fmt.Errorf("render %q: %w", col, err)
			}
			res.Written = append(res.Written, path)

			summary.Add(report.Entry{
				File:    path,
				Column:  col,
				Year:    j.year,
				HasYear: j.hasYear,
				Level:   level.String(),
				Keys:    lo.Map(polys, func(p basemap.RegionPolygon, _ int) string { return p.Key }),
				Values:  values,
				Lo:      low,
				Hi:      high,
			})
		}
	}

	if opts.Summary && summary.Len() > 0 {
		path := filepath.Join(opts.OutDir, SummaryFile)
		if err := summary.Save(path); err != nil {
			return res, err
		}
		res.Summary = path
		log.Info("summary written", "path", path, "maps", summary.Len())
	}
	return res, nil
}

// join left-joins aggregated values onto the polygons. Regions without a
// value get NaN.
func join(polys []basemap.RegionPolygon, agg *observations.Aggregate) (*render.Map, map[string]float64) {
	m := &render.Map{Regions: make([]render.Region, 0, len(polys))}
	values := make(map[string]float64, len(polys))
	for _, p := range polys {
		v, ok := agg.Value(p.Key)
		if !ok {
			v = math.NaN()
		}
		values[p.Key] = v
		m.Regions = append(m.Regions, render.Region{Key: p.Key, Geometry: p.Geometry, Value: v})
	}
	return m, values
}
