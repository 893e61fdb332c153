package choropleth

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sekarsister/choropleth/internal/basemap"
	"github.com/sekarsister/choropleth/internal/observations"
	"github.com/sekarsister/choropleth/internal/regions"
	"github.com/sekarsister/choropleth/internal/render"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeWorld(t *testing.T) string {
	t.Helper()
	fc := geojson.NewFeatureCollection()
	for i, name := range []string{"Brazil", "Mexico", "Argentina", "Japan", "Russia"} {
		lon := float64(i*30) - 80
		f := geojson.NewFeature(orb.Polygon{orb.Ring{
			{lon, -10}, {lon + 10, -10}, {lon + 10, 10}, {lon, 10}, {lon, -10},
		}})
		f.Properties["ADMIN"] = name
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "world.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func sampleWorkbook(t *testing.T) string {
	return writeWorkbook(t, [][]any{
		{"Regions (t)", "t", "Number of~Animals SSP5"},
		{"Brazil", 2050, 10},
		{"Rest S.Am. ", 2050, 20},
		{"Japan", 2050, 5},
		{"Atlantis", 2050, 99},
		{"Brazil", 2060, 12},
	})
}

func deps(t *testing.T, loader WorldLoader) Deps {
	logger := discardLogger()
	if loader == nil {
		loader = basemap.NewLoader([]basemap.Source{
			basemap.FileSource{Label: "test", Path: writeWorld(t)},
		}, logger)
	}
	return Deps{
		Tables:   regions.Default(),
		Basemap:  loader,
		Renderer: render.NewRenderer(logger),
		Logger:   logger,
	}
}

type failingLoader struct{ called bool }

func (l *failingLoader) Load(context.Context) (*basemap.World, error) {
	l.called = true
	return nil, basemap.ErrNoBasemap
}

func TestRun_SubregionsPerYear(t *testing.T) {
	out := filepath.Join(t.TempDir(), "o2")
	res, err := Run(context.Background(), Options{
		Input:   sampleWorkbook(t),
		Sheet:   "Sheet1",
		Columns: []string{"Number of~Animals SSP5", "Missing"},
		OutDir:  out,
		Years:   []int{2050, 2070},
	}, deps(t, nil))
	require.NoError(t, err)

	want := filepath.Join(out, "Number_of~Animals_SSP5_2050.pdf")
	assert.Equal(t, []string{want}, res.Written)
	assert.FileExists(t, want)
	assert.NoFileExists(t, filepath.Join(out, "Number_of~Animals_SSP5_2070.pdf"))

	assert.ElementsMatch(t, []Skip{
		{Column: "Missing", Year: 2050, HasYear: true, Reason: "column not found"},
		{Year: 2070, HasYear: true, Reason: "no rows for year"},
	}, res.Skipped)
	assert.Empty(t, res.Summary)
}

func TestRun_MainRegionsWithSummary(t *testing.T) {
	out := t.TempDir()
	res, err := Run(context.Background(), Options{
		Input:       sampleWorkbook(t),
		Sheet:       "Sheet1",
		Columns:     []string{"Number of~*"},
		OutDir:      out,
		MainRegions: true,
		Summary:     true,
	}, deps(t, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(out, "Number_of~Animals_SSP5.pdf")}, res.Written)
	require.Equal(t, filepath.Join(out, SummaryFile), res.Summary)

	f, err := excelize.OpenFile(res.Summary)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Number_of~Animals_SSP5")
	require.NoError(t, err)
	// Polygons exist for LAM (Brazil, Mexico, Argentina), JPN and REF.
	assert.Equal(t, []string{"LAM", "42", "42"}, rows[1])
	assert.Equal(t, "REF", rows[2][0])
	assert.Equal(t, []string{"JPN", "5", "5"}, rows[3])
}

func TestRun_MainRegionsFromSubregionColumnPerYear(t *testing.T) {
	input := writeWorkbook(t, [][]any{
		{"Regions", "t", "col"},
		{"Brazil", 2050, 10},
		{"Rest S.Am.", 2050, 20},
		{"Brazil", 2060, 7},
	})
	out := t.TempDir()
	res, err := Run(context.Background(), Options{
		Input:       input,
		Sheet:       "Sheet1",
		Columns:     []string{"col"},
		OutDir:      out,
		MainRegions: true,
		Years:       []int{2050},
		Summary:     true,
	}, deps(t, nil))
	require.NoError(t, err)

	want := filepath.Join(out, "col_2050.pdf")
	require.Equal(t, []string{want}, res.Written)
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	f, err := excelize.OpenFile(res.Summary)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("col_2050")
	require.NoError(t, err)
	assert.Equal(t, []string{"LAM", "30", "30"}, rows[1])
}

func TestRun_UnmappedMainRegionsSuggestMainCodes(t *testing.T) {
	input := writeWorkbook(t, [][]any{
		{"Main regions", "v"},
		{"LAM", 1},
		{"LAMM", 2},
	})
	var logs bytes.Buffer
	d := deps(t, nil)
	d.Logger = slog.New(slog.NewTextHandler(&logs, nil))

	res, err := Run(context.Background(), Options{
		Input:   input,
		Sheet:   "Sheet1",
		Columns: []string{"v"},
		OutDir:  t.TempDir(),
	}, d)
	require.NoError(t, err)
	assert.Len(t, res.Written, 1)
	assert.Contains(t, logs.String(), "dropping rows with unmapped regions")
	assert.Contains(t, logs.String(), `did you mean \"LAM\"?`)
}

func TestRun_NoFiniteValues(t *testing.T) {
	// No label matches a drawn region, so every polygon is missing.
	input := writeWorkbook(t, [][]any{
		{"Regions", "v"},
		{"Atlantis", 1},
		{"Lemuria", 2},
	})
	res, err := Run(context.Background(), Options{
		Input:   input,
		Sheet:   "Sheet1",
		Columns: []string{"v", "glob*"},
		OutDir:  t.TempDir(),
	}, deps(t, nil))
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.ElementsMatch(t, []Skip{
		{Column: "glob*", Reason: "pattern matched no column"},
		{Column: "v", Reason: "no finite values"},
	}, res.Skipped)
}

func TestRun_YearsWithoutYearColumn(t *testing.T) {
	input := writeWorkbook(t, [][]any{
		{"Regions", "v"},
		{"Brazil", 1},
	})
	loader := &failingLoader{}
	_, err := Run(context.Background(), Options{
		Input:   input,
		Sheet:   "Sheet1",
		Columns: []string{"v"},
		OutDir:  t.TempDir(),
		Years:   []int{2050},
	}, deps(t, loader))
	require.ErrorIs(t, err, observations.ErrNoYearColumn)
	assert.False(t, loader.called, "basemap must not be loaded")
}

func TestRun_FatalErrors(t *testing.T) {
	input := sampleWorkbook(t)

	_, err := Run(context.Background(), Options{Input: input, Sheet: "Sheet1", OutDir: t.TempDir()}, deps(t, nil))
	require.ErrorIs(t, err, ErrNoColumns)

	_, err = Run(context.Background(), Options{
		Input: input, Sheet: "Sheet1", Columns: []string{"t"}, OutDir: t.TempDir(),
	}, deps(t, &failingLoader{}))
	require.ErrorIs(t, err, basemap.ErrNoBasemap)

	noRegions := writeWorkbook(t, [][]any{{"value"}, {1}})
	_, err = Run(context.Background(), Options{
		Input: noRegions, Sheet: "Sheet1", Columns: []string{"value"}, OutDir: t.TempDir(),
	}, deps(t, nil))
	require.ErrorIs(t, err, observations.ErrNoRegionColumn)

	_, err = Run(context.Background(), Options{
		Input: filepath.Join(t.TempDir(), "missing.xlsx"), Sheet: "Sheet1", Columns: []string{"v"}, OutDir: t.TempDir(),
	}, deps(t, nil))
	require.Error(t, err)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{
		Input:   sampleWorkbook(t),
		Sheet:   "Sheet1",
		Columns: []string{"Number of~Animals SSP5"},
		OutDir:  t.TempDir(),
	}, deps(t, nil))
	require.True(t, errors.Is(err, context.Canceled))
}
