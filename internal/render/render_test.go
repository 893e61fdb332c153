package render

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(lon, lat, size float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{
		{lon, lat}, {lon + size, lat}, {lon + size, lat + size}, {lon, lat + size}, {lon, lat},
	}}}
}

func testMap() *Map {
	return &Map{
		Regions: []Region{
			{Key: "A", Geometry: square(-60, -20, 20), Value: 10},
			{Key: "B", Geometry: square(20, 10, 15), Value: 30},
			{Key: "C", Geometry: square(100, 30, 10), Value: math.NaN()},
		},
		Countries: []orb.MultiPolygon{square(-60, -20, 10), square(20, 10, 15)},
		Label:     "col, year: 2050",
		Lo:        10,
		Hi:        30,
	}
}

func newTestRenderer() *Renderer {
	return NewRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func requirePDF(t *testing.T, data []byte) {
	t.Helper()
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(bytes.TrimSpace(data[len(data)-min(len(data), 64):])), "%%EOF")
}

func TestRender_WritesPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestRenderer().Render(testMap(), &buf))
	requirePDF(t, buf.Bytes())
}

func TestRender_DegenerateRange(t *testing.T) {
	m := testMap()
	m.Lo, m.Hi = 5, 5
	var buf bytes.Buffer
	require.NoError(t, newTestRenderer().Render(m, &buf))
	requirePDF(t, buf.Bytes())
}

func TestRender_InvalidGeometry(t *testing.T) {
	m := testMap()
	m.Regions[0].Geometry = square(math.NaN(), 0, 10)
	var buf bytes.Buffer
	err := newTestRenderer().Render(m, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region A")
}

func TestWriteFile_NoFileOnError(t *testing.T) {
	m := testMap()
	m.Regions[1].Geometry = square(math.NaN(), 0, 10)
	path := filepath.Join(t.TempDir(), "out", "col.pdf")

	require.Error(t, newTestRenderer().WriteFile(m, path))
	assert.NoFileExists(t, path)
}

func TestCoastline_DropsSharedEdges(t *testing.T) {
	// Two unit squares sharing the edge x=1.
	left := square(0, 0, 1)
	right := square(1, 0, 1)

	lines := coastline([]orb.MultiPolygon{left, right})
	require.NotEmpty(t, lines)
	for _, ls := range lines {
		for i := 0; i+1 < len(ls); i++ {
			a, b := ls[i], ls[i+1]
			shared := a[0] == 1 && b[0] == 1
			assert.False(t, shared, "shared edge %v-%v kept", a, b)
		}
	}

	var total float64
	for _, ls := range lines {
		for i := 0; i+1 < len(ls); i++ {
			total += math.Hypot(ls[i+1][0]-ls[i][0], ls[i+1][1]-ls[i][1])
		}
	}
	assert.InDelta(t, 6.0, total, 1e-9)
}

func TestCoastline_IsolatedCountryKeepsWholeRing(t *testing.T) {
	lines := coastline([]orb.MultiPolygon{square(10, 10, 2)})
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], 5)
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "col_2050.pdf")
	require.NoError(t, newTestRenderer().WriteFile(testMap(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDrawingRange(t *testing.T) {
	lo, hi := DrawingRange(1, 2)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)

	lo, hi = DrawingRange(10, 10)
	assert.Equal(t, 9.5, lo)
	assert.Equal(t, 10.5, hi)

	lo, hi = DrawingRange(0, 0)
	assert.Equal(t, -0.5, lo)
	assert.Equal(t, 0.5, hi)
}

func TestSanitizeColumn(t *testing.T) {
	assert.Equal(t, "Number_of~Animals_SSP5", SanitizeColumn("Number of~Animals SSP5"))
	assert.Equal(t, "a-b-c", SanitizeColumn(`a/b\c`))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("o2", "Number_of~Animals_SSP5_2050.pdf"),
		OutputPath("o2", "Number of~Animals SSP5", 2050, true))
	assert.Equal(t, filepath.Join("o2", "col.pdf"), OutputPath("o2", "col", 0, false))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "col, year: 2060", Label("col", 2060, true))
	assert.Equal(t, "col", Label("col", 0, false))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2.50M", FormatNumber(2.5e6))
	assert.Equal(t, "-1.20B", FormatNumber(-1.2e9))
	assert.Equal(t, "25.0K", FormatNumber(25000))
	assert.Equal(t, "1500", FormatNumber(1500))
	assert.Equal(t, "0.125", FormatNumber(0.125))
	assert.Equal(t, "0", FormatNumber(0))
}
