// Package render draws choropleth maps in the Robinson projection and
// writes them as PDF.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/paulmach/orb"

	"github.com/sekarsister/choropleth/internal/colorscale"
	"github.com/sekarsister/choropleth/internal/projection"
)

var (
	regionEdge  = color.White
	borderColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	coastColor  = color.Black
	outlineEdge = color.White
)

// Region is one filled map polygon. Value is NaN when the region has no
// data.
type Region struct {
	Key      string
	Geometry orb.MultiPolygon
	Value    float64
}

// Map is everything needed to draw one choropleth.
type Map struct {
	Regions []Region

	// Countries are stroked as thin borders over the fills. Their
	// unshared edges also form the coastline.
	Countries []orb.MultiPolygon

	Label  string
	Lo, Hi float64
}

// Renderer draws maps onto a PDF canvas of fixed width.
type Renderer struct {
	Width  vg.Length
	Margin vg.Length

	// BarHeight is the strip below the map reserved for the colorbar,
	// its ticks and its label.
	BarHeight vg.Length

	logger *slog.Logger
}

// NewRenderer returns a Renderer with the default page geometry.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{
		Width:     22 * vg.Inch,
		Margin:    vg.Inch / 4,
		BarHeight: 2 * vg.Inch,
		logger:    logger,
	}
}

// DrawingRange returns the color limits used for drawing. A degenerate
// range is widened symmetrically so the colorbar has a span.
func DrawingRange(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	pad := math.Abs(lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}

// WriteFile renders m to path, creating the parent directory. Nothing is
// written when rendering fails.
func (r *Renderer) WriteFile(m *Map, path string) error {
	var buf bytes.Buffer
	if err := r.Render(m, &buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	r.logger.Info("map written", "path", path, "label", m.Label)
	return nil
}

// Render draws m and writes the PDF to w.
func (r *Renderer) Render(m *Map, w io.Writer) error {
	lo, hi := DrawingRange(m.Lo, m.Hi)
	cmap, err := colorscale.RedBlue(lo, hi)
	if err != nil {
		return fmt.Errorf("color map: %w", err)
	}

	mapPlot, err := r.mapPlot(m, cmap)
	if err != nil {
		return err
	}
	barPlot := r.colorbarPlot(m.Label, cmap)

	mapW := r.Width - 2*r.Margin
	mapH := vg.Length(float64(mapW) / projection.AspectRatio())
	height := mapH + r.BarHeight + 2*r.Margin

	c := vgpdf.New(r.Width, height)
	dc := draw.New(c)

	mapPlot.Draw(draw.Crop(dc, r.Margin, -r.Margin, r.BarHeight+r.Margin, -r.Margin))

	// The colorbar spans 70% of the page width, centered.
	side := r.Width * 0.15
	barPlot.Draw(draw.Crop(dc, side, -side, r.Margin, -(height - r.BarHeight - r.Margin)))

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (r *Renderer) mapPlot(m *Map, cmap *colorscale.Diverging) (*plot.Plot, error) {
	p := plot.New()
	p.HideAxes()
	p.X.Padding = 0
	p.Y.Padding = 0

	for _, reg := range m.Regions {
		rings := projection.MultiPolygon(reg.Geometry)
		if len(rings) == 0 {
			continue
		}
		poly, err := plotter.NewPolygon(xyers(rings)...)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", reg.Key, err)
		}
		poly.Color = cmap.Clamped(reg.Value)
		poly.LineStyle.Color = regionEdge
		poly.LineStyle.Width = vg.Points(0.35)
		p.Add(poly)
	}

	for _, country := range m.Countries {
		rings := projection.MultiPolygon(country)
		if len(rings) == 0 {
			continue
		}
		border, err := plotter.NewPolygon(xyers(rings)...)
		if err != nil {
			return nil, fmt.Errorf("country border: %w", err)
		}
		border.Color = nil
		border.LineStyle.Color = borderColor
		border.LineStyle.Width = vg.Points(0.25)
		p.Add(border)
	}

	for _, seg := range coastline(m.Countries) {
		coast, err := plotter.NewLine(projection.Ring(orb.Ring(seg)))
		if err != nil {
			return nil, fmt.Errorf("coastline: %w", err)
		}
		coast.Color = coastColor
		coast.Width = vg.Points(0.35)
		p.Add(coast)
	}

	outline, err := plotter.NewLine(projection.Outline(1))
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	outline.Color = outlineEdge
	outline.Width = vg.Points(0.8)
	p.Add(outline)

	// Global extent regardless of which regions were drawn.
	p.X.Min, p.X.Max = -projection.MaxX, projection.MaxX
	p.Y.Min, p.Y.Max = -projection.MaxY, projection.MaxY
	return p, nil
}

func (r *Renderer) colorbarPlot(label string, cmap *colorscale.Diverging) *plot.Plot {
	p := plot.New()
	p.Add(&plotter.ColorBar{ColorMap: cmap, Colors: 256})
	p.HideY()
	p.Y.Padding = 0
	p.X.Padding = 0

	p.X.Label.Text = label
	p.X.Label.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(20)

	p.X.Tick.Marker = numberTicks{}
	p.X.Tick.Label.Font.Size = vg.Points(18)
	return p
}

func xyers(rings []plotter.XYs) []plotter.XYer {
	out := make([]plotter.XYer, len(rings))
	for i, r := range rings {
		out[i] = r
	}
	return out
}
