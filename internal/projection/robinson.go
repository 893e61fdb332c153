// Package projection implements the Robinson world projection used for
// the choropleth maps.
package projection

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/plot/plotter"
)

// Robinson's tabulated parallel lengths (X) and distances from the equator
// (Y) at 5° steps of latitude.
var robinsonTable = [...][2]float64{
	{1.0000, 0.0000},
	{0.9986, 0.0620},
	{0.9954, 0.1240},
	{0.9900, 0.1860},
	{0.9822, 0.2480},
	{0.9730, 0.3100},
	{0.9600, 0.3720},
	{0.9427, 0.4340},
	{0.9216, 0.4958},
	{0.8962, 0.5571},
	{0.8679, 0.6176},
	{0.8350, 0.6769},
	{0.7986, 0.7346},
	{0.7597, 0.7903},
	{0.7186, 0.8435},
	{0.6732, 0.8936},
	{0.6213, 0.9394},
	{0.5722, 0.9761},
	{0.5322, 1.0000},
}

const (
	xScale = 0.8487
	yScale = 1.3523
)

// Extent of the projected globe in projection units.
var (
	MaxX = xScale * math.Pi
	MaxY = yScale
)

// Forward projects a longitude/latitude pair in degrees. Inputs are clamped
// to the valid range.
func Forward(lon, lat float64) (x, y float64) {
	lon = math.Max(-180, math.Min(180, lon))
	lat = math.Max(-90, math.Min(90, lat))

	abs := math.Abs(lat)
	i := int(abs / 5)
	if i >= len(robinsonTable)-1 {
		i = len(robinsonTable) - 2
	}
	f := (abs - float64(i)*5) / 5
	a, b := robinsonTable[i], robinsonTable[i+1]
	px := a[0] + (b[0]-a[0])*f
	py := a[1] + (b[1]-a[1])*f

	x = xScale * px * lon * math.Pi / 180
	y = yScale * py
	if lat < 0 {
		y = -y
	}
	return x, y
}

// AspectRatio is the width to height ratio of the projected globe.
func AspectRatio() float64 {
	return MaxX / MaxY
}

// Ring projects an orb ring into plotter points.
func Ring(r orb.Ring) plotter.XYs {
	xys := make(plotter.XYs, len(r))
	for i, p := range r {
		xys[i].X, xys[i].Y = Forward(p.Lon(), p.Lat())
	}
	return xys
}

// MultiPolygon projects every ring of mp, outer and inner alike, in order.
func MultiPolygon(mp orb.MultiPolygon) []plotter.XYs {
	var out []plotter.XYs
	for _, poly := range mp {
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			out = append(out, Ring(ring))
		}
	}
	return out
}

// Outline returns the projected globe boundary as a closed ring, sampled
// every step degrees of latitude along the ±180° meridians.
func Outline(step float64) plotter.XYs {
	if step <= 0 {
		step = 1
	}
	var xys plotter.XYs
	add := func(lon, lat float64) {
		var p plotter.XY
		p.X, p.Y = Forward(lon, lat)
		xys = append(xys, p)
	}
	for lat := -90.0; lat < 90; lat += step {
		add(180, lat)
	}
	for lat := 90.0; lat > -90; lat -= step {
		add(-180, lat)
	}
	add(180, -90)
	return xys
}
