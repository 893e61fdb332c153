package colorscale

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
)

// Missing is the fill used for regions without a value.
var Missing = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}

// Diverging is a palette.ColorMap that interpolates linearly between
// evenly spaced control colors.
type Diverging struct {
	controls []color.NRGBA
	min, max float64
	alpha    float64
}

var _ palette.ColorMap = (*Diverging)(nil)

// NewDiverging builds a color map over [lo, hi] from control colors,
// the first mapping to lo and the last to hi.
func NewDiverging(controls []color.Color, lo, hi float64) (*Diverging, error) {
	if len(controls) < 2 {
		return nil, fmt.Errorf("diverging color map needs at least 2 colors, got %d", len(controls))
	}
	d := &Diverging{min: lo, max: hi, alpha: 1}
	for _, c := range controls {
		d.controls = append(d.controls, color.NRGBAModel.Convert(c).(color.NRGBA))
	}
	return d, nil
}

// RedBlue returns the reversed ColorBrewer RdBu map (blue for low values,
// red for high) over [lo, hi].
func RedBlue(lo, hi float64) (*Diverging, error) {
	p, err := brewer.GetPalette(brewer.TypeDiverging, "RdBu", 11)
	if err != nil {
		return nil, err
	}
	src := p.Colors()
	reversed := make([]color.Color, len(src))
	for i, c := range src {
		reversed[len(src)-1-i] = c
	}
	return NewDiverging(reversed, lo, hi)
}

// At returns the color for v.
func (d *Diverging) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, fmt.Errorf("colorscale: NaN value")
	case v < d.min:
		return nil, palette.ErrUnderflow
	case v > d.max:
		return nil, palette.ErrOverflow
	}
	t := 0.0
	if d.max > d.min {
		t = (v - d.min) / (d.max - d.min)
	}
	return d.interpolate(t), nil
}

// Clamped returns the color for v with out-of-range values pinned to the
// end colors and missing values drawn in the Missing color.
func (d *Diverging) Clamped(v float64) color.Color {
	if math.IsNaN(v) {
		return Missing
	}
	c, err := d.At(math.Max(d.min, math.Min(d.max, v)))
	if err != nil {
		return Missing
	}
	return c
}

func (d *Diverging) interpolate(t float64) color.Color {
	segs := float64(len(d.controls) - 1)
	pos := t * segs
	i := int(math.Floor(pos))
	if i >= len(d.controls)-1 {
		i = len(d.controls) - 2
	}
	f := pos - float64(i)
	a, b := d.controls[i], d.controls[i+1]
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*f))
	}
	return color.NRGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: uint8(math.Round(255 * d.alpha)),
	}
}

func (d *Diverging) Max() float64     { return d.max }
func (d *Diverging) SetMax(v float64) { d.max = v }
func (d *Diverging) Min() float64     { return d.min }
func (d *Diverging) SetMin(v float64) { d.min = v }
func (d *Diverging) Alpha() float64   { return d.alpha }

func (d *Diverging) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic("colorscale: alpha out of range")
	}
	d.alpha = a
}

// Palette samples n evenly spaced colors from the map.
func (d *Diverging) Palette(n int) palette.Palette {
	colors := make([]color.Color, n)
	for i := range colors {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		colors[i] = d.interpolate(t)
	}
	return plte(colors)
}

type plte []color.Color

func (p plte) Colors() []color.Color { return p }
