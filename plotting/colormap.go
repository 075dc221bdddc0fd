package plotting

import (
	"fmt"
	"image/color"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/palette"
)

type colorFunc func(v, vmin, vmax float64) drawing.Color

var colorFuncs = map[string]colorFunc{
	"jet":     chart.Jet,
	"viridis": chart.Viridis,
}

// ColorMap adapts a go-chart color function to gonum's palette.ColorMap.
type ColorMap struct {
	fn       colorFunc
	min, max float64
	alpha    float64
}

var _ palette.ColorMap = (*ColorMap)(nil)

// NewColorMap returns the named colormap spanning [min, max].
func NewColorMap(name string, min, max float64) (*ColorMap, error) {
	fn, ok := colorFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown colormap %q", name)
	}
	return &ColorMap{fn: fn, min: min, max: max, alpha: 1}, nil
}

// At implements palette.ColorMap.
func (m *ColorMap) At(v float64) (color.Color, error) {
	switch {
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < m.min:
		return nil, palette.ErrUnderflow
	case v > m.max:
		return nil, palette.ErrOverflow
	}
	return m.color(v), nil
}

func (m *ColorMap) color(v float64) color.Color {
	c := m.fn(v, m.min, m.max)
	if m.alpha < 1 {
		c = c.WithAlpha(uint8(math.Round(m.alpha * 255)))
	}
	return c
}

func (m *ColorMap) Max() float64 { return m.max }
func (m *ColorMap) SetMax(v float64) { m.max = v }
func (m *ColorMap) Min() float64 { return m.min }
func (m *ColorMap) SetMin(v float64) { m.min = v }
func (m *ColorMap) Alpha() float64 { return m.alpha }

// SetAlpha panics if a is outside [0, 1].
func (m *ColorMap) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic("plotting: alpha out of range")
	}
	m.alpha = a
}

// Palette returns n colors evenly spaced over the map's range.
func (m *ColorMap) Palette(n int) palette.Palette {
	cols := make(colors, n)
	for i := range cols {
		v := m.min
		if n > 1 {
			v += float64(i) * (m.max - m.min) / float64(n-1)
		}
		cols[i] = m.color(v)
	}
	return cols
}

type colors []color.Color

func (c colors) Colors() []color.Color { return c }

// valueRange returns the finite min and max of a grid. A flat grid is
// widened so colorbars stay drawable.
func valueRange(rows [][]float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	if math.IsInf(min, 1) {
		return 0, 1
	}
	if min == max {
		min, max = min-0.5, max+0.5
	}
	return min, max
}
