package plotting

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const paletteSize = 255

// newColorBar returns a vertical colorbar panel for cm. The strip is a
// one-column heat map, drawn as polygons: plotter.ColorBar rasterizes to a
// 16-bit image that the PDF backend cannot embed.
func newColorBar(cm *ColorMap, label string) *plot.Plot {
	lo, hi := cm.Min(), cm.Max()
	step := (hi - lo) / paletteSize
	y := make([]float64, paletteSize)
	z := make([][]float64, paletteSize)
	for i := range y {
		y[i] = lo + (float64(i)+0.5)*step
		z[i] = []float64{y[i]}
	}
	strip := plotter.NewHeatMap(&Grid{x: []float64{0}, y: y, z: z}, cm.Palette(paletteSize))
	strip.Min, strip.Max = lo, hi

	cb := plot.New()
	cb.HideX()
	cb.Add(strip)
	cb.Y.Min, cb.Y.Max = lo, hi
	cb.Y.Label.Text = label
	cb.Y.Label.TextStyle.Font.Size = vg.Points(11)
	cb.Y.Label.TextStyle = bold(cb.Y.Label.TextStyle)
	return cb
}

// MakeResidualPlot renders data as a heat map with row 0 at the top.
func (p *Plotting) MakeResidualPlot(data [][]float64, xlabel, ylabel, title, colorbarLabel string) (*Figure, error) {
	g, err := NewGrid(nil, nil, data)
	if err != nil {
		return nil, newPlotError("residual", err)
	}
	min, max := valueRange(data)
	cm, err := NewColorMap(p.opts.ColorMap, min, max)
	if err != nil {
		return nil, newPlotError("residual", errors.Wrap(err, "could not create colormap"))
	}
	hm := plotter.NewHeatMap(g, cm.Palette(paletteSize))
	hm.Min, hm.Max = min, max
	hm.NaN = color.Transparent

	fig, axs := p.newFigure(1, 1)
	ax := axs[0]
	ax.Add(hm)
	ax.setTitle(title, vg.Points(11))
	ax.setLabels(xlabel, ylabel, vg.Points(9))
	ax.Y.Scale = plot.InvertedScale{Normalizer: ax.Y.Scale}
	ax.square = true
	ax.colorBar = newColorBar(cm, colorbarLabel)
	return fig, nil
}
