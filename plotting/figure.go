package plotting

import (
	"image/color"
	"sync"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Axes is one drawable region of a Figure. The embedded plot carries the
// title, axis labels, scales and legend.
type Axes struct {
	*plot.Plot

	colorBar *plot.Plot
	surface  *Surface
	square   bool
	legend   []string
	lines    []lineSeries
}

// Describes one x/y series added through the facade.
type lineSeries struct {
	label  string
	xys    plotter.XYs
	format Format
	width  vg.Length
	color  color.Color
}

func newAxes() *Axes {
	return &Axes{Plot: plot.New()}
}

// LegendLabels returns the legend entries in the order they were added.
func (a *Axes) LegendLabels() []string {
	return append([]string(nil), a.legend...)
}

// ColorBar returns the colorbar panel, or nil when the axes has none.
func (a *Axes) ColorBar() *plot.Plot {
	return a.colorBar
}

// Surface returns the surface drawn in the axes, or nil.
func (a *Axes) Surface() *Surface {
	return a.surface
}

// YInverted reports whether the y axis runs top to bottom.
func (a *Axes) YInverted() bool {
	_, ok := a.Y.Scale.(plot.InvertedScale)
	return ok
}

func (a *Axes) addLegend(label string, thumbs ...plot.Thumbnailer) {
	a.Legend.Add(label, thumbs...)
	a.legend = append(a.legend, label)
}

func (a *Axes) setTitle(title string, size vg.Length) {
	a.Title.Text = title
	a.Title.TextStyle.Font.Size = size
	a.Title.TextStyle = bold(a.Title.TextStyle)
}

func (a *Axes) setLabels(xlabel, ylabel string, size vg.Length) {
	a.X.Label.Text = xlabel
	a.Y.Label.Text = ylabel
	if size > 0 {
		a.X.Label.TextStyle.Font.Size = size
		a.Y.Label.TextStyle.Font.Size = size
	}
}

func (a *Axes) draw(c draw.Canvas) {
	main := c
	if a.colorBar != nil {
		w := c.Max.X - c.Min.X
		cbw := w * 0.2
		main = draw.Crop(c, 0, -cbw, 0, 0)
		a.colorBar.Draw(draw.Crop(c, w-cbw, 0, 0, 0))
	}
	if a.square {
		main = squareCanvas(main)
	}
	a.Plot.Draw(main)
}

// squareCanvas centers the largest square that fits in c.
func squareCanvas(c draw.Canvas) draw.Canvas {
	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	switch {
	case w > h:
		d := (w - h) / 2
		return draw.Crop(c, d, -d, 0, 0)
	case h > w:
		d := (h - w) / 2
		return draw.Crop(c, 0, 0, d, -d)
	}
	return c
}

// vgpdf registers each face under its name with no style, so a bold weight
// cannot be selected there. Bold text uses its own typeface instead, holding
// the bold serif face at normal weight.
const boldTypeface font.Typeface = "LiberationBold"

var registerBold sync.Once

func bold(sty text.Style) text.Style {
	registerBold.Do(func() {
		for _, f := range liberation.Collection() {
			if f.Font.Variant != "Serif" || f.Font.Weight != xfont.WeightBold || f.Font.Style != xfont.StyleNormal {
				continue
			}
			f.Font.Typeface = boldTypeface
			f.Font.Weight = xfont.WeightNormal
			font.DefaultCache.Add(font.Collection{f})
		}
	})
	sty.Font.Typeface = boldTypeface
	sty.Font.Variant = "Serif"
	sty.Font.Weight = xfont.WeightNormal
	return sty
}

// Figure is a renderable page holding a grid of Axes. The caller owns it
// until it is passed to SavePlots or closed.
type Figure struct {
	rows, cols int
	axes       []*Axes
	closed     bool
}

func newFigure(rows, cols int) (*Figure, []*Axes) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	f := &Figure{rows: rows, cols: cols}
	f.axes = make([]*Axes, rows*cols)
	for i := range f.axes {
		f.axes[i] = newAxes()
	}
	return f, f.Axes()
}

// Axes returns the figure's axes in row-major order.
func (f *Figure) Axes() []*Axes {
	return append([]*Axes(nil), f.axes...)
}

// Grid returns the number of rows and columns of axes.
func (f *Figure) Grid() (rows, cols int) {
	return f.rows, f.cols
}

// Draw renders every axes of the figure into c.
func (f *Figure) Draw(c draw.Canvas) {
	c.SetColor(color.White)
	c.Fill(c.Rectangle.Path())
	if len(f.axes) == 1 {
		f.axes[0].draw(pad(c, vg.Points(4)))
		return
	}
	tiles := draw.Tiles{
		Rows:      f.rows,
		Cols:      f.cols,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
		PadX:      vg.Points(12),
		PadY:      vg.Points(12),
	}
	for i, ax := range f.axes {
		ax.draw(tiles.At(c, i%f.cols, i/f.cols))
	}
}

func pad(c draw.Canvas, l vg.Length) draw.Canvas {
	return draw.Crop(c, l, -l, l, -l)
}

// Close releases the figure's plots. A closed figure cannot be exported.
func (f *Figure) Close() {
	f.axes = nil
	f.closed = true
}

// Closed reports whether Close has been called.
func (f *Figure) Closed() bool {
	return f.closed
}
