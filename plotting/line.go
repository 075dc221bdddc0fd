package plotting

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Limits is an axis-limits tuple (xmin, xmax, ymin, ymax).
type Limits struct {
	XMin, XMax, YMin, YMax float64
}

func (l Limits) apply(p *plot.Plot) {
	p.X.Min, p.X.Max = l.XMin, l.XMax
	p.Y.Min, p.Y.Max = l.YMin, l.YMax
}

// LineOptions are the optional arguments of MakeSinglePlot.
type LineOptions struct {
	// Format is a matplotlib-style marker/line/color string, e.g. "--b".
	Format string
	// Width of the line. Zero uses 1.5pt.
	Width vg.Length
	// Legend labels the line when not empty.
	Legend string
	// Limits fixes the axis range when not nil.
	Limits *Limits
}

const defaultLineWidth = vg.Length(1.5)

// addLine draws x/y into the axes using format and records it for the legend
// and for previews.
func (a *Axes) addLine(x, y []float64, format string, width vg.Length, label string) error {
	xys, err := zipXY(x, y)
	if err != nil {
		return err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if width <= 0 {
		width = defaultLineWidth
	}
	col := f.Color
	if col == nil {
		col = cycleColor(len(a.lines))
	}

	var thumbs []plot.Thumbnailer
	if f.Line {
		l, err := plotter.NewLine(xys)
		if err != nil {
			return errors.Wrap(err, "could not create line")
		}
		l.LineStyle.Color = col
		l.LineStyle.Width = width
		l.LineStyle.Dashes = f.Dashes
		a.Add(l)
		thumbs = append(thumbs, l)
	}
	if f.Glyph != nil {
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return errors.Wrap(err, "could not create markers")
		}
		radius := vg.Points(3)
		if f.Small {
			radius = vg.Points(1.2)
		}
		s.GlyphStyle = draw.GlyphStyle{Color: col, Radius: radius, Shape: f.Glyph}
		a.Add(s)
		thumbs = append(thumbs, s)
	}

	a.lines = append(a.lines, lineSeries{label: label, xys: xys, format: f, width: width, color: col})
	if label != "" {
		a.addLegend(label, thumbs...)
	}
	return nil
}

// placeLegend moves the legend to the corner whose quadrant holds the fewest
// data points.
func (a *Axes) placeLegend() {
	if len(a.lines) == 0 {
		return
	}
	midX := (a.X.Min + a.X.Max) / 2
	midY := (a.Y.Min + a.Y.Max) / 2
	// top-right, top-left, bottom-right, bottom-left
	var counts [4]int
	for _, ls := range a.lines {
		for _, pt := range ls.xys {
			q := 0
			if pt.X < midX {
				q++
			}
			if pt.Y < midY {
				q += 2
			}
			counts[q]++
		}
	}
	best := 0
	for q := 1; q < len(counts); q++ {
		if counts[q] < counts[best] {
			best = q
		}
	}
	a.Legend.Top = best < 2
	a.Legend.Left = best%2 == 1
}

// MakeSinglePlot draws one line into ax and returns ax.
func (p *Plotting) MakeSinglePlot(ax *Axes, x, y []float64, xlabel, ylabel, title string, opts LineOptions) (*Axes, error) {
	if ax == nil {
		return nil, newPlotError("line", ErrNilAxes)
	}
	if err := ax.addLine(x, y, opts.Format, opts.Width, opts.Legend); err != nil {
		return nil, newPlotError("line", err)
	}
	ax.setTitle(title, vg.Points(12))
	ax.setLabels(xlabel, ylabel, 0)
	if opts.Limits != nil {
		opts.Limits.apply(ax.Plot)
	}
	return ax, nil
}

// MakeThreeLinePlot compares the low, base and high cases of a run.
func (p *Plotting) MakeThreeLinePlot(lowX, lowY, baseX, baseY, highX, highY []float64, title, xlabel, ylabel string) (*Figure, error) {
	fig, axs := p.newFigure(1, 1)
	ax := axs[0]
	cases := []struct {
		x, y   []float64
		format string
		label  string
	}{
		{lowX, lowY, "--b", "Low"},
		{baseX, baseY, "k", "Base"},
		{highX, highY, "--r", "High"},
	}
	for _, c := range cases {
		if err := ax.addLine(c.x, c.y, c.format, vg.Points(2), c.label); err != nil {
			return nil, newPlotError("three_line", errors.Wrapf(err, "%s series", c.label))
		}
	}
	ax.setTitle(title, vg.Points(12))
	ax.setLabels(xlabel, ylabel, 0)
	ax.placeLegend()
	return fig, nil
}

// Series is one y array of a comparison plot with its format and label.
type Series struct {
	Y      []float64
	Marker string
	Label  string
}

// HeatFluxComparison overlays six series sharing one x array.
func (p *Plotting) HeatFluxComparison(x []float64, series [6]Series, title, xlabel, ylabel string) (*Figure, error) {
	fig, axs := p.newFigure(1, 1)
	ax := axs[0]
	for i, s := range series {
		if err := ax.addLine(x, s.Y, s.Marker, 0, s.Label); err != nil {
			return nil, newPlotError("comparison", errors.Wrapf(err, "series %d (%s)", i+1, s.Label))
		}
	}
	ax.setTitle(title, vg.Points(12))
	ax.setLabels(xlabel, ylabel, 0)
	ax.placeLegend()
	return fig, nil
}
