package plotting

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// previewGraph converts the line series of an axes into a go-chart graph.
func previewGraph(ax *Axes) chart.Chart {
	graph := chart.Chart{
		Title: ax.Title.Text,
		XAxis: chart.XAxis{Name: ax.X.Label.Text},
		YAxis: chart.YAxis{Name: ax.Y.Label.Text},
	}
	for _, ls := range ax.lines {
		// Convert points to 2 arrays
		xvals := make([]float64, 0, len(ls.xys))
		yvals := make([]float64, 0, len(ls.xys))
		for _, pt := range ls.xys {
			xvals = append(xvals, pt.X)
			yvals = append(yvals, pt.Y)
		}
		col := toDrawing(ls.color)
		style := chart.Style{
			StrokeColor: col,
			StrokeWidth: float64(ls.width),
		}
		if !ls.format.Line {
			style.StrokeWidth = chart.Disabled
		}
		for _, d := range ls.format.Dashes {
			style.StrokeDashArray = append(style.StrokeDashArray, float64(d))
		}
		if ls.format.Glyph != nil {
			style.DotColor = col
			style.DotWidth = 3
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    ls.label,
			Style:   style,
			XValues: xvals,
			YValues: yvals,
		})
	}
	if len(ax.legend) > 0 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph
}

func toDrawing(c color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// SavePreview writes a quick-look rendering of the lines in ax. The format
// follows the extension of path: ".png" for PNG, anything else SVG.
func (p *Plotting) SavePreview(path string, ax *Axes) error {
	if ax == nil {
		return newPlotError("preview", ErrNilAxes)
	}
	if len(ax.lines) == 0 {
		return newPlotError("preview", ErrNoData)
	}
	graph := previewGraph(ax)

	provider := chart.SVG
	if strings.EqualFold(filepath.Ext(path), ".png") {
		provider = chart.PNG
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	err = graph.Render(provider, fh)
	if err != nil {
		fh.Close()
		return errors.Wrap(err, "could not render preview")
	}
	return fh.Close()
}
