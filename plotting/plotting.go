// Package plotting builds the charts of a stream heat flux model run
// (surfaces, line comparisons, residual heat maps) and exports them to a
// single PDF document.
package plotting

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"
)

// DefaultPDFPath is where SavePlots writes, relative to the working directory.
var DefaultPDFPath = filepath.Join("Results", "PDFs", "hflux.pdf")

// Options configures a Plotting facade.
type Options struct {
	// PDFPath is the export destination. Relative paths are resolved
	// against the working directory at export time.
	PDFPath string
	// Width and Height are the size of every PDF page; figures are drawn
	// to fill the page.
	Width, Height vg.Length
	// Progress receives the export status lines. If nil, os.Stdout is used.
	Progress io.Writer
	// ColorMap names the colormap of surfaces and heat maps ("jet" or "viridis").
	ColorMap string
}

// DefaultOptions returns the options matching the hflux output layout.
func DefaultOptions() Options {
	return Options{
		PDFPath:  DefaultPDFPath,
		Width:    6.4 * vg.Inch,
		Height:   4.8 * vg.Inch,
		Progress: os.Stdout,
		ColorMap: "jet",
	}
}

// Plotting builds figures and exports them. It keeps no state between calls.
type Plotting struct {
	opts Options
}

// New returns a facade using opts, with zero fields taken from DefaultOptions.
func New(opts Options) *Plotting {
	def := DefaultOptions()
	if opts.PDFPath == "" {
		opts.PDFPath = def.PDFPath
	}
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Progress == nil {
		opts.Progress = def.Progress
	}
	if opts.ColorMap == "" {
		opts.ColorMap = def.ColorMap
	}
	return &Plotting{opts: opts}
}

// Options returns the effective options.
func (p *Plotting) Options() Options {
	return p.opts
}

func (p *Plotting) newFigure(rows, cols int) (*Figure, []*Axes) {
	return newFigure(rows, cols)
}

// Subplots returns a new figure with a rows x cols grid of empty axes,
// in row-major order.
func (p *Plotting) Subplots(rows, cols int) (*Figure, []*Axes) {
	return p.newFigure(rows, cols)
}

var methodSummary = []struct {
	name, desc string
}{
	{"Subplots(rows, cols)", "new figure with a grid of axes"},
	{"Make3DPlot(x, y, z, xlabel, ylabel, zlabel, cbarLabel, title)", "surface over the x/y mesh with a colorbar"},
	{"MakeSinglePlot(ax, x, y, xlabel, ylabel, title, opts)", "one line drawn into existing axes"},
	{"MakeThreeLinePlot(lowX, lowY, baseX, baseY, highX, highY, title, xlabel, ylabel)", "Low/Base/High comparison"},
	{"MakeResidualPlot(data, xlabel, ylabel, title, cbarLabel)", "heat map with the y axis inverted"},
	{"HeatFluxComparison(x, series, title, xlabel, ylabel)", "six series sharing one x array"},
	{"SavePlots(figs...)", "write figures as PDF pages"},
	{"SavePreview(path, ax)", "SVG or PNG quick look of the lines in an axes"},
}

// ClassAssistant prints a summary of the facade's methods to w.
func (p *Plotting) ClassAssistant(w io.Writer) {
	fmt.Fprintln(w, "Plotting - heat flux chart helper")
	fmt.Fprintf(w, "    pdf path: %s\n", p.opts.PDFPath)
	fmt.Fprintln(w, "Methods available:")
	for _, m := range methodSummary {
		fmt.Fprintf(w, "    %-40s %s\n", m.name, m.desc)
	}
}
