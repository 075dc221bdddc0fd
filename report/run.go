package report

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"

	"hflux/dataset"
	"hflux/plotting"
)

// tables caches loaded data files by resolved path.
type tables struct {
	job    *Job
	loaded map[string]*dataset.Table
}

func (t *tables) get(file string) (*dataset.Table, error) {
	path := t.job.Path(file)
	if tbl, ok := t.loaded[path]; ok {
		return tbl, nil
	}
	tbl, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	t.loaded[path] = tbl
	return tbl, nil
}

func (t *tables) column(file, name string) ([]float64, error) {
	tbl, err := t.get(file)
	if err != nil {
		return nil, err
	}
	col, err := tbl.Column(name)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return col, nil
}

// ref loads an optional column reference; a nil ref yields nil.
func (t *tables) ref(r *Ref) ([]float64, error) {
	if r == nil {
		return nil, nil
	}
	return t.column(r.File, r.Column)
}

func (t *tables) curve(c *Curve) (x, y []float64, err error) {
	if x, err = t.column(c.File, c.X); err != nil {
		return nil, nil, err
	}
	if y, err = t.column(c.File, c.Y); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Build renders every figure of job through p, in order.
func Build(job *Job, p *plotting.Plotting) ([]*plotting.Figure, error) {
	t := &tables{job: job, loaded: make(map[string]*dataset.Table)}
	figs := make([]*plotting.Figure, 0, len(job.Figures))
	for i := range job.Figures {
		f := &job.Figures[i]
		fig, err := build(t, f, p)
		if err != nil {
			for _, done := range figs {
				done.Close()
			}
			return nil, errors.Wrapf(err, "figure %d (%s)", i+1, f.Kind)
		}
		figs = append(figs, fig)
	}
	return figs, nil
}

func build(t *tables, f *Figure, p *plotting.Plotting) (*plotting.Figure, error) {
	switch f.Kind {
	case KindSurface:
		grid, err := t.get(f.Grid)
		if err != nil {
			return nil, err
		}
		x, err := t.ref(f.X)
		if err != nil {
			return nil, err
		}
		y, err := t.ref(f.Y)
		if err != nil {
			return nil, err
		}
		return p.Make3DPlot(x, y, grid.Grid(), f.XLabel, f.YLabel, f.ZLabel, f.ColorbarLabel, f.Title)

	case KindResidual:
		grid, err := t.get(f.Grid)
		if err != nil {
			return nil, err
		}
		return p.MakeResidualPlot(grid.Grid(), f.XLabel, f.YLabel, f.Title, f.ColorbarLabel)

	case KindThreeLine:
		var xy [3][2][]float64
		for i, c := range []*Curve{f.Low, f.Base, f.High} {
			x, y, err := t.curve(c)
			if err != nil {
				return nil, err
			}
			xy[i] = [2][]float64{x, y}
		}
		return p.MakeThreeLinePlot(xy[0][0], xy[0][1], xy[1][0], xy[1][1], xy[2][0], xy[2][1], f.Title, f.XLabel, f.YLabel)

	case KindComparison:
		x, err := t.column(f.Data, f.XCol)
		if err != nil {
			return nil, err
		}
		var series [6]plotting.Series
		for i, s := range f.Series {
			y, err := t.column(f.Data, s.Column)
			if err != nil {
				return nil, err
			}
			label := s.Label
			if label == "" {
				label = s.Column
			}
			series[i] = plotting.Series{Y: y, Marker: s.Marker, Label: label}
		}
		return p.HeatFluxComparison(x, series, f.Title, f.XLabel, f.YLabel)

	case KindLines:
		fig, axs := p.Subplots(f.Rows, f.Cols)
		if len(f.Panels) > len(axs) {
			fig.Close()
			return nil, fmt.Errorf("%d panels do not fit a %dx%d grid", len(f.Panels), max(f.Rows, 1), max(f.Cols, 1))
		}
		for i, pn := range f.Panels {
			x, err := t.column(pn.File, pn.X)
			if err != nil {
				fig.Close()
				return nil, err
			}
			y, err := t.column(pn.File, pn.Y)
			if err != nil {
				fig.Close()
				return nil, err
			}
			opts := plotting.LineOptions{Format: pn.Format, Width: vg.Length(pn.Width), Legend: pn.Legend}
			if len(pn.Limits) == 4 {
				opts.Limits = &plotting.Limits{XMin: pn.Limits[0], XMax: pn.Limits[1], YMin: pn.Limits[2], YMax: pn.Limits[3]}
			}
			if _, err := p.MakeSinglePlot(axs[i], x, y, pn.XLabel, pn.YLabel, pn.Title, opts); err != nil {
				fig.Close()
				return nil, errors.Wrapf(err, "panel %d", i+1)
			}
		}
		return fig, nil
	}
	return nil, fmt.Errorf("unknown kind %q", f.Kind)
}

// Run builds the figures of job and saves them as one PDF.
func Run(job *Job, p *plotting.Plotting) error {
	figs, err := Build(job, p)
	if err != nil {
		return err
	}
	return p.SavePlots(figs...)
}

// Options returns the plotting options for job: base with the job's output
// path and colormap applied when set.
func (j *Job) Options(base plotting.Options) plotting.Options {
	if j.Output != "" {
		base.PDFPath = j.Path(j.Output)
	}
	if j.ColorMap != "" {
		base.ColorMap = j.ColorMap
	}
	return base
}
