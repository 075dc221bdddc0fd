package plotting

import (
	"errors"
	"fmt"
)

// ErrNilAxes is returned when a method that draws into caller-owned axes
// is given none.
var ErrNilAxes = errors.New("axes is nil")

// ErrLengthMismatch indicates x and y arrays of different lengths.
var ErrLengthMismatch = errors.New("x and y lengths differ")

// ErrShapeMismatch indicates a 2D array whose shape does not match the mesh.
var ErrShapeMismatch = errors.New("grid shape mismatch")

// ErrNoData indicates an empty array or grid.
var ErrNoData = errors.New("no data")

// ErrFigureClosed is returned when exporting a figure released by Close.
var ErrFigureClosed = errors.New("figure is closed")

// PlotError represents a failure while building one chart.
type PlotError struct {
	Chart string // "surface", "line", "three_line", "residual", "comparison", "export"
	Err   error
}

func (e *PlotError) Error() string {
	return fmt.Sprintf("%s plot: %v", e.Chart, e.Err)
}

func (e *PlotError) Unwrap() error {
	return e.Err
}

func newPlotError(chart string, err error) *PlotError {
	return &PlotError{Chart: chart, Err: err}
}
