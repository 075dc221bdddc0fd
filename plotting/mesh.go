package plotting

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
)

// Grid holds z values over x (columns) and y (rows) coordinates.
type Grid struct {
	x, y []float64
	z    [][]float64
}

var _ plotter.GridXYZ = (*Grid)(nil)

// NewGrid checks that z has len(y) rows of len(x) values. A nil x or y is
// replaced by the column or row indices of z.
func NewGrid(x, y []float64, z [][]float64) (*Grid, error) {
	if len(z) == 0 || len(z[0]) == 0 {
		return nil, ErrNoData
	}
	if x == nil {
		x = indices(len(z[0]))
	}
	if y == nil {
		y = indices(len(z))
	}
	if len(z) != len(y) {
		return nil, fmt.Errorf("%w: %d rows for %d y values", ErrShapeMismatch, len(z), len(y))
	}
	for r, row := range z {
		if len(row) != len(x) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d x values", ErrShapeMismatch, r, len(row), len(x))
		}
	}
	return &Grid{x: x, y: y, z: z}, nil
}

func indices(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = float64(i)
	}
	return v
}

func (g *Grid) Dims() (c, r int) { return len(g.x), len(g.y) }
func (g *Grid) Z(c, r int) float64 { return g.z[r][c] }
func (g *Grid) X(c int) float64 { return g.x[c] }
func (g *Grid) Y(r int) float64 { return g.y[r] }
func (g *Grid) Rows() [][]float64 { return g.z }

// Meshgrid returns coordinate matrices with len(y) rows and len(x) columns:
// xx repeats x on every row and yy repeats y[i] across row i.
func Meshgrid(x, y []float64) (xx, yy [][]float64) {
	xx = make([][]float64, len(y))
	yy = make([][]float64, len(y))
	for i := range y {
		xx[i] = append([]float64(nil), x...)
		yy[i] = make([]float64, len(x))
		for j := range x {
			yy[i][j] = y[i]
		}
	}
	return xx, yy
}

// zipXY pairs x and y, failing rather than truncating when lengths differ.
func zipXY(x, y []float64) (plotter.XYs, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: len(x)=%d len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, ErrNoData
	}
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i].X, xys[i].Y = x[i], y[i]
	}
	return xys, nil
}
