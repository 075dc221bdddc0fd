package plotting

import (
	"image/color"
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// View is the camera direction of a surface, in degrees.
type View struct {
	Azimuth, Elevation float64
}

// DefaultView looks at the surface from the front-left and above.
var DefaultView = View{Azimuth: -60, Elevation: 30}

// Height of the box relative to its width and depth.
const zAspect = 0.75

// Surface is a plot.Plotter drawing a colored surface over a mesh, seen
// through an oblique projection, together with its three labeled axes.
// The hosting plot's own axes should be hidden.
type Surface struct {
	XX, YY, ZZ [][]float64

	ColorMap *ColorMap

	// RowStride and ColStride downsample the mesh into faces.
	RowStride, ColStride int

	XLabel, YLabel, ZLabel string

	// InvertX runs the x axis from high to low values.
	InvertX bool

	View View

	TickStyle  text.Style
	LabelStyle text.Style
	BoxStyle   draw.LineStyle

	xr, yr, zr [2]float64
}

func newSurface(xx, yy, zz [][]float64, cm *ColorMap) *Surface {
	tick := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, 8),
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
	label := tick
	label.Font.Size = vg.Points(11)
	s := &Surface{
		XX: xx, YY: yy, ZZ: zz,
		ColorMap:   cm,
		RowStride:  10,
		ColStride:  10,
		View:       DefaultView,
		TickStyle:  tick,
		LabelStyle: label,
		BoxStyle: draw.LineStyle{
			Color: color.Gray{Y: 0x80},
			Width: vg.Points(0.5),
		},
	}
	s.xr = spanOf(xx)
	s.yr = spanOf(yy)
	s.zr[0], s.zr[1] = valueRange(zz)
	return s
}

func spanOf(rows [][]float64) [2]float64 {
	min, max := valueRange(rows)
	return [2]float64{min, max}
}

type vec3 struct{ x, y, z float64 }

func (v vec3) add(o vec3) vec3 { return vec3{v.x + o.x, v.y + o.y, v.z + o.z} }

func unit(v float64, r [2]float64) float64 {
	if r[1] == r[0] {
		return 0.5
	}
	return (v - r[0]) / (r[1] - r[0])
}

// norm maps data coordinates into the box [-.5,.5]x[-.5,.5]x[-zAspect/2,zAspect/2].
func (s *Surface) norm(x, y, z float64) vec3 {
	xn := unit(x, s.xr) - 0.5
	if s.InvertX {
		xn = -xn
	}
	return vec3{xn, unit(y, s.yr) - 0.5, (unit(z, s.zr) - 0.5) * zAspect}
}

// project returns screen coordinates and the distance towards the camera.
func (s *Surface) project(v vec3) (sx, sy, depth float64) {
	a := s.View.Azimuth * math.Pi / 180
	e := s.View.Elevation * math.Pi / 180
	sa, ca := math.Sincos(a)
	se, ce := math.Sincos(e)
	sx = -v.x*sa + v.y*ca
	sy = -v.x*se*ca - v.y*se*sa + v.z*ce
	depth = v.x*ce*ca + v.y*ce*sa + v.z*se
	return sx, sy, depth
}

func (s *Surface) depth(v vec3) float64 {
	_, _, d := s.project(v)
	return d
}

const (
	zLo = -zAspect / 2
	zHi = zAspect / 2
)

// axisFrame describes where one axis is drawn: the edge it follows, the
// direction labels are pushed away from the box, and its data range.
type axisFrame struct {
	from, to vec3
	out      vec3
	span     [2]float64
	label    string
	invert   bool
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// frames picks the box edges closest to the camera for x and y, and the
// leftmost vertical edge for z.
func (s *Surface) frames() [3]axisFrame {
	ye := -0.5
	if s.depth(vec3{0, 0.5, zLo}) > s.depth(vec3{0, -0.5, zLo}) {
		ye = 0.5
	}
	xe := -0.5
	if s.depth(vec3{0.5, 0, zLo}) > s.depth(vec3{-0.5, 0, zLo}) {
		xe = 0.5
	}
	var zc vec3
	left := math.Inf(1)
	for _, c := range [4]vec3{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0}, {-0.5, 0.5, 0}} {
		if sx, _, _ := s.project(c); sx < left {
			left, zc = sx, c
		}
	}
	return [3]axisFrame{
		{
			from: vec3{-0.5, ye, zLo}, to: vec3{0.5, ye, zLo},
			out: vec3{0, 0.12 * sign(ye), 0}, span: s.xr, label: s.XLabel, invert: s.InvertX,
		},
		{
			from: vec3{xe, -0.5, zLo}, to: vec3{xe, 0.5, zLo},
			out: vec3{0.12 * sign(xe), 0, 0}, span: s.yr, label: s.YLabel,
		},
		{
			from: vec3{zc.x, zc.y, zLo}, to: vec3{zc.x, zc.y, zHi},
			out: vec3{0.1 * sign(zc.x), 0.1 * sign(zc.y), 0}, span: s.zr, label: s.ZLabel,
		},
	}
}

// DataRange implements plot.DataRanger in projected screen units.
func (s *Surface) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	grow := func(v vec3) {
		sx, sy, _ := s.project(v)
		xmin, xmax = math.Min(xmin, sx), math.Max(xmax, sx)
		ymin, ymax = math.Min(ymin, sy), math.Max(ymax, sy)
	}
	for _, x := range [2]float64{-0.5, 0.5} {
		for _, y := range [2]float64{-0.5, 0.5} {
			for _, z := range [2]float64{zLo, zHi} {
				grow(vec3{x, y, z})
			}
		}
	}
	for _, f := range s.frames() {
		far := vec3{f.out.x * 3, f.out.y * 3, f.out.z * 3}
		grow(f.from.add(far))
		grow(f.to.add(far))
	}
	return xmin, xmax, ymin, ymax
}

type face struct {
	pts   [4]vec3
	z     float64
	depth float64
}

func (s *Surface) faces() []face {
	rows := len(s.ZZ)
	if rows < 2 || len(s.ZZ[0]) < 2 {
		return nil
	}
	cols := len(s.ZZ[0])
	rs, cs := max(s.RowStride, 1), max(s.ColStride, 1)
	var fs []face
	for i := 0; i < rows-1; i += rs {
		i2 := min(i+rs, rows-1)
		for j := 0; j < cols-1; j += cs {
			j2 := min(j+cs, cols-1)
			idx := [4][2]int{{i, j}, {i, j2}, {i2, j2}, {i2, j}}
			var f face
			var centre vec3
			for k, ij := range idx {
				r, c := ij[0], ij[1]
				f.pts[k] = s.norm(s.XX[r][c], s.YY[r][c], s.ZZ[r][c])
				f.z += s.ZZ[r][c] / 4
				centre = centre.add(vec3{f.pts[k].x / 4, f.pts[k].y / 4, f.pts[k].z / 4})
			}
			if math.IsNaN(f.z) || math.IsInf(f.z, 0) {
				continue
			}
			f.depth = s.depth(centre)
			fs = append(fs, f)
		}
	}
	// Painter's order: farthest first.
	sort.Slice(fs, func(a, b int) bool { return fs[a].depth < fs[b].depth })
	return fs
}

// Plot implements plot.Plotter.
func (s *Surface) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	pt := func(v vec3) vg.Point {
		sx, sy, _ := s.project(v)
		return vg.Point{X: trX(sx), Y: trY(sy)}
	}

	s.drawPanes(&c, pt)

	for _, f := range s.faces() {
		pts := make([]vg.Point, len(f.pts))
		for k, v := range f.pts {
			pts[k] = pt(v)
		}
		col := s.ColorMap.color(math.Max(s.zr[0], math.Min(s.zr[1], f.z)))
		c.FillPolygon(col, c.ClipPolygonXY(pts))
	}

	for _, f := range s.frames() {
		s.drawAxis(&c, pt, f)
	}
}

// drawPanes outlines the three back walls of the box.
func (s *Surface) drawPanes(c *draw.Canvas, pt func(vec3) vg.Point) {
	back := vec3{-0.5, -0.5, zLo}
	for _, x := range [2]float64{-0.5, 0.5} {
		for _, y := range [2]float64{-0.5, 0.5} {
			if v := (vec3{x, y, zLo}); s.depth(v) < s.depth(back) {
				back = v
			}
		}
	}
	ends := []vec3{
		{-back.x, back.y, zLo},
		{back.x, -back.y, zLo},
		{back.x, back.y, zHi},
	}
	for _, e := range ends {
		c.StrokeLines(s.BoxStyle, []vg.Point{pt(back), pt(e)})
	}
	c.StrokeLines(s.BoxStyle, []vg.Point{pt(vec3{-back.x, back.y, zHi}), pt(vec3{back.x, back.y, zHi}), pt(vec3{back.x, -back.y, zHi})})
}

func (s *Surface) drawAxis(c *draw.Canvas, pt func(vec3) vg.Point, f axisFrame) {
	edge := draw.LineStyle{Color: color.Black, Width: vg.Points(0.75)}
	c.StrokeLines(edge, []vg.Point{pt(f.from), pt(f.to)})

	dir := vec3{f.to.x - f.from.x, f.to.y - f.from.y, f.to.z - f.from.z}
	for _, t := range (plot.DefaultTicks{}).Ticks(f.span[0], f.span[1]) {
		if t.IsMinor() {
			continue
		}
		u := unit(t.Value, f.span)
		if u < -1e-9 || u > 1+1e-9 {
			continue
		}
		if f.invert {
			u = 1 - u
		}
		at := f.from.add(vec3{dir.x * u, dir.y * u, dir.z * u})
		c.StrokeLines(edge, []vg.Point{pt(at), pt(at.add(vec3{f.out.x / 4, f.out.y / 4, f.out.z / 4}))})
		c.FillText(s.TickStyle, pt(at.add(f.out)), t.Label)
	}
	if f.label != "" {
		mid := f.from.add(vec3{dir.x / 2, dir.y / 2, dir.z / 2})
		c.FillText(s.LabelStyle, pt(mid.add(vec3{f.out.x * 2.5, f.out.y * 2.5, f.out.z * 2.5})), f.label)
	}
}

// Make3DPlot renders z over the mesh of x and y as a colored surface with a
// colorbar. The x axis is inverted.
func (p *Plotting) Make3DPlot(x, y []float64, z [][]float64, xlabel, ylabel, zlabel, colorbarLabel, title string) (*Figure, error) {
	g, err := NewGrid(x, y, z)
	if err != nil {
		return nil, newPlotError("surface", err)
	}
	xx, yy := Meshgrid(g.x, g.y)
	min, max := valueRange(z)
	cm, err := NewColorMap(p.opts.ColorMap, min, max)
	if err != nil {
		return nil, newPlotError("surface", errors.Wrap(err, "could not create colormap"))
	}

	s := newSurface(xx, yy, z, cm)
	s.XLabel, s.YLabel, s.ZLabel = xlabel, ylabel, zlabel
	s.InvertX = true

	fig, axs := p.newFigure(1, 1)
	ax := axs[0]
	ax.HideAxes()
	ax.Add(s)
	ax.surface = s
	ax.setTitle(title, vg.Points(12))
	ax.colorBar = newColorBar(cm, colorbarLabel)
	return fig, nil
}
