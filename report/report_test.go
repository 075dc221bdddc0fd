package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rsc.io/pdf"

	"hflux/plotting"
)

const seriesCSV = `time,low,base,high,m1,m2,m3,m4,m5,m6
0,14.0,14.5,15.0,1,2,3,4,5,6
10,14.2,14.9,15.6,2,3,4,5,6,7
20,14.6,15.4,16.1,3,4,5,6,7,8
30,14.4,15.2,16.0,2,3,4,5,6,7
`

const gridCSV = `0.1,0.2,0.3,0.4
0.2,0.3,0.4,0.5
0.3,0.4,0.5,0.6
`

const axisCSV = `distance,time
0,0
25,10
50,20
75,
`

const jobYAML = `
output: out/report.pdf
colormap: viridis
figures:
  - kind: surface
    title: Modeled temperature
    xlabel: Distance (m)
    ylabel: Time (min)
    zlabel: Temp (°C)
    colorbar: Temperature (°C)
    grid: grid.csv
    x: {file: axis.csv, column: distance}
  - kind: three_line
    title: Sensitivity
    xlabel: Time (min)
    ylabel: Temp (°C)
    low: {file: series.csv, x: time, y: low}
    base: {file: series.csv, x: time, y: base}
    high: {file: series.csv, x: time, y: high}
  - kind: residual
    title: Residuals
    colorbar: Error (°C)
    grid: grid.csv
  - kind: comparison
    title: Heat flux
    data: series.csv
    xcol: time
    series:
      - {column: m1, marker: o, label: Shortwave}
      - {column: m2, marker: "--"}
      - {column: m3, marker: k}
      - {column: m4, marker: ":g"}
      - {column: m5, marker: s-}
      - {column: m6, marker: ^r}
  - kind: lines
    rows: 2
    panels:
      - {file: series.csv, x: time, y: base, title: Base, format: o-, limits: [0, 30, 10, 20]}
      - {file: series.csv, x: time, y: high, title: High, legend: high}
`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"series.csv": seriesCSV,
		"grid.csv":   gridCSV,
		"axis.csv":   axisCSV,
		"job.yaml":   jobYAML,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "out"), 0755))
	return dir
}

func TestLoadFileYAML(t *testing.T) {
	dir := writeFixtures(t)
	job, err := LoadFile(filepath.Join(dir, "job.yaml"))
	require.NoError(t, err)

	require.Len(t, job.Figures, 5)
	assert.Equal(t, KindSurface, job.Figures[0].Kind)
	assert.Equal(t, "distance", job.Figures[0].X.Column)
	assert.Nil(t, job.Figures[0].Y)
	assert.Equal(t, "", job.Figures[3].Series[1].Label)
	assert.Equal(t, []float64{0, 30, 10, 20}, job.Figures[4].Panels[0].Limits)
	assert.Equal(t, filepath.Join(dir, "grid.csv"), job.Path("grid.csv"))

	opts := job.Options(plotting.DefaultOptions())
	assert.Equal(t, filepath.Join(dir, "out", "report.pdf"), opts.PDFPath)
	assert.Equal(t, "viridis", opts.ColorMap)
}

func TestRun(t *testing.T) {
	dir := writeFixtures(t)
	job, err := LoadFile(filepath.Join(dir, "job.yaml"))
	require.NoError(t, err)

	var out bytes.Buffer
	base := plotting.DefaultOptions()
	base.Progress = &out
	p := plotting.New(job.Options(base))
	require.NoError(t, Run(job, p))

	r, err := pdf.Open(filepath.Join(dir, "out", "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, 5, r.NumPage())
	assert.Contains(t, out.String(), "Done!")
}

func TestBuildFigures(t *testing.T) {
	dir := writeFixtures(t)
	job, err := LoadFile(filepath.Join(dir, "job.yaml"))
	require.NoError(t, err)

	var out bytes.Buffer
	p := plotting.New(plotting.Options{Progress: &out})
	figs, err := Build(job, p)
	require.NoError(t, err)
	require.Len(t, figs, 5)

	assert.NotNil(t, figs[0].Axes()[0].Surface())
	assert.Equal(t, []string{"Low", "Base", "High"}, figs[1].Axes()[0].LegendLabels())
	assert.True(t, figs[2].Axes()[0].YInverted())
	assert.Equal(t, []string{"Shortwave", "m2", "m3", "m4", "m5", "m6"}, figs[3].Axes()[0].LegendLabels())

	rows, cols := figs[4].Grid()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 1, cols)
	assert.Equal(t, "High", figs[4].Axes()[1].Title.Text)
}

func TestBuildMissingColumn(t *testing.T) {
	dir := writeFixtures(t)
	job, err := ParseYAML([]byte(`
figures:
  - kind: three_line
    low: {file: series.csv, x: time, y: low}
    base: {file: series.csv, x: time, y: nope}
    high: {file: series.csv, x: time, y: high}
`))
	require.NoError(t, err)
	job.dir = dir

	var out bytes.Buffer
	_, err = Build(job, plotting.New(plotting.Options{Progress: &out}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "figure 1 (three_line)")
	assert.Contains(t, err.Error(), "nope")
}

func TestBuildTooManyPanels(t *testing.T) {
	dir := writeFixtures(t)
	job, err := ParseYAML([]byte(`
figures:
  - kind: lines
    panels:
      - {file: series.csv, x: time, y: low}
      - {file: series.csv, x: time, y: high}
`))
	require.NoError(t, err)
	job.dir = dir

	var out bytes.Buffer
	_, err = Build(job, plotting.New(plotting.Options{Progress: &out}))
	assert.ErrorContains(t, err, "do not fit a 1x1 grid")
}

func TestParseTOML(t *testing.T) {
	job, err := ParseTOML([]byte(`
output = "hflux.pdf"

[[figures]]
kind = "residual"
title = "Residuals"
grid = "resid.csv"

[[figures]]
kind = "three_line"
low = { file = "s.csv", x = "t", y = "lo" }
base = { file = "s.csv", x = "t", y = "b" }
high = { file = "s.csv", x = "t", y = "hi" }
`))
	require.NoError(t, err)
	assert.Equal(t, "hflux.pdf", job.Output)
	require.Len(t, job.Figures, 2)
	assert.Equal(t, "resid.csv", job.Figures[0].Grid)
	assert.Equal(t, "hi", job.Figures[1].High.Y)
}

func TestParseErrors(t *testing.T) {
	var tests = []struct {
		name string
		yaml string
		want string
	}{
		{"unknown kind", "figures: [{kind: pie}]", `unknown kind "pie"`},
		{"missing kind", "figures: [{title: x}]", "missing kind"},
		{"no grid", "figures: [{kind: surface}]", "needs a grid"},
		{"short comparison", "figures: [{kind: comparison, data: d.csv, xcol: t, series: [{column: a}]}]", "needs 6 series"},
		{"three line", "figures: [{kind: three_line, low: {file: a, x: b, y: c}}]", "low, base and high"},
		{"limits", "figures: [{kind: lines, panels: [{file: a, x: b, y: c, limits: [1, 2]}]}]", "limits needs 4"},
		{"unknown key", "figures: [{kind: residual, grid: g.csv, colour: red}]", "colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadFileExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "unsupported extension")
}
