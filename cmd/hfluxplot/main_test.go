package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const obsCSV = `time,temp
0,14.5
10,15.1
20,15.8
30,15.4
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMethods(t *testing.T) {
	out, err := execute(t, "methods")
	require.NoError(t, err)
	assert.Contains(t, out, "MakeResidualPlot")
	assert.Contains(t, out, "SavePlots")
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "obs.csv"), []byte(obsCSV), 0644))
	job := `figures:
  - kind: lines
    panels:
      - {file: obs.csv, x: time, y: temp, title: Observed}
`
	jobPath := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(jobPath, []byte(job), 0644))

	pdfPath := filepath.Join(dir, "report.pdf")
	out, err := execute(t, "render", "--dump", "--out", pdfPath, jobPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Rendering 1 figures")
	assert.Contains(t, out, "Saving PDF to "+pdfPath+"...")
	assert.Contains(t, out, "Done!")
	assert.Contains(t, out, "Observed")
	assert.FileExists(t, pdfPath)
}

func TestRenderMissingJob(t *testing.T) {
	_, err := execute(t, "render", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "obs.csv")
	require.NoError(t, os.WriteFile(data, []byte(obsCSV), 0644))

	svg := filepath.Join(dir, "temp.svg")
	out, err := execute(t, "preview", "--format", "o-b", data, "time", "temp", svg)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+svg)
	assert.FileExists(t, svg)

	_, err = execute(t, "preview", data, "time", "flux", svg)
	assert.ErrorContains(t, err, "unknown column")
}

func TestArgs(t *testing.T) {
	_, err := execute(t, "preview", "a", "b")
	assert.Error(t, err)
	_, err = execute(t, "methods", "extra")
	assert.Error(t, err)
}
