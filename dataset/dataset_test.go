package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSVWithHeader(t *testing.T) {
	path := writeFile(t, "obs.csv", "# stream observations\ntime, temp, flux\n0, 14.5, 120\n10, 15.1,\n20, 15.8, 98.5\n")
	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"time", "temp", "flux"}, tbl.Names())
	temp, err := tbl.Column("temp")
	require.NoError(t, err)
	assert.Equal(t, []float64{14.5, 15.1, 15.8}, temp)

	flux, err := tbl.Column("flux")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(flux[1]))
	assert.Equal(t, 98.5, flux[2])
}

func TestLoadCSVGrid(t *testing.T) {
	path := writeFile(t, "resid.csv", "0.1,0.2,0.3\n-0.4,0.5,-0.6\n")
	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"col1", "col2", "col3"}, tbl.Names())
	assert.Equal(t, [][]float64{{0.1, 0.2, 0.3}, {-0.4, 0.5, -0.6}}, tbl.Grid())
}

func TestLoadErrors(t *testing.T) {
	var tests = []struct {
		name    string
		content string
		want    error
	}{
		{"empty", "", ErrEmpty},
		{"header only", "a,b\n", ErrEmpty},
		{"comments only", "# nothing\n\n", ErrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "x.csv", tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadNonNumericCell(t *testing.T) {
	path := writeFile(t, "bad.csv", "x,y\n1,2\n3,warm\n")
	_, err := Load(path)
	require.Error(t, err)

	var ce *CellError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 3, ce.Row)
	assert.Equal(t, 2, ce.Col)
	assert.Contains(t, err.Error(), "B3")
	assert.Contains(t, err.Error(), "warm")
}

func TestUnknownColumn(t *testing.T) {
	tbl, err := Parse([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	_, err = tbl.Column("c")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "distance")
	f.SetCellValue(sheet, "B1", "temp")
	f.SetCellValue(sheet, "A2", 0)
	f.SetCellValue(sheet, "B2", 14.25)
	f.SetCellValue(sheet, "A3", 50)
	f.SetCellValue(sheet, "B3", 15.5)
	f.SetCellValue(sheet, "A4", 100)

	// The extension is deliberately wrong; the header decides.
	path := filepath.Join(t.TempDir(), "model.dat")
	if err := f.SaveAs(path + ".xlsx"); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	require.NoError(t, os.Rename(path+".xlsx", path))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"distance", "temp"}, tbl.Names())

	d, err := tbl.Column("distance")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 50, 100}, d)

	temp, err := tbl.Column("temp")
	require.NoError(t, err)
	assert.Equal(t, 14.25, temp[0])
	assert.True(t, math.IsNaN(temp[2]))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, os.IsNotExist(err) || errors.Is(err, os.ErrNotExist))
}
