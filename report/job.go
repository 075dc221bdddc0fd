// Package report runs plotting jobs: files that describe a list of figures
// and the data files feeding them, rendered into one PDF.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Figure kinds.
const (
	KindSurface    = "surface"
	KindThreeLine  = "three_line"
	KindResidual   = "residual"
	KindComparison = "comparison"
	KindLines      = "lines"
)

// Job is a parsed job file.
type Job struct {
	// Output overrides the PDF path of the plotting options.
	Output   string   `yaml:"output,omitempty" toml:"output,omitempty"`
	ColorMap string   `yaml:"colormap,omitempty" toml:"colormap,omitempty"`
	Figures  []Figure `yaml:"figures" toml:"figures"`

	// directory of the job file; data paths are relative to it
	dir string
}

// Figure describes one page of the output.
type Figure struct {
	Kind          string `yaml:"kind" toml:"kind"`
	Title         string `yaml:"title,omitempty" toml:"title,omitempty"`
	XLabel        string `yaml:"xlabel,omitempty" toml:"xlabel,omitempty"`
	YLabel        string `yaml:"ylabel,omitempty" toml:"ylabel,omitempty"`
	ZLabel        string `yaml:"zlabel,omitempty" toml:"zlabel,omitempty"`
	ColorbarLabel string `yaml:"colorbar,omitempty" toml:"colorbar,omitempty"`

	// surface and residual
	Grid string `yaml:"grid,omitempty" toml:"grid,omitempty"`
	X    *Ref   `yaml:"x,omitempty" toml:"x,omitempty"`
	Y    *Ref   `yaml:"y,omitempty" toml:"y,omitempty"`

	// three_line
	Low  *Curve `yaml:"low,omitempty" toml:"low,omitempty"`
	Base *Curve `yaml:"base,omitempty" toml:"base,omitempty"`
	High *Curve `yaml:"high,omitempty" toml:"high,omitempty"`

	// comparison
	Data   string   `yaml:"data,omitempty" toml:"data,omitempty"`
	XCol   string   `yaml:"xcol,omitempty" toml:"xcol,omitempty"`
	Series []Series `yaml:"series,omitempty" toml:"series,omitempty"`

	// lines
	Rows   int     `yaml:"rows,omitempty" toml:"rows,omitempty"`
	Cols   int     `yaml:"cols,omitempty" toml:"cols,omitempty"`
	Panels []Panel `yaml:"panels,omitempty" toml:"panels,omitempty"`
}

// Ref names one column of a data file.
type Ref struct {
	File   string `yaml:"file" toml:"file"`
	Column string `yaml:"column" toml:"column"`
}

// Curve is an x/y pair of columns from one data file.
type Curve struct {
	File string `yaml:"file" toml:"file"`
	X    string `yaml:"x" toml:"x"`
	Y    string `yaml:"y" toml:"y"`
}

// Series is one y column of a comparison figure.
type Series struct {
	Column string `yaml:"column" toml:"column"`
	Marker string `yaml:"marker,omitempty" toml:"marker,omitempty"`
	Label  string `yaml:"label,omitempty" toml:"label,omitempty"`
}

// Panel is one axes of a lines figure.
type Panel struct {
	File   string    `yaml:"file" toml:"file"`
	X      string    `yaml:"x" toml:"x"`
	Y      string    `yaml:"y" toml:"y"`
	Title  string    `yaml:"title,omitempty" toml:"title,omitempty"`
	XLabel string    `yaml:"xlabel,omitempty" toml:"xlabel,omitempty"`
	YLabel string    `yaml:"ylabel,omitempty" toml:"ylabel,omitempty"`
	Format string    `yaml:"format,omitempty" toml:"format,omitempty"`
	Width  float64   `yaml:"width,omitempty" toml:"width,omitempty"`
	Legend string    `yaml:"legend,omitempty" toml:"legend,omitempty"`
	Limits []float64 `yaml:"limits,omitempty" toml:"limits,omitempty"`
}

// LoadFile reads a job from a .yaml, .yml or .toml file.
func LoadFile(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}
	var job *Job
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		job, err = ParseYAML(data)
	case ".toml":
		job, err = ParseTOML(data)
	default:
		return nil, fmt.Errorf("job file %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	job.dir = filepath.Dir(path)
	return job, nil
}

// ParseYAML parses YAML job data. Unknown keys are errors.
func ParseYAML(data []byte) (*Job, error) {
	var job Job
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to parse job YAML: %w", err)
	}
	if err := job.validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// ParseTOML parses TOML job data. Unknown keys are errors.
func ParseTOML(data []byte) (*Job, error) {
	var job Job
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&job); err != nil {
		return nil, fmt.Errorf("failed to parse job TOML: %w", err)
	}
	if err := job.validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Path resolves a data file reference against the job file's directory.
func (j *Job) Path(file string) string {
	if filepath.IsAbs(file) || j.dir == "" {
		return file
	}
	return filepath.Join(j.dir, file)
}

func (j *Job) validate() error {
	for i, f := range j.Figures {
		if err := f.validate(); err != nil {
			return fmt.Errorf("figure %d: %w", i+1, err)
		}
	}
	return nil
}

func (f *Figure) validate() error {
	switch f.Kind {
	case KindSurface, KindResidual:
		if f.Grid == "" {
			return fmt.Errorf("%s needs a grid file", f.Kind)
		}
	case KindThreeLine:
		if f.Low == nil || f.Base == nil || f.High == nil {
			return fmt.Errorf("three_line needs low, base and high curves")
		}
	case KindComparison:
		if f.Data == "" || f.XCol == "" {
			return fmt.Errorf("comparison needs data and xcol")
		}
		if len(f.Series) != 6 {
			return fmt.Errorf("comparison needs 6 series, got %d", len(f.Series))
		}
	case KindLines:
		if len(f.Panels) == 0 {
			return fmt.Errorf("lines needs at least one panel")
		}
		for i, p := range f.Panels {
			if p.Limits != nil && len(p.Limits) != 4 {
				return fmt.Errorf("panel %d: limits needs 4 values, got %d", i+1, len(p.Limits))
			}
		}
	case "":
		return fmt.Errorf("missing kind")
	default:
		return fmt.Errorf("unknown kind %q", f.Kind)
	}
	return nil
}
