package plotting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

func TestParseFormat(t *testing.T) {
	var tests = []struct {
		in     string
		line   bool
		dashes []vg.Length
		glyph  draw.GlyphDrawer
		color  string
	}{
		{"", true, nil, nil, ""},
		{"-", true, nil, nil, ""},
		{"--b", true, dashed, nil, "0000ff"},
		{"k", true, nil, nil, "000000"},
		{"r:", true, dotted, nil, "ff0000"},
		{"-.g", true, dashDot, nil, "008000"},
		{"o", false, nil, draw.CircleGlyph{}, ""},
		{"o-", true, nil, draw.CircleGlyph{}, ""},
		{"s--m", true, dashed, draw.BoxGlyph{}, "bf00bf"},
		{"^y", false, nil, draw.PyramidGlyph{}, "bfbf00"},
		{"x", false, nil, draw.CrossGlyph{}, ""},
		{"+c", false, nil, draw.PlusGlyph{}, "00bfbf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFormat(tt.in)
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.in, err)
			}
			if f.Line != tt.line {
				t.Errorf("line got %v, want %v", f.Line, tt.line)
			}
			assert.Equal(t, tt.dashes, f.Dashes)
			assert.Equal(t, tt.glyph, f.Glyph)
			if tt.color == "" {
				assert.Nil(t, f.Color)
			} else {
				assert.Equal(t, drawing.ColorFromHex(tt.color), f.Color)
			}
		})
	}
}

func TestShorthandColors(t *testing.T) {
	var tests = []struct {
		code    string
		r, g, b uint8
	}{
		{"g", 0, 128, 0},
		{"c", 0, 191, 191},
		{"m", 191, 0, 191},
		{"y", 191, 191, 0},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			f, err := ParseFormat(tt.code)
			assert.NoError(t, err)
			got := toDrawing(f.Color)
			if got.R != tt.r || got.G != tt.g || got.B != tt.b {
				t.Errorf("got %d,%d,%d, want %d,%d,%d", got.R, got.G, got.B, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestParseFormatSmallMarker(t *testing.T) {
	f, err := ParseFormat(".")
	assert.NoError(t, err)
	assert.True(t, f.Small)
	assert.False(t, f.Line)
}

func TestParseFormatErrors(t *testing.T) {
	for _, in := range []string{"q", "bb", "--:", "os", "-b-", "1"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseFormat(in)
			assert.Error(t, err)
		})
	}
}

func TestCycleColor(t *testing.T) {
	assert.Equal(t, cycleColor(0), cycleColor(len(colorCycle)))
	assert.NotEqual(t, cycleColor(0), cycleColor(1))
}
