package plotting

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Format is a parsed matplotlib-style format string such as "--b" or "o-r".
type Format struct {
	Line   bool
	Dashes []vg.Length
	Glyph  draw.GlyphDrawer // nil when no marker was requested
	Small  bool             // "." marker
	Color  color.Color      // nil when no color was requested

	lineSet bool
}

// Shorthand colors as matplotlib defines them.
var colorCodes = map[byte]drawing.Color{
	'b': drawing.ColorFromHex("0000ff"),
	'g': drawing.ColorFromHex("008000"),
	'r': drawing.ColorFromHex("ff0000"),
	'c': drawing.ColorFromHex("00bfbf"),
	'm': drawing.ColorFromHex("bf00bf"),
	'y': drawing.ColorFromHex("bfbf00"),
	'k': drawing.ColorFromHex("000000"),
	'w': drawing.ColorFromHex("ffffff"),
}

var markerCodes = map[byte]draw.GlyphDrawer{
	'.': draw.CircleGlyph{},
	'o': draw.CircleGlyph{},
	's': draw.BoxGlyph{},
	'^': draw.PyramidGlyph{},
	'+': draw.PlusGlyph{},
	'x': draw.CrossGlyph{},
}

var (
	dashed  = []vg.Length{vg.Points(6), vg.Points(3)}
	dotted  = []vg.Length{vg.Points(1), vg.Points(3)}
	dashDot = []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1), vg.Points(3)}
)

// ParseFormat parses a format string made of an optional marker, line style
// and color code, in any order. An empty string is a solid line.
func ParseFormat(s string) (Format, error) {
	var f Format
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case strings.HasPrefix(s[i:], "--"):
			if err := f.setLine(dashed); err != nil {
				return Format{}, err
			}
			i++
		case strings.HasPrefix(s[i:], "-."):
			if err := f.setLine(dashDot); err != nil {
				return Format{}, err
			}
			i++
		case c == '-':
			if err := f.setLine(nil); err != nil {
				return Format{}, err
			}
		case c == ':':
			if err := f.setLine(dotted); err != nil {
				return Format{}, err
			}
		case markerCodes[c] != nil:
			if f.Glyph != nil {
				return Format{}, fmt.Errorf("format %q: two marker symbols", s)
			}
			f.Glyph = markerCodes[c]
			f.Small = c == '.'
		case isColorCode(c):
			if f.Color != nil {
				return Format{}, fmt.Errorf("format %q: two color symbols", s)
			}
			f.Color = colorCodes[c]
		default:
			return Format{}, fmt.Errorf("format %q: unrecognized character %q", s, c)
		}
	}
	// Markers alone mean no connecting line.
	f.Line = f.lineSet || f.Glyph == nil
	return f, nil
}

func isColorCode(c byte) bool {
	_, ok := colorCodes[c]
	return ok
}

func (f *Format) setLine(dashes []vg.Length) error {
	if f.lineSet {
		return fmt.Errorf("two line style symbols")
	}
	f.lineSet = true
	f.Dashes = dashes
	return nil
}

// Default matplotlib color cycle.
var colorCycle = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

func cycleColor(i int) color.Color {
	return colorCycle[i%len(colorCycle)]
}
