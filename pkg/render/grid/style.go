package grid

import "github.com/lucasb-eyer/go-colorful"

// Spacing constants, in points.
const (
	Padding     = 5.0 // blank border around the page
	LabelPad    = 2.5 // gap on each side of a label
	PitchFactor = 1.2 // band size relative to the font size
)

// DefaultFontSize is the label font size used when none is configured.
const DefaultFontSize = 12.0

// Style holds the typesetting and color settings of a heat map.
type Style struct {
	FontSize   float64
	ColumnBand colorful.Color // shading of every other column
	RowBand    colorful.Color // shading of every other row
	Ink        colorful.Color // lines, labels and markers
}

// DefaultStyle returns light gray column bands, pale yellow row bands and
// black ink at 12pt.
func DefaultStyle() Style {
	return Style{
		FontSize:   DefaultFontSize,
		ColumnBand: colorful.Color{R: 0.8, G: 0.8, B: 0.8},
		RowBand:    colorful.Color{R: 1, G: 1, B: 0.5},
		Ink:        colorful.Color{R: 0, G: 0, B: 0},
	}
}

// Pitch returns the height of a row band and the width of a column band.
func (s Style) Pitch() float64 { return s.FontSize * PitchFactor }
