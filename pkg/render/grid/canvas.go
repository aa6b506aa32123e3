package grid

import "github.com/lucasb-eyer/go-colorful"

// Measurer reports the rendered width of a string in points.
type Measurer interface {
	StringWidth(s string) float64
}

// Canvas is a single-page drawing surface. Coordinates are in points from the
// top-left corner of the page.
type Canvas interface {
	Measurer

	// Begin starts the page with the given size.
	Begin(width, height float64) error
	FillRect(r Rect, c colorful.Color)
	StrokeLine(s Segment, c colorful.Color)
	DrawText(t Text, c colorful.Color)
	FillCircle(c Circle, col colorful.Color)
	// End finishes the page.
	End() error
}

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Segment is a straight line from (X1, Y1) to (X2, Y2).
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Circle is a disc centered at (CX, CY).
type Circle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

// Anchor selects which end of a text run sits at its position.
type Anchor int

const (
	AnchorStart Anchor = iota // text begins at the position
	AnchorEnd                 // text ends at the position
)

// Text is a label whose baseline starts (or ends, for AnchorEnd) at (X, Y).
// Rotate is a counter-clockwise rotation in degrees about (X, Y).
type Text struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Label  string  `json:"label"`
	Anchor Anchor  `json:"anchor"`
	Rotate float64 `json:"rotate,omitempty"`
}
