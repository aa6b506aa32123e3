package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/fonts"
	"github.com/matzehuels/binheat/pkg/relation"
	"github.com/matzehuels/binheat/pkg/render/grid"
)

// RenderPNG renders idx as a PNG image on a white background. The layout is
// computed in points and multiplied by the scale factor.
func RenderPNG(idx *relation.Index, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	if err := errors.ValidateScale(cfg.scale); err != nil {
		return nil, err
	}

	f := cfg.scalableFont()
	m, err := f.Measurer(cfg.style.FontSize)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	face, err := f.Face(cfg.style.FontSize * cfg.scale)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	c := &pngCanvas{Measurer: m, face: face, scale: cfg.scale}
	l := grid.Build(idx, c, cfg.style)
	if err := grid.Draw(l, c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "draw png")
	}

	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type pngCanvas struct {
	*fonts.Measurer
	face  font.Face
	scale float64
	dc    *gg.Context
}

func (c *pngCanvas) Begin(width, height float64) error {
	w := int(math.Ceil(width * c.scale))
	h := int(math.Ceil(height * c.scale))
	if w <= 0 || h <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "empty image %dx%d", w, h)
	}
	c.dc = gg.NewContext(w, h)
	c.dc.SetRGB(1, 1, 1)
	c.dc.Clear()
	c.dc.SetFontFace(c.face)
	c.dc.SetLineWidth(c.scale)
	return nil
}

func (c *pngCanvas) FillRect(r grid.Rect, col colorful.Color) {
	s := c.scale
	c.dc.SetColor(col)
	c.dc.DrawRectangle(r.X*s, r.Y*s, r.W*s, r.H*s)
	c.dc.Fill()
}

func (c *pngCanvas) StrokeLine(l grid.Segment, col colorful.Color) {
	s := c.scale
	c.dc.SetColor(col)
	c.dc.DrawLine(l.X1*s, l.Y1*s, l.X2*s, l.Y2*s)
	c.dc.Stroke()
}

func (c *pngCanvas) DrawText(t grid.Text, col colorful.Color) {
	x, y := t.X*c.scale, t.Y*c.scale
	ax := 0.0
	if t.Anchor == grid.AnchorEnd {
		ax = 1
	}
	c.dc.SetColor(col)
	if t.Rotate != 0 {
		c.dc.Push()
		defer c.dc.Pop()
		// y grows downward, so a counter-clockwise turn is a negative angle.
		c.dc.RotateAbout(gg.Radians(-t.Rotate), x, y)
	}
	c.dc.DrawStringAnchored(t.Label, x, y, ax, 0)
}

func (c *pngCanvas) FillCircle(circle grid.Circle, col colorful.Color) {
	s := c.scale
	c.dc.SetColor(col)
	c.dc.DrawCircle(circle.CX*s, circle.CY*s, circle.R*s)
	c.dc.Fill()
}

func (c *pngCanvas) End() error { return nil }
