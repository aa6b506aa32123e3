package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/fonts"
	"github.com/matzehuels/binheat/pkg/relation"
	"github.com/matzehuels/binheat/pkg/render/grid"
)

// RenderSVG renders idx as a standalone SVG document. The label font is
// embedded so viewers draw text at the measured widths.
func RenderSVG(idx *relation.Index, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	f := cfg.scalableFont()
	m, err := f.Measurer(cfg.style.FontSize)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	c := &svgCanvas{Measurer: m, font: f, size: cfg.style.FontSize}
	l := grid.Build(idx, c, cfg.style)
	if err := grid.Draw(l, c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "draw svg")
	}
	return c.buf.Bytes(), nil
}

type svgCanvas struct {
	*fonts.Measurer
	font *fonts.Font
	size float64
	buf  bytes.Buffer
}

func (c *svgCanvas) Begin(width, height float64) error {
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.2f" height="%.2f">`+"\n",
		width, height, width, height)
	c.buf.WriteString("  <defs>\n    <style>\n")
	fmt.Fprintf(&c.buf, "      @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
		escapeXML(c.font.Name), c.font.Base64())
	fmt.Fprintf(&c.buf, "      text { font-family: '%s', %s; font-size: %.2fpx; }\n",
		escapeXML(c.font.Name), fonts.FallbackFontFamily, c.size)
	c.buf.WriteString("    </style>\n  </defs>\n")
	fmt.Fprintf(&c.buf, `  <rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")
	return nil
}

func (c *svgCanvas) FillRect(r grid.Rect, col colorful.Color) {
	fmt.Fprintf(&c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, col.Clamped().Hex())
}

func (c *svgCanvas) StrokeLine(s grid.Segment, col colorful.Color) {
	fmt.Fprintf(&c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		s.X1, s.Y1, s.X2, s.Y2, col.Clamped().Hex())
}

func (c *svgCanvas) DrawText(t grid.Text, col colorful.Color) {
	fmt.Fprintf(&c.buf, `  <text x="%.2f" y="%.2f" fill="%s"`, t.X, t.Y, col.Clamped().Hex())
	if t.Anchor == grid.AnchorEnd {
		c.buf.WriteString(` text-anchor="end"`)
	}
	if t.Rotate != 0 {
		fmt.Fprintf(&c.buf, ` transform="rotate(%.2f %.2f %.2f)"`, -t.Rotate, t.X, t.Y)
	}
	fmt.Fprintf(&c.buf, ">%s</text>\n", escapeXML(t.Label))
}

func (c *svgCanvas) FillCircle(circle grid.Circle, col colorful.Color) {
	fmt.Fprintf(&c.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		circle.CX, circle.CY, circle.R, col.Clamped().Hex())
}

func (c *svgCanvas) End() error {
	c.buf.WriteString("</svg>\n")
	return nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
