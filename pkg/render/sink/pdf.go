package sink

import (
	"bytes"

	"codeberg.org/go-pdf/fpdf"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/encoding/charmap"

	"github.com/matzehuels/binheat/pkg/buildinfo"
	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/relation"
	"github.com/matzehuels/binheat/pkg/render/grid"
)

const (
	coreFamily   = "Times"
	customFamily = "CustomFont"
)

// RenderPDF renders idx as a single-page PDF.
func RenderPDF(idx *relation.Index, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	c, err := newPDFCanvas(cfg)
	if err != nil {
		return nil, err
	}

	l := grid.Build(idx, c, cfg.style)
	if err := grid.Draw(l, c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "draw pdf")
	}

	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

// CoreFontMisses returns the labels of idx, rows first, that the core PDF
// face cannot show. Core faces are cp1252-encoded; other runes come out as
// replacement glyphs unless a TrueType font is given with [WithFont].
func CoreFontMisses(idx *relation.Index) []string {
	var misses []string
	for _, labels := range [][]string{idx.RowLabels(), idx.ColumnLabels()} {
		for _, l := range labels {
			if !cp1252(l) {
				misses = append(misses, l)
			}
		}
	}
	return misses
}

func cp1252(s string) bool {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}

type pdfCanvas struct {
	pdf    *fpdf.Fpdf
	family string
	size   float64
	// tr converts UTF-8 to the encoding of the current font.
	tr func(string) string
}

func newPDFCanvas(cfg config) (*pdfCanvas, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(buildinfo.Producer(), true)
	pdf.SetCatalogSort(true)
	if !cfg.created.IsZero() {
		pdf.SetCreationDate(cfg.created)
		pdf.SetModificationDate(cfg.created)
	}

	c := &pdfCanvas{pdf: pdf, size: cfg.style.FontSize}
	if cfg.font != nil {
		if !cfg.font.TrueType() {
			return nil, errors.New(errors.ErrCodeInvalidFont,
				"PDF needs a TrueType (glyf) font; %s is CFF-flavoured OpenType", cfg.font.Name)
		}
		c.family = customFamily
		pdf.AddUTF8FontFromBytes(c.family, "", cfg.font.Data())
		c.tr = func(s string) string { return s }
	} else {
		c.family = coreFamily
		c.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetFont(c.family, "", c.size)
	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "set pdf font")
	}
	return c, nil
}

func (c *pdfCanvas) StringWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *pdfCanvas) Begin(width, height float64) error {
	c.pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	c.pdf.SetFont(c.family, "", c.size)
	c.pdf.SetLineWidth(1)
	return c.pdf.Error()
}

func (c *pdfCanvas) FillRect(r grid.Rect, col colorful.Color) {
	c.pdf.SetFillColor(rgb255(col))
	c.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

func (c *pdfCanvas) StrokeLine(s grid.Segment, col colorful.Color) {
	c.pdf.SetDrawColor(rgb255(col))
	c.pdf.Line(s.X1, s.Y1, s.X2, s.Y2)
}

func (c *pdfCanvas) DrawText(t grid.Text, col colorful.Color) {
	c.pdf.SetTextColor(rgb255(col))
	x := t.X
	if t.Anchor == grid.AnchorEnd {
		x -= c.StringWidth(t.Label)
	}
	if t.Rotate != 0 {
		c.pdf.TransformBegin()
		c.pdf.TransformRotate(t.Rotate, t.X, t.Y)
		defer c.pdf.TransformEnd()
	}
	c.pdf.Text(x, t.Y, c.tr(t.Label))
}

func (c *pdfCanvas) FillCircle(circle grid.Circle, col colorful.Color) {
	c.pdf.SetFillColor(rgb255(col))
	c.pdf.Circle(circle.CX, circle.CY, circle.R, "F")
}

func (c *pdfCanvas) End() error {
	return c.pdf.Error()
}

func rgb255(col colorful.Color) (int, int, int) {
	r, g, b := col.Clamped().RGB255()
	return int(r), int(g), int(b)
}
