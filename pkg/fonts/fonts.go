// Package fonts loads the TrueType/OpenType faces used to measure and draw
// labels.
//
// The default face is Latin Modern Roman 10, embedded through
// github.com/go-fonts/latin-modern so rendering works without any font files
// installed. Custom faces are loaded from disk with [Load].
//
// SVG and PNG output accept both glyf (TrueType) and CFF-flavoured OpenType
// faces. PDF embedding needs glyf outlines; see [Font.TrueType]. The
// embedded default is CFF, so PDF output falls back to a core face.
package fonts

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/binheat/pkg/errors"
)

// DefaultFamily is the family name of the embedded default face.
const DefaultFamily = "Latin Modern Roman"

// FallbackFontFamily lists CSS fallbacks for viewers that ignore embedded fonts.
const FallbackFontFamily = `'Latin Modern Roman', 'Times New Roman', Times, serif`

// Font is a parsed scalable font.
type Font struct {
	// Name is the font's family name.
	Name string

	data []byte
	sfnt *opentype.Font

	b64     string
	b64Once sync.Once
}

var (
	defaultFont *Font
	defaultOnce sync.Once
)

// Default returns the embedded Latin Modern Roman face.
func Default() *Font {
	defaultOnce.Do(func() {
		f, err := Parse(DefaultFamily, lmroman10regular.TTF)
		if err != nil {
			panic("fonts: embedded default font is invalid: " + err.Error())
		}
		defaultFont = f
	})
	return defaultFont
}

// Load reads and parses a TrueType or OpenType file. The family name is read
// from the font's name table, falling back to the file's base name. Only
// TrueType files can be embedded in PDF output.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "read font %s", path)
	}
	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(fallback, data)
}

// Parse parses font data. name is used when the font has no family name.
func Parse(name string, data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "parse font %s", name)
	}
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil && family != "" {
		name = family
	}
	return &Font{Name: name, data: data, sfnt: f}, nil
}

// cffMagic is the sfnt version tag of OpenType files with CFF outlines.
var cffMagic = []byte("OTTO")

// TrueType reports whether f has glyf outlines rather than CFF ones.
func (f *Font) TrueType() bool { return !bytes.HasPrefix(f.data, cffMagic) }

// Data returns the raw font file bytes.
func (f *Font) Data() []byte { return f.data }

// Base64 returns the font file base64-encoded. The result is cached.
func (f *Font) Base64() string {
	f.b64Once.Do(func() {
		f.b64 = base64.StdEncoding.EncodeToString(f.data)
	})
	return f.b64
}

// Face returns an unhinted face at size points (72 DPI).
func (f *Font) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFont, err, "face %s at %gpt", f.Name, size)
	}
	return face, nil
}

// Measurer returns a string measurer for f at size points.
func (f *Font) Measurer(size float64) (*Measurer, error) {
	face, err := f.Face(size)
	if err != nil {
		return nil, err
	}
	return &Measurer{face: face}, nil
}

// Measurer measures the advance width of strings in a fixed face.
type Measurer struct {
	face font.Face
}

// StringWidth returns the advance width of s in points.
func (m *Measurer) StringWidth(s string) float64 {
	return fromFixed(font.MeasureString(m.face, s))
}

// Close releases the underlying face.
func (m *Measurer) Close() error { return m.face.Close() }

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
