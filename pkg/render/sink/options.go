package sink

import (
	"time"

	"github.com/matzehuels/binheat/pkg/fonts"
	"github.com/matzehuels/binheat/pkg/render/grid"
)

// DefaultScale is the PNG scale factor (2x resolution).
const DefaultScale = 2.0

// Option configures a renderer.
type Option func(*config)

type config struct {
	style   grid.Style
	font    *fonts.Font
	scale   float64
	created time.Time
}

func newConfig(opts []Option) config {
	c := config{style: grid.DefaultStyle(), scale: DefaultScale}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithStyle sets font size and colors.
func WithStyle(s grid.Style) Option { return func(c *config) { c.style = s } }

// WithFont typesets labels in f. Without it, PDF output uses the core Times
// face and the other formats use [fonts.Default].
func WithFont(f *fonts.Font) Option { return func(c *config) { c.font = f } }

// WithScale sets the PNG scale factor.
func WithScale(s float64) Option { return func(c *config) { c.scale = s } }

// WithCreationDate stamps PDF metadata with t instead of the current time,
// making output reproducible.
func WithCreationDate(t time.Time) Option { return func(c *config) { c.created = t } }

// scalableFont returns the configured font or the embedded default.
func (c config) scalableFont() *fonts.Font {
	if c.font != nil {
		return c.font
	}
	return fonts.Default()
}
