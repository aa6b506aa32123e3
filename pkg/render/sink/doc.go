// Package sink renders a [relation.Index] to output formats.
//
// Every renderer measures labels in its own font, builds a [grid.Layout] and
// replays it with [grid.Draw] onto a backend-specific canvas:
//
//   - [RenderPDF]: one-page PDF via codeberg.org/go-pdf/fpdf. Labels use the
//     core Times face unless a TrueType font is supplied with [WithFont].
//     CFF-flavoured OpenType fonts are rejected with INVALID_FONT.
//   - [RenderPNG]: raster image via github.com/fogleman/gg, scaled by
//     [WithScale] (default 2x).
//   - [RenderSVG]: standalone SVG with the font embedded as base64.
//   - [RenderJSON]: the computed layout itself, for external tools.
//
// Renderers only read the index; they are safe to call concurrently on an
// index nobody is modifying.
package sink
