// Package render groups the relation plot renderers.
//
// # Overview
//
// Rendering is split in two layers:
//
//   - [grid]: computes a device-independent [grid.Layout] from an index and
//     replays it onto any [grid.Canvas]
//   - [sink]: canvases for PDF (fpdf), PNG (gg), and SVG, plus a JSON dump
//     of the layout itself
//
// All sinks share one layout, so label positions agree across formats up to
// the font metrics of each backend.
//
//	pdf, err := sink.RenderPDF(idx, sink.WithStyle(grid.DefaultStyle()))
//	png, err := sink.RenderPNG(idx, sink.WithScale(2))
//
// [grid]: github.com/matzehuels/binheat/pkg/render/grid
// [sink]: github.com/matzehuels/binheat/pkg/render/sink
package render
