// Package pkg provides the core libraries for binheat relation plots.
//
// # Overview
//
// Binheat draws a binary relation (a set of row/column label pairs) as a
// grid: row labels on the left, column labels on top, alternating bands
// behind them, and a filled circle in every related cell. The pkg directory
// is organized into these areas:
//
//  1. [relation] - The bidirectional label index and its pairs
//  2. [io] - Reading relation and label files into an index
//  3. [render/grid] - Device-independent layout and drawing
//  4. [render/sink] - Output formats (PDF, PNG, SVG, JSON)
//  5. [pipeline] - Orchestration (labels → ingest → sort → render)
//
// # Architecture
//
// The typical data flow through binheat:
//
//	relation file (+ optional label files)
//	         ↓
//	    [io] package (split lines into pairs)
//	         ↓
//	    [relation] package (index labels, drop pairs outside fixed axes)
//	         ↓
//	    [render/grid] package (measure labels, place bands and markers)
//	         ↓
//	    PDF/PNG/SVG/JSON output
//
// # Quick Start
//
//	idx := relation.New()
//	_, err := io.Feed(idx, strings.NewReader("alice\tadmin\nbob\tstaff\n"), io.Options{})
//	if err != nil {
//	    return err
//	}
//	idx.SortLabels()
//	pdf, err := sink.RenderPDF(idx)
//
// # Supporting Packages
//
// [fonts] embeds the default typeface and loads TrueType files for label
// measurement. [errors] defines coded errors shared by the CLI and the
// server. [observability] exposes hooks for metrics, and [buildinfo] carries
// version data injected at build time.
//
// [relation]: github.com/matzehuels/binheat/pkg/relation
// [io]: github.com/matzehuels/binheat/pkg/io
// [render/grid]: github.com/matzehuels/binheat/pkg/render/grid
// [render/sink]: github.com/matzehuels/binheat/pkg/render/sink
// [pipeline]: github.com/matzehuels/binheat/pkg/pipeline
// [fonts]: github.com/matzehuels/binheat/pkg/fonts
// [errors]: github.com/matzehuels/binheat/pkg/errors
// [observability]: github.com/matzehuels/binheat/pkg/observability
// [buildinfo]: github.com/matzehuels/binheat/pkg/buildinfo
package pkg
