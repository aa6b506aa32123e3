package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/fonts"
	"github.com/matzehuels/binheat/pkg/observability"
	"github.com/matzehuels/binheat/pkg/relation"
	"github.com/matzehuels/binheat/pkg/render/grid"
	"github.com/matzehuels/binheat/pkg/render/sink"
)

// Render encodes idx in opts.Format.
func Render(ctx context.Context, idx *relation.Index, opts Options) (data []byte, err error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), err)
	}()

	sinkOpts, err := buildSinkOptions(opts)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case FormatPDF:
		if opts.FontFile == "" && opts.Logger != nil {
			if misses := sink.CoreFontMisses(idx); len(misses) > 0 {
				opts.Logger.Warn("labels outside the core PDF font will be garbled; pass a TrueType font with -F",
					"count", len(misses), "first", misses[0])
			}
		}
		data, err = sink.RenderPDF(idx, sinkOpts...)
	case FormatPNG:
		data, err = sink.RenderPNG(idx, sinkOpts...)
	case FormatSVG:
		data, err = sink.RenderSVG(idx, sinkOpts...)
	case FormatJSON:
		data, err = sink.RenderJSON(idx, sinkOpts...)
	default:
		return nil, ValidateFormat(opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	return data, nil
}

// buildSinkOptions translates run options into renderer options.
func buildSinkOptions(opts Options) ([]sink.Option, error) {
	style, err := buildStyle(opts)
	if err != nil {
		return nil, err
	}
	sinkOpts := []sink.Option{sink.WithStyle(style), sink.WithScale(opts.Scale)}

	if opts.FontFile != "" {
		f, err := fonts.Load(opts.FontFile)
		if err != nil {
			return nil, err
		}
		if opts.Logger != nil {
			opts.Logger.Debug("loaded font", "path", opts.FontFile, "family", f.Name)
		}
		sinkOpts = append(sinkOpts, sink.WithFont(f))
	}
	if !opts.CreatedAt.IsZero() {
		sinkOpts = append(sinkOpts, sink.WithCreationDate(opts.CreatedAt))
	}
	return sinkOpts, nil
}

// buildStyle applies the font size and any band color overrides.
func buildStyle(opts Options) (grid.Style, error) {
	style := grid.DefaultStyle()
	style.FontSize = opts.FontSize

	if opts.ColumnColor != "" {
		c, err := colorful.Hex(opts.ColumnColor)
		if err != nil {
			return grid.Style{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "column band color %q", opts.ColumnColor)
		}
		style.ColumnBand = c
	}
	if opts.RowColor != "" {
		c, err := colorful.Hex(opts.RowColor)
		if err != nil {
			return grid.Style{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "row band color %q", opts.RowColor)
		}
		style.RowBand = c
	}
	return style, nil
}
