package sink

import (
	"encoding/json"

	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/relation"
	"github.com/matzehuels/binheat/pkg/render/grid"
)

type jsonOutput struct {
	grid.Layout
	Font   string     `json:"font"`
	Size   float64    `json:"font_size"`
	Colors jsonColors `json:"colors"`
}

type jsonColors struct {
	ColumnBand string `json:"column_band"`
	RowBand    string `json:"row_band"`
	Ink        string `json:"ink"`
}

// RenderJSON exports the computed layout of idx as pretty-printed JSON:
// page size, margins, ordered labels, indexed cells and every drawn shape.
// Label widths are measured in the configured font (the embedded default
// when none is given).
func RenderJSON(idx *relation.Index, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	f := cfg.scalableFont()
	m, err := f.Measurer(cfg.style.FontSize)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	l := grid.Build(idx, m, cfg.style)
	out := jsonOutput{
		Layout: l,
		Font:   f.Name,
		Size:   cfg.style.FontSize,
		Colors: jsonColors{
			ColumnBand: cfg.style.ColumnBand.Clamped().Hex(),
			RowBand:    cfg.style.RowBand.Clamped().Hex(),
			Ink:        cfg.style.Ink.Clamped().Hex(),
		},
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return data, nil
}
