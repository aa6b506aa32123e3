package grid

import "github.com/matzehuels/binheat/pkg/relation"

// Layout is the fully positioned heat map.
type Layout struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OriginX float64 `json:"origin_x"` // left edge of the grid
	OriginY float64 `json:"origin_y"` // top edge of the grid
	LeftLen float64 `json:"left_len"` // row label area width
	TopLen  float64 `json:"top_len"`  // column label area height
	Pitch   float64 `json:"pitch"`
	Radius  float64 `json:"radius"`

	Style Style `json:"-"`

	Rows    []string        `json:"rows"`
	Columns []string        `json:"columns"`
	Cells   []relation.Cell `json:"cells"`

	ColumnBands  []Rect    `json:"column_bands"`
	RowBands     []Rect    `json:"row_bands"`
	Axes         []Segment `json:"axes"`
	RowLabels    []Text    `json:"row_labels"`
	ColumnLabels []Text    `json:"column_labels"`
	Markers      []Circle  `json:"markers"`
}

// Build positions every element of the heat map for idx. Label widths come
// from m, which must measure in the font and size given by style.
func Build(idx *relation.Index, m Measurer, style Style) Layout {
	rows, cols := idx.RowLabels(), idx.ColumnLabels()
	pitch := style.Pitch()
	fs := style.FontSize

	l := Layout{
		Style:   style,
		Rows:    rows,
		Columns: cols,
		Cells:   idx.Cells(),
		Pitch:   pitch,
		Radius:  pitch / 3,
		LeftLen: maxWidth(m, rows) + 2*LabelPad,
		TopLen:  maxWidth(m, cols) + 2*LabelPad,
	}
	gridW := float64(len(cols)) * pitch
	gridH := float64(len(rows)) * pitch
	l.Width = l.LeftLen + gridW + 2*Padding
	l.Height = l.TopLen + gridH + 2*Padding
	l.OriginX = l.LeftLen + Padding
	l.OriginY = l.TopLen + Padding

	// Even column bands run from the top of the label area to the bottom
	// of the grid.
	for i := 0; i < len(cols); i += 2 {
		l.ColumnBands = append(l.ColumnBands, Rect{
			X: l.OriginX + float64(i)*pitch,
			Y: Padding,
			W: pitch,
			H: gridH + l.TopLen,
		})
	}
	// Row bands are counted from 2 up to and including the row count; band
	// i covers the row whose bottom edge is i pitches below the origin.
	for i := 2; i <= len(rows); i += 2 {
		l.RowBands = append(l.RowBands, Rect{
			X: Padding,
			Y: l.OriginY + float64(i-1)*pitch,
			W: l.LeftLen + gridW,
			H: pitch,
		})
	}

	l.Axes = []Segment{
		{X1: l.OriginX, Y1: Padding, X2: l.OriginX, Y2: l.OriginY + gridH},
		{X1: Padding, Y1: l.OriginY, X2: l.OriginX + gridW, Y2: l.OriginY},
	}

	for i, label := range rows {
		l.RowLabels = append(l.RowLabels, Text{
			X:      l.OriginX - LabelPad,
			Y:      l.OriginY + float64(i+1)*pitch - fs/3,
			Label:  label,
			Anchor: AnchorEnd,
		})
	}
	for i, label := range cols {
		l.ColumnLabels = append(l.ColumnLabels, Text{
			X:      l.OriginX + float64(i+1)*pitch - fs/3,
			Y:      l.OriginY - LabelPad,
			Label:  label,
			Anchor: AnchorStart,
			Rotate: 90,
		})
	}

	for _, c := range l.Cells {
		l.Markers = append(l.Markers, Circle{
			CX: l.OriginX + (float64(c.Col)+0.5)*pitch,
			CY: l.OriginY + (float64(c.Row)+0.5)*pitch,
			R:  l.Radius,
		})
	}
	return l
}

// maxWidth returns the widest label, or 0 when there are none.
func maxWidth(m Measurer, labels []string) float64 {
	var w float64
	for _, s := range labels {
		w = max(w, m.StringWidth(s))
	}
	return w
}
