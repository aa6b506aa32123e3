package grid

import "fmt"

// Draw paints l onto c as one page: background bands first, then the axis
// separators, labels and markers.
func Draw(l Layout, c Canvas) error {
	if err := c.Begin(l.Width, l.Height); err != nil {
		return fmt.Errorf("begin page: %w", err)
	}

	for _, r := range l.ColumnBands {
		c.FillRect(r, l.Style.ColumnBand)
	}
	for _, r := range l.RowBands {
		c.FillRect(r, l.Style.RowBand)
	}
	for _, s := range l.Axes {
		c.StrokeLine(s, l.Style.Ink)
	}
	for _, t := range l.RowLabels {
		c.DrawText(t, l.Style.Ink)
	}
	for _, t := range l.ColumnLabels {
		c.DrawText(t, l.Style.Ink)
	}
	for _, m := range l.Markers {
		c.FillCircle(m, l.Style.Ink)
	}

	if err := c.End(); err != nil {
		return fmt.Errorf("end page: %w", err)
	}
	return nil
}
