// Package grid lays out a [relation.Index] as a matrix heat map.
//
// [Build] turns an index into a [Layout]: page size, label margins,
// alternating background bands, axis separators, label positions, and one
// marker per indexed pair. [Draw] replays a layout onto any [Canvas]; the
// PDF, PNG and SVG backends live in the sibling sink package.
//
// # Geometry
//
// All values are in points with the origin at the top-left corner of the page
// and y growing downward. With pitch = fontSize × 1.2:
//
//	leftLen = widest row label + 2 × LabelPad
//	topLen  = widest column label + 2 × LabelPad
//	width   = leftLen + columns × pitch + 2 × Padding
//	height  = topLen + rows × pitch + 2 × Padding
//
// The grid's top-left corner, where the label areas meet, sits at
// (leftLen + Padding, topLen + Padding). Column labels are rotated 90°
// counter-clockwise and read bottom to top.
package grid
