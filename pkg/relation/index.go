package relation

import (
	"cmp"
	"iter"
	"slices"

	"github.com/matzehuels/binheat/pkg/errors"
)

// Option configures an [Index].
type Option func(*Index)

// WithAllowExtra lets pairs with labels unknown to a fixed axis extend that
// axis instead of being dropped.
func WithAllowExtra() Option {
	return func(x *Index) { x.allowExtra = true }
}

// pair is an accepted (row, column) label pair.
type pair struct {
	row, col string
}

// Cell is a pair expressed by display indices.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Index accumulates the pairs of a binary relation and assigns display
// indices to row and column labels.
type Index struct {
	rows       axis
	cols       axis
	pairs      map[pair]struct{}
	allowExtra bool
}

// New creates an empty Index.
func New(opts ...Option) *Index {
	x := &Index{
		rows:  newAxis(),
		cols:  newAxis(),
		pairs: make(map[pair]struct{}),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// AllowExtra reports whether unknown labels may extend fixed axes.
func (x *Index) AllowExtra() bool { return x.allowExtra }

// SetRowLabels fixes the row ordering. It fails with an INVALID_STATE error
// when the rows are already fixed or when a pair has already been added.
func (x *Index) SetRowLabels(labels []string) error {
	return x.setLabels(&x.rows, "SetRowLabels", labels)
}

// SetColumnLabels fixes the column ordering. It fails with an INVALID_STATE
// error when the columns are already fixed or when a pair has already been
// added.
func (x *Index) SetColumnLabels(labels []string) error {
	return x.setLabels(&x.cols, "SetColumnLabels", labels)
}

func (x *Index) setLabels(a *axis, op string, labels []string) error {
	if a.fixed() {
		return errors.New(errors.ErrCodeInvalidState, "%s called more than once", op)
	}
	if len(x.pairs) > 0 {
		return errors.New(errors.ErrCodeInvalidState, "%s called after AddPair", op)
	}
	a.fix(labels)
	return nil
}

// AddPair records the pair (row, col) and reports whether it was accepted.
//
// When an axis is fixed and the label is unknown to it, the pair is dropped
// without touching either registry, unless extras are allowed. Adding a pair
// twice stores it once.
func (x *Index) AddPair(row, col string) bool {
	if !x.allowExtra {
		if x.rows.fixed() && !x.rows.has(row) {
			return false
		}
		if x.cols.fixed() && !x.cols.has(col) {
			return false
		}
	}
	x.rows.add(row)
	x.cols.add(col)
	x.pairs[pair{row, col}] = struct{}{}
	return true
}

// RowCount returns the number of distinct row labels.
func (x *Index) RowCount() int { return x.rows.len() }

// ColumnCount returns the number of distinct column labels.
func (x *Index) ColumnCount() int { return x.cols.len() }

// PairCount returns the number of distinct accepted pairs.
func (x *Index) PairCount() int { return len(x.pairs) }

// RowLabels returns the row labels in index order.
func (x *Index) RowLabels() []string { return x.rows.ordered() }

// ColumnLabels returns the column labels in index order.
func (x *Index) ColumnLabels() []string { return x.cols.ordered() }

// RowsFixed reports whether the row ordering was supplied explicitly.
func (x *Index) RowsFixed() bool { return x.rows.fixed() }

// ColumnsFixed reports whether the column ordering was supplied explicitly.
func (x *Index) ColumnsFixed() bool { return x.cols.fixed() }

// IndexedPairs yields every accepted pair as a [Cell]. The order is
// unspecified; callers needing a stable order should use [Index.Cells].
// The sequence may be ranged over any number of times.
func (x *Index) IndexedPairs() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for p := range x.pairs {
			if !yield(x.cell(p)) {
				return
			}
		}
	}
}

// Cells returns every accepted pair as a [Cell], sorted by row then column.
func (x *Index) Cells() []Cell {
	cells := make([]Cell, 0, len(x.pairs))
	for c := range x.IndexedPairs() {
		cells = append(cells, c)
	}
	slices.SortFunc(cells, func(a, b Cell) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return cells
}

func (x *Index) cell(p pair) Cell {
	return Cell{Row: x.rows.index[p.row], Col: x.cols.index[p.col]}
}

// SortLabels reorders every axis that is not fixed lexicographically.
// Fixed axes keep the ordering their caller supplied, including any extras
// appended to them.
func (x *Index) SortLabels() {
	if !x.rows.fixed() {
		x.rows.sort()
	}
	if !x.cols.fixed() {
		x.cols.sort()
	}
}

// IsStateViolation reports whether err came from setting labels out of order.
func IsStateViolation(err error) bool {
	return errors.Is(err, errors.ErrCodeInvalidState)
}
