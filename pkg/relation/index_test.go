package relation

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(x *Index) map[Cell]int {
	seen := make(map[Cell]int)
	for c := range x.IndexedPairs() {
		seen[c]++
	}
	return seen
}

func TestAddPairCountsDistinctLabels(t *testing.T) {
	pairs := [][2]string{
		{"a", "x"}, {"b", "x"}, {"a", "y"}, {"c", "z"}, {"a", "x"}, {"b", "z"},
	}
	x := New()
	rows, cols := map[string]bool{}, map[string]bool{}
	for _, p := range pairs {
		assert.True(t, x.AddPair(p[0], p[1]))
		rows[p[0]] = true
		cols[p[1]] = true
		assert.Equal(t, len(rows), x.RowCount())
		assert.Equal(t, len(cols), x.ColumnCount())
	}
	assert.Equal(t, 5, x.PairCount())
}

func TestAddPairIsIdempotent(t *testing.T) {
	x := New()
	x.AddPair("a", "x")
	x.AddPair("a", "x")

	assert.Equal(t, 1, x.PairCount())
	assert.Equal(t, map[Cell]int{{0, 0}: 1}, collect(x))
}

func TestInsertionOrder(t *testing.T) {
	x := New()
	x.AddPair("a", "x")
	x.AddPair("b", "x")
	x.AddPair("a", "y")

	assert.Equal(t, []string{"a", "b"}, x.RowLabels())
	assert.Equal(t, []string{"x", "y"}, x.ColumnLabels())
	assert.Equal(t, map[Cell]int{{0, 0}: 1, {1, 0}: 1, {0, 1}: 1}, collect(x))
}

func TestSetRowLabelsFiltersUnknownRows(t *testing.T) {
	x := New()
	require.NoError(t, x.SetRowLabels([]string{"b"}))

	assert.False(t, x.AddPair("a", "x"))
	assert.True(t, x.AddPair("b", "x"))
	assert.False(t, x.AddPair("a", "y"))

	assert.Equal(t, 1, x.RowCount())
	assert.Equal(t, []string{"b"}, x.RowLabels())
	// The rejected pair must not leak its column either.
	assert.Equal(t, []string{"x"}, x.ColumnLabels())
	assert.Equal(t, map[Cell]int{{0, 0}: 1}, collect(x))
}

func TestSetColumnLabelsFiltersUnknownColumns(t *testing.T) {
	x := New()
	require.NoError(t, x.SetColumnLabels([]string{"y", "x"}))

	assert.False(t, x.AddPair("a", "z"))
	assert.True(t, x.AddPair("b", "x"))

	assert.Equal(t, []string{"b"}, x.RowLabels())
	assert.Equal(t, []string{"y", "x"}, x.ColumnLabels())
	assert.Equal(t, map[Cell]int{{0, 1}: 1}, collect(x))
}

func TestFixedLabelsWithoutPairs(t *testing.T) {
	x := New()
	require.NoError(t, x.SetRowLabels([]string{"r1", "r2", "r3"}))

	assert.Equal(t, 3, x.RowCount())
	assert.Equal(t, 0, x.ColumnCount())
	assert.Empty(t, x.Cells())
}

func TestSetLabelsTwiceFails(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Index, []string) error
	}{
		{"rows", (*Index).SetRowLabels},
		{"columns", (*Index).SetColumnLabels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := New()
			require.NoError(t, tt.set(x, []string{"a"}))

			err := tt.set(x, []string{"a"})
			require.Error(t, err)
			assert.True(t, IsStateViolation(err))

			err = tt.set(x, nil)
			assert.True(t, IsStateViolation(err))
		})
	}
}

func TestSetLabelsAfterAddPairFails(t *testing.T) {
	x := New()
	x.AddPair("a", "x")

	err := x.SetRowLabels([]string{"a"})
	require.Error(t, err)
	assert.True(t, IsStateViolation(err))
	assert.Contains(t, err.Error(), "after AddPair")

	err = x.SetColumnLabels([]string{"x"})
	assert.True(t, IsStateViolation(err))
	assert.False(t, x.RowsFixed())
	assert.False(t, x.ColumnsFixed())
}

func TestSetLabelsAfterRejectedPairSucceeds(t *testing.T) {
	x := New()
	require.NoError(t, x.SetRowLabels([]string{"b"}))
	x.AddPair("a", "x")

	// Nothing was accepted, so data intake has not begun.
	assert.NoError(t, x.SetColumnLabels([]string{"x"}))
}

func TestSetLabelsDuplicatesLastWins(t *testing.T) {
	x := New()
	require.NoError(t, x.SetRowLabels([]string{"a", "b", "a", "c"}))

	assert.Equal(t, []string{"b", "a", "c"}, x.RowLabels())
	assert.Equal(t, 3, x.RowCount())

	x.AddPair("c", "x")
	assert.Equal(t, map[Cell]int{{2, 0}: 1}, collect(x))
}

func TestAllowExtraExtendsFixedAxis(t *testing.T) {
	x := New(WithAllowExtra())
	assert.True(t, x.AllowExtra())
	require.NoError(t, x.SetRowLabels([]string{"b"}))

	assert.True(t, x.AddPair("a", "x"))
	assert.True(t, x.AddPair("b", "x"))

	assert.Equal(t, []string{"b", "a"}, x.RowLabels())
	assert.True(t, x.RowsFixed())

	x.SortLabels()
	assert.Equal(t, []string{"b", "a"}, x.RowLabels(), "fixed axis is never sorted")
}

func TestSortLabels(t *testing.T) {
	x := New()
	x.AddPair("b", "y")
	x.AddPair("a", "z")
	x.AddPair("C", "x")
	x.AddPair("é", "x")

	x.SortLabels()
	rows := x.RowLabels()
	cols := x.ColumnLabels()
	assert.True(t, slices.IsSorted(rows))
	assert.Equal(t, []string{"C", "a", "b", "é"}, rows)
	assert.Equal(t, []string{"x", "y", "z"}, cols)

	assert.Equal(t, map[Cell]int{{2, 1}: 1, {1, 2}: 1, {0, 0}: 1, {3, 0}: 1}, collect(x))

	x.SortLabels()
	assert.Equal(t, rows, x.RowLabels())
	assert.Equal(t, cols, x.ColumnLabels())
}

func TestSortLabelsLeavesFixedAxis(t *testing.T) {
	x := New()
	require.NoError(t, x.SetColumnLabels([]string{"z", "y", "x"}))
	x.AddPair("b", "x")
	x.AddPair("a", "z")

	x.SortLabels()
	assert.Equal(t, []string{"a", "b"}, x.RowLabels())
	assert.Equal(t, []string{"z", "y", "x"}, x.ColumnLabels())
}

func TestIndexedPairsWithinBounds(t *testing.T) {
	x := New()
	for _, r := range []string{"q", "w", "e", "r", "t"} {
		for _, c := range []string{"1", "2", "3"} {
			if (int(r[0])+int(c[0]))%2 == 0 {
				x.AddPair(r, c)
			}
		}
	}
	x.SortLabels()

	n := 0
	for c := range x.IndexedPairs() {
		n++
		assert.GreaterOrEqual(t, c.Row, 0)
		assert.Less(t, c.Row, x.RowCount())
		assert.GreaterOrEqual(t, c.Col, 0)
		assert.Less(t, c.Col, x.ColumnCount())
	}
	assert.Equal(t, x.PairCount(), n)
}

func TestIndexedPairsReenumerable(t *testing.T) {
	x := New()
	x.AddPair("a", "x")
	x.AddPair("b", "y")

	assert.Equal(t, collect(x), collect(x))

	// Stopping early must not panic.
	for range x.IndexedPairs() {
		break
	}
}

func TestCellsSorted(t *testing.T) {
	x := New()
	x.AddPair("b", "y")
	x.AddPair("a", "y")
	x.AddPair("b", "x")
	x.AddPair("a", "x")

	assert.Equal(t, []Cell{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, x.Cells())
}

func TestLabelsAreCopies(t *testing.T) {
	x := New()
	x.AddPair("a", "x")

	rows := x.RowLabels()
	rows[0] = "mutated"
	assert.Equal(t, []string{"a"}, x.RowLabels())
}
