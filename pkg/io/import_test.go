package io

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/relation"
)

const sample = "a\tx\nb\tx\na\ty\n"

func TestReadLines(t *testing.T) {
	in := "# header\n\n   \nalpha  \n  # indented comment\nbeta\t\t\n\tgamma\n"
	lines, err := ReadLines(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "\tgamma"}, lines)
}

func TestReadLinesCRLF(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("a\tx\r\nb\ty\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a\tx", "b\ty"}, lines)
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"a", []string{"a"}},
		{"a\tx", []string{"a", "x"}},
		{"a\t\t\tx", []string{"a", "x"}},
		{"a\tx\ty", []string{"a", "x", "y"}},
		{"a b\tx y", []string{"a b", "x y"}},
		{"\tx", []string{"", "x"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitFields(tt.line), "SplitFields(%q)", tt.line)
	}
}

func TestFeedInsertionOrder(t *testing.T) {
	idx := relation.New()
	st, err := Feed(idx, strings.NewReader(sample), Options{})
	require.NoError(t, err)

	assert.Equal(t, Stats{Lines: 3, Candidates: 3, Accepted: 3}, st)
	assert.Equal(t, []string{"a", "b"}, idx.RowLabels())
	assert.Equal(t, []string{"x", "y"}, idx.ColumnLabels())
	assert.Equal(t, []relation.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}, idx.Cells())
}

func TestFeedSorted(t *testing.T) {
	idx := relation.New()
	_, err := Feed(idx, strings.NewReader(sample), Options{})
	require.NoError(t, err)
	idx.SortLabels()

	assert.Equal(t, []string{"a", "b"}, idx.RowLabels())
	assert.Equal(t, []string{"x", "y"}, idx.ColumnLabels())
}

func TestFeedWithRowLabelFile(t *testing.T) {
	idx := relation.New()
	require.NoError(t, LoadLabels(idx, strings.NewReader("b\n"), nil, false))

	st, err := Feed(idx, strings.NewReader(sample), Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, st.Dropped())
	assert.Equal(t, 1, idx.RowCount())
	assert.Equal(t, []string{"b"}, idx.RowLabels())
	assert.Equal(t, []relation.Cell{{Row: 0, Col: 0}}, idx.Cells())
	assert.Equal(t, []string{"x"}, idx.ColumnLabels())
}

func TestFeedTranspose(t *testing.T) {
	idx := relation.New()
	_, err := Feed(idx, strings.NewReader("a\tx\n"), Options{Transpose: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"x"}, idx.RowLabels())
	assert.Equal(t, []string{"a"}, idx.ColumnLabels())
}

func TestFeedMultiline(t *testing.T) {
	in := "a\tx\ty\tz\nb\ty\n"

	single := relation.New()
	st, err := Feed(single, strings.NewReader(in), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, st.Candidates)
	assert.Equal(t, []string{"x", "y"}, single.ColumnLabels())

	multi := relation.New()
	st, err = Feed(multi, strings.NewReader(in), Options{Multiline: true})
	require.NoError(t, err)
	assert.Equal(t, 4, st.Candidates)
	assert.Equal(t, []string{"x", "y", "z"}, multi.ColumnLabels())
	assert.Equal(t, 4, multi.PairCount())
}

func TestFeedSkipsRowsWithoutColumns(t *testing.T) {
	idx := relation.New()
	st, err := Feed(idx, strings.NewReader("lonely\n   \n# comment\na\tx\n"), Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, st.Lines)
	assert.Equal(t, 1, st.Candidates)
	assert.Equal(t, []string{"a"}, idx.RowLabels())
}

func TestFeedOnlyBlankAndComments(t *testing.T) {
	idx := relation.New()
	st, err := Feed(idx, strings.NewReader("   \n# comment\n\n"), Options{})
	require.NoError(t, err)
	assert.Zero(t, st.Lines)
	assert.Zero(t, idx.PairCount())
}

func TestLoadLabelsTranspose(t *testing.T) {
	idx := relation.New()
	left := strings.NewReader("a\n")
	top := strings.NewReader("y\nx\n")
	require.NoError(t, LoadLabels(idx, left, top, true))

	assert.Equal(t, []string{"y", "x"}, idx.RowLabels())
	assert.Equal(t, []string{"a"}, idx.ColumnLabels())

	_, err := Feed(idx, strings.NewReader("a\tx\nb\tx\n"), Options{Transpose: true})
	require.NoError(t, err)
	assert.Equal(t, []relation.Cell{{Row: 1, Col: 0}}, idx.Cells())
}

func TestLoadLabelsAfterPairsFails(t *testing.T) {
	idx := relation.New()
	idx.AddPair("a", "x")

	err := LoadLabels(idx, strings.NewReader("a\n"), nil, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidState))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("does-not-exist.tsv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestExampleFiles(t *testing.T) {
	open := func(name string) io.ReadCloser {
		t.Helper()
		f, err := Open("../../examples/groups/" + name)
		require.NoError(t, err)
		t.Cleanup(func() { f.Close() })
		return f
	}

	idx := relation.New()
	require.NoError(t, LoadLabels(idx, open("users.txt"), open("groups.txt"), false))
	st, err := Feed(idx, open("membership.tsv"), Options{Multiline: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"erin", "dave", "carol", "bob", "alice"}, idx.RowLabels())
	assert.Equal(t, []string{"admin", "staff", "dev", "ops"}, idx.ColumnLabels())
	assert.Equal(t, 5, st.Lines)
	assert.Equal(t, 9, idx.PairCount())
	assert.Zero(t, st.Dropped())
}
