package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/matzehuels/binheat/pkg/errors"
	"github.com/matzehuels/binheat/pkg/relation"
)

// Stdin is the file name that stands for standard input.
const Stdin = "-"

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

var tabRun = regexp.MustCompile(`\t+`)

// Options controls how relation lines become pairs.
type Options struct {
	Transpose bool // feed (column, row) instead of (row, column)
	Multiline bool // use every column of a line, not only the first
}

// Stats summarizes a [Feed] call.
type Stats struct {
	Lines      int // non-blank, non-comment lines read
	Candidates int // pairs offered to the index
	Accepted   int // pairs the index accepted
}

// Dropped returns the number of pairs the index rejected.
func (s Stats) Dropped() int { return s.Candidates - s.Accepted }

// ReadLines returns the lines of r with trailing whitespace removed, skipping
// blank lines and comment lines. ReadLines does not close r.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		if isSkipped(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read lines")
	}
	return lines, nil
}

func isSkipped(line string) bool {
	return line == "" || strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), "#")
}

// ReadLabels reads a label file.
func ReadLabels(r io.Reader) ([]string, error) {
	return ReadLines(r)
}

// SplitFields splits a relation line on runs of tab characters.
// A leading tab yields an empty row label, as in "\tx" -> ["", "x"].
func SplitFields(line string) []string {
	return tabRun.Split(line, -1)
}

// Feed reads relation lines from r and adds their pairs to idx.
// Rejected pairs are counted, never reported as errors.
func Feed(idx *relation.Index, r io.Reader, opts Options) (Stats, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	st.Lines = len(lines)
	for _, line := range lines {
		fields := SplitFields(line)
		row, cols := fields[0], fields[1:]
		if !opts.Multiline && len(cols) > 1 {
			cols = cols[:1]
		}
		for _, col := range cols {
			st.Candidates++
			var ok bool
			if opts.Transpose {
				ok = idx.AddPair(col, row)
			} else {
				ok = idx.AddPair(row, col)
			}
			if ok {
				st.Accepted++
			}
		}
	}
	return st, nil
}

// LoadLabels applies the optional left (row) and top (column) label files to
// idx. Under transpose the files trade places, so the left file still names
// the labels of the input's first field. Nil readers are skipped.
func LoadLabels(idx *relation.Index, left, top io.Reader, transpose bool) error {
	if transpose {
		left, top = top, left
	}
	if left != nil {
		labels, err := ReadLabels(left)
		if err != nil {
			return fmt.Errorf("row labels: %w", err)
		}
		if err := idx.SetRowLabels(labels); err != nil {
			return err
		}
	}
	if top != nil {
		labels, err := ReadLabels(top)
		if err != nil {
			return fmt.Errorf("column labels: %w", err)
		}
		if err := idx.SetColumnLabels(labels); err != nil {
			return err
		}
	}
	return nil
}

// Open opens name for reading; [Stdin] returns os.Stdin wrapped so that
// closing it is a no-op.
func Open(name string) (io.ReadCloser, error) {
	if name == Stdin || name == "" {
		return io.NopCloser(os.Stdin), nil
	}
	if err := errors.ValidatePath(name); err != nil {
		return nil, err
	}
	f, err := os.Open(name)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return f, nil
}
