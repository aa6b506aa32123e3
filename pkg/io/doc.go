// Package io reads relation and label files into a [relation.Index].
//
// # Relation Format
//
// A relation file holds one tuple per line. Fields are separated by one or
// more consecutive tab characters; the first field is the row label and each
// following field is a column label:
//
//	# users and the groups they belong to
//	alice	admin	staff
//	bob		staff
//
// Trailing whitespace is ignored, as are blank lines and lines whose first
// non-whitespace character is '#'. A line without a second field contributes
// no pairs.
//
// By default only the first column of each line is used. [Options.Multiline]
// turns every column into a separate pair, and [Options.Transpose] swaps the
// roles of rows and columns.
//
// # Label Files
//
// A label file lists one label per line with the same blank and comment
// rules. It fixes the order of an axis via [relation.Index.SetRowLabels] or
// [relation.Index.SetColumnLabels]; see [LoadLabels].
package io
