// Package relation models a binary relation as the grid it will be drawn as.
//
// An [Index] accumulates (row, column) label pairs and gives every distinct
// label a dense display index on its axis. Rows and columns each have their
// own registry, and each registry is in one of two states:
//
//   - auto: labels are indexed in order of first appearance and may later be
//     reordered lexicographically by [Index.SortLabels]
//   - fixed: the caller supplied an explicit ordering with
//     [Index.SetRowLabels] or [Index.SetColumnLabels] before any pair was
//     added; the ordering is never sorted away
//
// Pairs naming a label unknown to a fixed axis are silently dropped unless
// the index was built [WithAllowExtra], in which case the unknown label is
// appended to the fixed registry.
//
// # Usage
//
//	idx := relation.New()
//	if err := idx.SetRowLabels([]string{"b", "a"}); err != nil {
//	    return err
//	}
//	idx.AddPair("a", "x")
//	idx.AddPair("c", "x") // dropped: "c" is not a known row
//	idx.SortLabels()      // columns sorted, rows keep b, a
//
//	for cell := range idx.IndexedPairs() {
//	    fmt.Println(cell.Row, cell.Col)
//	}
//
// An Index is not safe for concurrent use. It is built once, then read.
package relation
