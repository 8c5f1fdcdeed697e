package sapper

import "iter"

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// neighbors yields the in-bounds cells sharing an edge or a corner with
// (row, col), excluding the cell itself.
func (b *Board) neighbors(row, col int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r := max(0, row-1); r <= min(b.Rows-1, row+1); r++ {
			for c := max(0, col-1); c <= min(b.Columns-1, col+1); c++ {
				if r == row && c == col {
					continue
				}
				if !yield(r, c) {
					return
				}
			}
		}
	}
}
