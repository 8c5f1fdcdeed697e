package sapper

import "math/rand/v2"

// PlaceMines scatters mineCount mines over the board, none of which lands on
// (safeRow, safeCol) or within one square of it, then recomputes the
// adjacency counts for every cell.
//
// The caller guarantees that enough cells lie outside the safe zone;
// otherwise PlaceMines never returns. [Difficulty.Validate] checks this.
func (b *Board) PlaceMines(mineCount, safeRow, safeCol int, r *rand.Rand) {
	placed := 0
	for placed < mineCount {
		row := r.IntN(b.Rows)
		col := r.IntN(b.Columns)

		if absDiff(row, safeRow) <= 1 && absDiff(col, safeCol) <= 1 {
			continue
		}

		cell := b.At(row, col)
		if cell.IsMine {
			continue
		}
		cell.IsMine = true
		placed++
	}

	b.countAdjacentMines()
}

// SafeZoneSize is the number of cells PlaceMines keeps clear around
// (row, col): the cell itself plus its in-bounds neighbours.
func (b *Board) SafeZoneSize(row, col int) int {
	return safeZoneSize(b.Rows, b.Columns, row, col)
}

func safeZoneSize(rows, columns, row, col int) int {
	r := min(rows-1, row+1) - max(0, row-1) + 1
	c := min(columns-1, col+1) - max(0, col-1) + 1
	return r * c
}
