package sapper

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertPlacement(t *testing.T, b *Board, mineCount, safeRow, safeCol int) {
	t.Helper()
	mines := b.count(func(c *Cell) bool { return c.IsMine })
	assert.Equal(t, mineCount, mines)
	for row := range b.Rows {
		for col := range b.Columns {
			cell := b.At(row, col)
			if absDiff(row, safeRow) <= 1 && absDiff(col, safeCol) <= 1 {
				assert.False(t, cell.IsMine, "mine at %d:%d inside safe zone of %d:%d",
					row, col, safeRow, safeCol)
			}
			if cell.IsMine {
				assert.Zero(t, cell.AdjacentMines)
			} else {
				assert.Equal(t, bruteForceCount(b, row, col), cell.AdjacentMines,
					"count at %d:%d", row, col)
			}
		}
	}
}

func TestPlaceMines(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, d := range Presets() {
		t.Run(d.Name, func(t *testing.T) {
			b := NewBoard(d.Rows, d.Columns)
			b.PlaceMines(d.MineCount, d.Rows/2, d.Columns/2, r)
			assertPlacement(t, b, d.MineCount, d.Rows/2, d.Columns/2)
		})
	}
}

func TestPlaceMinesFullBoard(t *testing.T) {
	// every cell outside the safe zone ends up mined
	r := rand.New(rand.NewPCG(3, 4))
	b := NewBoard(4, 4)
	b.PlaceMines(16-4, 0, 0, r)
	assertPlacement(t, b, 12, 0, 0)
}

func TestPlaceMinesEverywhere(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []Difficulty{
		Easy,
		Medium,
		Hard,
		{Name: "9x9(72)", Rows: 9, Columns: 9, MineCount: 72},
		{Name: "1x12(9)", Rows: 1, Columns: 12, MineCount: 9},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for sr := range test.Rows {
				for sc := range test.Columns {
					b := NewBoard(test.Rows, test.Columns)
					b.PlaceMines(test.MineCount, sr, sc, r)
					assertPlacement(t, b, test.MineCount, sr, sc)
				}
			}
		})
	}
}

func TestSafeZoneSize(t *testing.T) {
	b := NewBoard(9, 9)
	assert.Equal(t, 4, b.SafeZoneSize(0, 0))
	assert.Equal(t, 6, b.SafeZoneSize(0, 4))
	assert.Equal(t, 9, b.SafeZoneSize(4, 4))
	assert.Equal(t, 4, b.SafeZoneSize(8, 8))

	assert.Equal(t, 9, safeZoneSize(MaxRows, MaxColumns, 1, 1))
	assert.Equal(t, 3, safeZoneSize(1, 5, 1, 1))
	assert.Equal(t, 1, safeZoneSize(1, 1, 1, 1))

	thin := NewBoard(1, 5)
	assert.Equal(t, 2, thin.SafeZoneSize(0, 0))
	assert.Equal(t, 3, thin.SafeZoneSize(0, 2))
}
