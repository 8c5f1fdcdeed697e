package sapper

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGame lays out a game in progress with mines at fixed positions,
// bypassing random placement.
func newTestGame(t *testing.T, rows, columns int, mines ...[2]int) *GameSession {
	t.Helper()
	s := NewGameSession(rand.New(rand.NewPCG(1, 2)))
	s.Difficulty = Difficulty{
		Name: "test", Rows: rows, Columns: columns, MineCount: len(mines),
	}
	s.Board = NewBoard(rows, columns)
	s.Status = Playing
	for _, m := range mines {
		require.True(t, s.Board.InBounds(m[0], m[1]), "mine %v out of bounds", m)
		s.Board.At(m[0], m[1]).IsMine = true
	}
	s.Board.countAdjacentMines()
	return s
}

func bruteForceCount(b *Board, row, col int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.InBounds(row+dr, col+dc) && b.At(row+dr, col+dc).IsMine {
				n++
			}
		}
	}
	return n
}

func TestNewBoard(t *testing.T) {
	b := NewBoard(4, 7)
	assert.Len(t, b.Cells, 28)
	for _, c := range b.Cells {
		assert.Equal(t, Cell{IsMine: false, State: Hidden, AdjacentMines: 0}, c)
	}
	assert.True(t, b.InBounds(3, 6))
	assert.False(t, b.InBounds(4, 0))
	assert.False(t, b.InBounds(0, 7))
	assert.False(t, b.InBounds(-1, 0))
}

func TestNeighbors(t *testing.T) {
	b := NewBoard(3, 4)
	tests := []struct {
		row, col int
		want     int
	}{
		{0, 0, 3},
		{0, 1, 5},
		{1, 1, 8},
		{2, 3, 3},
		{1, 3, 5},
	}
	for _, test := range tests {
		n := 0
		for r, c := range b.neighbors(test.row, test.col) {
			assert.True(t, b.InBounds(r, c))
			assert.False(t, r == test.row && c == test.col)
			n++
		}
		assert.Equal(t, test.want, n, "neighbours of %d:%d", test.row, test.col)
	}
}

func TestCountAdjacentMines(t *testing.T) {
	s := newTestGame(t, 3, 3, [2]int{0, 0}, [2]int{2, 2})
	b := s.Board

	assert.Equal(t, 2, b.At(1, 1).AdjacentMines)
	assert.Equal(t, 1, b.At(0, 1).AdjacentMines)
	assert.Equal(t, 0, b.At(0, 2).AdjacentMines)
	assert.Equal(t, 0, b.At(0, 0).AdjacentMines, "mines carry no count")
}

func TestBoardString(t *testing.T) {
	s := newTestGame(t, 2, 3, [2]int{0, 0})
	b := s.Board
	b.At(0, 1).State = Revealed
	b.At(1, 2).State = Revealed
	b.At(1, 0).State = Flagged
	b.At(0, 0).State = Revealed

	assert.Equal(t, "*1.\nF. \n", b.String())
}
