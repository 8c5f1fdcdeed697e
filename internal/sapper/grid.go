package sapper

import (
	"strconv"
	"strings"
)

type CellState int8

const (
	Hidden CellState = iota
	Revealed
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// [CellState] implements [encoding.TextMarshaler]
func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Cell struct {
	IsMine        bool
	State         CellState
	AdjacentMines int // meaningless for mines, always 0
}

// Board is a row-major grid of cells.
type Board struct {
	Rows, Columns int
	Cells         []Cell
}

func NewBoard(rows, columns int) *Board {
	return &Board{
		Rows:    rows,
		Columns: columns,
		Cells:   make([]Cell, rows*columns),
	}
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.Rows && 0 <= col && col < b.Columns
}

func (b *Board) index(row, col int) int {
	return row*b.Columns + col
}

// At returns the cell at (row, col). It panics when the position is out
// of bounds; check with [Board.InBounds] first.
func (b *Board) At(row, col int) *Cell {
	return &b.Cells[b.index(row, col)]
}

func (b *Board) countAdjacentMines() {
	for row := range b.Rows {
		for col := range b.Columns {
			cell := b.At(row, col)
			if cell.IsMine {
				cell.AdjacentMines = 0
				continue
			}
			n := 0
			for r, c := range b.neighbors(row, col) {
				if b.At(r, c).IsMine {
					n++
				}
			}
			cell.AdjacentMines = n
		}
	}
}

func (b *Board) revealMines() {
	for i := range b.Cells {
		if b.Cells[i].IsMine {
			b.Cells[i].State = Revealed
		}
	}
}

func (b *Board) count(pred func(*Cell) bool) (n int) {
	for i := range b.Cells {
		if pred(&b.Cells[i]) {
			n++
		}
	}
	return
}

// Board implements [fmt.Stringer]
//
//	. hidden
//	F flagged
//	* revealed mine
//	1-8 revealed with that many mined neighbours, blank for zero
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Rows {
		for col := range b.Columns {
			cell := b.At(row, col)
			switch {
			case cell.State == Hidden:
				sb.WriteByte('.')
			case cell.State == Flagged:
				sb.WriteByte('F')
			case cell.IsMine:
				sb.WriteByte('*')
			case cell.AdjacentMines == 0:
				sb.WriteByte(' ')
			default:
				sb.WriteString(strconv.Itoa(cell.AdjacentMines))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
