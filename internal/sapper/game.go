package sapper

import (
	"math/rand/v2"
)

type Status int8

const (
	Ready Status = iota
	Playing
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// GameSession is one game from difficulty selection to a win or a loss. It
// is not safe for concurrent use.
type GameSession struct {
	Status            Status
	Difficulty        Difficulty
	FlaggedCount      int
	FirstClickPending bool
	Board             *Board

	rnd *rand.Rand
}

func NewGameSession(r *rand.Rand) *GameSession {
	return &GameSession{Status: Ready, rnd: r}
}

// Start replaces the board with an empty one for d. Mines are placed by the
// first reveal.
func (s *GameSession) Start(d Difficulty) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.Difficulty = d
	s.Board = NewBoard(d.Rows, d.Columns)
	s.FlaggedCount = 0
	s.FirstClickPending = true
	s.Status = Playing
	return nil
}

func (s *GameSession) RemainingFlags() int {
	return s.Difficulty.MineCount - s.FlaggedCount
}

func (s *GameSession) playable(row, col int) bool {
	return s.Status == Playing && s.Board.InBounds(row, col)
}

func (s *GameSession) Reveal(row, col int) {
	if !s.playable(row, col) {
		return
	}
	b := s.Board
	cell := b.At(row, col)
	if cell.State != Hidden {
		return
	}

	if s.FirstClickPending {
		b.PlaceMines(s.Difficulty.MineCount, row, col, s.rnd)
		s.FirstClickPending = false
	}

	cell.State = Revealed

	if cell.IsMine {
		b.revealMines()
		s.Status = Lost
		return
	}

	if cell.AdjacentMines == 0 {
		s.flood(row, col)
	}

	s.checkWin()
}

// flood opens the zero-adjacency region around (row, col) together with
// its numbered border. A zero cell has no mined neighbours, so nothing
// opened here can be a mine.
func (s *GameSession) flood(row, col int) {
	b := s.Board
	stack := []int{b.index(row, col)}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for r, c := range b.neighbors(i/b.Columns, i%b.Columns) {
			cell := b.At(r, c)
			if cell.State != Hidden {
				continue
			}
			cell.State = Revealed
			if cell.AdjacentMines == 0 {
				stack = append(stack, b.index(r, c))
			}
		}
	}
}

func (s *GameSession) ToggleFlag(row, col int) {
	if !s.playable(row, col) {
		return
	}
	cell := s.Board.At(row, col)
	switch cell.State {
	case Revealed:
		return
	case Flagged:
		cell.State = Hidden
		s.FlaggedCount--
	default:
		if s.FlaggedCount >= s.Difficulty.MineCount {
			return
		}
		cell.State = Flagged
		s.FlaggedCount++
	}
	s.checkWin()
}

// ChordReveal opens every hidden neighbour of a numbered cell once as many
// neighbours are flagged as the number says. Flags are trusted: a wrong one
// sets off a mine like any other reveal.
func (s *GameSession) ChordReveal(row, col int) {
	if !s.playable(row, col) {
		return
	}
	b := s.Board
	cell := b.At(row, col)
	if cell.State != Revealed || cell.AdjacentMines == 0 {
		return
	}

	flagged := 0
	hidden := make([]int, 0, 8)
	for r, c := range b.neighbors(row, col) {
		switch b.At(r, c).State {
		case Flagged:
			flagged++
		case Hidden:
			hidden = append(hidden, b.index(r, c))
		}
	}
	if flagged != cell.AdjacentMines {
		return
	}

	for _, i := range hidden {
		s.Reveal(i/b.Columns, i%b.Columns)
		if s.Status.Terminal() {
			return
		}
	}
}

// Forfeit gives up a game in progress: every mine is shown and the game is
// lost.
func (s *GameSession) Forfeit() {
	if s.Status != Playing {
		return
	}
	s.Board.revealMines()
	s.Status = Lost
}

// checkWin only looks at what is still covered; misplaced flags do not
// prevent a win.
func (s *GameSession) checkWin() {
	covered := s.Board.count(func(c *Cell) bool { return c.State != Revealed })
	if covered == s.Difficulty.MineCount {
		s.Status = Won
	}
}
