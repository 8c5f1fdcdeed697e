package sapper

// CellView is what a client may know about a cell. Mine and count are only
// filled in once the cell is revealed.
type CellView struct {
	Row           int       `json:"row"`
	Col           int       `json:"col"`
	State         CellState `json:"state"`
	IsMine        bool      `json:"is_mine,omitempty"`
	AdjacentMines int       `json:"adjacent_mines,omitempty"`
}

type Snapshot struct {
	Difficulty     string     `json:"difficulty"`
	Rows           int        `json:"rows"`
	Columns        int        `json:"columns"`
	MineCount      int        `json:"mine_count"`
	Status         Status     `json:"status"`
	RemainingFlags int        `json:"remaining_flags"`
	Result         *Status    `json:"result,omitempty"`
	Cells          []CellView `json:"cells"`
}

func (s *GameSession) Snapshot() Snapshot {
	snap := Snapshot{
		Difficulty:     s.Difficulty.Name,
		Rows:           s.Difficulty.Rows,
		Columns:        s.Difficulty.Columns,
		MineCount:      s.Difficulty.MineCount,
		Status:         s.Status,
		RemainingFlags: s.RemainingFlags(),
	}
	if s.Status.Terminal() {
		result := s.Status
		snap.Result = &result
	}
	if s.Board == nil {
		return snap
	}

	b := s.Board
	snap.Cells = make([]CellView, 0, len(b.Cells))
	for row := range b.Rows {
		for col := range b.Columns {
			cell := b.At(row, col)
			view := CellView{Row: row, Col: col, State: cell.State}
			if cell.State == Revealed {
				view.IsMine = cell.IsMine
				view.AdjacentMines = cell.AdjacentMines
			}
			snap.Cells = append(snap.Cells, view)
		}
	}
	return snap
}
