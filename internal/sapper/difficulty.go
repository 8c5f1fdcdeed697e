package sapper

import (
	"fmt"
	"strings"
)

type Difficulty struct {
	Name      string `json:"name"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
	MineCount int    `json:"mine_count"`
}

// Largest board a difficulty may ask for.
const (
	MaxRows    = 100
	MaxColumns = 100
)

var (
	Easy   = Difficulty{Name: "easy", Rows: 9, Columns: 9, MineCount: 10}
	Medium = Difficulty{Name: "medium", Rows: 16, Columns: 16, MineCount: 40}
	Hard   = Difficulty{Name: "hard", Rows: 16, Columns: 30, MineCount: 99}
)

func Presets() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func (d Difficulty) Unpack() (rows int, columns int, mineCount int) {
	return d.Rows, d.Columns, d.MineCount
}

// Validate checks that mines can always be placed, whichever cell the first
// reveal lands on. The largest safe zone is the one around 1:1.
func (d Difficulty) Validate() error {
	rows, columns, mineCount := d.Unpack()
	if rows <= 0 || columns <= 0 {
		return fmt.Errorf("%w: %s has a %dx%d board", ErrInvalidDifficulty, d, rows, columns)
	}
	if rows > MaxRows || columns > MaxColumns {
		return fmt.Errorf(
			"%w: %s exceeds the %dx%d board limit",
			ErrInvalidDifficulty, d, MaxRows, MaxColumns,
		)
	}
	if mineCount <= 0 {
		return fmt.Errorf("%w: %s has no mines", ErrInvalidDifficulty, d)
	}
	safeZone := safeZoneSize(rows, columns, 1, 1)
	if mineCount > rows*columns-safeZone {
		return fmt.Errorf(
			"%w: %s cannot fit %d mines outside a %d cell safe zone",
			ErrInvalidDifficulty, d, mineCount, safeZone,
		)
	}
	return nil
}

// Seed is the compact rows:columns:mines form accepted by [ParseDifficulty].
func (d Difficulty) Seed() string {
	return fmt.Sprintf("%d:%d:%d", d.Rows, d.Columns, d.MineCount)
}

// Difficulty implements [fmt.Stringer]
func (d Difficulty) String() string {
	if d.Name == "" {
		return d.Seed()
	}
	return d.Name + "(" + d.Seed() + ")"
}

// ParseDifficulty resolves a preset name from presets, or a custom
// rows:columns:mines seed. The result is validated.
func ParseDifficulty(s string, presets []Difficulty) (Difficulty, error) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, s) {
			return p, p.Validate()
		}
	}

	var d Difficulty
	sseed := strings.ReplaceAll(s, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &d.Rows, &d.Columns, &d.MineCount)
	if n != 3 || err != nil {
		return Difficulty{}, fmt.Errorf(
			`%w: unknown preset or malformed seed "%s"`, ErrInvalidDifficulty, s,
		)
	}
	return d, d.Validate()
}
