package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/sapper/internal/sapper"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
	ErrOutOfBounds    = errors.New("invalid cell coordinates")
)

type Move string

const (
	Open  Move = "open"
	Flag  Move = "flag"
	Chord Move = "chord"
)

func applyMove(game *sapper.GameSession, move Move, row, col int) error {
	if game.Board == nil || !game.Board.InBounds(row, col) {
		return ErrOutOfBounds
	}
	switch move {
	case Open:
		game.Reveal(row, col)
	case Flag:
		game.ToggleFlag(row, col)
	case Chord:
		game.ChordReveal(row, col)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, move)
	}
	return nil
}

// Websocket clients send one command per line:
//
//	g        refresh, no move
//	o R C    reveal
//	f R C    toggle flag
//	c R C    chord
//	r        forfeit
var commandMoves = map[string]Move{
	"o": Open,
	"f": Flag,
	"c": Chord,
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, errors.New("row must be an int")
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, errors.New("col must be an int")
	}
	return row, col, nil
}

func executeCommand(game *sapper.GameSession, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]
	switch cmd {
	case "g":
		if len(args) != 0 {
			return ErrArgCount
		}
		return nil
	case "r":
		if len(args) != 0 {
			return ErrArgCount
		}
		game.Forfeit()
		return nil
	}

	move, ok := commandMoves[cmd]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	if len(args) != 2 {
		return ErrArgCount
	}
	row, col, err := parseRowCol(args)
	if err != nil {
		return err
	}
	return applyMove(game, move, row, col)
}

// executeCommands runs the lines of one websocket frame and stops early once
// the game is over.
func executeCommands(game *sapper.GameSession, frame string) error {
	for _, line := range byPiece(strings.TrimSpace(frame), "\n") {
		if err := executeCommand(game, line); err != nil {
			return err
		}
		if game.Status.Terminal() {
			break
		}
	}
	return nil
}
