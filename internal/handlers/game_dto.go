package handlers

import (
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/sapper/internal/repository"
	"github.com/vancomm/sapper/internal/sapper"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type NewGameDTO struct {
	// preset name or rows:columns:mines
	Difficulty string `schema:"difficulty,required"`
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

type MoveDTO struct {
	Move Move `schema:"move,required"`
	PositionDTO
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	if dto.Move == "" {
		return dto, fmt.Errorf("%w: empty move", ErrUnknownCommand)
	}
	return dto, nil
}

type GameSessionDTO struct {
	GameSessionId string `json:"game_session_id"`
	StartedAt     int64  `json:"started_at"`
	EndedAt       *int64 `json:"ended_at,omitempty"`
	sapper.Snapshot
}

func NewGameSessionDTO(session *repository.GameSession) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt != nil {
		e := session.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: session.GameSessionId.String(),
		StartedAt:     session.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
		Snapshot:      session.Snapshot,
	}
}


// CommandReplyDTO answers a websocket frame. Error is set when a command was
// rejected; the session still shows the moves applied before it.
type CommandReplyDTO struct {
	Error string `json:"error,omitempty"`
	*GameSessionDTO
}

func NewCommandReplyDTO(session *repository.GameSession, err error) *CommandReplyDTO {
	reply := &CommandReplyDTO{GameSessionDTO: NewGameSessionDTO(session)}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply
}
