package handlers

import (
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sapper/internal/config"
	"github.com/vancomm/sapper/internal/middleware"
	"github.com/vancomm/sapper/internal/repository"
	"github.com/vancomm/sapper/internal/sapper"
)

var ErrForbidden = errors.New("session token does not grant access to this game")

func CreateRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

type GameHandler struct {
	log          logrus.FieldLogger
	repo         *repository.Repository
	cookies      *config.Cookies
	ws           *config.WebSocket
	difficulties []sapper.Difficulty
	// each game owns its source, a *rand.Rand is not safe to share
	newRand func() *rand.Rand
}

func NewGameHandler(
	log logrus.FieldLogger,
	repo *repository.Repository,
	cookies *config.Cookies,
	ws *config.WebSocket,
	difficulties []sapper.Difficulty,
	newRand func() *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:          log,
		repo:         repo,
		cookies:      cookies,
		ws:           ws,
		difficulties: difficulties,
		newRand:      newRand,
	}
}

func (g GameHandler) Difficulties(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, g.difficulties)
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	difficulty, err := sapper.ParseDifficulty(dto.Difficulty, g.difficulties)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	game := sapper.NewGameSession(g.newRand())
	if err := game.Start(difficulty); err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	session := g.repo.CreateGameSession(game)
	log := g.log.WithFields(logrus.Fields{
		"game_session_id": session.GameSessionId,
		"difficulty":      difficulty.String(),
	})

	if err := g.cookies.Issue(w, session.GameSessionId); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to issue session token")
		return
	}

	log.Debug("created game session")
	sendJSONOrLog(w, g.log, NewGameSessionDTO(session))
}

// sessionID parses the {id} path value and, when requireOwner is set,
// checks it against the session token.
func (g GameHandler) sessionID(w http.ResponseWriter, r *http.Request, requireOwner bool) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, fmt.Errorf("invalid game session id: %w", err))
		return uuid.Nil, false
	}
	if !requireOwner {
		return id, true
	}
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok || claims.GameSessionId != id {
		sendErrorOrLog(w, g.log, http.StatusForbidden, ErrForbidden)
		return uuid.Nil, false
	}
	return id, true
}

// repoError answers with the status matching a repository or move error.
func (g GameHandler) repoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		sendErrorOrLog(w, g.log, http.StatusNotFound, err)
	case errors.Is(err, ErrOutOfBounds),
		errors.Is(err, ErrUnknownCommand),
		errors.Is(err, ErrArgCount):
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
	default:
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to update game session")
	}
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionID(w, r, false)
	if !ok {
		return
	}

	session, err := g.repo.FetchGameSession(id)
	if err != nil {
		g.repoError(w, err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session))
}

func (g GameHandler) logResult(session *repository.GameSession, wasTerminal bool) {
	if wasTerminal || session.Snapshot.Result == nil {
		return
	}
	g.log.WithFields(logrus.Fields{
		"game_session_id": session.GameSessionId,
		"difficulty":      session.Snapshot.Difficulty,
		"result":          session.Snapshot.Result.String(),
		"duration":        session.EndedAt.Sub(session.StartedAt).String(),
	}).Info("game over")
}

// update applies fn to the game and logs the result when this call ended it.
func (g GameHandler) update(
	id uuid.UUID, fn func(game *sapper.GameSession) error,
) (*repository.GameSession, error) {
	wasTerminal := false
	session, err := g.repo.UpdateGameSession(id, func(game *sapper.GameSession) error {
		wasTerminal = game.Status.Terminal()
		return fn(game)
	})
	if session != nil {
		g.logResult(session, wasTerminal)
	}
	return session, err
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionID(w, r, true)
	if !ok {
		return
	}

	dto, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	session, err := g.update(id, func(game *sapper.GameSession) error {
		return applyMove(game, dto.Move, dto.Row, dto.Col)
	})
	if err != nil {
		g.repoError(w, err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionID(w, r, true)
	if !ok {
		return
	}

	session, err := g.update(id, func(game *sapper.GameSession) error {
		game.Forfeit()
		return nil
	})
	if err != nil {
		g.repoError(w, err)
		return
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(session))
}
