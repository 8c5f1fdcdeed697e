package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sapper/internal/repository"
	"github.com/vancomm/sapper/internal/sapper"
)

var closeExpired = websocket.FormatCloseMessage(
	websocket.CloseNormalClosure, "game session expired",
)

// ConnectWS plays a game over a websocket. Each text frame holds one or more
// command lines (see [commandMoves]); the session is written back as JSON
// after every frame, with an "error" field when a command was rejected.
// The connection is closed when the session is evicted.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionID(w, r, true)
	if !ok {
		return
	}
	evicted, err := g.repo.Evicted(id)
	if err != nil {
		g.repoError(w, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer conn.Close()

	log := g.log.WithField("game_session_id", id)
	log.Debug("websocket connected")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-evicted:
			_ = conn.WriteControl(websocket.CloseMessage, closeExpired, time.Now().Add(time.Second))
			conn.Close()
		case <-done:
		}
	}()

	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-evicted:
				log.Debug("websocket closed, game session evicted")
				return
			default:
			}
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "text frames only"))
			return
		}

		session, err := g.update(id, func(game *sapper.GameSession) error {
			return executeCommands(game, string(buf))
		})
		if errors.Is(err, repository.ErrNotFound) {
			_ = conn.WriteMessage(websocket.CloseMessage, closeExpired)
			return
		}
		if err != nil {
			log.WithError(err).WithField("frame", string(buf)).Debug("rejected command")
		}

		if err := conn.WriteJSON(NewCommandReplyDTO(session, err)); err != nil {
			log.WithError(err).Warn("websocket write failed")
			return
		}
	}
}
