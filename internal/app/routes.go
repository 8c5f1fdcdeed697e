package app

import (
	"net/http"

	"github.com/vancomm/sapper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.repo, a.cookies, a.ws, a.config.Difficulties, a.newRand,
	)

	a.router.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	a.router.HandleFunc("GET /difficulties", game.Difficulties)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
}
