package config

import (
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts upgrades from the same origins as [CorsConfig]: any
// when allowedOrigins is empty. Clients that send no Origin header are not
// browsers and are let through.
func NewWebSocket(allowedOrigins []string) *WebSocket {
	return &WebSocket{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" ||
					len(allowedOrigins) == 0 ||
					slices.Contains(allowedOrigins, origin)
			},
		},
	}
}
