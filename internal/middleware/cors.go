package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// Cors allows credentialed requests from allowedOrigins, or from anywhere
// when the list is empty.
func Cors(allowedOrigins []string) Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	return cors.New(options).Handler
}
