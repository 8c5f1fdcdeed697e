package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sapper/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

// Auth puts valid session claims into the request context. Requests
// without them pass through unauthenticated; stale cookies are cleared.
func Auth(log logrus.FieldLogger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseSessionClaims(r)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					log.WithError(err).Debug("dropping invalid session token")
					cookies.Clear(w)
				}
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionClaims(ctx context.Context) (*config.SessionClaims, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
