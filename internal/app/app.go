package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sapper/internal/config"
	"github.com/vancomm/sapper/internal/handlers"
	"github.com/vancomm/sapper/internal/middleware"
	"github.com/vancomm/sapper/internal/repository"
)

type App struct {
	log     *logrus.Logger
	config  *config.Config
	router  *http.ServeMux
	repo    *repository.Repository
	cookies *config.Cookies
	ws      *config.WebSocket
	newRand func() *rand.Rand
}

func New(log *logrus.Logger, c *config.Config) (*App, error) {
	return newApp(log, c, handlers.CreateRand)
}

func newApp(log *logrus.Logger, c *config.Config, newRand func() *rand.Rand) (*App, error) {
	jwt, err := config.NewJWT(c.Jwt)
	if err != nil {
		return nil, fmt.Errorf("unable to set up jwt: %w", err)
	}

	app := &App{
		log:     log,
		config:  c,
		router:  http.NewServeMux(),
		repo:    repository.New(),
		cookies: config.NewCookies(c.Cookies, jwt),
		ws:      config.NewWebSocket(c.Cors.AllowedOrigins),
		newRand: newRand,
	}

	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.cookies),
		middleware.Cors(a.config.Cors.AllowedOrigins),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is done, then shuts the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        a.config.Addr,
		Handler:     a.Handler(),
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.config.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.repo.RunJanitor(
			gCtx, a.log,
			a.config.Sessions.SweepInterval.Duration,
			a.config.Sessions.IdleTimeout.Duration,
		)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
