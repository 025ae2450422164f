package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/hanwool95/game-socket-server/docs"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/configs"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/metrics"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ratelimiter"
	catalogHandler "github.com/hanwool95/game-socket-server/internal/presentation/handler/catalog"
	gameHandler "github.com/hanwool95/game-socket-server/internal/presentation/handler/game"
	healthHandler "github.com/hanwool95/game-socket-server/internal/presentation/handler/health"
	roomHandler "github.com/hanwool95/game-socket-server/internal/presentation/handler/rooms"
)

const (
	serviceName    = "game-socket-server"
	requestTimeout = 60 * time.Second
)

type Application struct {
	config         configs.Config
	gameHandler    *gameHandler.Handler
	roomHandler    *roomHandler.Handler
	healthHandler  *healthHandler.Handler
	catalogHandler *catalogHandler.Handler
	logger         logging.Logger
	metrics        *metrics.Metrics
	ratelimiter    ratelimiter.Limiter
}

type Option func(*Application)

// WithMetrics records request metrics and serves them on the configured path.
func WithMetrics(m *metrics.Metrics) Option {
	return func(app *Application) {
		app.metrics = m
	}
}

func WithRateLimiter(l ratelimiter.Limiter) Option {
	return func(app *Application) {
		app.ratelimiter = l
	}
}

func NewApplication(
	config configs.Config,
	gameHandler *gameHandler.Handler,
	roomHandler *roomHandler.Handler,
	healthHandler *healthHandler.Handler,
	catalogHandler *catalogHandler.Handler,
	logger logging.Logger,
	opts ...Option,
) *Application {
	app := &Application{
		config:         config,
		gameHandler:    gameHandler,
		roomHandler:    roomHandler,
		healthHandler:  healthHandler,
		catalogHandler: catalogHandler,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(app.enableCors)
	if app.metrics != nil {
		r.Use(app.metrics.Middleware)
	}

	// The socket lives as long as the client stays, so it sits outside the
	// request timeout.
	r.Get("/ws", app.gameHandler.ServeWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(app.loggerMiddleware)
		r.Use(otelhttp.NewMiddleware(serviceName))
		if app.ratelimiter != nil {
			r.Use(app.rateLimiterMiddleware)
		}

		r.Route("/api", func(r chi.Router) {
			r.Route("/rooms", func(r chi.Router) {
				r.Get("/stats", app.roomHandler.GetStatsHandler)
				r.Get("/{code}/events", app.roomHandler.GetRoomEventsHandler)
			})

			r.Get("/pokemon-card/pack/{name}", app.catalogHandler.GetPackCardsHandler)
			r.Get("/youtube/video/{id}", app.catalogHandler.GetVideoHandler)

			r.Get("/health", app.healthHandler.GetHealth)
			r.Get("/healthz", app.healthHandler.GetHealth)
			r.Get("/ready", app.healthHandler.GetHealth)
			r.Get("/live", app.healthHandler.GetHealth)
		})

		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	})

	if app.metrics != nil && app.config.Metrics.Enabled {
		r.Handle(app.config.Metrics.Path, app.metrics.Handler())
	}

	return r
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.Addr(),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), app.config.HTTP.ShutdownTimeout)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		logging.HostIp: srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		logging.HostIp: srv.Addr,
	})

	return nil
}
