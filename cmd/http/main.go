package main

import (
	"context"
	"expvar"
	"log"
	"os"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	gameapp "github.com/hanwool95/game-socket-server/internal/application/game"
	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/configs"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/events"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/messaging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/metrics"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/provider"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ratelimiter"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/repository"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/tracing"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/youtube"
	"github.com/hanwool95/game-socket-server/internal/persistence/db"
	mongorepo "github.com/hanwool95/game-socket-server/internal/persistence/repository"
	"github.com/hanwool95/game-socket-server/internal/persistence/sqlite"
	"github.com/hanwool95/game-socket-server/internal/presentation/api"
	"github.com/hanwool95/game-socket-server/internal/presentation/handler/catalog"
	"github.com/hanwool95/game-socket-server/internal/presentation/handler/game"
	"github.com/hanwool95/game-socket-server/internal/presentation/handler/health"
	"github.com/hanwool95/game-socket-server/internal/presentation/handler/rooms"
)

const (
	appName       = "game-socket-server"
	startupBudget = 30 * time.Second
)

//	@title			Game Socket Server API
//	@version		1.0
//	@description	Room statistics, audit log and catalog lookups for the multiplayer guessing game. Gameplay runs over the /ws websocket.
//	@BasePath		/api
func main() {
	configPath := configs.DetermineConfigPath(os.Args[1:])
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		FilePath: cfg.Logger.FilePath,
		Encoding: cfg.Logger.Encoding,
		Level:    cfg.Logger.Level,
		Logger:   cfg.Logger.Logger,
		AppName:  appName,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := tracing.InitTracer(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Tracing.Environment,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Fatal(logging.General, logging.Startup, "failed to initialize the tracer", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer done()
		_ = shutdownTracer(shutdownCtx)
	}()

	m := metrics.New()
	var checks []health.Option

	var mongoDB *mongo.Database
	if cfg.Mongo.Enabled {
		mongoCfg := &db.MongoConfig{
			URI:               cfg.Mongo.URI,
			Database:          cfg.Mongo.Database,
			AppName:           appName,
			ConnectionTimeout: cfg.Mongo.ConnectionTimeout,
		}
		client, err := db.NewMongoClient(ctx, mongoCfg, logger)
		if err != nil {
			logger.Fatal(logging.MongoDB, logging.Startup, "failed to connect to mongodb", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		defer func() {
			_ = db.DisconnectMongo(context.Background(), client)
		}()
		mongoDB = db.GetDatabase(client, mongoCfg)
		checks = append(checks, health.WithCheck("mongodb", func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}))
	}

	hints, closeHints := newHintStore(ctx, cfg, mongoDB, logger)
	defer closeHints()

	secrets := newSecretProvider(cfg, logger)

	roomRepository := repository.NewRoomRepository()

	wsCore := ws.NewCore(logger, m.DroppedFrame)
	go wsCore.Run(ctx)

	observers := []gameapp.Observer{gameapp.NewLogObserver(logger), m}

	var auditLog domain.GameEventRepository
	if mongoDB != nil {
		auditLog = mongorepo.NewGameEventRepository(mongoDB)
		indexCtx, done := context.WithTimeout(ctx, startupBudget)
		if err := auditLog.EnsureIndexes(indexCtx); err != nil {
			logger.Warn(logging.MongoDB, logging.Index, "failed to ensure game event indexes", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		done()
	}

	var publisher *events.GamePublisher
	if cfg.RabbitMQ.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Fatal(logging.RabbitMQ, logging.Startup, "failed to connect to rabbitmq", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		defer rabbitmq.Close()

		logger.Info(logging.RabbitMQ, logging.Startup, "rabbitmq connection established", nil)
		checks = append(checks, health.WithCheck("rabbitmq", rabbitmq.Ping))

		publisher = events.NewGamePublisher(rabbitmq, logger, 0)
		go publisher.Run()
		observers = append(observers, gameapp.NewEventObserver(publisher))

		if auditLog != nil {
			consumer := events.NewGameConsumer(rabbitmq, auditLog, logger)
			go func() {
				if err := consumer.Listen(); err != nil {
					logger.Error(logging.RabbitMQ, logging.Consume, "game event consumer stopped", map[logging.ExtraKey]any{
						logging.ErrorMessage: err.Error(),
					})
				}
			}()
		}
	}

	coordinator := gameapp.NewCoordinator(
		roomRepository,
		secrets,
		hints,
		wsCore,
		logger,
		gameapp.Config{
			DefaultTimerSeconds: cfg.Game.DefaultTimerSeconds,
			MaxTimerSeconds:     cfg.Game.MaxTimerSeconds,
			EnforceRoundTimer:   cfg.Game.EnforceRoundTimer,
			SecretFetchTimeout:  cfg.Game.SecretFetchTimeout,
			HintStoreTimeout:    cfg.Game.HintStoreTimeout,
		},
		gameapp.WithObserver(observers...),
	)
	// Sockets are drained before this runs, so the last disconnect hooks
	// reach the publisher before its queue closes.
	defer func() {
		coordinator.Close()
		if publisher != nil {
			publisher.Close()
		}
	}()

	dispatcher := gameapp.NewDispatcher(coordinator, ws.Limits{
		MaxGuessLength: cfg.Game.MaxGuessLength,
		MaxHintLength:  cfg.Game.MaxHintLength,
		MaxChatLength:  cfg.Game.MaxChatLength,
	})

	var cards domain.CardRepository
	if mongoDB != nil {
		cards = mongorepo.NewCardRepository(mongoDB)
	}
	videos := youtube.NewClient(cfg.Youtube.APIURL, cfg.Youtube.APIKey, cfg.Youtube.MaxComments, cfg.Youtube.Timeout)

	gameHandler := game.NewHandler(wsCore, coordinator, dispatcher, cfg.HTTP.AllowedOrigins, logger)
	roomHandler := rooms.NewHandler(roomRepository, wsCore, auditLog, logger)
	healthHandler := health.NewHandler(checks...)
	catalogHandler := catalog.NewHandler(cards, videos, logger)

	opts := []api.Option{api.WithMetrics(m)}
	if cfg.RateLimiter.Enabled {
		rl := ratelimiter.NewFixedWindow(cfg.RateLimiter.Requests, cfg.RateLimiter.Window)
		defer rl.Close()
		opts = append(opts, api.WithRateLimiter(rl))
	}

	app := api.NewApplication(*cfg, gameHandler, roomHandler, healthHandler, catalogHandler, logger, opts...)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Error(logging.General, logging.Shutdown, "server stopped with error", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}

	// Hijacked sockets outlive the HTTP server. Stopping the core closes
	// them; each handler then runs its disconnect before returning.
	cancel()
	drainCtx, drained := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	if err := gameHandler.Drain(drainCtx); err != nil {
		logger.Warn(logging.General, logging.Shutdown, "websocket drain incomplete", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
	drained()
}

func newSecretProvider(cfg *configs.Config, logger logging.Logger) domain.SecretProvider {
	if cfg.Provider.Backend == "static" {
		secrets := make([]domain.Secret, 0, len(cfg.Provider.Static))
		for _, s := range cfg.Provider.Static {
			secrets = append(secrets, domain.Secret{DisplayName: s.DisplayName, MediaRef: s.MediaRef})
		}
		static, err := provider.NewStatic(secrets)
		if err != nil {
			logger.Fatal(logging.Provider, logging.Startup, "failed to build static provider", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		return static
	}

	return provider.NewPokeAPI(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.MaxID, cfg.Provider.Timeout)
}

// newHintStore picks the hint backend. The returned func releases it.
func newHintStore(ctx context.Context, cfg *configs.Config, mongoDB *mongo.Database, logger logging.Logger) (domain.HintStore, func()) {
	switch cfg.HintStore.Backend {
	case "mongo":
		store := mongorepo.NewHintRepository(mongoDB)
		if err := store.EnsureIndexes(ctx); err != nil {
			logger.Warn(logging.MongoDB, logging.Index, "failed to ensure hint indexes", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		return store, func() {}

	case "sqlite":
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			logger.Fatal(logging.SQLite, logging.Startup, "failed to open sqlite hint store", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		return store, func() { _ = store.Close() }

	default:
		return repository.NewHintRepository(cfg.HintStore.Capacity), func() {}
	}
}
