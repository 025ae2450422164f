package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
)

const (
	GameEventsCollection   = "game_events"
	HintsCollection        = "hints"
	PokemonCardsCollection = "pokemon_cards"

	DefaultDatabase          = "game"
	DefaultConnectionTimeout = 20 * time.Second
	DefaultMaxPoolSize       = 50

	disconnectTimeout = 10 * time.Second
)

var ErrInvalidConfig = errors.New("invalid mongodb config")

type MongoConfig struct {
	URI               string
	Database          string
	AppName           string
	ConnectionTimeout time.Duration
	MaxPoolSize       uint64
}

func NewMongoDefaultConfig() *MongoConfig {
	return &MongoConfig{
		URI:               "mongodb://localhost:27017",
		Database:          DefaultDatabase,
		AppName:           "game-socket-server",
		ConnectionTimeout: DefaultConnectionTimeout,
		MaxPoolSize:       DefaultMaxPoolSize,
	}
}

func (c *MongoConfig) check() error {
	switch {
	case c == nil:
		return fmt.Errorf("%w: missing", ErrInvalidConfig)
	case c.URI == "":
		return fmt.Errorf("%w: uri is required", ErrInvalidConfig)
	case c.Database == "":
		return fmt.Errorf("%w: database is required", ErrInvalidConfig)
	}
	return nil
}

func (c *MongoConfig) clientOptions() *options.ClientOptions {
	timeout := c.ConnectionTimeout
	if timeout <= 0 {
		timeout = DefaultConnectionTimeout
	}
	poolSize := c.MaxPoolSize
	if poolSize == 0 {
		poolSize = DefaultMaxPoolSize
	}

	opts := options.Client().
		ApplyURI(c.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout).
		SetMaxPoolSize(poolSize)
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	}
	return opts
}

// NewMongoClient connects and pings the primary. A client that cannot be
// pinged is disconnected before returning the error.
func NewMongoClient(ctx context.Context, cfg *MongoConfig, logger logging.Logger) (*mongo.Client, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}

	timeout := cfg.ConnectionTimeout
	if timeout <= 0 {
		timeout = DefaultConnectionTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, cfg.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info(logging.MongoDB, logging.Startup, "connected to mongodb", map[logging.ExtraKey]any{
		logging.Path: cfg.Database,
	})
	return client, nil
}

func GetDatabase(client *mongo.Client, cfg *MongoConfig) *mongo.Database {
	if client == nil || cfg == nil {
		return nil
	}
	return client.Database(cfg.Database)
}

func DisconnectMongo(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, disconnectTimeout)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
