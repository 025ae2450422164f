package game

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
)

const tracerName = "github.com/hanwool95/game-socket-server/internal/application/game"

type Config struct {
	DefaultTimerSeconds int
	MaxTimerSeconds     int
	EnforceRoundTimer   bool
	SecretFetchTimeout  time.Duration
	HintStoreTimeout    time.Duration
}

func DefaultConfig() Config {
	return Config{
		DefaultTimerSeconds: 60,
		MaxTimerSeconds:     600,
		EnforceRoundTimer:   true,
		SecretFetchTimeout:  5 * time.Second,
		HintStoreTimeout:    3 * time.Second,
	}
}

// Coordinator runs every room's game. All room state changes happen inside
// RoomRepository.WithRoom or a repository hook, and every outbound frame for
// a room is sent from there too, so clients see a room's events in commit
// order. Slow work (secret fetches, hint writes) runs with no lock held.
type Coordinator struct {
	rooms    domain.RoomRepository
	secrets  domain.SecretProvider
	hints    domain.HintStore
	hub      Hub
	observer Observer
	logger   logging.Logger
	tracer   trace.Tracer
	timers   *roundTimers
	cfg      Config

	wg sync.WaitGroup
}

type Option func(*Coordinator)

func WithObserver(observers ...Observer) Option {
	return func(c *Coordinator) {
		switch len(observers) {
		case 0:
		case 1:
			c.observer = observers[0]
		default:
			c.observer = Observers(observers)
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithAfterFunc replaces the clock used for round deadlines.
func WithAfterFunc(after AfterFunc) Option {
	return func(c *Coordinator) {
		c.timers = newRoundTimers(after)
	}
}

func NewCoordinator(
	rooms domain.RoomRepository,
	secrets domain.SecretProvider,
	hints domain.HintStore,
	hub Hub,
	logger logging.Logger,
	cfg Config,
	opts ...Option,
) *Coordinator {
	if cfg.DefaultTimerSeconds <= 0 {
		cfg.DefaultTimerSeconds = DefaultConfig().DefaultTimerSeconds
	}
	if cfg.MaxTimerSeconds < cfg.DefaultTimerSeconds {
		cfg.MaxTimerSeconds = cfg.DefaultTimerSeconds
	}
	if cfg.SecretFetchTimeout <= 0 {
		cfg.SecretFetchTimeout = DefaultConfig().SecretFetchTimeout
	}
	if cfg.HintStoreTimeout <= 0 {
		cfg.HintStoreTimeout = DefaultConfig().HintStoreTimeout
	}

	c := &Coordinator{
		rooms:    rooms,
		secrets:  secrets,
		hints:    hints,
		hub:      hub,
		observer: NopObserver{},
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		timers:   newRoundTimers(nil),
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close stops every round deadline and waits for background hint writes.
func (c *Coordinator) Close() {
	c.timers.stopAll()
	c.wg.Wait()
}

// Connect greets a new connection with its id.
func (c *Coordinator) Connect(ctx context.Context, connectionID string) {
	c.observer.OnConnect(connectionID)
	c.hub.SendTo(connectionID, ws.NewConnected(connectionID))
}

// timerSeconds picks the round length for a start request. Zero means the
// configured default.
func (c *Coordinator) timerSeconds(requested int) int {
	switch {
	case requested <= 0:
		return c.cfg.DefaultTimerSeconds
	case requested > c.cfg.MaxTimerSeconds:
		return c.cfg.MaxTimerSeconds
	default:
		return requested
	}
}

func (c *Coordinator) background(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}
