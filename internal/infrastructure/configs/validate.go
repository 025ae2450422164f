package configs

import (
	"errors"
	"fmt"

	"github.com/hanwool95/game-socket-server/internal/infrastructure/validate"
)

var (
	validLogger    = validate.Field("logger.logger", validate.OneOf("zap", "zerolog"))
	validLevel     = validate.Field("logger.level", validate.OneOf("debug", "info", "warn", "error", "fatal"))
	validEncoding  = validate.Field("logger.encoding", validate.OneOf("json", "console"))
	validProvider  = validate.Field("provider.backend", validate.OneOf("http", "static"))
	validHintStore = validate.Field("hint_store.backend", validate.OneOf("memory", "mongo", "sqlite"))
	validExporter  = validate.Field("tracing.exporter", validate.OneOf("otlp", "jaeger"))
)

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if c.HTTP.Port == 0 {
		add(errors.New("http.port must be set"))
	}
	add(validLogger(c.Logger.Logger))
	add(validLevel(c.Logger.Level))
	add(validEncoding(c.Logger.Encoding))

	if c.Game.DefaultTimerSeconds <= 0 {
		add(fmt.Errorf("game.default_timer_seconds must be positive, got %d", c.Game.DefaultTimerSeconds))
	}
	if c.Game.MaxTimerSeconds < c.Game.DefaultTimerSeconds {
		add(fmt.Errorf("game.max_timer_seconds (%d) must be >= default_timer_seconds (%d)",
			c.Game.MaxTimerSeconds, c.Game.DefaultTimerSeconds))
	}

	add(validProvider(c.Provider.Backend))
	switch c.Provider.Backend {
	case "http":
		if c.Provider.BaseURL == "" {
			add(errors.New("provider.base_url is required for the http provider"))
		}
		if c.Provider.MaxID <= 0 {
			add(errors.New("provider.max_id must be positive"))
		}
	case "static":
		if len(c.Provider.Static) == 0 {
			add(errors.New("provider.static needs at least one secret"))
		}
	}

	add(validHintStore(c.HintStore.Backend))
	if c.HintStore.Backend == "mongo" && !c.Mongo.Enabled {
		add(errors.New("hint_store.backend mongo requires mongo.enabled"))
	}
	if c.HintStore.Backend == "sqlite" && c.SQLite.Path == "" {
		add(errors.New("sqlite.path is required for the sqlite hint store"))
	}

	if c.Tracing.Enabled {
		add(validExporter(c.Tracing.Exporter))
		if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
			add(fmt.Errorf("tracing.sample_ratio must be within [0, 1], got %v", c.Tracing.SampleRatio))
		}
	}

	if c.RateLimiter.Enabled && (c.RateLimiter.Requests <= 0 || c.RateLimiter.Window <= 0) {
		add(errors.New("rate_limiter.requests and rate_limiter.window must be positive"))
	}

	return errors.Join(errs...)
}
