package configs

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envOverrides are applied on top of the config file and defaults.
type envOverrides struct {
	HTTPHost       string        `env:"HTTP_HOST"`
	HTTPPort       int           `env:"PORT"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT"`

	LoggerFilePath string `env:"LOGGER_FILE_PATH"`
	LoggerEncoding string `env:"LOGGER_ENCODING"`
	LoggerLevel    string `env:"LOGGER_LEVEL"`
	LoggerBackend  string `env:"LOGGER_LOGGER"`

	EnforceRoundTimer string `env:"GAME_ENFORCE_ROUND_TIMER"`

	ProviderBackend string `env:"PROVIDER_BACKEND"`
	ProviderBaseURL string `env:"PROVIDER_BASE_URL"`
	ProviderAPIKey  string `env:"PROVIDER_API_KEY"`

	HintStoreBackend string `env:"HINT_STORE_BACKEND"`
	MongoURI         string `env:"MONGODB_URI"`
	MongoDatabase    string `env:"MONGODB_DATABASE"`
	SQLitePath       string `env:"SQLITE_PATH"`
	RabbitMQURL      string `env:"RABBITMQ_URL"`
	TracingEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Environment      string `env:"ENVIRONMENT"`
	YoutubeAPIURL    string `env:"YOUTUBE_API_URL"`
	YoutubeAPIKey    string `env:"YOUTUBE_API_KEY"`
}

// ParseEnv fills target from the process environment.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
