package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/stock-sentinel/pkg/postgresql"
	"github.com/muhammadchandra19/stock-sentinel/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App        AppConfig         `envPrefix:"APP_"`
	HTTP       HTTPConfig        `envPrefix:"HTTP_"`
	Postgres   postgresql.Config `envPrefix:"POSTGRES_"`
	Redis      RedisConfig       `envPrefix:"REDIS_"`
	Kafka      KafkaConfig       `envPrefix:"KAFKA_"`
	MarketData MarketDataConfig  `envPrefix:"MARKETDATA_"`
	Feed       FeedConfig        `envPrefix:"FEED_"`
	Scheduler  SchedulerConfig   `envPrefix:"SCHEDULER_"`
	Price      PriceConfig       `envPrefix:"PRICE_"`
}

// StorageDriver selects the persistence backend.
type StorageDriver string

const (
	// StoragePostgres keeps prices, alerts and holdings in PostgreSQL.
	StoragePostgres StorageDriver = "postgres"
	// StorageMemory keeps everything in process memory. Intended for local runs and demos.
	StorageMemory StorageDriver = "memory"
)

// AppConfig represents the application configuration.
type AppConfig struct {
	Name           string        `env:"NAME" envDefault:"stock-sentinel"`
	Environment    string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	StorageDriver  StorageDriver `env:"STORAGE_DRIVER" envDefault:"postgres"`
	StorageTimeout time.Duration `env:"STORAGE_TIMEOUT" envDefault:"5s"`
	ShutdownGrace  time.Duration `env:"SHUTDOWN_GRACE" envDefault:"30s"`
}

// HTTPConfig configures the dashboard API.
type HTTPConfig struct {
	Port              int           `env:"PORT" envDefault:"8080"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
}

// RedisConfig wraps the client settings with the notification channel.
type RedisConfig struct {
	Enabled      bool   `env:"ENABLED" envDefault:"false"`
	AlertChannel string `env:"ALERT_CHANNEL" envDefault:"stock-sentinel:alerts"`
	redis.Config
}

// KafkaConfig configures the alert notification topic.
type KafkaConfig struct {
	Enabled      bool          `env:"ENABLED" envDefault:"false"`
	Brokers      []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	AlertTopic   string        `env:"ALERT_TOPIC" envDefault:"price-alerts"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"5s"`
}

// MarketDataConfig configures the polling quote source.
type MarketDataConfig struct {
	BaseURL           string        `env:"BASE_URL" envDefault:"https://www.alphavantage.co"`
	APIKey            string        `env:"API_KEY"`
	Timeout           time.Duration `env:"TIMEOUT" envDefault:"10s"`
	RequestsPerMinute int           `env:"REQUESTS_PER_MINUTE" envDefault:"75"`
	MaxRetries        int           `env:"MAX_RETRIES" envDefault:"2"`
	RetryWait         time.Duration `env:"RETRY_WAIT" envDefault:"500ms"`
	RetryMaxWait      time.Duration `env:"RETRY_MAX_WAIT" envDefault:"5s"`
}

// FeedConfig configures the streaming trade feed. An empty URL disables it.
type FeedConfig struct {
	URL                 string        `env:"URL"`
	Token               string        `env:"TOKEN"`
	Symbols             []string      `env:"SYMBOLS" envSeparator:","`
	HandshakeTimeout    time.Duration `env:"HANDSHAKE_TIMEOUT" envDefault:"10s"`
	ReadTimeout         time.Duration `env:"READ_TIMEOUT" envDefault:"60s"`
	PingInterval        time.Duration `env:"PING_INTERVAL" envDefault:"20s"`
	// ResubscribeInterval is how often the subscription set is recomputed
	// on a live connection. Zero only subscribes at connect time.
	ResubscribeInterval time.Duration `env:"RESUBSCRIBE_INTERVAL" envDefault:"5m"`
	ReconnectMinBackoff time.Duration `env:"RECONNECT_MIN_BACKOFF" envDefault:"1s"`
	ReconnectMaxBackoff time.Duration `env:"RECONNECT_MAX_BACKOFF" envDefault:"60s"`
}

// SchedulerConfig configures the background refresh loop.
type SchedulerConfig struct {
	Enabled     bool          `env:"ENABLED" envDefault:"true"`
	Interval    time.Duration `env:"INTERVAL" envDefault:"60s"`
	Concurrency int           `env:"CONCURRENCY" envDefault:"4"`
}

// PriceConfig configures the price cache.
type PriceConfig struct {
	FreshnessWindow time.Duration `env:"FRESHNESS_WINDOW" envDefault:"60s"`
}

// Load loads the configuration from the environment. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.App.StorageDriver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.App.StorageDriver)
	}

	if c.App.StorageTimeout <= 0 {
		return fmt.Errorf("storage timeout must be positive")
	}
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive")
	}
	if c.Scheduler.Concurrency <= 0 {
		return fmt.Errorf("scheduler concurrency must be positive")
	}
	if c.Price.FreshnessWindow <= 0 {
		return fmt.Errorf("price freshness window must be positive")
	}
	if c.Feed.ReconnectMinBackoff <= 0 || c.Feed.ReconnectMaxBackoff < c.Feed.ReconnectMinBackoff {
		return fmt.Errorf("feed reconnect backoff must satisfy 0 < min <= max")
	}
	if c.MarketData.RequestsPerMinute <= 0 {
		return fmt.Errorf("market data requests per minute must be positive")
	}
	return nil
}
