package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTP struct {
		Port         string        `envconfig:"PORT" default:"3000"`
		ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
		WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
		IdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	}

	DB struct {
		Host       string `envconfig:"DB_HOST" default:"localhost"`
		User       string `envconfig:"DB_USER" default:"postgres"`
		Password   string `envconfig:"DB_PASSWORD"`
		Name       string `envconfig:"DB_NAME" required:"true"`
		Port       string `envconfig:"DB_PORT" default:"5432"`
		SSLMode    string `envconfig:"DB_SSLMODE" default:"disable"`
		MaxRetries int    `envconfig:"DB_MAX_RETRIES" default:"5"`
	}

	Redis struct {
		// Empty disables caching and consumer dedupe.
		Addr       string `envconfig:"REDIS_ADDR"`
		MaxRetries int    `envconfig:"REDIS_MAX_RETRIES" default:"5"`
	}

	Kafka struct {
		Brokers     []string      `envconfig:"KAFKA_BROKERS" required:"true"`
		Exchange    string        `envconfig:"KAFKA_EXCHANGE" default:"hr.employee.events"`
		Queue       string        `envconfig:"KAFKA_QUEUE" default:"hr.employee.events.audit"`
		RoutingKey  string        `envconfig:"KAFKA_ROUTING_KEY" default:"employee"`
		MessageTTL  time.Duration `envconfig:"KAFKA_MESSAGE_TTL" default:"1h"`
		Partitions  int           `envconfig:"KAFKA_PARTITIONS" default:"3"`
		Replication int           `envconfig:"KAFKA_REPLICATION" default:"1"`
		MaxRetries  int           `envconfig:"KAFKA_MAX_RETRIES" default:"5"`
	}

	Publish RetryPolicy `envconfig:"PUBLISH_RETRY"`

	Consumer struct {
		MinConcurrency int           `envconfig:"CONSUMER_MIN_CONCURRENCY" default:"2"`
		MaxConcurrency int           `envconfig:"CONSUMER_MAX_CONCURRENCY" default:"8"`
		IdleTimeout    time.Duration `envconfig:"CONSUMER_IDLE_TIMEOUT" default:"30s"`
		Retry          RetryPolicy   `envconfig:"RETRY"`
	}
}

// RetryPolicy is a bounded exponential backoff.
type RetryPolicy struct {
	MaxAttempts     int           `envconfig:"MAX_ATTEMPTS"`
	InitialInterval time.Duration `envconfig:"INITIAL_INTERVAL"`
	Multiplier      float64       `envconfig:"MULTIPLIER"`
	MaxInterval     time.Duration `envconfig:"MAX_INTERVAL"`
}

// DefaultPublishRetry: 5 attempts, 500ms x10 capped at 10s.
func DefaultPublishRetry() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     5,
		InitialInterval: 500 * time.Millisecond,
		Multiplier:      10,
		MaxInterval:     10 * time.Second,
	}
}

// DefaultConsumerRetry: 3 attempts starting at 1s.
func DefaultConsumerRetry() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: time.Second,
		Multiplier:      2,
		MaxInterval:     10 * time.Second,
	}
}

// OrDefault fills zero fields from def.
func (p RetryPolicy) OrDefault(def RetryPolicy) RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialInterval <= 0 {
		p.InitialInterval = def.InitialInterval
	}
	if p.Multiplier <= 1 {
		p.Multiplier = def.Multiplier
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = def.MaxInterval
	}
	return p
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse from env, %v", err)
	}

	cfg.Publish = cfg.Publish.OrDefault(DefaultPublishRetry())
	cfg.Consumer.Retry = cfg.Consumer.Retry.OrDefault(DefaultConsumerRetry())
	if cfg.Consumer.MinConcurrency < 1 {
		cfg.Consumer.MinConcurrency = 1
	}
	if cfg.Consumer.MaxConcurrency < cfg.Consumer.MinConcurrency {
		cfg.Consumer.MaxConcurrency = cfg.Consumer.MinConcurrency
	}

	return &cfg, nil
}
