package config_test

import (
	"os"
	"testing"
	"time"

	"go-hris-audit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("DB_NAME", "hris")
		t.Setenv("KAFKA_BROKERS", "localhost:9092,localhost:9093")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, "3000", cfg.HTTP.Port)
		assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.Kafka.Brokers)
		assert.Equal(t, time.Hour, cfg.Kafka.MessageTTL)
		assert.Equal(t, 1, cfg.Kafka.Replication)
		assert.Equal(t, config.DefaultPublishRetry(), cfg.Publish)
		assert.Equal(t, config.DefaultConsumerRetry(), cfg.Consumer.Retry)
		assert.Equal(t, 2, cfg.Consumer.MinConcurrency)
		assert.Equal(t, 8, cfg.Consumer.MaxConcurrency)
	})

	t.Run("max concurrency never below min", func(t *testing.T) {
		t.Setenv("DB_NAME", "hris")
		t.Setenv("KAFKA_BROKERS", "localhost:9092")
		t.Setenv("CONSUMER_MIN_CONCURRENCY", "4")
		t.Setenv("CONSUMER_MAX_CONCURRENCY", "1")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 4, cfg.Consumer.MaxConcurrency)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Setenv("DB_NAME", "unset")
		t.Setenv("KAFKA_BROKERS", "unset")
		require.NoError(t, os.Unsetenv("DB_NAME"))
		require.NoError(t, os.Unsetenv("KAFKA_BROKERS"))

		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestRetryPolicy_OrDefault(t *testing.T) {
	p := config.RetryPolicy{MaxAttempts: 2}.OrDefault(config.DefaultPublishRetry())

	assert.Equal(t, 2, p.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, p.InitialInterval)
	assert.Equal(t, float64(10), p.Multiplier)
	assert.Equal(t, 10*time.Second, p.MaxInterval)
}
