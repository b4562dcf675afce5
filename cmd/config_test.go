package cmd

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	config, err := configFromEnv(envOf(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, StoragePostgres, config.StorageDriver)
	assert.Equal(t, LockMemory, config.LockDriver)
	assert.Equal(t, 30*time.Second, config.LockTTL)
	assert.Equal(t, []string{"localhost:9092"}, config.KafkaBrokers)
	assert.Equal(t, "workshop.order-events", config.KafkaOrderEventsTopic)
	assert.Equal(t, 100, config.OutboxBatchSize)
	assert.Equal(t, slog.LevelInfo, config.LogLevel)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	config, err := configFromEnv(envOf(map[string]string{
		"STORAGE_DRIVER":    "memory",
		"LOCK_DRIVER":       "redis",
		"REDIS_ADDR":        "redis:6379",
		"LOCK_TTL_SECONDS":  "5",
		"KAFKA_BROKERS":     "kafka-1:9092, kafka-2:9092,",
		"OUTBOX_BATCH_SIZE": "10",
		"LOG_LEVEL":         "debug",
		"DB_HOST":           "db",
		"DB_PASSWORD":       "secret",
	}))

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, config.StorageDriver)
	assert.Equal(t, LockRedis, config.LockDriver)
	assert.Equal(t, 5*time.Second, config.LockTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.KafkaBrokers)
	assert.Equal(t, 10, config.OutboxBatchSize)
	assert.Equal(t, slog.LevelDebug, config.LogLevel)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=workshop sslmode=disable", config.DSN())
}

func TestConfigFromEnv_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown storage driver", env: map[string]string{"STORAGE_DRIVER": "mysql"}},
		{name: "unknown lock driver", env: map[string]string{"LOCK_DRIVER": "etcd"}},
		{name: "non numeric ttl", env: map[string]string{"LOCK_TTL_SECONDS": "soon"}},
		{name: "zero ttl", env: map[string]string{"LOCK_TTL_SECONDS": "0"}},
		{name: "negative batch", env: map[string]string{"OUTBOX_BATCH_SIZE": "-1"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "blank brokers", env: map[string]string{"KAFKA_BROKERS": " , "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := configFromEnv(envOf(tt.env))
			assert.Error(t, err)
		})
	}
}
