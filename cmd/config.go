package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	LockMemory = "memory"
	LockRedis  = "redis"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StorageDriver string
	LockDriver    string
	RedisAddr     string
	LockTTL       time.Duration

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	OutboxRelaySchedule string
	OutboxBatchSize     int

	LogLevel slog.Level
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	ttlSeconds, err := strconv.Atoi(get("LOCK_TTL_SECONDS", "30"))
	if err != nil {
		return Config{}, fmt.Errorf("LOCK_TTL_SECONDS: %w", err)
	}
	batchSize, err := strconv.Atoi(get("OUTBOX_BATCH_SIZE", "100"))
	if err != nil {
		return Config{}, fmt.Errorf("OUTBOX_BATCH_SIZE: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(get("LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	config := Config{
		HTTPPort:              get("HTTP_PORT", "8080"),
		DBHost:                get("DB_HOST", "localhost"),
		DBPort:                get("DB_PORT", "5432"),
		DBUser:                get("DB_USER", "postgres"),
		DBPassword:            getenv("DB_PASSWORD"),
		DBName:                get("DB_NAME", "workshop"),
		DBSslMode:             get("DB_SSLMODE", "disable"),
		StorageDriver:         get("STORAGE_DRIVER", StoragePostgres),
		LockDriver:            get("LOCK_DRIVER", LockMemory),
		RedisAddr:             get("REDIS_ADDR", "localhost:6379"),
		LockTTL:               time.Duration(ttlSeconds) * time.Second,
		KafkaBrokers:          splitList(get("KAFKA_BROKERS", "localhost:9092")),
		KafkaOrderEventsTopic: get("KAFKA_ORDER_EVENTS_TOPIC", "workshop.order-events"),
		OutboxRelaySchedule:   get("OUTBOX_RELAY_SCHEDULE", "*/5 * * * * *"),
		OutboxBatchSize:       batchSize,
		LogLevel:              level,
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.LockDriver {
	case LockMemory, LockRedis:
	default:
		return fmt.Errorf("unknown LOCK_DRIVER %q", c.LockDriver)
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL_SECONDS must be positive")
	}
	if c.OutboxBatchSize <= 0 {
		return fmt.Errorf("OUTBOX_BATCH_SIZE must be positive")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	return nil
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
