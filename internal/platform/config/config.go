package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Event publishers.
const (
	PublisherLog   = "log"
	PublisherKafka = "kafka"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	DatabaseURL    string
	StorageDriver  string
	RunMigrations  bool
	MigrationsPath string

	JWTSecret          string
	CORSAllowedOrigins []string
	RateLimit          string

	// Exchange rate provider gateway
	ExchangeRateProvider     string
	ExchangeRateAPIKey       string
	ExchangeRateAPIBaseURL   string
	ProviderTimeout          time.Duration
	ProviderMaxRetries       uint64
	ProviderBreakerFailures  uint32
	ProviderBreakerCooldown  time.Duration
	ExchangeRateSingleActive bool

	// Events
	EventPublisher   string
	KafkaBrokers     []string
	KafkaTopicPrefix string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("EXCHANGE_RATE_PROVIDER", "")
	v.SetDefault("EXCHANGE_RATE_API_KEY", "")
	v.SetDefault("EXCHANGE_RATE_API_BASE_URL", "")
	v.SetDefault("EXCHANGE_RATE_PROVIDER_TIMEOUT", "5s")
	v.SetDefault("EXCHANGE_RATE_PROVIDER_MAX_RETRIES", 2)
	v.SetDefault("EXCHANGE_RATE_BREAKER_FAILURES", 5)
	v.SetDefault("EXCHANGE_RATE_BREAKER_COOLDOWN", "30s")
	v.SetDefault("EXCHANGE_RATE_SINGLE_ACTIVE", false)
	v.SetDefault("EVENT_PUBLISHER", PublisherLog)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC_PREFIX", "settlement.")

	v.AutomaticEnv()

	cfg := &Config{
		Port:                     v.GetString("PORT"),
		IsProduction:             v.GetBool("IS_PRODUCTION"),
		LogLevel:                 strings.ToLower(v.GetString("LOG_LEVEL")),
		DatabaseURL:              v.GetString("PGSQL_URL"),
		StorageDriver:            strings.ToLower(v.GetString("STORAGE_DRIVER")),
		RunMigrations:            v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:           v.GetString("MIGRATIONS_PATH"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		CORSAllowedOrigins:       splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:                v.GetString("RATE_LIMIT"),
		ExchangeRateProvider:     strings.ToLower(strings.TrimSpace(v.GetString("EXCHANGE_RATE_PROVIDER"))),
		ExchangeRateAPIKey:       v.GetString("EXCHANGE_RATE_API_KEY"),
		ExchangeRateAPIBaseURL:   v.GetString("EXCHANGE_RATE_API_BASE_URL"),
		ProviderMaxRetries:       uint64(v.GetInt("EXCHANGE_RATE_PROVIDER_MAX_RETRIES")),
		ProviderBreakerFailures:  uint32(v.GetInt("EXCHANGE_RATE_BREAKER_FAILURES")),
		ExchangeRateSingleActive: v.GetBool("EXCHANGE_RATE_SINGLE_ACTIVE"),
		EventPublisher:           strings.ToLower(v.GetString("EVENT_PUBLISHER")),
		KafkaBrokers:             splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopicPrefix:         v.GetString("KAFKA_TOPIC_PREFIX"),
	}

	var err error
	if cfg.ProviderTimeout, err = parseDuration(v, "EXCHANGE_RATE_PROVIDER_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ProviderBreakerCooldown, err = parseDuration(v, "EXCHANGE_RATE_BREAKER_COOLDOWN", 30*time.Second); err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	switch cfg.EventPublisher {
	case PublisherLog:
	case PublisherKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("KAFKA_BROKERS must be set when EVENT_PUBLISHER=%s", PublisherKafka)
		}
	default:
		return nil, fmt.Errorf("unknown EVENT_PUBLISHER %q", cfg.EventPublisher)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.ExchangeRateProvider == "" {
		log.Println("Warning: EXCHANGE_RATE_PROVIDER not set. Only stored rates will resolve.")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
