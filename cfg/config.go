package cfg

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds the postgres connection string used by both lib/pq and migrate.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

type SupplierConfig struct {
	Name    string
	BaseURL string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type ObservabilityConfig struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
}

type Config struct {
	AppEnv          string
	AppPort         string
	Redis           RedisConfig
	Postgres        PostgresConfig
	Suppliers       []SupplierConfig
	SupplierLimit   RateLimitConfig
	CacheTTLMinutes int
	SnowflakeNode   int64
	Observability   ObservabilityConfig
}

func Load() (*Config, error) {
	var errs []error

	// .env is optional in containers where the environment is injected directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := getEnv("APP_PORT", "8080")

	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := getEnv("REDIS_PASSWORD", "")

	pgHost := mustEnv("POSTGRES_HOST", &errs)
	pgPort := getEnv("POSTGRES_PORT", "5432")
	pgUser := mustEnv("POSTGRES_USER", &errs)
	pgPassword := mustEnv("POSTGRES_PASSWORD", &errs)
	pgDBName := mustEnv("POSTGRES_DB", &errs)
	pgSSLMode := getEnv("POSTGRES_SSLMODE", "disable")

	airIQBaseURL := mustEnv("AIRIQ_BASE_URL", &errs)
	tboBaseURL := mustEnv("TBO_BASE_URL", &errs)
	tripJackBaseURL := mustEnv("TRIPJACK_BASE_URL", &errs)

	cacheTTLMinutes := mustInt("CACHE_TTL_MINUTES", getEnv("CACHE_TTL_MINUTES", "15"), &errs)
	snowflakeNode := mustInt("SNOWFLAKE_NODE", getEnv("SNOWFLAKE_NODE", "1"), &errs)
	supplierBurst := mustInt("SUPPLIER_BURST", getEnv("SUPPLIER_BURST", "10"), &errs)

	supplierRPS, err := strconv.ParseFloat(getEnv("SUPPLIER_RPS", "5"), 64)
	if err != nil {
		errs = append(errs, errors.New("conversion failed env: SUPPLIER_RPS"))
	}

	otelServiceName := getEnv("OTEL_SERVICE_NAME", "faresearch")
	otelEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		Redis: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		Postgres: PostgresConfig{
			Host:     pgHost,
			Port:     pgPort,
			User:     pgUser,
			Password: pgPassword,
			DBName:   pgDBName,
			SSLMode:  pgSSLMode,
		},
		Suppliers: []SupplierConfig{
			{Name: "airiq", BaseURL: airIQBaseURL},
			{Name: "tbo", BaseURL: tboBaseURL},
			{Name: "tripjack", BaseURL: tripJackBaseURL},
		},
		SupplierLimit: RateLimitConfig{
			RequestsPerSecond: supplierRPS,
			Burst:             supplierBurst,
		},
		CacheTTLMinutes: cacheTTLMinutes,
		SnowflakeNode:   int64(snowflakeNode),
		Observability: ObservabilityConfig{
			ServiceName:  otelServiceName,
			Environment:  appEnv,
			OTLPEndpoint: otelEndpoint,
		},
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustInt(key, value string, errs *[]error) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
	}
	return n
}
