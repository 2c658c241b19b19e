package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	AppName       string
	Commit        string
	LogLevel      string
	JWTSigningKey string

	Database DatabaseConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Audit    AuditConfig
}

// DatabaseConfig configures the Postgres connection. An empty URL selects the
// in-memory store, which is only suitable for local development.
type DatabaseConfig struct {
	URL             string
	ApplySchema     bool
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// UpstreamConfig points at the registration (mint) and lookup (search) services.
type UpstreamConfig struct {
	MintURL   string
	SearchURL string
	Timeout   time.Duration
}

// RedisConfig configures the reference-list cache. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ListCacheTTL time.Duration
}

// AuditConfig selects the audit sink. With no brokers audit events go to the log.
type AuditConfig struct {
	KafkaBrokers []string
	Topic        string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MAINTAIN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:          addr,
		AppName:       envOr("APP_NAME", "maintain-api"),
		Commit:        envOr("COMMIT", "LOCAL"),
		LogLevel:      envOr("LOG_LEVEL", "INFO"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			ApplySchema:     os.Getenv("DB_APPLY_SCHEMA") == "true",
			MaxOpenConns:    intOr("DB_MAX_OPEN_CONNS", 10),
			ConnMaxLifetime: durationOr("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Upstream: UpstreamConfig{
			MintURL:   envOr("MINT_API_URL", "http://localhost:8081/v1.0/records"),
			SearchURL: envOr("SEARCH_API_URL", "http://localhost:8082"),
			Timeout:   durationOr("UPSTREAM_TIMEOUT", 0),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
			ListCacheTTL: durationOr("PROVISION_CACHE_TTL", 5*time.Minute),
		},
		Audit: AuditConfig{
			KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:        envOr("AUDIT_TOPIC", "maintain.audit"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
