package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

type Config struct {
	Env      string
	Port     int
	LogLevel string

	DBURL                string
	DBMaxConns           int
	DBMaxConnIdleMinutes int

	// postgres | memory
	StorageDriver string

	// redis | postgres | memory
	SessionStore      string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	SessionSecret     string
	SessionTTLMinutes int
	SessionCookie     string

	OTLPEndpoint       string
	OTelSampleRatio    float64
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	LoginRateLimit     int
	// proxies whose X-Forwarded-For is believed; empty means use the socket address
	TrustedProxies []string
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)
	dbURL := buildDBURL()

	return Config{
		Env:      env,
		Port:     port,
		LogLevel: getEnv("LOG_LEVEL", ""),

		DBURL:                dbURL,
		DBMaxConns:           getEnvInt("DB_MAX_CONNS", 5),
		DBMaxConnIdleMinutes: getEnvInt("DB_MAX_CONN_IDLE_MINUTES", 0),

		StorageDriver: getEnv("STORAGE_DRIVER", StoragePostgres),

		SessionStore:      getEnv("SESSION_STORE", SessionStoreRedis),
		RedisAddr:         getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		SessionSecret:     getEnv("SESSION_SECRET", "dev-session-secret-change-me"),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 30),
		SessionCookie:     getEnv("SESSION_COOKIE", "BLOGSESSION"),

		OTLPEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelSampleRatio:    getEnvFloat("OTEL_SAMPLE_RATIO", 1),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		LoginRateLimit:     getEnvInt("LOGIN_RATE_LIMIT", 10),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
	}
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "bloghub")
	pass := getEnv("DB_PASSWORD", "bloghub")
	name := getEnv("DB_NAME", "bloghub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %s=%q is not an int, using %d\n", key, v, fallback)
			return fallback
		}

		return num
	}
	return fallback
}

// clamped to [0,1]
func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %s=%q is not a number, using %g\n", key, v, fallback)
		return fallback
	}
	return math.Min(1, math.Max(0, f))
}

// comma separated, blanks dropped
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
