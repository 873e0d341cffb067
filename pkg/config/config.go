// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Quotes QuotesConfig
	Limits LimitsConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// QuotesConfig drives the quote simulator: tick intervals and the maximum
// percentage drift applied per tick.
type QuotesConfig struct {
	CryptoInterval time.Duration
	FiatInterval   time.Duration
	CryptoDriftPct float64
	FiatDriftPct   float64
	HistoryLength  int
	AutoRefresh    bool
}

type LimitsConfig struct {
	RequestsPerMinute int
	BodyLimitBytes    int64
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Redis: RedisConfig{
			URL:      normalizeRedisURL(getEnv("REDIS_URL", "localhost:6379")),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Quotes: QuotesConfig{
			CryptoInterval: getDurationEnv("QUOTES_CRYPTO_INTERVAL", 5*time.Second),
			FiatInterval:   getDurationEnv("QUOTES_FIAT_INTERVAL", 8*time.Second),
			CryptoDriftPct: getFloatEnv("QUOTES_CRYPTO_DRIFT_PCT", 2.5),
			FiatDriftPct:   getFloatEnv("QUOTES_FIAT_DRIFT_PCT", 0.25),
			HistoryLength:  getIntEnv("QUOTES_HISTORY_LENGTH", 10),
			AutoRefresh:    getBoolEnv("QUOTES_AUTO_REFRESH", true),
		},
		Limits: LimitsConfig{
			RequestsPerMinute: getIntEnv("RATE_LIMIT_PER_MINUTE", 150),
			BodyLimitBytes:    int64(getIntEnv("BODY_LIMIT_BYTES", 1<<20)),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func normalizeRedisURL(url string) string {
	// Strip redis:// or redis+tls:// scheme if present
	if strings.HasPrefix(url, "redis+tls://") {
		return url[len("redis+tls://"):]
	}
	if strings.HasPrefix(url, "redis://") {
		return url[len("redis://"):]
	}
	return url
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
