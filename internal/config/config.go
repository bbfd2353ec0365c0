package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr            string
	RedisAddr           string
	KafkaBrokers        []string
	ServiceName         string
	SessionTTL          time.Duration
	ActivityLogInterval time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:            getenv("HTTP_ADDR", ":8081"),
		RedisAddr:           getenv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers:        splitCSV(getenv("KAFKA_BROKERS", "kafka:9092")),
		ServiceName:         getenv("SERVICE_NAME", "cart-api"),
		SessionTTL:          getdur("SESSION_TTL", 30*time.Minute),
		ActivityLogInterval: getdur("ACTIVITY_LOG_INTERVAL", time.Minute),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
