package shared

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	APIBase     string
	APIRPS      int
	MetricsAddr string
	SessionFile string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	Workers     int
	CacheTTL    time.Duration
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		APIBase:     env("SMARTHOTEL_API_BASE", "http://localhost:8080"),
		APIRPS:      atoi("SMARTHOTEL_API_RPS", 5),
		MetricsAddr: env("METRICS_ADDR", ""),
		SessionFile: env("SMARTHOTEL_SESSION_FILE", defaultSessionFile()),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		Workers:     atoi("PREFETCH_WORKERS", 8),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.APIBase == "" {
		log.Warn().Msg("SMARTHOTEL_API_BASE is empty")
	}
	return c
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "smarthotel-session.json"
	}
	return filepath.Join(home, ".smarthotel", "session.json")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
