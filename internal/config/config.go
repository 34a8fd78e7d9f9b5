package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"room-matching-service/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process settings read from the environment.
type Config struct {
	Port             string
	DatabaseURL      string
	RedisAddr        string
	CacheTTL         time.Duration
	DefaultDirection domain.Direction
	DefaultStrategy  domain.Strategy
	SeedPath         string
	BatchConcurrency int
	DBMaxConns       int
}

// LoadDotEnv reads .env from the working directory into the process
// environment. Variables already set are kept. A missing file is not an
// error; loaded reports whether one was read.
func LoadDotEnv() (loaded bool, err error) {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load .env: %w", err)
	}
	return true, nil
}

// Get returns the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads all settings. Invalid values are logged and replaced by defaults.
func Load() Config {
	cfg := Config{
		Port:             Get("PORT", "8080"),
		DatabaseURL:      Get("DATABASE_URL", ""),
		RedisAddr:        Get("REDIS_ADDR", ""),
		CacheTTL:         getDuration("CACHE_TTL", time.Hour),
		SeedPath:         Get("SEED_PATH", "data/rankings.csv"),
		BatchConcurrency: getInt("BATCH_CONCURRENCY", 4),
		DBMaxConns:       getInt("DB_MAX_CONNS", 10),
	}

	dir, err := domain.ParseDirection(Get("DEFAULT_DIRECTION", "min"))
	if err != nil {
		log.Printf("config: invalid DEFAULT_DIRECTION, using minimize: %v", err)
	}
	cfg.DefaultDirection = dir

	strategy, err := domain.ParseStrategy(Get("DEFAULT_STRATEGY", string(domain.StrategyHungarian)))
	if err != nil {
		log.Printf("config: invalid DEFAULT_STRATEGY, using hungarian: %v", err)
	}
	cfg.DefaultStrategy = strategy

	return cfg
}

func getInt(key string, fallback int) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Printf("config: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
