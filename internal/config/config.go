package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	ListenAddr        string `envconfig:"LISTEN_ADDR" default:":8080"`
	BasePath          string `envconfig:"BASE_PATH"`
	StorageBackend    string `envconfig:"STORAGE_BACKEND" default:"sqlite"`
	DBPath            string `envconfig:"DB_PATH" default:"/data/nichevendor.db"`
	DataDir           string `envconfig:"DATA_DIR" default:"/data/store"`
	RedisURL          string `envconfig:"REDIS_URL"`
	RedisPrefix       string `envconfig:"REDIS_PREFIX" default:"nichevendor:"`
	LogLevel          string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile           string `envconfig:"LOG_FILE"`
	LowStockThreshold int    `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`
	Currency          string `envconfig:"CURRENCY" default:"USD"`
	BackupSchedule    string `envconfig:"BACKUP_SCHEDULE"`
	BackupDir         string `envconfig:"BACKUP_DIR" default:"/data/backups"`
	BackupKeep        int    `envconfig:"BACKUP_KEEP" default:"7"`
}

// Load reads the environment, after merging in envFile when it exists.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendSQLite, BackendFile, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when STORAGE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD cannot be negative")
	}
	if c.BackupKeep < 1 {
		return errors.New("BACKUP_KEEP must be at least 1")
	}
	return nil
}
