package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Environment       string        `yaml:"environment"`
	DataPath          string        `yaml:"dataPath"`
	StoreBackend      string        `yaml:"storeBackend"`
	SQLitePath        string        `yaml:"sqlitePath"`
	DataEncryptionKey string        `yaml:"dataEncryptionKey"`
	RunSeed           bool          `yaml:"runSeed"`
	SeedAdminUsername string        `yaml:"seedAdminUsername"`
	SeedAdminPassword string        `yaml:"seedAdminPassword"`
	BcryptCost        int           `yaml:"bcryptCost"`
	SessionSecret     string        `yaml:"sessionSecret"`
	SessionTTL        time.Duration `yaml:"sessionTTL"`
	LogLevel          string        `yaml:"logLevel"`
	LogFormat         string        `yaml:"logFormat"`
	MetricsFile       string        `yaml:"metricsFile"`
}

// Load reads a .env file when present, then the process environment, then the
// optional YAML overlay named by CRM_CONFIG_FILE.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := fromEnv()
	if path := getEnv("CRM_CONFIG_FILE", ""); path != "" {
		if err := cfg.overlay(path); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func fromEnv() Config {
	return Config{
		Environment:       getEnv("CRM_ENV", "development"),
		DataPath:          getEnv("CRM_DATA_PATH", "data.json"),
		StoreBackend:      getEnv("CRM_STORE_BACKEND", BackendFile),
		SQLitePath:        getEnv("CRM_SQLITE_PATH", "talentcrm.db"),
		DataEncryptionKey: getEnv("CRM_DATA_ENCRYPTION_KEY", ""),
		RunSeed:           getEnvBool("CRM_RUN_SEED", true),
		SeedAdminUsername: getEnv("CRM_SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("CRM_SEED_ADMIN_PASSWORD", "admin"),
		BcryptCost:        getEnvInt("CRM_BCRYPT_COST", 10),
		SessionSecret:     getEnv("CRM_SESSION_SECRET", ""),
		SessionTTL:        getEnvDuration("CRM_SESSION_TTL", 12*time.Hour),
		LogLevel:          getEnv("CRM_LOG_LEVEL", "info"),
		LogFormat:         getEnv("CRM_LOG_FORMAT", "text"),
		MetricsFile:       getEnv("CRM_METRICS_FILE", ""),
	}
}

// overlay replaces only the keys present in the YAML file.
func (c *Config) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if strings.TrimSpace(c.DataPath) == "" {
			return fmt.Errorf("CRM_DATA_PATH is required for the file backend")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("CRM_SQLITE_PATH is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("CRM_STORE_BACKEND must be %q or %q", BackendFile, BackendSQLite)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("CRM_BCRYPT_COST must be between 4 and 31")
	}
	if c.RunSeed && strings.TrimSpace(c.SeedAdminUsername) == "" {
		return fmt.Errorf("CRM_SEED_ADMIN_USERNAME is required when CRM_RUN_SEED is true")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.SessionSecret) == "" {
			return fmt.Errorf("CRM_SESSION_SECRET must be set in production")
		}
		if c.RunSeed && c.SeedAdminPassword == "admin" {
			return fmt.Errorf("CRM_SEED_ADMIN_PASSWORD must be changed or CRM_RUN_SEED disabled in production")
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("CRM_SESSION_TTL must be positive")
	}
	return nil
}
