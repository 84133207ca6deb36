// Package config loads service configuration and builds the shared logger.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the service reads at startup. It is built once
// in main and passed down; nothing else reads the environment.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
	LogFile     string `mapstructure:"LOG_FILE"`

	// StorageDriver is "postgres" (with redis) or "memory".
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`

	TelegramBotToken    string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramAdminChatID int64  `mapstructure:"TELEGRAM_ADMIN_CHAT_ID"`

	CatalogPath string `mapstructure:"CATALOG_PATH"`

	Analysis AnalysisConfig `mapstructure:",squash"`
}

// AnalysisConfig gates and parameterises the remote complaint analysis.
type AnalysisConfig struct {
	Enabled bool          `mapstructure:"ANALYSIS_ENABLED"`
	APIKey  string        `mapstructure:"ANALYSIS_API_KEY"`
	BaseURL string        `mapstructure:"ANALYSIS_BASE_URL"`
	Model   string        `mapstructure:"ANALYSIS_MODEL"`
	Timeout time.Duration `mapstructure:"ANALYSIS_TIMEOUT"`
}

// RemoteReady reports whether the remote path may be attempted.
func (a AnalysisConfig) RemoteReady() bool {
	return a.Enabled && strings.TrimSpace(a.APIKey) != ""
}

var defaults = map[string]any{
	"ENVIRONMENT":            "development",
	"HTTP_PORT":              "8080",
	"CORS_ORIGINS":           "http://localhost:5173",
	"LOG_FILE":               "",
	"STORAGE_DRIVER":         StorageDriverPostgres,
	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "aura",
	"DB_PASSWORD":            "aura",
	"DB_NAME":                "aura",
	"REDIS_ADDR":             "localhost:6379",
	"REDIS_PASSWORD":         "",
	"REDIS_DB":               0,
	"JWT_SECRET":             "",
	"SESSION_TTL":            DefaultSessionTTL,
	"TELEGRAM_BOT_TOKEN":     "",
	"TELEGRAM_ADMIN_CHAT_ID": 0,
	"CATALOG_PATH":           "",
	"ANALYSIS_ENABLED":       false,
	"ANALYSIS_API_KEY":       "",
	"ANALYSIS_BASE_URL":      "",
	"ANALYSIS_MODEL":         DefaultAnalysisModel,
	"ANALYSIS_TIMEOUT":       DefaultAnalysisTimeout,
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	cfg.HTTPPort = strings.TrimPrefix(cfg.HTTPPort, ":")
	if cfg.Analysis.Timeout <= 0 {
		cfg.Analysis.Timeout = DefaultAnalysisTimeout
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if cfg.StorageDriver != StorageDriverPostgres && cfg.StorageDriver != StorageDriverMemory {
		return cfg, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.JWTSecret == "" {
		if cfg.Environment == "production" {
			return cfg, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "aura-dev-secret"
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
