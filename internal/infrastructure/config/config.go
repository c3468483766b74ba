// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	BankFile      string              `yaml:"bank_file"`
	RentFile      string              `yaml:"rent_file"`
	ReportsDir    string              `yaml:"reports_dir"`
	Matching      MatchingConfig      `yaml:"matching"`
	Storage       StorageConfig       `yaml:"storage"`
	Email         EmailConfig         `yaml:"email"`
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// MatchingConfig holds matcher settings.
type MatchingConfig struct {
	// Tolerance is the maximum amount difference, in whole rubles, still
	// considered a payment for an obligation. Must be non-negative.
	Tolerance int64 `yaml:"tolerance"`
}

// StorageConfig holds database configuration. An empty path disables run
// persistence.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// EmailConfig holds report delivery settings. Delivery only happens when
// Enabled is true and To is set.
type EmailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${SMTP_PASSWORD})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() *Config {
	cfg := &Config{
		BankFile:   getEnv("RENT_BANK_FILE", "docs/bank_report.csv"),
		RentFile:   getEnv("RENT_LIST_FILE", "docs/arenda_list.csv"),
		ReportsDir: getEnv("RENT_REPORTS_DIR", "reports"),
		Matching: MatchingConfig{
			Tolerance: getEnvInt64("RENT_TOLERANCE", 10),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("RENT_DB_PATH", "rent_reports.db"),
		},
		Email: EmailConfig{
			Host:     getEnv("SMTP_HOST", "live.smtp.mailtrap.io"),
			Port:     int(getEnvInt64("SMTP_PORT", 587)),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			To:       os.Getenv("REPORT_EMAIL_TO"),
		},
	}
	cfg.Email.Enabled = cfg.Email.To != ""
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv loads the given config file, falling back to environment
// variables when no path is given or the file does not exist.
func LoadOrEnv(path string, logger *slog.Logger) *Config {
	if path != "" {
		cfg, err := Load(path)
		if err == nil {
			return cfg
		}
		logger.Warn("Failed to load config file, falling back to environment",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
	return LoadFromEnv()
}

func (c *Config) applyDefaults() {
	if c.BankFile == "" {
		c.BankFile = "docs/bank_report.csv"
	}
	if c.RentFile == "" {
		c.RentFile = "docs/arenda_list.csv"
	}
	if c.ReportsDir == "" {
		c.ReportsDir = "reports"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if len(c.API.AllowedOrigins) == 0 {
		c.API.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Email.Port == 0 {
		c.Email.Port = 587
	}
}

func (c *Config) validate() error {
	if c.Matching.Tolerance < 0 {
		return fmt.Errorf("matching.tolerance must be non-negative, got %d", c.Matching.Tolerance)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
