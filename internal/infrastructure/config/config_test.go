package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
bank_file: data/bank.csv
rent_file: data/rent.csv
reports_dir: out
matching:
  tolerance: 25
storage:
  database_path: test.db
api:
  port: 9090
observability:
  logging:
    level: debug
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "data/bank.csv", cfg.BankFile)
	assert.Equal(t, "data/rent.csv", cfg.RentFile)
	assert.Equal(t, "out", cfg.ReportsDir)
	assert.Equal(t, int64(25), cfg.Matching.Tolerance)
	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_SMTP_PASSWORD", "s3cret")
	path := writeConfig(t, `
email:
  password: ${TEST_SMTP_PASSWORD}
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Email.Password)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
matching:
  tolerance: 0
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "docs/bank_report.csv", cfg.BankFile)
	assert.Equal(t, "reports", cfg.ReportsDir)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, 587, cfg.Email.Port)
}

func TestLoad_RejectsNegativeTolerance(t *testing.T) {
	path := writeConfig(t, `
matching:
  tolerance: -5
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RENT_BANK_FILE", "env_bank.csv")
	t.Setenv("RENT_TOLERANCE", "3")
	t.Setenv("REPORT_EMAIL_TO", "owner@example.com")

	cfg := LoadFromEnv()

	assert.Equal(t, "env_bank.csv", cfg.BankFile)
	assert.Equal(t, int64(3), cfg.Matching.Tolerance)
	assert.Equal(t, "owner@example.com", cfg.Email.To)
	assert.True(t, cfg.Email.Enabled)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg := LoadFromEnv()

	assert.Equal(t, "docs/bank_report.csv", cfg.BankFile)
	assert.Equal(t, int64(10), cfg.Matching.Tolerance)
	assert.False(t, cfg.Email.Enabled)
}
