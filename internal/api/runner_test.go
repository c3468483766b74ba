package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanArsenev/report-generator/internal/infrastructure/config"
	"github.com/IvanArsenev/report-generator/internal/infrastructure/storage"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunner_Reconcile(t *testing.T) {
	bank := writeFixture(t, "bank.csv",
		"Выписка,,\n"+
			`01.03.2024 01.03.2024,Перевод,"15 000,00 р."`+"\n")
	rentList := writeFixture(t, "rent.csv", "G1,15000,01.01.2024\n")

	repo := storage.NewMockRepository()
	cfg := &config.Config{
		BankFile: bank,
		RentFile: rentList,
		Matching: config.MatchingConfig{Tolerance: 10},
	}
	runner := NewRunner(cfg, repo, nil, nil)

	asOf := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	result, err := runner.Reconcile(nil, &asOf)

	require.NoError(t, err)
	assert.Equal(t, 1, result.ObligationCount)
	assert.Equal(t, 1, result.TransactionCount)
	assert.Equal(t, asOf, result.AsOf)
	require.Len(t, result.Report, 1)
	assert.Equal(t, int64(15000), result.Report[0].Debt)

	run, err := repo.GetRun(result.RunID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, int64(10), run.Tolerance)
}

func TestRunner_Reconcile_ToleranceOverride(t *testing.T) {
	bank := writeFixture(t, "bank.csv", `01.03.2024 01.03.2024,Перевод,"15 005,00"`+"\n")
	rentList := writeFixture(t, "rent.csv", "G1,15000,01.01.2024\n")

	cfg := &config.Config{
		BankFile: bank,
		RentFile: rentList,
		Matching: config.MatchingConfig{Tolerance: 0},
	}
	runner := NewRunner(cfg, storage.NewMockRepository(), nil, nil)
	asOf := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	// With the configured zero tolerance the transfer does not match.
	strict, err := runner.Reconcile(nil, &asOf)
	require.NoError(t, err)
	assert.Equal(t, "no_payment", strict.Report[0].Kind.String())

	// Overriding to 10 makes it a similar payment.
	tolerance := int64(10)
	loose, err := runner.Reconcile(&tolerance, &asOf)
	require.NoError(t, err)
	assert.Equal(t, "similar_payment", loose.Report[0].Kind.String())
}
