package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func int64Ptr(v int64) *int64 { return &v }

func sampleRun(id string, createdAt time.Time) *ReportRun {
	return &ReportRun{
		ID:               id,
		CreatedAt:        createdAt,
		AsOf:             createdAt,
		Tolerance:        10,
		ObligationCount:  2,
		TransactionCount: 5,
		RowCount:         2,
		Status:           RunStatusSuccess,
		ReportPath:       "reports/rent_report_test.csv",
	}
}

func TestStorage_SaveAndGetRun(t *testing.T) {
	store := newTestStorage(t)
	createdAt := time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)
	txDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	rows := []ReportRow{
		{
			RunID:           "run-1",
			Position:        0,
			Unit:            "G1",
			Kind:            "paid",
			TransactionDate: &txDate,
			Description:     "Перевод",
			Amount:          int64Ptr(15000),
			Expected:        15000,
			Difference:      int64Ptr(0),
			Debt:            15000,
		},
		{
			RunID:    "run-1",
			Position: 1,
			Unit:     "G2",
			Kind:     "no_payment",
			Expected: 9000,
			Debt:     18000,
		},
	}

	require.NoError(t, store.SaveRun(sampleRun("run-1", createdAt), rows))

	run, err := store.GetRun("run-1")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, int64(10), run.Tolerance)
	assert.Equal(t, 2, run.RowCount)
	assert.Equal(t, RunStatusSuccess, run.Status)
	assert.True(t, run.CreatedAt.Equal(createdAt))

	got, err := store.GetRunRows("run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "paid", got[0].Kind)
	require.NotNil(t, got[0].TransactionDate)
	assert.True(t, got[0].TransactionDate.Equal(txDate))
	require.NotNil(t, got[0].Amount)
	assert.Equal(t, int64(15000), *got[0].Amount)

	assert.Equal(t, "no_payment", got[1].Kind)
	assert.Nil(t, got[1].TransactionDate)
	assert.Nil(t, got[1].Amount)
	assert.Nil(t, got[1].Difference)
}

func TestStorage_GetRun_NotFound(t *testing.T) {
	store := newTestStorage(t)

	run, err := store.GetRun("missing")

	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestStorage_ListRuns_NewestFirst(t *testing.T) {
	store := newTestStorage(t)
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.SaveRun(sampleRun(id, base.Add(time.Duration(i)*time.Hour)), nil))
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
}

func TestStorage_SaveFailedRun(t *testing.T) {
	store := newTestStorage(t)
	run := &ReportRun{
		ID:           "failed-1",
		CreatedAt:    time.Now().UTC(),
		AsOf:         time.Now().UTC(),
		Tolerance:    0,
		Status:       RunStatusFailed,
		ErrorMessage: "rent row 2: bad amount",
	}

	require.NoError(t, store.SaveRun(run, nil))

	got, err := store.GetRun("failed-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Equal(t, "rent row 2: bad amount", got.ErrorMessage)

	rows, err := store.GetRunRows("failed-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStorage_GetStats(t *testing.T) {
	store := newTestStorage(t)
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(sampleRun("ok-1", base), nil))
	require.NoError(t, store.SaveRun(&ReportRun{
		ID: "bad-1", CreatedAt: base.Add(time.Hour), AsOf: base,
		Status: RunStatusFailed, ErrorMessage: "boom",
	}, nil))

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRuns)
	assert.Equal(t, 1, stats.SuccessCount)
	assert.Equal(t, 1, stats.FailedCount)
	assert.Equal(t, 2, stats.TotalRows)
	require.NotNil(t, stats.LastRunAt)
	assert.True(t, stats.LastRunAt.Equal(base.Add(time.Hour)))
}

func TestStorage_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveRun(sampleRun("run-1", time.Now().UTC()), nil))
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations or lose data.
	store, err = NewStorage(path)
	require.NoError(t, err)
	defer store.Close()

	run, err := store.GetRun("run-1")
	require.NoError(t, err)
	assert.NotNil(t, run)
}
