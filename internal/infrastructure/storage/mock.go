package storage

import (
	"sort"
	"sync"
)

// MockRepository is an in-memory Repository for tests.
type MockRepository struct {
	mu   sync.Mutex
	runs map[string]*ReportRun
	rows map[string][]ReportRow

	// SaveErr, when set, is returned by SaveRun.
	SaveErr error
}

var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty in-memory repository.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs: make(map[string]*ReportRun),
		rows: make(map[string][]ReportRow),
	}
}

func (m *MockRepository) SaveRun(run *ReportRun, rows []ReportRow) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *run
	m.runs[run.ID] = &copied
	m.rows[run.ID] = append([]ReportRow(nil), rows...)
	return nil
}

func (m *MockRepository) GetRun(id string) (*ReportRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

func (m *MockRepository) ListRuns(limit int) ([]ReportRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 20
	}
	runs := make([]ReportRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, *run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MockRepository) GetRunRows(runID string) ([]ReportRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReportRow(nil), m.rows[runID]...), nil
}

func (m *MockRepository) GetStats() (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &Stats{}
	for _, run := range m.runs {
		stats.TotalRuns++
		switch run.Status {
		case RunStatusSuccess:
			stats.SuccessCount++
		case RunStatusFailed:
			stats.FailedCount++
		}
		stats.TotalRows += run.RowCount
		if stats.LastRunAt == nil || run.CreatedAt.After(*stats.LastRunAt) {
			t := run.CreatedAt
			stats.LastRunAt = &t
		}
	}
	return stats, nil
}

func (m *MockRepository) Close() error {
	return nil
}
