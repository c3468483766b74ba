package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanArsenev/report-generator/internal/domain/ledger"
	"github.com/IvanArsenev/report-generator/internal/domain/matcher"
	"github.com/IvanArsenev/report-generator/internal/domain/rent"
)

var testObligation = rent.Obligation{
	Unit:     "G1",
	Expected: 15000,
	Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
}

func TestBuildRecords_NoMatches(t *testing.T) {
	records := BuildRecords(testObligation, nil, 30000)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, NoPayment, rec.Kind)
	assert.Equal(t, "G1", rec.Unit)
	assert.Equal(t, int64(15000), rec.Expected)
	assert.Equal(t, int64(30000), rec.Debt)
	assert.Nil(t, rec.TransactionDate)
	assert.Nil(t, rec.Amount)
	assert.Nil(t, rec.Difference)
	assert.Empty(t, rec.Description)
}

func TestBuildRecords_OneRecordPerMatch(t *testing.T) {
	txDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	matches := []matcher.Match{
		{Transaction: ledger.Transaction{Date: txDate, Description: "Перевод", Amount: 15000}},
		{Transaction: ledger.Transaction{Date: txDate, Description: "похожий", Amount: 15005}, Difference: 5},
	}

	records := BuildRecords(testObligation, matches, 15000)

	require.Len(t, records, 2)

	assert.Equal(t, ExactMatch, records[0].Kind)
	require.NotNil(t, records[0].Difference)
	assert.Equal(t, int64(0), *records[0].Difference)
	require.NotNil(t, records[0].Amount)
	assert.Equal(t, int64(15000), *records[0].Amount)

	assert.Equal(t, ApproxMatch, records[1].Kind)
	require.NotNil(t, records[1].Difference)
	assert.Equal(t, int64(5), *records[1].Difference)

	// Debt is an obligation-level aggregate: identical on every record.
	assert.Equal(t, records[0].Debt, records[1].Debt)
}

func TestBuildRecords_PointerFieldsAreIndependent(t *testing.T) {
	matches := []matcher.Match{
		{Transaction: ledger.Transaction{Amount: 15000}},
		{Transaction: ledger.Transaction{Amount: 15003}, Difference: 3},
	}

	records := BuildRecords(testObligation, matches, 0)

	require.Len(t, records, 2)
	assert.NotSame(t, records[0].Amount, records[1].Amount)
	assert.Equal(t, int64(15000), *records[0].Amount)
	assert.Equal(t, int64(15003), *records[1].Amount)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "paid", ExactMatch.String())
	assert.Equal(t, "similar_payment", ApproxMatch.String())
	assert.Equal(t, "no_payment", NoPayment.String())
}
