// Package report assembles matcher and accrual output into the rows of the
// final payment report.
package report

import (
	"time"

	"github.com/IvanArsenev/report-generator/internal/domain/matcher"
	"github.com/IvanArsenev/report-generator/internal/domain/rent"
)

// Kind classifies a report row.
type Kind int

const (
	// NoPayment means no transaction matched the obligation at all.
	NoPayment Kind = iota
	// ExactMatch is a payment of exactly the expected amount.
	ExactMatch
	// ApproxMatch is a payment within tolerance of the expected amount.
	ApproxMatch
)

// String returns the stable label used in storage, CSV output and the API.
func (k Kind) String() string {
	switch k {
	case ExactMatch:
		return "paid"
	case ApproxMatch:
		return "similar_payment"
	default:
		return "no_payment"
	}
}

// Record is one row of the report. Transaction fields are nil on NoPayment
// rows. Debt is an obligation-level aggregate: every record produced for
// the same obligation carries the same figure.
type Record struct {
	Unit            string
	Start           time.Time
	Kind            Kind
	TransactionDate *time.Time
	Description     string
	Amount          *int64
	Expected        int64
	Difference      *int64
	Debt            int64
}

// BuildRecords returns the report rows for a single obligation. With no
// matches it emits exactly one NoPayment row with blank transaction fields;
// otherwise one row per match, in the order the matcher produced them
// (exact before approximate).
func BuildRecords(ob rent.Obligation, matches []matcher.Match, debt int64) []Record {
	if len(matches) == 0 {
		return []Record{{
			Unit:     ob.Unit,
			Start:    ob.Start,
			Kind:     NoPayment,
			Expected: ob.Expected,
			Debt:     debt,
		}}
	}

	records := make([]Record, 0, len(matches))
	for _, m := range matches {
		tx := m.Transaction
		date := tx.Date
		amount := tx.Amount
		diff := m.Difference
		kind := ApproxMatch
		if m.Exact() {
			kind = ExactMatch
		}
		records = append(records, Record{
			Unit:            ob.Unit,
			Start:           ob.Start,
			Kind:            kind,
			TransactionDate: &date,
			Description:     tx.Description,
			Amount:          &amount,
			Expected:        ob.Expected,
			Difference:      &diff,
			Debt:            debt,
		})
	}
	return records
}
