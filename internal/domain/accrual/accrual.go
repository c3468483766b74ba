// Package accrual computes how much an obligation has accrued since its
// start date and how much of that remains unpaid.
package accrual

import (
	"time"

	"github.com/IvanArsenev/report-generator/internal/domain/matcher"
	"github.com/IvanArsenev/report-generator/internal/domain/rent"
)

// ElapsedPeriods returns the number of billable months between start and
// asOf: whole calendar months elapsed, minus one (a period is not billable
// until it has fully passed).
//
// The result is deliberately not clamped at zero. A start date in the
// future, or within the current month, yields a negative period count and
// therefore a negative debt. Changing the arithmetic would silently alter
// every debt figure in existing reports, so it is preserved as is. Note
// that the minus one undercounts by one period relative to calendar months.
func ElapsedPeriods(start, asOf time.Time) int64 {
	years := asOf.Year() - start.Year()
	months := int(asOf.Month()) - int(start.Month())
	return int64(years*12 + months - 1)
}

// Debt returns the outstanding balance for one obligation as of the given
// date: expected amount over the elapsed periods, minus everything already
// matched as paid. With no matches the subtracted sum is zero and the full
// accrued amount is owed.
func Debt(ob rent.Obligation, matches []matcher.Match, asOf time.Time) int64 {
	debt := ob.Expected * ElapsedPeriods(ob.Start, asOf)
	for _, m := range matches {
		debt -= m.Transaction.Amount
	}
	return debt
}
