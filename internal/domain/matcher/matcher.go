// Package matcher matches normalized bank transactions to rent obligations.
//
// Matching is by amount only, within a configured tolerance window. Every
// transaction inside the window is retained; there is no best-match
// selection, and ambiguity is surfaced to the report consumer rather than
// resolved here. Transactions are never consumed: the same transfer may
// match more than one obligation when expected amounts are close.
package matcher

import (
	"github.com/IvanArsenev/report-generator/internal/domain/ledger"
	"github.com/IvanArsenev/report-generator/internal/domain/rent"
)

// Matcher finds the transactions that can count as payments for an
// obligation.
type Matcher struct {
	config Config
}

// NewMatcher creates a matcher with the given config.
func NewMatcher(config Config) *Matcher {
	return &Matcher{config: config}
}

// Tolerance returns the configured amount tolerance.
func (m *Matcher) Tolerance() int64 {
	return m.config.Tolerance
}

// FindMatches returns every transaction whose amount lies within tolerance
// of the obligation's expected amount. Exact payments come before
// approximate ones; within each class, ledger order is preserved. An empty
// result means "no payment", which is a legitimate business state, not an
// error. Inputs are not mutated.
func (m *Matcher) FindMatches(ob rent.Obligation, txs []ledger.Transaction) []Match {
	var exact, approx []Match
	for _, tx := range txs {
		diff := tx.Amount - ob.Expected
		if diff < -m.config.Tolerance || diff > m.config.Tolerance {
			continue
		}
		match := Match{Transaction: tx, Difference: diff}
		if match.Exact() {
			exact = append(exact, match)
		} else {
			approx = append(approx, match)
		}
	}
	if len(approx) == 0 {
		return exact
	}
	return append(exact, approx...)
}
