package matcher

import (
	"github.com/IvanArsenev/report-generator/internal/domain/ledger"
)

// Config holds matcher configuration.
type Config struct {
	// Tolerance is the maximum absolute difference, in whole rubles,
	// between a transfer amount and the expected amount for the transfer
	// to still count as a payment. Zero means exact-amount matching only.
	Tolerance int64
}

// DefaultConfig returns the tolerance the rent reports have historically
// been generated with.
func DefaultConfig() Config {
	return Config{Tolerance: 10}
}

// Match is a single transaction matched against an obligation.
type Match struct {
	Transaction ledger.Transaction
	// Difference is transaction amount minus expected amount. Zero means
	// an exact payment.
	Difference int64
}

// Exact reports whether the match is an exact payment.
func (m Match) Exact() bool {
	return m.Difference == 0
}
