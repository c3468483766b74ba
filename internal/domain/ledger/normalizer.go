// Package ledger normalizes a raw bank statement into transaction records.
//
// Statement exports intermix posted transfers with section headers, running
// balances and totals. A transfer row is recognized by its first cell: the
// bank writes the operation date and the posting date as a pair,
// "DD.MM.YYYY DD.MM.YYYY". Everything else is dropped silently; that is
// normal operation, not an error.
package ledger

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IvanArsenev/report-generator/internal/adapters/tabular"
)

// Transaction is a single normalized bank transfer. Amounts are whole
// rubles; kopecks in the source are truncated, never rounded.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      int64
}

const dateLayout = "02.01.2006"

var transferPattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4} \d{2}\.\d{2}\.\d{4}$`)

// Normalize extracts transactions from raw statement rows. Rows failing the
// date-pair pattern, or whose amount cell cannot be read as money, are
// excluded from the result. Input is not mutated.
func Normalize(rows []tabular.LedgerRow) []Transaction {
	txs := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		if !transferPattern.MatchString(row.DateRange) {
			continue
		}
		// The operation date is the first of the pair.
		date, err := time.Parse(dateLayout, row.DateRange[:len(dateLayout)])
		if err != nil {
			continue
		}
		amount, ok := parseAmount(row.Amount)
		if !ok {
			continue
		}
		txs = append(txs, Transaction{
			Date:        date,
			Description: row.Description,
			Amount:      amount,
		})
	}
	return txs
}

// parseAmount reads free-form currency text like "15 000,00 р." as whole
// rubles. Every character that is not a digit or the decimal comma is
// stripped first; the fractional part after the comma is truncated.
func parseAmount(raw string) (int64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	return d.IntPart(), true
}
