// Package tabular reads the raw tabular sources the reconciliation runs on.
//
// The core never touches files or cares about file formats; it consumes the
// row shapes defined here. CSV is the only format currently implemented;
// bank statement exports and the rent list both arrive as CSV.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LedgerRow is one raw row of a bank statement export. Most rows are not
// transfers at all (section headers, balances, totals); the normalizer
// decides which ones are.
type LedgerRow struct {
	DateRange   string // first column, a "DD.MM.YYYY DD.MM.YYYY" pair on transfer rows
	Description string
	Amount      string // free-form currency text, e.g. "15 000,00 р."
}

// RentRow is one raw row of the rent list: unit identifier, expected monthly
// amount and the date the obligation started.
type RentRow struct {
	Unit   string
	Amount string
	Start  string
}

// ReadLedgerCSV reads a bank statement CSV. Rows with fewer than three
// columns are padded with empty cells rather than rejected: the statement is
// expected to contain all kinds of noise, and the normalizer filters it out
// downstream.
func ReadLedgerCSV(r io.Reader) ([]LedgerRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []LedgerRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read ledger csv: %w", err)
		}
		rows = append(rows, LedgerRow{
			DateRange:   cell(record, 0),
			Description: cell(record, 1),
			Amount:      cell(record, 2),
		})
	}
	return rows, nil
}

// ReadRentCSV reads the rent list CSV. Unlike the ledger, this source is
// strict: every row must have three columns. A single header line is
// tolerated and skipped when its amount cell is clearly not a number.
func ReadRentCSV(r io.Reader) ([]RentRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []RentRow
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rent csv: %w", err)
		}
		line++
		if len(record) < 3 {
			return nil, fmt.Errorf("rent csv line %d: expected 3 columns, got %d", line, len(record))
		}
		row := RentRow{
			Unit:   strings.TrimSpace(record[0]),
			Amount: strings.TrimSpace(record[1]),
			Start:  strings.TrimSpace(record[2]),
		}
		if line == 1 && looksLikeHeader(row.Amount) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadLedgerFile and ReadRentFile are the file-path conveniences the
// entrypoints use.

func ReadLedgerFile(path string) ([]LedgerRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank file: %w", err)
	}
	defer f.Close()
	return ReadLedgerCSV(f)
}

func ReadRentFile(path string) ([]RentRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rent file: %w", err)
	}
	defer f.Close()
	return ReadRentCSV(f)
}

func cell(record []string, i int) string {
	if i < len(record) {
		return strings.TrimSpace(record[i])
	}
	return ""
}

func looksLikeHeader(amount string) bool {
	if amount == "" {
		return true
	}
	for _, r := range amount {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	return true
}
