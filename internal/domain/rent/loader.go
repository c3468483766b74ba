// Package rent loads the expected-payment obligations the report is built
// against.
//
// The rent list is the strict input: obligation amounts anchor every debt
// figure, so a malformed row aborts the whole run instead of being skipped.
package rent

import (
	"fmt"
	"strconv"
	"time"

	"github.com/IvanArsenev/report-generator/internal/adapters/tabular"
)

// Obligation is a recurring expected payment for one unit. Units need not be
// unique; duplicate rows are treated as independent obligations.
type Obligation struct {
	Unit     string
	Expected int64     // expected monthly amount, whole rubles
	Start    time.Time // midnight UTC, anchors debt accrual
}

// MalformedRowError reports a rent row that cannot be loaded. It is fatal
// for the run: no partial report is ever produced.
type MalformedRowError struct {
	Line   int
	Field  string
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("rent row %d: bad %s: %s", e.Line, e.Field, e.Reason)
}

// startLayouts are the date formats accepted for obligation start dates.
var startLayouts = []string{"02.01.2006", "2006-01-02"}

// Load converts raw rent rows into obligations, preserving source order.
func Load(rows []tabular.RentRow) ([]Obligation, error) {
	obligations := make([]Obligation, 0, len(rows))
	for i, row := range rows {
		line := i + 1
		if row.Unit == "" {
			return nil, &MalformedRowError{Line: line, Field: "unit", Reason: "empty"}
		}
		expected, err := strconv.ParseInt(row.Amount, 10, 64)
		if err != nil {
			return nil, &MalformedRowError{Line: line, Field: "amount", Reason: fmt.Sprintf("%q is not a number", row.Amount)}
		}
		start, err := parseStart(row.Start)
		if err != nil {
			return nil, &MalformedRowError{Line: line, Field: "start date", Reason: fmt.Sprintf("%q is not a date", row.Start)}
		}
		obligations = append(obligations, Obligation{
			Unit:     row.Unit,
			Expected: expected,
			Start:    start,
		})
	}
	return obligations, nil
}

// parseStart normalizes the raw date value to a calendar date with no time
// component.
func parseStart(raw string) (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
