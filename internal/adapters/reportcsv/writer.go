// Package reportcsv writes assembled reports to CSV files.
package reportcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/IvanArsenev/report-generator/internal/domain/report"
)

// header is the fixed column set of the report file.
var header = []string{
	"unit", "status", "date", "description", "amount",
	"expected", "difference", "debt",
}

const (
	dateLayout     = "2006-01-02"
	filenameLayout = "2006-01-02_15-04-05"
)

// Writer writes timestamped report files into a directory, creating it on
// first use.
type Writer struct {
	Dir string
}

// Write writes the report rows to rent_report_<timestamp>.csv under the
// configured directory and returns the file path.
func (w *Writer) Write(rows []report.Record, asOf time.Time) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	path := filepath.Join(w.Dir, fmt.Sprintf("rent_report_%s.csv", asOf.Format(filenameLayout)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}

	if err := WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCSV writes the report rows as CSV. Transaction fields of no-payment
// rows come out as blank cells.
func WriteCSV(w io.Writer, rows []report.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.Unit,
			r.Kind.String(),
			formatDate(r.TransactionDate),
			r.Description,
			formatAmount(r.Amount),
			strconv.FormatInt(r.Expected, 10),
			formatAmount(r.Difference),
			strconv.FormatInt(r.Debt, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatAmount(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
