package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLedgerCSV(t *testing.T) {
	input := strings.Join([]string{
		`Выписка по счету,,`,
		`01.03.2024 01.03.2024,Перевод,"15 000,00 р."`,
		`Итого,,100 000`,
	}, "\n")

	rows, err := ReadLedgerCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, LedgerRow{DateRange: "01.03.2024 01.03.2024", Description: "Перевод", Amount: "15 000,00 р."}, rows[1])
}

func TestReadLedgerCSV_ShortRowsArePadded(t *testing.T) {
	input := "Остаток на счете\n01.01.2024 01.01.2024,Перевод\n"

	rows, err := ReadLedgerCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, LedgerRow{DateRange: "Остаток на счете"}, rows[0])
	assert.Equal(t, LedgerRow{DateRange: "01.01.2024 01.01.2024", Description: "Перевод"}, rows[1])
}

func TestReadLedgerCSV_Empty(t *testing.T) {
	rows, err := ReadLedgerCSV(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRentCSV(t *testing.T) {
	input := "G1,15000,01.01.2024\nG2,9000,2024-02-15\n"

	rows, err := ReadRentCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, RentRow{Unit: "G1", Amount: "15000", Start: "01.01.2024"}, rows[0])
	assert.Equal(t, RentRow{Unit: "G2", Amount: "9000", Start: "2024-02-15"}, rows[1])
}

func TestReadRentCSV_SkipsHeaderLine(t *testing.T) {
	input := "Гараж,Сумма,Дата\nG1,15000,01.01.2024\n"

	rows, err := ReadRentCSV(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "G1", rows[0].Unit)
}

func TestReadRentCSV_ShortRowIsFatal(t *testing.T) {
	input := "G1,15000,01.01.2024\nG2,9000\n"

	rows, err := ReadRentCSV(strings.NewReader(input))

	require.Error(t, err)
	assert.Nil(t, rows)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadRentCSV_TrimsWhitespace(t *testing.T) {
	input := " G1 , 15000 , 01.01.2024 \n"

	rows, err := ReadRentCSV(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, RentRow{Unit: "G1", Amount: "15000", Start: "01.01.2024"}, rows[0])
}
