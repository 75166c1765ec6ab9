package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetwise-dev/budgetwise/internal/id"
	"github.com/budgetwise-dev/budgetwise/internal/model"
)

const hdfcStyle = `Txn Date,Narration,Debit Amount
15/01/2025,SWIGGY BANGALORE,450.00
16/01/2025,UBER RIDE,230.50
16/01/2025,"AMAZON PAY, INDIA",1299.00
17/01/2025,SALARY CREDIT JAN,50000.00
`

func readTable(t *testing.T, data string) Table {
	t.Helper()
	table, err := ReadTable(strings.NewReader(data))
	require.NoError(t, err)
	return table
}

func TestDecodeText_UTF8(t *testing.T) {
	text, enc, err := DecodeText([]byte("date,amount\n01/01/2025,₹100\n"))
	require.NoError(t, err)
	assert.Equal(t, "utf-8", enc)
	assert.Contains(t, text, "₹100")
}

func TestDecodeText_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in latin-1 but invalid as a standalone UTF-8 byte.
	text, enc, err := DecodeText([]byte("caf\xe9,100\n"))
	require.NoError(t, err)
	assert.Equal(t, "latin-1", enc)
	assert.Contains(t, text, "café")
}

func TestReadTable_HeadersAndRows(t *testing.T) {
	table := readTable(t, hdfcStyle)
	assert.Equal(t, []string{"Txn Date", "Narration", "Debit Amount"}, table.Headers)
	assert.Len(t, table.Rows, 4)
	assert.Equal(t, "utf-8", table.Encoding)
}

func TestReadTable_StripsBOM(t *testing.T) {
	table := readTable(t, "\uFEFFDate,Amount\n01/01/2025,10\n")
	assert.Equal(t, "Date", table.Headers[0])
}

func TestReadTable_RaggedRows(t *testing.T) {
	table := readTable(t, "Date,Description,Amount\n01/01/2025,coffee\n")
	assert.Equal(t, "", cell(table.Rows[0], 2))
}

func TestResolveColumns_Synonyms(t *testing.T) {
	table := readTable(t, hdfcStyle)
	cols, err := ResolveColumns(table)
	require.NoError(t, err)
	assert.Equal(t, 0, cols.Date)        // "txn date"
	assert.Equal(t, 1, cols.Description) // "narration"
	assert.Equal(t, 2, cols.Amount)      // "debit"
}

func TestResolveColumns_NormalizesHeaderSpacing(t *testing.T) {
	table := readTable(t, "  VALUE   DATE ,Particulars,Withdrawal Amt\n01/01/2025,x,10\n")
	cols, err := ResolveColumns(table)
	require.NoError(t, err)
	assert.Equal(t, 0, cols.Date)
	assert.Equal(t, 1, cols.Description)
	assert.Equal(t, 2, cols.Amount)
}

func TestResolveColumns_InferenceFromCells(t *testing.T) {
	table := readTable(t, "col_a,col_b,col_c\n15/01/2025,shop,410.00\n16/01/2025,cafe,88.50\n")
	cols, err := ResolveColumns(table)
	require.NoError(t, err)
	assert.Equal(t, 0, cols.Date)
	assert.Equal(t, 2, cols.Amount)
	assert.Equal(t, -1, cols.Description)
}

func TestResolveColumns_AmountMandatory(t *testing.T) {
	table := readTable(t, "when,what\n15/01/2025,shop\n16/01/2025,cafe\n")
	_, err := ResolveColumns(table)
	require.Error(t, err)
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, err.Error(), "amount column")
}

func TestParseDayFirstDate_DayFirst(t *testing.T) {
	d, err := ParseDayFirstDate("03/04/2025")
	require.NoError(t, err)
	assert.Equal(t, time.April, d.Month())
	assert.Equal(t, 3, d.Day())
}

func TestParseDayFirstDate_ISO(t *testing.T) {
	d, err := ParseDayFirstDate("2025-04-03")
	require.NoError(t, err)
	assert.Equal(t, time.April, d.Month())
	assert.Equal(t, 3, d.Day())
}

func TestParseDayFirstDate_DropsTimeOfDay(t *testing.T) {
	d, err := ParseDayFirstDate("25/12/2024 14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDayFirstDate_Invalid(t *testing.T) {
	_, err := ParseDayFirstDate("not a date")
	assert.Error(t, err)
}

func TestParseAmount_CurrencyMarkers(t *testing.T) {
	want := decimal.RequireFromString("1299")
	for _, in := range []string{"1,299.00", "₹1299", "Rs1299.00", "Rs. 1,299", "-1299.00"} {
		amt, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, amt.Equal(want), "parsing %q gave %s", in, amt)
	}
}

func TestParseAmount_AbsoluteValue(t *testing.T) {
	amt, err := ParseAmount("-450.00")
	require.NoError(t, err)
	assert.Equal(t, "450.00", amt.StringFixed(2))
}

func normalizeAll(t *testing.T, data string, opts Options) ([]model.Transaction, Report, error) {
	t.Helper()
	table := readTable(t, data)
	cols, err := ResolveColumns(table)
	require.NoError(t, err)
	return Normalize(table, cols, opts)
}

func TestNormalize_Basic(t *testing.T) {
	txns, report, err := normalizeAll(t, hdfcStyle, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Imported)
	assert.Equal(t, 0, report.Duplicates)
	assert.Equal(t, 0, report.Invalid)

	assert.Equal(t, "SWIGGY BANGALORE", txns[0].Description)
	assert.Equal(t, model.CategoryFoodDining, txns[0].Category)
	assert.Equal(t, model.TypeExpense, txns[0].Type)
	assert.Equal(t, "450.00", txns[0].Amount.StringFixed(2))
}

func TestNormalize_AmountsAlwaysPositive(t *testing.T) {
	data := "Date,Description,Amount\n01/01/2025,refund,-300\n02/01/2025,shop,150\n"
	txns, _, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	for _, txn := range txns {
		assert.True(t, txn.Amount.IsPositive())
	}
}

func TestNormalize_SkipsNonPositiveAmounts(t *testing.T) {
	data := "Date,Description,Amount\n01/01/2025,zero,0\n02/01/2025,ok,150\n"
	txns, report, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.Equal(t, 1, report.Invalid)
}

func TestNormalize_SkipsBadDates(t *testing.T) {
	data := "Date,Description,Amount\ngarbage,x,100\n02/01/2025,ok,150\n"
	txns, report, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.Equal(t, 1, report.Invalid)
}

func TestNormalize_IncomeSignals(t *testing.T) {
	data := "Date,Description,Amount\n01/01/2025,SALARY CREDIT,50000\n02/01/2025,swiggy,300\n03/01/2025,cashback received,40\n"
	txns, _, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	assert.Equal(t, model.TypeIncome, txns[0].Type)
	assert.Equal(t, model.TypeExpense, txns[1].Type)
	assert.Equal(t, model.TypeIncome, txns[2].Type)
}

func TestNormalize_IncomeSignalIndependentOfCategory(t *testing.T) {
	// "upi refund" categorizes as Transfer (upi) while typing as income
	// (refund); "salary cashback" matches no keyword list and falls to
	// Others while still typing as income.
	data := "Date,Description,Amount\n01/01/2025,upi refund,500\n02/01/2025,salary cashback,300\n"
	txns, _, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTransfer, txns[0].Category)
	assert.Equal(t, model.TypeIncome, txns[0].Type)
	assert.Equal(t, model.CategoryOthers, txns[1].Category)
	assert.Equal(t, model.TypeIncome, txns[1].Type)
}

func TestNormalize_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 300)
	data := "Date,Description,Amount\n01/01/2025," + long + ",100\n"
	txns, _, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	assert.Len(t, txns[0].Description, model.MaxDescriptionLen)
}

func TestNormalize_DescriptionFallback(t *testing.T) {
	data := "Date,Amount\n01/01/2025,100\n"
	txns, _, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Transaction", txns[0].Description)
}

func TestNormalize_InBatchDedup(t *testing.T) {
	data := "Date,Description,Amount\n01/01/2025,swiggy,100\n01/01/2025,swiggy,100\n"
	txns, report, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.Equal(t, 1, report.Duplicates)
}

func TestNormalize_ExistingKeysDedup(t *testing.T) {
	txns, _, err := normalizeAll(t, hdfcStyle, Options{})
	require.NoError(t, err)

	existing := make(map[string]struct{}, len(txns))
	for _, txn := range txns {
		existing[id.DedupKey(txn.Date, txn.Amount, txn.Description)] = struct{}{}
	}

	// Re-running the same batch is a zero-imported success, not an error.
	txns, report, err := normalizeAll(t, hdfcStyle, Options{Existing: existing})
	require.NoError(t, err)
	assert.Empty(t, txns)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 4, report.Duplicates)
	assert.Equal(t, 0, report.Invalid)
}

func TestNormalize_AllInBatchDuplicatesSucceed(t *testing.T) {
	data := "Date,Description,Amount\n01/01/2025,swiggy,100\n01/01/2025,swiggy,100\n"
	existing := map[string]struct{}{
		id.DedupKey(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(100), "swiggy"): {},
	}
	txns, report, err := normalizeAll(t, data, Options{Existing: existing})
	require.NoError(t, err)
	assert.Empty(t, txns)
	assert.Equal(t, 2, report.Duplicates)
}

func TestNormalize_NoValidData(t *testing.T) {
	data := "Date,Description,Amount\nbad,x,notanumber\n"
	_, _, err := normalizeAll(t, data, Options{})
	assert.ErrorIs(t, err, ErrNoValidData)
}

func TestNormalize_SortedAscendingStable(t *testing.T) {
	data := "Date,Description,Amount\n03/01/2025,c,30\n01/01/2025,a1,10\n01/01/2025,a2,11\n02/01/2025,b,20\n"
	txns, _, err := normalizeAll(t, data, Options{})
	require.NoError(t, err)
	assert.Equal(t, "a1", txns[0].Description)
	assert.Equal(t, "a2", txns[1].Description)
	assert.Equal(t, "b", txns[2].Description)
	assert.Equal(t, "c", txns[3].Description)
}

func TestNormalize_NoDateColumnUsesProcessingDate(t *testing.T) {
	table := readTable(t, "thing,val\nshop,100\ncafe,50\n")
	cols, err := ResolveColumns(table)
	require.NoError(t, err)
	require.Equal(t, -1, cols.Date)

	now := time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC)
	txns, _, err := Normalize(table, cols, Options{Now: now})
	require.NoError(t, err)
	for _, txn := range txns {
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), txn.Date)
	}
}
