package series

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetwise-dev/budgetwise/internal/model"
)

func txn(day string, amount float64, typ model.TxnType) model.Transaction {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		Date:   d.UTC(),
		Amount: decimal.NewFromFloat(amount),
		Type:   typ,
	}
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestBuild_SingleDay(t *testing.T) {
	points, err := Build([]model.Transaction{txn("2025-01-15", 100, model.TypeExpense)})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "100", points[0].Total.String())
}

func TestBuild_SumsSameDay(t *testing.T) {
	points, err := Build([]model.Transaction{
		txn("2025-01-15", 100, model.TypeExpense),
		txn("2025-01-15", 50.5, model.TypeExpense),
	})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "150.50", points[0].Total.StringFixed(2))
}

func TestBuild_FillsGapsWithZero(t *testing.T) {
	points, err := Build([]model.Transaction{
		txn("2025-01-10", 100, model.TypeExpense),
		txn("2025-01-14", 200, model.TypeExpense),
	})
	require.NoError(t, err)
	require.Len(t, points, 5)
	assert.True(t, points[1].Total.IsZero())
	assert.True(t, points[2].Total.IsZero())
	assert.True(t, points[3].Total.IsZero())
}

func TestBuild_DatesContiguousAscending(t *testing.T) {
	points, err := Build([]model.Transaction{
		txn("2025-01-20", 10, model.TypeExpense),
		txn("2025-01-05", 20, model.TypeExpense),
		txn("2025-01-12", 30, model.TypeExpense),
	})
	require.NoError(t, err)
	require.Len(t, points, 16)
	for i := 1; i < len(points); i++ {
		assert.Equal(t, 24*time.Hour, points[i].Date.Sub(points[i-1].Date))
	}
}

func TestBuild_TotalRoundTrip(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-01", 123.45, model.TypeExpense),
		txn("2025-01-03", 678.90, model.TypeExpense),
		txn("2025-01-07", 11.11, model.TypeExpense),
	}
	points, err := Build(txns)
	require.NoError(t, err)

	var fromSeries, fromTxns decimal.Decimal
	for _, p := range points {
		fromSeries = fromSeries.Add(p.Total)
	}
	for _, x := range txns {
		fromTxns = fromTxns.Add(x.Amount)
	}
	assert.True(t, fromSeries.Equal(fromTxns))
}

func TestFilterByType(t *testing.T) {
	txns := []model.Transaction{
		txn("2025-01-01", 100, model.TypeExpense),
		txn("2025-01-02", 50000, model.TypeIncome),
		txn("2025-01-03", 200, model.TypeExpense),
	}
	expenses := FilterByType(txns, model.TypeExpense)
	assert.Len(t, expenses, 2)
	income := FilterByType(txns, model.TypeIncome)
	assert.Len(t, income, 1)
}

func TestAmounts(t *testing.T) {
	points := []model.DailyPoint{
		{Total: decimal.NewFromInt(10)},
		{Total: decimal.Decimal{}},
	}
	assert.Equal(t, []float64{10, 0}, Amounts(points))
}
